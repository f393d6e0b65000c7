package render

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admariner/ga-extractor/internal/ga"
	"github.com/admariner/ga-extractor/internal/migrate"
)

var (
	testUUID = uuid.MustParse("fff811c4-8991-5ae3-b4ba-34b75401db54")
	testDay  = time.Date(2022, 2, 22, 0, 0, 0, 0, time.UTC)
)

func testRecords() []migrate.Record {
	return []migrate.Record{
		migrate.Session{
			SessionID:   1,
			SessionUUID: testUUID,
			WebsiteID:   1,
			CreatedAt:   testDay,
			Hostname:    "localhost",
			Browser:     "Chrome",
			OS:          "Linux",
			Device:      "desktop",
			Screen:      "1920x1080",
			Language:    "en",
			Country:     "Germany",
		},
		migrate.PageView{ViewID: 1, WebsiteID: 1, SessionID: 1, CreatedAt: testDay, URL: "/blog/29"},
		migrate.SequenceReset{Sequence: migrate.PageViewSequence, Value: 2},
		migrate.SequenceReset{Sequence: migrate.SessionSequence, Value: 2},
	}
}

func TestSQLStatements(t *testing.T) {
	got := SQL(testRecords())
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t,
		"INSERT INTO public.session (session_id, session_uuid, website_id, created_at, hostname, browser, os, device, screen, language, country) "+
			"VALUES (1, 'fff811c4-8991-5ae3-b4ba-34b75401db54', 1, '2022-02-22 00:00:00.000+00', 'localhost', 'Chrome', 'Linux', 'desktop', '1920x1080', 'en', 'Germany');",
		lines[0])
	assert.Equal(t,
		"INSERT INTO public.pageview (view_id, website_id, session_id, created_at, url, referrer) "+
			"VALUES (1, 1, 1, '2022-02-22 00:00:00.000+00', '/blog/29', NULL);",
		lines[1])
	assert.Equal(t, "SELECT pg_catalog.setval('public.pageview_view_id_seq', 2, true);", lines[2])
	assert.Equal(t, "SELECT pg_catalog.setval('public.session_session_id_seq', 2, true);", lines[3])
}

func TestSQLEscapesQuotes(t *testing.T) {
	records := []migrate.Record{
		migrate.PageView{ViewID: 1, WebsiteID: 1, SessionID: 1, CreatedAt: testDay, URL: "/it's-a-trap"},
	}
	got := SQL(records)
	assert.Contains(t, got, "'/it''s-a-trap'")
}

func TestJSONKindTags(t *testing.T) {
	data, err := JSON(testRecords())
	require.NoError(t, err)

	var parsed []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Len(t, parsed, 4)

	var kind string
	require.NoError(t, json.Unmarshal(parsed[0]["kind"], &kind))
	assert.Equal(t, "session", kind)
	assert.Contains(t, parsed[0], "session")
	assert.NotContains(t, parsed[0], "pageview")

	require.NoError(t, json.Unmarshal(parsed[1]["kind"], &kind))
	assert.Equal(t, "pageview", kind)

	require.NoError(t, json.Unmarshal(parsed[2]["kind"], &kind))
	assert.Equal(t, "sequence_reset", kind)
}

func TestCSVRecords(t *testing.T) {
	out, err := CSV(testRecords())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5) // header + 4 records

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "session", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, testUUID.String(), rows[1][2])
	assert.Equal(t, "pageview", rows[2][0])
	assert.Equal(t, "/blog/29", rows[2][6])
	assert.Equal(t, "sequence_reset", rows[3][0])
	assert.Equal(t, migrate.PageViewSequence, rows[3][14])
	assert.Equal(t, "2", rows[3][15])
}

func TestReportCSV(t *testing.T) {
	rows := []ga.ReportRow{
		{Dimensions: []string{"/blog/29", "Opera"}, Metrics: []ga.MetricValues{{Values: []string{"4", "1"}}}},
		{Dimensions: []string{"/", "Firefox"}, Metrics: []ga.MetricValues{{Values: []string{"10", "3"}}}},
	}

	out, err := ReportCSV(rows, []string{"ga:pagePath", "ga:browser"}, []string{"ga:pageviews", "ga:sessions"})
	require.NoError(t, err)

	parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, []string{"ga:pagePath", "ga:browser", "ga:pageviews", "ga:sessions"}, parsed[0])
	assert.Equal(t, []string{"/blog/29", "Opera", "4", "1"}, parsed[1])
	assert.Equal(t, []string{"/", "Firefox", "10", "3"}, parsed[2])
}

func TestReportCSVMismatchedRow(t *testing.T) {
	rows := []ga.ReportRow{
		{Dimensions: []string{"/only-one"}, Metrics: []ga.MetricValues{{Values: []string{"1", "1"}}}},
	}
	_, err := ReportCSV(rows, []string{"ga:pagePath", "ga:browser"}, []string{"ga:pageviews", "ga:sessions"})
	assert.Error(t, err)
}
