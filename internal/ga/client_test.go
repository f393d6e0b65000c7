package ga

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admariner/ga-extractor/internal/report"
)

// pagedServer serves batchGet responses one page at a time, recording the
// request bodies it receives.
func pagedServer(t *testing.T, pages []reportPayload) (*httptest.Server, *[]batchGetRequest) {
	t.Helper()
	var requests []batchGetRequest
	page := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports:batchGet", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req batchGetRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		require.Less(t, page, len(pages), "more requests than prepared pages")
		resp := batchGetResponse{Reports: []reportPayload{pages[page]}}
		page++
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func migrationRow(path string, views, sessions string) ReportRow {
	return ReportRow{
		Dimensions: []string{path, "Chrome", "Linux", "desktop", "1920x1080", "en-us", "Germany"},
		Metrics:    []MetricValues{{Values: []string{views, sessions}}},
	}
}

func TestBatchGetExhaustsPagination(t *testing.T) {
	pages := []reportPayload{
		{Data: reportData{Rows: []ReportRow{migrationRow("/a", "1", "1")}}, NextPageToken: "page-2"},
		{Data: reportData{Rows: []ReportRow{migrationRow("/b", "2", "1")}}, NextPageToken: "page-3"},
		{Data: reportData{Rows: []ReportRow{migrationRow("/c", "3", "1")}}},
	}
	srv, requests := pagedServer(t, pages)

	client := NewClientWithHTTP(srv.URL, 1234567, srv.Client())
	rows, err := client.BatchGet(context.Background(), Request{
		StartDate:  "2022-02-22",
		EndDate:    "2022-02-22",
		Dimensions: report.MigrationDimensions,
		Metrics:    report.MigrationMetrics,
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "/a", rows[0].Dimensions[0])
	assert.Equal(t, "/c", rows[2].Dimensions[0])

	// The second and third requests carry the page tokens.
	require.Len(t, *requests, 3)
	assert.Empty(t, (*requests)[0].ReportRequests[0].PageToken)
	assert.Equal(t, "page-2", (*requests)[1].ReportRequests[0].PageToken)
	assert.Equal(t, "page-3", (*requests)[2].ReportRequests[0].PageToken)
}

func TestBatchGetRequestShape(t *testing.T) {
	srv, requests := pagedServer(t, []reportPayload{{}})

	client := NewClientWithHTTP(srv.URL, 1234567, srv.Client())
	_, err := client.BatchGet(context.Background(), Request{
		StartDate:     "2022-02-01",
		EndDate:       "2022-02-28",
		Dimensions:    []string{"ga:pagePath"},
		Metrics:       []string{"ga:pageviews"},
		Filters:       "ga:country==Germany",
		SamplingLevel: "LARGE",
	})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	rr := (*requests)[0].ReportRequests[0]
	assert.Equal(t, "1234567", rr.ViewID)
	require.Len(t, rr.DateRanges, 1)
	assert.Equal(t, "2022-02-01", rr.DateRanges[0].StartDate)
	assert.Equal(t, "2022-02-28", rr.DateRanges[0].EndDate)
	assert.Equal(t, []dimension{{Name: "ga:pagePath"}}, rr.Dimensions)
	assert.Equal(t, []metric{{Expression: "ga:pageviews"}}, rr.Metrics)
	assert.Equal(t, "ga:country==Germany", rr.FiltersExpression)
	assert.Equal(t, "LARGE", rr.SamplingLevel)
}

func TestFetchDay(t *testing.T) {
	pages := []reportPayload{
		{Data: reportData{Rows: []ReportRow{
			migrationRow("/blog/29", "4", "1"),
			migrationRow("/", "5", "0"),
		}}},
	}
	srv, requests := pagedServer(t, pages)

	client := NewClientWithHTTP(srv.URL, 42, srv.Client())
	day := time.Date(2022, 2, 22, 0, 0, 0, 0, time.UTC)
	rows, err := client.FetchDay(context.Background(), day)
	require.NoError(t, err)

	// FetchDay requests a single-day range with the migration sets.
	rr := (*requests)[0].ReportRequests[0]
	assert.Equal(t, "2022-02-22", rr.DateRanges[0].StartDate)
	assert.Equal(t, "2022-02-22", rr.DateRanges[0].EndDate)
	assert.Len(t, rr.Dimensions, len(report.MigrationDimensions))
	assert.Len(t, rr.Metrics, len(report.MigrationMetrics))

	require.Len(t, rows, 2)
	assert.Equal(t, report.DimensionRow{
		URLPath: "/blog/29", Browser: "Chrome", OS: "Linux", Device: "desktop",
		Screen: "1920x1080", Language: "en-us", Country: "Germany",
		PageViews: 4, Sessions: 1,
	}, rows[0])
	assert.Equal(t, int64(0), rows[1].Sessions)
}

func TestFetchDayRejectsMalformedMetrics(t *testing.T) {
	pages := []reportPayload{
		{Data: reportData{Rows: []ReportRow{migrationRow("/x", "not-a-number", "1")}}},
	}
	srv, _ := pagedServer(t, pages)

	client := NewClientWithHTTP(srv.URL, 42, srv.Client())
	_, err := client.FetchDay(context.Background(), time.Date(2022, 2, 22, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestBatchGetSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "insufficient permissions"}}`, http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	client := NewClientWithHTTP(srv.URL, 42, srv.Client())
	_, err := client.BatchGet(context.Background(), Request{StartDate: "2022-02-22", EndDate: "2022-02-22"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestToDimensionRowShapeChecks(t *testing.T) {
	_, err := toDimensionRow(ReportRow{Dimensions: []string{"/only-one"}})
	assert.Error(t, err)

	_, err = toDimensionRow(ReportRow{
		Dimensions: []string{"a", "b", "c", "d", "e", "f", "g"},
		Metrics:    []MetricValues{{Values: []string{"1"}}},
	})
	assert.Error(t, err)
}
