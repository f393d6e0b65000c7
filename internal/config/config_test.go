package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultMetrics, cfg.Metrics)
	assert.Equal(t, DefaultDimensions, cfg.Dimensions)
	assert.Equal(t, DefaultSamplingLevel, cfg.SamplingLevel)
	assert.Equal(t, uint64(DefaultWebsiteID), cfg.WebsiteID)
	assert.Equal(t, DefaultHostname, cfg.Hostname)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Config{
		ServiceAccountKeyPath: "/tmp/key.json",
		Table:                 1234567,
		Metrics:               "ga:pageviews,ga:sessions",
		Dimensions:            "ga:pagePath,ga:browser",
		Filters:               "ga:country==Germany",
		SamplingLevel:         "LARGE",
		StartDate:             "2022-02-01",
		EndDate:               "2022-02-28",
		WebsiteID:             7,
		Hostname:              "blog.example.com",
	}

	saved, err := Save(want, path)
	require.NoError(t, err)
	assert.Equal(t, path, saved)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	_, err := Save(&Config{Hostname: "localhost"}, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestValidate(t *testing.T) {
	valid := Config{
		ServiceAccountKeyPath: "/tmp/key.json",
		Table:                 1,
		SamplingLevel:         "DEFAULT",
		StartDate:             "2022-02-01",
		EndDate:               "2022-02-28",
	}
	assert.NoError(t, valid.Validate())

	noKey := valid
	noKey.ServiceAccountKeyPath = ""
	assert.Error(t, noKey.Validate())

	noTable := valid
	noTable.Table = 0
	assert.Error(t, noTable.Validate())

	badSampling := valid
	badSampling.SamplingLevel = "SOMETIMES"
	assert.Error(t, badSampling.Validate())

	badDates := valid
	badDates.StartDate = "2022-03-01"
	assert.Error(t, badDates.Validate())
}

func TestDateRange(t *testing.T) {
	cfg := Config{StartDate: "2022-02-01", EndDate: "2022-02-03"}
	start, end, err := cfg.DateRange()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2022, 2, 3, 0, 0, 0, 0, time.UTC), end)

	cfg.StartDate = "01/02/2022"
	_, _, err = cfg.DateRange()
	assert.Error(t, err)
}

func TestMetricAndDimensionLists(t *testing.T) {
	cfg := Config{
		Metrics:    "ga:pageviews, ga:sessions",
		Dimensions: "ga:pagePath,,ga:browser",
	}
	assert.Equal(t, []string{"ga:pageviews", "ga:sessions"}, cfg.MetricList())
	assert.Equal(t, []string{"ga:pagePath", "ga:browser"}, cfg.DimensionList())
}
