// Package report builds daily analytics reports for migration.
package report

import "fmt"

// DayFormat is the ISO date layout used for day keys throughout the tool.
const DayFormat = "2006-01-02"

// MigrationDimensions is the fixed dimension set fetched for every day of a
// migration, in the order the API returns their values.
var MigrationDimensions = []string{
	"ga:pagePath",
	"ga:browser",
	"ga:operatingSystem",
	"ga:deviceCategory",
	"ga:browserSize",
	"ga:language",
	"ga:country",
}

// MigrationMetrics is the fixed metric set fetched for every day of a migration.
var MigrationMetrics = []string{"ga:pageviews", "ga:sessions"}

// DimensionRow is one aggregate observation for a single day: a unique
// combination of dimension values with its page-view and session counts.
type DimensionRow struct {
	URLPath  string `json:"url_path"`
	Browser  string `json:"browser"`
	OS       string `json:"os"`
	Device   string `json:"device"`
	Screen   string `json:"screen"`
	Language string `json:"language"`
	Country  string `json:"country"`

	PageViews int64 `json:"page_views"`
	Sessions  int64 `json:"sessions"`
}

// Validate rejects metric combinations outside the supported domain.
// A session count of zero is valid (the source data produces it); negative
// counts and more sessions than page views are not.
func (r DimensionRow) Validate() error {
	if r.PageViews < 0 || r.Sessions < 0 {
		return &ValidationError{Row: r, Reason: "negative metric count"}
	}
	if r.Sessions > 0 && r.PageViews < r.Sessions {
		return &ValidationError{
			Row:    r,
			Reason: fmt.Sprintf("page views (%d) below sessions (%d)", r.PageViews, r.Sessions),
		}
	}
	return nil
}

// ValidationError reports a dimension row whose metrics cannot be migrated.
type ValidationError struct {
	Row    DimensionRow
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid row for %q: %s", e.Row.URLPath, e.Reason)
}

// FetchError reports that a single day's report could not be retrieved.
// The whole aggregation aborts; there is no partial-day retry.
type FetchError struct {
	Day string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching report for %s: %v", e.Day, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
