package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// FetchFunc returns the complete row set for a single calendar day.
// Pagination is the fetcher's concern; the aggregator assumes the returned
// slice is exhaustive for that day.
type FetchFunc func(ctx context.Context, day time.Time) ([]DimensionRow, error)

// DayRows holds one day's rows, keyed by the ISO date string.
type DayRows struct {
	Day  string         `json:"day"`
	Rows []DimensionRow `json:"rows"`
}

// DailyReport is a day-keyed report in ascending date order. Downstream
// identifier assignment depends on this order, so it is a slice rather
// than a map.
type DailyReport struct {
	Days []DayRows `json:"days"`
}

// TotalRows returns the number of dimension rows across all days.
func (r *DailyReport) TotalRows() int {
	n := 0
	for _, d := range r.Days {
		n += len(d.Rows)
	}
	return n
}

// fetchParallelism bounds concurrent per-day fetches.
const fetchParallelism = 4

// Daily fetches one single-day report for every calendar day in
// [start, end] inclusive. Fetches run concurrently but results are slotted
// by day index, so the returned report is always in ascending date order.
// Every row is validated on the way in; any failed day aborts the whole
// aggregation with a FetchError naming that day.
func Daily(ctx context.Context, start, end time.Time, fetch FetchFunc) (*DailyReport, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("start date %s is after end date %s",
			start.Format(DayFormat), end.Format(DayFormat))
	}

	numDays := int(end.Sub(start).Hours()/24) + 1
	days := make([]DayRows, numDays)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallelism)
	for i := 0; i < numDays; i++ {
		i := i
		day := start.AddDate(0, 0, i)
		g.Go(func() error {
			rows, err := fetch(gctx, day)
			if err != nil {
				return &FetchError{Day: day.Format(DayFormat), Err: err}
			}
			for _, row := range rows {
				if err := row.Validate(); err != nil {
					return fmt.Errorf("day %s: %w", day.Format(DayFormat), err)
				}
			}
			days[i] = DayRows{Day: day.Format(DayFormat), Rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DailyReport{Days: days}, nil
}

// truncateDay drops any time component, pinning the day to midnight UTC.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
