package migrate

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/admariner/ga-extractor/internal/report"
)

// Options parametrize the synthesized records. Every session and page view
// in a run carries the same website ID and hostname.
type Options struct {
	WebsiteID uint64
	Hostname  string
}

// counters holds the next unused identifier for each record type. The state
// is threaded explicitly through per-row synthesis so each row's record
// generation stays a pure function of its inputs.
type counters struct {
	session uint64
	view    uint64
}

// Synthesize converts a daily report into an ordered list of session and
// page-view records whose per-row aggregates match the source counts.
// Days are processed in the report's ascending date order and rows in
// source order, so identifier assignment is reproducible (session UUIDs
// are freshly random each run; only their uniqueness matters). The list
// ends with two sequence resets carrying the one-past-last value of each
// identifier counter.
func Synthesize(rep *report.DailyReport, opts Options) ([]Record, error) {
	ctr := counters{session: 1, view: 1}
	var records []Record

	for _, day := range rep.Days {
		ts, err := time.ParseInLocation(report.DayFormat, day.Day, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid day key %q: %w", day.Day, err)
		}
		for _, row := range day.Rows {
			if err := row.Validate(); err != nil {
				return nil, err
			}
			var rowRecords []Record
			rowRecords, ctr = synthesizeRow(row, ts, opts, ctr)
			records = append(records, rowRecords...)
		}
	}

	records = append(records,
		SequenceReset{Sequence: PageViewSequence, Value: ctr.view},
		SequenceReset{Sequence: SessionSequence, Value: ctr.session},
	)
	return records, nil
}

// synthesizeRow reconstructs the sessions and page views for one dimension
// row, splitting v page views across s sessions by one of three policies:
//
//   - v == s: one page view per session
//   - v divides evenly by s: v/s page views per session, grouped after it
//   - otherwise: one page view per session, the remainder all attributed
//     to the row's last session
//
// A zero session count is coerced to one; the source data is known to
// produce zero-session rows and they are not a fault. Each page view is
// emitted after the session it references, so the output never contains a
// forward reference.
func synthesizeRow(row report.DimensionRow, ts time.Time, opts Options, ctr counters) ([]Record, counters) {
	v := uint64(row.PageViews)
	s := uint64(row.Sessions)
	if s == 0 {
		s = 1
	}

	newSession := func() Session {
		sess := Session{
			SessionID:   ctr.session,
			SessionUUID: uuid.New(),
			WebsiteID:   opts.WebsiteID,
			CreatedAt:   ts,
			Hostname:    opts.Hostname,
			Browser:     row.Browser,
			OS:          row.OS,
			Device:      row.Device,
			Screen:      row.Screen,
			Language:    row.Language,
			Country:     row.Country,
		}
		ctr.session++
		return sess
	}
	newView := func(sessionID uint64) PageView {
		pv := PageView{
			ViewID:    ctr.view,
			WebsiteID: opts.WebsiteID,
			SessionID: sessionID,
			CreatedAt: ts,
			URL:       row.URLPath,
		}
		ctr.view++
		return pv
	}

	out := make([]Record, 0, s+v)
	switch {
	case v == s:
		// One page view per session. Also satisfies the even-split case
		// below; checked first so ties keep the original uniform policy.
		for i := uint64(0); i < s; i++ {
			sess := newSession()
			out = append(out, sess, newView(sess.SessionID))
		}

	case v%s == 0:
		// Split evenly, each session's views grouped directly after it.
		per := v / s
		for i := uint64(0); i < s; i++ {
			sess := newSession()
			out = append(out, sess)
			for j := uint64(0); j < per; j++ {
				out = append(out, newView(sess.SessionID))
			}
		}

	default:
		// Seed every session with one view, then hang the remainder off
		// the last session of this row's group.
		var last uint64
		for i := uint64(0); i < s; i++ {
			sess := newSession()
			out = append(out, sess, newView(sess.SessionID))
			last = sess.SessionID
		}
		for extra := int64(v) - int64(s); extra > 0; extra-- {
			out = append(out, newView(last))
		}
	}

	return out, ctr
}
