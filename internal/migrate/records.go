// Package migrate synthesizes session and page-view records from daily
// aggregate analytics counts. Real visit times are not preserved: every
// record created for a day carries that day's midnight-UTC timestamp, and
// sessions are reconstructed so their page-view counts sum back to the
// source aggregates.
package migrate

import (
	"time"

	"github.com/google/uuid"
)

// RecordKind tags the variants of the Record union.
type RecordKind int

const (
	KindSession RecordKind = iota
	KindPageView
	KindSequenceReset
)

// String returns the kind name used in serialized output.
func (k RecordKind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindPageView:
		return "pageview"
	case KindSequenceReset:
		return "sequence_reset"
	default:
		return "unknown"
	}
}

// Record is the tagged union emitted by Synthesize. Serializers dispatch
// on Kind rather than inspecting structure.
type Record interface {
	Kind() RecordKind
}

// Session is a synthesized visit. Created exactly once per reconstructed
// session and never mutated afterwards.
type Session struct {
	SessionID   uint64    `json:"session_id"`
	SessionUUID uuid.UUID `json:"session_uuid"`
	WebsiteID   uint64    `json:"website_id"`
	CreatedAt   time.Time `json:"created_at"`
	Hostname    string    `json:"hostname"`
	Browser     string    `json:"browser"`
	OS          string    `json:"os"`
	Device      string    `json:"device"`
	Screen      string    `json:"screen"`
	Language    string    `json:"language"`
	Country     string    `json:"country"`
}

// Kind implements Record.
func (Session) Kind() RecordKind { return KindSession }

// PageView is a synthesized page view. SessionID always references a
// Session emitted earlier in the same output, never a forward reference.
// The referrer is always null in synthesized data, so it is a rendering
// concern rather than a field here.
type PageView struct {
	ViewID    uint64    `json:"view_id"`
	WebsiteID uint64    `json:"website_id"`
	SessionID uint64    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
}

// Kind implements Record.
func (PageView) Kind() RecordKind { return KindPageView }

// Target sequence names in the Umami schema.
const (
	PageViewSequence = "public.pageview_view_id_seq"
	SessionSequence  = "public.session_session_id_seq"
)

// SequenceReset records the value a target auto-increment sequence must
// resume from after the synthesized rows have been inserted.
type SequenceReset struct {
	Sequence string `json:"sequence"`
	Value    uint64 `json:"value"`
}

// Kind implements Record.
func (SequenceReset) Kind() RecordKind { return KindSequenceReset }
