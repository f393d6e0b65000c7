package render

import (
	"encoding/json"
	"fmt"

	"github.com/admariner/ga-extractor/internal/migrate"
)

// taggedRecord is the JSON shape of one record: a kind tag plus exactly one
// populated variant.
type taggedRecord struct {
	Kind          string                 `json:"kind"`
	Session       *migrate.Session       `json:"session,omitempty"`
	PageView      *migrate.PageView      `json:"pageview,omitempty"`
	SequenceReset *migrate.SequenceReset `json:"sequence_reset,omitempty"`
}

// JSON renders records as a kind-tagged JSON array.
func JSON(records []migrate.Record) ([]byte, error) {
	out := make([]taggedRecord, 0, len(records))
	for _, rec := range records {
		tr := taggedRecord{Kind: rec.Kind().String()}
		switch r := rec.(type) {
		case migrate.Session:
			tr.Session = &r
		case migrate.PageView:
			tr.PageView = &r
		case migrate.SequenceReset:
			tr.SequenceReset = &r
		default:
			return nil, fmt.Errorf("unknown record kind %v", rec.Kind())
		}
		out = append(out, tr)
	}
	return json.MarshalIndent(out, "", "  ")
}
