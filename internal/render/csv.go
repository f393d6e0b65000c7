package render

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/admariner/ga-extractor/internal/migrate"
)

// csvHeader is the flat column set shared by all record kinds; columns that
// do not apply to a kind are left empty.
var csvHeader = []string{
	"kind", "id", "session_uuid", "website_id", "session_id", "created_at",
	"url", "hostname", "browser", "os", "device", "screen", "language",
	"country", "sequence", "value",
}

// CSV renders records as a flat CSV with a leading kind column.
func CSV(records []migrate.Record) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for _, rec := range records {
		row := make([]string, len(csvHeader))
		row[0] = rec.Kind().String()
		switch r := rec.(type) {
		case migrate.Session:
			row[1] = strconv.FormatUint(r.SessionID, 10)
			row[2] = r.SessionUUID.String()
			row[3] = strconv.FormatUint(r.WebsiteID, 10)
			row[5] = r.CreatedAt.UTC().Format(timestampFormat)
			row[7] = r.Hostname
			row[8] = r.Browser
			row[9] = r.OS
			row[10] = r.Device
			row[11] = r.Screen
			row[12] = r.Language
			row[13] = r.Country
		case migrate.PageView:
			row[1] = strconv.FormatUint(r.ViewID, 10)
			row[3] = strconv.FormatUint(r.WebsiteID, 10)
			row[4] = strconv.FormatUint(r.SessionID, 10)
			row[5] = r.CreatedAt.UTC().Format(timestampFormat)
			row[6] = r.URL
		case migrate.SequenceReset:
			row[14] = r.Sequence
			row[15] = strconv.FormatUint(r.Value, 10)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
