// Package render serializes synthesized records and raw report rows into
// the supported output formats (SQL, JSON, CSV).
package render

import (
	"fmt"
	"strings"

	"github.com/admariner/ga-extractor/internal/migrate"
)

// timestampFormat matches Postgres "timestamp with time zone" literals.
const timestampFormat = "2006-01-02 15:04:05.000+00"

// quote escapes and single-quotes a string literal for SQL.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// SQL renders records as insert statements for the Umami schema, followed
// by the sequence resets. Field order is fixed: sessions carry all eleven
// columns, page views all six with a literal NULL referrer.
func SQL(records []migrate.Record) string {
	var sb strings.Builder
	for _, rec := range records {
		switch r := rec.(type) {
		case migrate.Session:
			fmt.Fprintf(&sb,
				"INSERT INTO public.session (session_id, session_uuid, website_id, created_at, hostname, browser, os, device, screen, language, country) VALUES (%d, %s, %d, %s, %s, %s, %s, %s, %s, %s, %s);\n",
				r.SessionID, quote(r.SessionUUID.String()), r.WebsiteID,
				quote(r.CreatedAt.UTC().Format(timestampFormat)), quote(r.Hostname),
				quote(r.Browser), quote(r.OS), quote(r.Device), quote(r.Screen),
				quote(r.Language), quote(r.Country))
		case migrate.PageView:
			fmt.Fprintf(&sb,
				"INSERT INTO public.pageview (view_id, website_id, session_id, created_at, url, referrer) VALUES (%d, %d, %d, %s, %s, NULL);\n",
				r.ViewID, r.WebsiteID, r.SessionID,
				quote(r.CreatedAt.UTC().Format(timestampFormat)), quote(r.URL))
		case migrate.SequenceReset:
			fmt.Fprintf(&sb, "SELECT pg_catalog.setval(%s, %d, true);\n",
				quote(r.Sequence), r.Value)
		}
	}
	return sb.String()
}
