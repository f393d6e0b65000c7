// Package umami applies synthesized records directly to a live Umami
// Postgres schema, as an alternative to rendering insert statements.
package umami

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/admariner/ga-extractor/internal/migrate"
)

const (
	insertSessionSQL = `INSERT INTO public.session
		(session_id, session_uuid, website_id, created_at, hostname, browser, os, device, screen, language, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	insertPageViewSQL = `INSERT INTO public.pageview
		(view_id, website_id, session_id, created_at, url, referrer)
		VALUES ($1, $2, $3, $4, $5, NULL)`

	setSequenceSQL = `SELECT pg_catalog.setval($1, $2, true)`
)

// Applier holds a connection to the target database.
type Applier struct {
	conn *pgx.Conn
}

// Connect opens a connection to the target database.
func Connect(ctx context.Context, dsn string) (*Applier, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to target database: %w", err)
	}
	return &Applier{conn: conn}, nil
}

// Close releases the connection.
func (a *Applier) Close(ctx context.Context) error {
	return a.conn.Close(ctx)
}

// Apply inserts every record in emission order inside a single transaction,
// then realigns the auto-increment sequences. Either all records land or
// none do.
func (a *Applier) Apply(ctx context.Context, records []migrate.Record) (err error) {
	tx, err := a.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, rec := range records {
		switch r := rec.(type) {
		case migrate.Session:
			_, err = tx.Exec(ctx, insertSessionSQL,
				r.SessionID, r.SessionUUID.String(), r.WebsiteID, r.CreatedAt,
				r.Hostname, r.Browser, r.OS, r.Device, r.Screen, r.Language, r.Country)
			if err != nil {
				return fmt.Errorf("inserting session %d: %w", r.SessionID, err)
			}
		case migrate.PageView:
			_, err = tx.Exec(ctx, insertPageViewSQL,
				r.ViewID, r.WebsiteID, r.SessionID, r.CreatedAt, r.URL)
			if err != nil {
				return fmt.Errorf("inserting page view %d: %w", r.ViewID, err)
			}
		case migrate.SequenceReset:
			if _, err = tx.Exec(ctx, setSequenceSQL, r.Sequence, r.Value); err != nil {
				return fmt.Errorf("resetting sequence %s: %w", r.Sequence, err)
			}
		default:
			return fmt.Errorf("unknown record kind %v", rec.Kind())
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
