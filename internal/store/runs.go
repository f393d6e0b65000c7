package store

import (
	"database/sql"
	"time"
)

// Run records one extract or migrate invocation.
type Run struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	Command    string    `json:"command"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Days       int       `json:"days"`
	RowCount   int       `json:"row_count"`
	Records    int       `json:"records"`
	OutputPath string    `json:"output_path,omitempty"`
}

// RecordRun inserts a run and returns its ID.
func (db *DB) RecordRun(r *Run) (int64, error) {
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now().UTC()
	}
	result, err := db.conn.Exec(
		`INSERT INTO runs (started_at, command, start_date, end_date, days, row_count, records, output_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339), r.Command, r.StartDate, r.EndDate,
		r.Days, r.RowCount, r.Records, r.OutputPath,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(
		`SELECT id, started_at, command, start_date, end_date, days, row_count, records, output_path
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var outputPath sql.NullString
		if err := rows.Scan(&r.ID, &startedAt, &r.Command, &r.StartDate, &r.EndDate,
			&r.Days, &r.RowCount, &r.Records, &outputPath); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		r.OutputPath = outputPath.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
