package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndListRuns(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	first := &Run{
		StartedAt:  time.Date(2022, 2, 22, 15, 0, 0, 0, time.UTC),
		Command:    "extract",
		StartDate:  "2022-02-01",
		EndDate:    "2022-02-28",
		RowCount:   120,
		OutputPath: "/tmp/report.json",
	}
	id, err := db.RecordRun(first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	second := &Run{
		Command:   "migrate",
		StartDate: "2022-02-01",
		EndDate:   "2022-02-28",
		Days:      28,
		RowCount:  120,
		Records:   342,
	}
	_, err = db.RecordRun(second)
	require.NoError(t, err)

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "migrate", runs[0].Command)
	assert.Equal(t, 28, runs[0].Days)
	assert.Equal(t, 342, runs[0].Records)
	assert.Equal(t, "extract", runs[1].Command)
	assert.Equal(t, first.StartedAt, runs[1].StartedAt)
	assert.Equal(t, "/tmp/report.json", runs[1].OutputPath)
}

func TestRecordRunDefaultsStartedAt(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.RecordRun(&Run{Command: "extract"})
	require.NoError(t, err)

	runs, err := db.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.WithinDuration(t, time.Now().UTC(), runs[0].StartedAt, time.Minute)
}

func TestListRunsLimit(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 5; i++ {
		_, err := db.RecordRun(&Run{Command: "extract"})
		require.NoError(t, err)
	}

	runs, err := db.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
