package storage

import (
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteStore(connectionString string) (RunStore, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}

	return &SQLiteStore{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteStore) Init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER,
		finished_at INTEGER,
		total INTEGER,
		failed INTEGER,
		cache_hits INTEGER
	)`)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS step_results (
		run_id TEXT,
		position INTEGER,
		command TEXT,
		exit_code INTEGER,
		stdout TEXT,
		stderr TEXT,
		duration_ms INTEGER,
		cached INTEGER,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	)`)
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) CreateRun(run *Run) error {
	_, err := s.db.Exec(
		"INSERT INTO runs (id, started_at, finished_at, total, failed, cache_hits) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(), run.Total, run.Failed, run.CacheHits)
	return err
}

func (s *SQLiteStore) AddStepResult(record *StepRecord) error {
	_, err := s.db.Exec(
		"INSERT INTO step_results (run_id, position, command, exit_code, stdout, stderr, duration_ms, cached) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		record.RunID, record.Position, record.Command, record.ExitCode, record.Stdout, record.Stderr, record.DurationMS, record.Cached)
	return err
}

func (s *SQLiteStore) GetRuns() ([]*Run, error) {
	rows, err := s.db.Query(
		"SELECT id, started_at, finished_at, total, failed, cache_hits FROM runs ORDER BY started_at DESC")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error as we're already returning an error from the function
	}()

	var runs []*Run
	for rows.Next() {
		var run Run
		var started, finished int64
		if err := rows.Scan(&run.ID, &started, &finished, &run.Total, &run.Failed, &run.CacheHits); err != nil {
			return nil, err
		}
		run.StartedAt = time.UnixMilli(started).UTC()
		run.FinishedAt = time.UnixMilli(finished).UTC()
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// GetRun returns the run with the given id, or nil when it does not exist.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		"SELECT id, started_at, finished_at, total, failed, cache_hits FROM runs WHERE id = ?", id)

	var run Run
	var started, finished int64
	if err := row.Scan(&run.ID, &started, &finished, &run.Total, &run.Failed, &run.CacheHits); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	run.StartedAt = time.UnixMilli(started).UTC()
	run.FinishedAt = time.UnixMilli(finished).UTC()
	return &run, nil
}

func (s *SQLiteStore) GetStepResults(runID string) ([]*StepRecord, error) {
	rows, err := s.db.Query(
		"SELECT run_id, position, command, exit_code, stdout, stderr, duration_ms, cached FROM step_results WHERE run_id = ? ORDER BY position",
		runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*StepRecord
	for rows.Next() {
		var record StepRecord
		if err := rows.Scan(&record.RunID, &record.Position, &record.Command, &record.ExitCode,
			&record.Stdout, &record.Stderr, &record.DurationMS, &record.Cached); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) DeleteRun(id string) error {
	if _, err := s.db.Exec("DELETE FROM step_results WHERE run_id = ?", id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	return err
}
