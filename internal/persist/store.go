package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store records generation runs and their outputs in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (or creates) the history database at path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &Store{db: db}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			started_at   TEXT NOT NULL,
			finished_at  TEXT,
			source       TEXT NOT NULL,
			category     TEXT NOT NULL,
			quest_count  INTEGER NOT NULL DEFAULT 0,
			host         TEXT,
			os           TEXT,
			status       TEXT NOT NULL,
			error        TEXT
		);

		CREATE TABLE IF NOT EXISTS outputs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL,
			quest_id  TEXT NOT NULL,
			path      TEXT NOT NULL,
			sha256    TEXT NOT NULL,
			content   TEXT,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);

		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
		CREATE INDEX IF NOT EXISTS idx_outputs_run ON outputs(run_id);
	`)
	return err
}

// BeginRun inserts a running entry stamped with the local host and returns it.
func (s *Store) BeginRun(source, category string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := CurrentHost()
	run := &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Source:    source,
		Category:  category,
		Host:      h.Name,
		OS:        h.OS,
		Status:    StatusRunning,
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, started_at, source, category, host, os, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.Format(timeLayout), run.Source, run.Category, run.Host, run.OS, string(run.Status))
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// AddOutput records one written quest file for a run.
func (s *Store) AddOutput(out Output) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO outputs (run_id, quest_id, path, sha256, content)
		VALUES (?, ?, ?, ?, ?)
	`, out.RunID, out.QuestID, out.Path, out.SHA256, out.Content)
	if err != nil {
		return fmt.Errorf("insert output %s: %w", out.QuestID, err)
	}
	return nil
}

// FinishRun closes a run. A non-nil runErr marks it failed.
func (s *Store) FinishRun(runID string, questCount int, runErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, msg := StatusOK, ""
	if runErr != nil {
		status, msg = StatusFailed, runErr.Error()
	}

	res, err := s.db.Exec(`
		UPDATE runs SET finished_at = ?, quest_count = ?, status = ?, error = ?
		WHERE id = ?
	`, time.Now().Format(timeLayout), questCount, string(status), msg, runID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 means 20.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, source, category, quest_count, host, os, status, error
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns one run by id.
func (s *Store) GetRun(runID string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, started_at, finished_at, source, category, quest_count, host, os, status, error
		FROM runs
		WHERE id = ?
	`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, err
}

// GetOutputs returns the files written by a run in insertion order.
func (s *Store) GetOutputs(runID string) ([]Output, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT run_id, quest_id, path, sha256, content
		FROM outputs
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []Output
	for rows.Next() {
		var out Output
		var content sql.NullString
		if err := rows.Scan(&out.RunID, &out.QuestID, &out.Path, &out.SHA256, &content); err != nil {
			return nil, err
		}
		out.Content = content.String
		outputs = append(outputs, out)
	}
	return outputs, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var startedAt string
	var finishedAt, host, osName, errMsg sql.NullString
	var status string

	err := row.Scan(&run.ID, &startedAt, &finishedAt, &run.Source, &run.Category,
		&run.QuestCount, &host, &osName, &status, &errMsg)
	if err != nil {
		return nil, err
	}

	if t, err := time.Parse(timeLayout, startedAt); err == nil {
		run.StartedAt = t
	}
	if finishedAt.Valid {
		if t, err := time.Parse(timeLayout, finishedAt.String); err == nil {
			run.FinishedAt = t
		}
	}
	run.Host = host.String
	run.OS = osName.String
	run.Status = RunStatus(status)
	run.Error = errMsg.String
	return &run, nil
}
