// Package sqlite persists task run history in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/bnema/keyflush/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS flush_runs (
	id          TEXT PRIMARY KEY,
	task        TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	status      TEXT NOT NULL,
	keyspaces   TEXT NOT NULL DEFAULT '[]',
	error       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_flush_runs_started_at ON flush_runs (started_at DESC);
`

// RunStore implements out.RunStore on SQLite.
type RunStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens or creates the history database at path and applies the schema.
func Open(ctx context.Context, path string, log zerolog.Logger) (*RunStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("history database ready")
	return &RunStore{db: db, log: log}, nil
}

// Close closes the database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// Save inserts a run record.
func (s *RunStore) Save(ctx context.Context, record domain.RunRecord) error {
	keyspaces := record.Keyspaces
	if keyspaces == nil {
		keyspaces = []string{}
	}
	encoded, err := json.Marshal(keyspaces)
	if err != nil {
		return fmt.Errorf("failed to encode keyspaces: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO flush_runs (id, task, started_at, duration_ms, status, keyspaces, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Task,
		record.StartedAt.UTC().UnixNano(),
		record.Duration.Milliseconds(),
		string(record.Status),
		string(encoded),
		record.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", record.ID, err)
	}
	return nil
}

// List returns up to limit runs, newest first. A non-positive limit returns all runs.
func (s *RunStore) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task, started_at, duration_ms, status, keyspaces, error
		 FROM flush_runs
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	records := []domain.RunRecord{}
	for rows.Next() {
		var (
			record     domain.RunRecord
			startedAt  int64
			durationMs int64
			status     string
			keyspaces  string
		)
		if err := rows.Scan(&record.ID, &record.Task, &startedAt, &durationMs, &status, &keyspaces, &record.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.StartedAt = time.Unix(0, startedAt).UTC()
		record.Duration = time.Duration(durationMs) * time.Millisecond
		record.Status = domain.RunStatus(status)
		if err := json.Unmarshal([]byte(keyspaces), &record.Keyspaces); err != nil {
			s.log.Warn().Err(err).Str("run_id", record.ID).Msg("invalid keyspaces column")
		}
		if record.Keyspaces == nil {
			record.Keyspaces = []string{}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return records, nil
}

// Prune deletes all but the newest keep runs and returns how many were removed.
func (s *RunStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("%w: keep must be >= 0, received: %d", domain.ErrInvalidArgument, keep)
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM flush_runs WHERE id NOT IN (
			SELECT id FROM flush_runs ORDER BY started_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return int(n), nil
}
