// Package reportstore persists a run's diagnostics to SQLite so a CLI or CI
// job can diff two runs. This is a reporting/audit feature: each run is
// still a full from-scratch analysis (spec.md's Non-goals exclude
// incremental re-analysis); only the diagnostic record is kept around
// afterward. Grounded on the teacher's go.mod dependency on
// modernc.org/sqlite (carried as the DB builtin's driver in a part of
// internal/evaluator the retrieval pack didn't keep) generalized here to an
// ambient reporting store for this repo's own tooling, written with the
// stdlib database/sql conventions the teacher uses for similar one-shot
// "open, prepare, exec" sequences elsewhere (internal/ext's os/filepath
// style of wrapping a single resource behind a small Go type).
package reportstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
)

// Store is a handle on one SQLite-backed diagnostic history database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	session_id TEXT PRIMARY KEY,
	file_path  TEXT NOT NULL,
	started_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS diagnostics (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL REFERENCES runs(session_id),
	kind        TEXT NOT NULL,
	message     TEXT NOT NULL,
	span_start  INTEGER NOT NULL,
	span_end    INTEGER NOT NULL,
	reported_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS diagnostics_session_idx ON diagnostics(session_id);
`

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening report store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing report store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts one run's metadata and all of its diagnostics inside a
// single transaction, so a crash mid-write never leaves a run row with a
// partial diagnostic set.
func (s *Store) RecordRun(ctx context.Context, sessionID, filePath string, diags []diagnostics.Diagnostic, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning report store transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (session_id, file_path, started_at) VALUES (?, ?, ?)`,
		sessionID, filePath, at.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("recording run %s: %w", sessionID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO diagnostics (session_id, kind, message, span_start, span_end, reported_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing diagnostic insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range diags {
		span := d.Span()
		if _, err := stmt.ExecContext(ctx,
			sessionID, d.Kind(), d.Message(), int64(span.Start), int64(span.End), at.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("recording diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report store transaction: %w", err)
	}
	return nil
}

// Record is one stored diagnostic row, as read back by Diagnostics.
type Record struct {
	Kind       string
	Message    string
	SpanStart  int
	SpanEnd    int
	ReportedAt time.Time
}

// Diagnostics returns every diagnostic recorded for sessionID, in insertion
// order.
func (s *Store) Diagnostics(ctx context.Context, sessionID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, message, span_start, span_end, reported_at
		 FROM diagnostics WHERE session_id = ? ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying diagnostics for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var reportedAt string
		if err := rows.Scan(&r.Kind, &r.Message, &r.SpanStart, &r.SpanEnd, &reportedAt); err != nil {
			return nil, fmt.Errorf("scanning diagnostic row: %w", err)
		}
		r.ReportedAt, err = time.Parse(time.RFC3339Nano, reportedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing reported_at %q: %w", reportedAt, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Sessions lists every recorded session ID for filePath, most recent first.
func (s *Store) Sessions(ctx context.Context, filePath string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id FROM runs WHERE file_path = ? ORDER BY started_at DESC`,
		filePath,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions for %s: %w", filePath, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
