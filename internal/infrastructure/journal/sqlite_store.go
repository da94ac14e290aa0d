package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/ports"
)

// SQLiteStore records lifecycle events in <state dir>/journal.db. The database
// is opened on first use so commands that never record anything leave no trace
// on disk. Write failures are logged and swallowed.
type SQLiteStore struct {
	path   string
	logger ports.Logger

	once    sync.Once
	openErr error
	db      *sql.DB
	mu      sync.Mutex
}

// NewSQLiteStore prepares a store at path without touching the filesystem.
func NewSQLiteStore(path string, logger ports.Logger) *SQLiteStore {
	return &SQLiteStore{path: path, logger: logger}
}

func (s *SQLiteStore) open() error {
	s.once.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
			s.openErr = err
			return
		}
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			s.openErr = err
			return
		}
		if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			workflow TEXT NOT NULL,
			step TEXT NOT NULL,
			outcome TEXT NOT NULL,
			detail TEXT,
			at TEXT NOT NULL
		);`); err != nil {
			_ = db.Close()
			s.openErr = err
			return
		}
		s.db = db
	})
	return s.openErr
}

// Record implements ports.Journal.
func (s *SQLiteStore) Record(ctx context.Context, event domain.JournalEvent) {
	if err := s.open(); err != nil {
		s.logger.Debug("journal unavailable", map[string]interface{}{"path": s.path, "error": err.Error()})
		return
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(context.WithoutCancel(ctx), `INSERT INTO events
		(run_id, workflow, step, outcome, detail, at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		event.RunID,
		string(event.Workflow),
		event.Step,
		string(event.Outcome),
		event.Detail,
		event.At.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		s.logger.Debug("journal write failed", map[string]interface{}{"step": event.Step, "error": err.Error()})
	}
}

// Recent returns up to limit events, newest first. A journal that was never
// written reads as empty.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.JournalEvent, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err := s.open(); err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if limit <= 0 {
		limit = domain.DefaultJournalLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, workflow, step, outcome, detail, at
		FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.JournalEvent
	for rows.Next() {
		var ev domain.JournalEvent
		var workflow, outcome, at string
		var detail sql.NullString
		if err := rows.Scan(&ev.RunID, &workflow, &ev.Step, &outcome, &detail, &at); err != nil {
			return nil, err
		}
		ev.Workflow = domain.Workflow(workflow)
		ev.Outcome = domain.Outcome(outcome)
		ev.Detail = detail.String
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			ev.At = t
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Close releases the database if it was opened.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.path
}

var _ ports.Journal = (*SQLiteStore)(nil)
