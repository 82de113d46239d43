package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nguyentantai21042004/caseclip/internal/logger"
)

const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS progress (
	case_id    TEXT PRIMARY KEY,
	status     TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// sqliteLedger keeps one row per case; each mutation is a single upsert.
type sqliteLedger struct {
	state
	path   string
	db     *sql.DB
	logger logger.Logger
}

func newSQLiteLedger(path string, log logger.Logger) *sqliteLedger {
	return &sqliteLedger{path: path, logger: log}
}

func (l *sqliteLedger) Load(ctx context.Context) error {
	if l.db == nil {
		if err := l.open(ctx); err != nil {
			return err
		}
	}

	rows, err := l.db.QueryContext(ctx, `SELECT case_id, status FROM progress ORDER BY rowid ASC`)
	if err != nil {
		return fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var p Progress
	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return fmt.Errorf("scan progress: %w", err)
		}
		switch status {
		case statusCompleted:
			p.Completed = append(p.Completed, id)
		case statusFailed:
			p.Failed = append(p.Failed, id)
		default:
			l.logger.Warn(ctx, "Ignoring progress row %s with status %q", id, status)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read progress: %w", err)
	}

	l.reset(p)
	return nil
}

func (l *sqliteLedger) open(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", l.path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("create progress table: %w", err)
	}

	l.db = db
	return nil
}

func (l *sqliteLedger) MarkCompleted(ctx context.Context, caseID string) error {
	if l.db == nil {
		return fmt.Errorf("ledger not loaded")
	}

	return l.update(withCompleted(caseID), func(Progress) error {
		_, err := l.db.ExecContext(ctx, `
			INSERT INTO progress (case_id, status, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(case_id) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at
		`, caseID, statusCompleted, time.Now().Unix())
		if err != nil {
			return fmt.Errorf("mark %s completed: %w", caseID, err)
		}
		return nil
	})
}

func (l *sqliteLedger) MarkFailed(ctx context.Context, caseID string) error {
	if l.db == nil {
		return fmt.Errorf("ledger not loaded")
	}

	return l.update(withFailed(caseID), func(Progress) error {
		_, err := l.db.ExecContext(ctx, `
			INSERT INTO progress (case_id, status, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(case_id) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at
			WHERE progress.status <> ?
		`, caseID, statusFailed, time.Now().Unix(), statusCompleted)
		if err != nil {
			return fmt.Errorf("mark %s failed: %w", caseID, err)
		}
		return nil
	})
}

func (l *sqliteLedger) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
