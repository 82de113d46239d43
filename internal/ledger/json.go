package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/caseclip/internal/logger"
)

// jsonLedger keeps progress in a {"completed":[],"failed":[]} file that is
// rewritten in full on every change.
type jsonLedger struct {
	state
	path   string
	logger logger.Logger
}

func newJSONLedger(path string, log logger.Logger) *jsonLedger {
	return &jsonLedger{path: path, logger: log}
}

func (l *jsonLedger) Load(ctx context.Context) error {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		l.logger.Debug(ctx, "No progress file at %s, starting fresh", l.path)
		l.reset(Progress{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("read progress file: %w", err)
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse progress file %s: %w", l.path, err)
	}
	l.reset(p)
	return nil
}

func (l *jsonLedger) MarkCompleted(ctx context.Context, caseID string) error {
	return l.update(withCompleted(caseID), func(p Progress) error {
		return l.save(ctx, p)
	})
}

func (l *jsonLedger) MarkFailed(ctx context.Context, caseID string) error {
	return l.update(withFailed(caseID), func(p Progress) error {
		return l.save(ctx, p)
	})
}

func (l *jsonLedger) Close() error {
	return nil
}

// save writes the snapshot to a temp file and renames it over the ledger so
// readers never see a partial file.
func (l *jsonLedger) save(ctx context.Context, p Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create progress directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close progress: %w", err)
	}

	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}
