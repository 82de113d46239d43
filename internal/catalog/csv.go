package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

const bom = "\ufeff"

// csvWriter appends to a UTF-8 CSV with a byte order mark so spreadsheet
// tools detect the encoding.
type csvWriter struct {
	path         string
	openEndLabel string
}

func (w *csvWriter) Append(ctx context.Context, ec models.EnrichedCase) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat catalog: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if _, err := f.WriteString(bom); err != nil {
			return fmt.Errorf("write catalog header: %w", err)
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write catalog header: %w", err)
		}
	}
	if err := cw.Write(row(ec, w.openEndLabel)); err != nil {
		return fmt.Errorf("write catalog row: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush catalog: %w", err)
	}
	return f.Sync()
}

func (w *csvWriter) CaseIDs(ctx context.Context) (map[string]bool, error) {
	ids := make(map[string]bool)

	f, err := os.Open(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return ids, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		if len(rec) == 0 {
			continue
		}

		id := strings.TrimSpace(strings.TrimPrefix(rec[0], bom))
		if first {
			first = false
			if id == header[0] {
				continue
			}
		}
		if id != "" {
			ids[id] = true
		}
	}

	return ids, nil
}
