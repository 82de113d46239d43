package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// xlsxWriter keeps the catalog in the first sheet of a workbook.
type xlsxWriter struct {
	path         string
	openEndLabel string
}

func (w *xlsxWriter) Append(ctx context.Context, ec models.EnrichedCase) error {
	f, sheet, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}

	next := len(rows) + 1
	if len(rows) == 0 {
		if err := setRow(f, sheet, 1, header); err != nil {
			return err
		}
		next = 2
	}
	if err := setRow(f, sheet, next, row(ec, w.openEndLabel)); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (w *xlsxWriter) CaseIDs(ctx context.Context) (map[string]bool, error) {
	ids := make(map[string]bool)
	if _, err := os.Stat(w.path); errors.Is(err, os.ErrNotExist) {
		return ids, nil
	}

	f, sheet, err := w.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		id := strings.TrimSpace(r[0])
		if i == 0 && id == header[0] {
			continue
		}
		if id != "" {
			ids[id] = true
		}
	}
	return ids, nil
}

// open returns the existing workbook or a new one, and its first sheet.
func (w *xlsxWriter) open() (*excelize.File, string, error) {
	var f *excelize.File
	if _, err := os.Stat(w.path); errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
	} else {
		f, err = excelize.OpenFile(w.path)
		if err != nil {
			return nil, "", fmt.Errorf("open file: %w", err)
		}
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, "", fmt.Errorf("no sheets")
	}
	return f, sheets[0], nil
}

func setRow(f *excelize.File, sheet string, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("row %d: %w", n, err)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", n, err)
	}
	return nil
}
