package catalog

import (
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/caseclip/internal/config"
)

// New picks the catalog format from the file extension: .xlsx writes a
// workbook, anything else CSV.
func New(path string, cfg config.CatalogConfig) Writer {
	label := cfg.OpenEndLabel
	if label == "" {
		label = defaultOpenEndLabel
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return &xlsxWriter{path: path, openEndLabel: label}
	}
	return &csvWriter{path: path, openEndLabel: label}
}
