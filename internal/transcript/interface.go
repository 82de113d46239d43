// Package transcript reads session transcript documents as an ordered list
// of plain-text paragraphs.
package transcript

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Source yields the paragraphs of a transcript in document order.
type Source interface {
	Paragraphs(ctx context.Context) ([]string, error)
}

// Open picks a Source for path by its extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return &docxSource{path: path}, nil
	case ".txt", ".md":
		return &textSource{path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported transcript format: %s", path)
	}
}
