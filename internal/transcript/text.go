package transcript

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// textSource treats every line of a plain-text file as one paragraph.
type textSource struct {
	path string
}

func (s *textSource) Paragraphs(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var paragraphs []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if len(paragraphs) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		paragraphs = append(paragraphs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	return paragraphs, ctx.Err()
}
