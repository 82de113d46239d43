package segmenter

import (
	"context"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// Segmenter splits transcript paragraphs into ordered, time-bounded cases.
type Segmenter interface {
	Segment(ctx context.Context, paragraphs []string) ([]models.Case, error)
}
