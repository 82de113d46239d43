package brief

import (
	"context"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// Writer renders a one-case Word brief next to the case's clip.
type Writer interface {
	Write(ctx context.Context, ec models.EnrichedCase) (string, error)
}
