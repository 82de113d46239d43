package clipper

import (
	"context"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// Extractor cuts the recording span of a case into its own clip file.
type Extractor interface {
	Extract(ctx context.Context, c models.Case) (string, error)
}
