package events

import (
	"context"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// Publisher announces completed cases to downstream consumers.
type Publisher interface {
	PublishCompleted(ctx context.Context, ec models.EnrichedCase) error
	Close() error
}
