package enrichment

import (
	"context"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// Generator sends one prompt to a text-generation service and returns the
// model's answer. Every error it returns is treated as a transport failure.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Enricher derives cleaned text and metadata for a case.
type Enricher interface {
	Clean(ctx context.Context, rawText string) (string, error)
	DeriveMetadata(ctx context.Context, cleanedText string) (models.Metadata, error)
}
