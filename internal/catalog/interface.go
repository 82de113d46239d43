package catalog

import (
	"context"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// Writer appends one row per completed case to the case catalog.
type Writer interface {
	Append(ctx context.Context, ec models.EnrichedCase) error
	// CaseIDs lists the case ids already present in the catalog.
	CaseIDs(ctx context.Context) (map[string]bool, error)
}
