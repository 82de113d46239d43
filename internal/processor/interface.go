package processor

import (
	"context"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// Processor runs the case pipeline over a transcript, resuming from the
// progress ledger.
type Processor interface {
	// Run processes every pending case in document order and stops at the
	// first failed case.
	Run(ctx context.Context) (Summary, error)
	// ProcessCase walks one case through the state machine. It never
	// touches the ledger.
	ProcessCase(ctx context.Context, c models.Case) Result
}

// Result is the outcome of ProcessCase. On failure State is StateFailed and
// FailedAt is the state that was running.
type Result struct {
	CaseID   string
	State    models.State
	FailedAt models.State
	Kind     models.FailureKind
	Err      error
	Enriched models.EnrichedCase
}

// Summary describes a Run. Completed and Failed are ledger totals after the
// run; Processed counts the cases attempted by this run.
type Summary struct {
	Total     int
	Pending   int
	Completed int
	Failed    int
	Processed int
}
