package ledger

import "context"

// Ledger records which cases have been fully processed so a rerun can skip
// them. Every mutation is durable before it returns.
type Ledger interface {
	Load(ctx context.Context) error
	IsCompleted(caseID string) bool
	MarkCompleted(ctx context.Context, caseID string) error
	MarkFailed(ctx context.Context, caseID string) error
	Snapshot() Progress
	Close() error
}

// Progress lists completed and failed case ids in first-insertion order.
type Progress struct {
	Completed []string `json:"completed"`
	Failed    []string `json:"failed"`
}
