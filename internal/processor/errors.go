package processor

import (
	"fmt"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// CaseError reports the case that halted a run.
type CaseError struct {
	CaseID   string
	FailedAt models.State
	Kind     models.FailureKind
	Err      error
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("case %s failed during %s (%s): %v", e.CaseID, e.FailedAt, e.Kind, e.Err)
}

func (e *CaseError) Unwrap() error {
	return e.Err
}
