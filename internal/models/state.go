package models

import "fmt"

// State is the position of a case in the processing state machine.
//
//	PENDING -> CLEANING -> DERIVING_METADATA -> EXTRACTING_CLIP -> RECORDING -> COMPLETED
//	   any non-terminal state --error--> FAILED
type State int

const (
	StatePending State = iota
	StateCleaning
	StateDerivingMetadata
	StateExtractingClip
	StateRecording
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateCleaning:
		return "CLEANING"
	case StateDerivingMetadata:
		return "DERIVING_METADATA"
	case StateExtractingClip:
		return "EXTRACTING_CLIP"
	case StateRecording:
		return "RECORDING"
	case StateCompleted:
		return "COMPLETED"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// IsTerminal returns true for COMPLETED and FAILED.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}
