package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailureNone},
		{"transport", fmt.Errorf("clean: %w", ErrTransport), FailureTransport},
		{"metadata", fmt.Errorf("%w: bad json", ErrMetadataParse), FailureMetadataParse},
		{"clip", fmt.Errorf("%w: exit 1", ErrClipExtraction), FailureClipExtraction},
		{"defect", fmt.Errorf("%w: no start", ErrSegmentationDefect), FailureSegmentationDefect},
		{"other", errors.New("disk full"), FailureOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateIsTerminal(t *testing.T) {
	for _, s := range []State{StatePending, StateCleaning, StateDerivingMetadata, StateExtractingClip, StateRecording} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if !StateCompleted.IsTerminal() || !StateFailed.IsTerminal() {
		t.Error("COMPLETED and FAILED should be terminal")
	}
	if StateDerivingMetadata.String() != "DERIVING_METADATA" {
		t.Errorf("String() = %s", StateDerivingMetadata.String())
	}
}
