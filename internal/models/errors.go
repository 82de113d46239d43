package models

import (
	"errors"
	"fmt"
)

// Error kinds shared by the pipeline stages. Stages wrap them with %w so the
// orchestrator can classify a failure with errors.Is.
var (
	ErrTransport          = errors.New("transport failure")
	ErrMetadataParse      = errors.New("metadata parse error")
	ErrClipExtraction     = errors.New("clip extraction error")
	ErrSegmentationDefect = errors.New("segmentation defect")
)

// FailureKind tags why a case failed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureTransport
	FailureMetadataParse
	FailureClipExtraction
	FailureSegmentationDefect
	FailureOther
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "transport"
	case FailureMetadataParse:
		return "metadata_parse"
	case FailureClipExtraction:
		return "clip_extraction"
	case FailureSegmentationDefect:
		return "segmentation_defect"
	case FailureOther:
		return "other"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// KindOf classifies err into a FailureKind.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrSegmentationDefect):
		return FailureSegmentationDefect
	case errors.Is(err, ErrMetadataParse):
		return FailureMetadataParse
	case errors.Is(err, ErrClipExtraction):
		return FailureClipExtraction
	case errors.Is(err, ErrTransport):
		return FailureTransport
	default:
		return FailureOther
	}
}
