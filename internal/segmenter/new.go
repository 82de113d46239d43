package segmenter

import (
	"regexp"

	"github.com/nguyentantai21042004/caseclip/internal/config"
	"github.com/nguyentantai21042004/caseclip/internal/logger"
)

var reDate = regexp.MustCompile(`^#?\s*(\d{4}-\d{2}-\d{2})`)

type implSegmenter struct {
	caseMarker string
	reStart    *regexp.Regexp
	logger     logger.Logger
}

// New creates a Segmenter for the given case and speaker markers.
func New(cfg config.SegmenterConfig, log logger.Logger) Segmenter {
	return &implSegmenter{
		caseMarker: cfg.CaseMarker,
		reStart:    regexp.MustCompile(`^(\d{1,2}:\d{2}(?::\d{2})?)\s+` + regexp.QuoteMeta(cfg.SpeakerMarker)),
		logger:     log,
	}
}
