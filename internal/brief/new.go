package brief

import (
	"github.com/nguyentantai21042004/caseclip/internal/config"
	"github.com/nguyentantai21042004/caseclip/internal/logger"
)

type implWriter struct {
	splits       string
	openEndLabel string
	logger       logger.Logger
}

// New creates a Writer placing briefs at {splits}/{date}/{case_id}.docx.
func New(cfg *config.Config, log logger.Logger) Writer {
	return &implWriter{
		splits:       cfg.Paths.Splits,
		openEndLabel: cfg.Catalog.OpenEndLabel,
		logger:       log,
	}
}
