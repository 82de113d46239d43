package clipper

import (
	"github.com/nguyentantai21042004/caseclip/internal/config"
	"github.com/nguyentantai21042004/caseclip/internal/logger"
	"github.com/nguyentantai21042004/caseclip/pkg/executor"
)

type implExtractor struct {
	recordings string
	splits     string
	extension  string
	ffmpeg     string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates an Extractor reading {recordings}/{date}.{ext} and writing
// clips under {splits}/{date}.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Extractor {
	return &implExtractor{
		recordings: cfg.Paths.Recordings,
		splits:     cfg.Paths.Splits,
		extension:  cfg.Media.Extension,
		ffmpeg:     cfg.Media.FFmpegPath,
		executor:   exec,
		logger:     log,
	}
}
