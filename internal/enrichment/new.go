package enrichment

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/caseclip/internal/config"
	"github.com/nguyentantai21042004/caseclip/internal/logger"
	"github.com/nguyentantai21042004/caseclip/internal/metrics"
)

const defaultTemperature = 0.3

type implEnricher struct {
	gen        Generator
	maxRetries int
	retryDelay time.Duration
	tagMin     int
	tagMax     int
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// New creates an Enricher on top of gen. m may be nil.
func New(cfg config.GenerationConfig, gen Generator, log logger.Logger, m *metrics.Metrics) Enricher {
	maxRetries := 3
	if cfg.MaxRetries != nil {
		maxRetries = *cfg.MaxRetries
	}

	return &implEnricher{
		gen:        gen,
		maxRetries: maxRetries,
		retryDelay: cfg.RetryDelay,
		tagMin:     cfg.TagMin,
		tagMax:     cfg.TagMax,
		logger:     log,
		metrics:    m,
	}
}

// NewGenerator builds the backend named by cfg.Provider.
func NewGenerator(cfg config.GenerationConfig, log logger.Logger) (Generator, error) {
	temperature := defaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	switch cfg.Provider {
	case config.ProviderChat, "":
		return NewChatGenerator(cfg.APIURL, cfg.APIKey, cfg.Model, temperature, cfg.Timeout), nil
	case config.ProviderGemini:
		return NewGeminiGenerator(cfg.GeminiKeys, cfg.GeminiModel, temperature, log), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}
