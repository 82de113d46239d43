package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/caseclip/internal/brief"
	"github.com/nguyentantai21042004/caseclip/internal/catalog"
	"github.com/nguyentantai21042004/caseclip/internal/clipper"
	"github.com/nguyentantai21042004/caseclip/internal/config"
	"github.com/nguyentantai21042004/caseclip/internal/enrichment"
	"github.com/nguyentantai21042004/caseclip/internal/events"
	"github.com/nguyentantai21042004/caseclip/internal/ledger"
	"github.com/nguyentantai21042004/caseclip/internal/logger"
	"github.com/nguyentantai21042004/caseclip/internal/metrics"
	"github.com/nguyentantai21042004/caseclip/internal/processor"
	"github.com/nguyentantai21042004/caseclip/internal/segmenter"
	"github.com/nguyentantai21042004/caseclip/internal/transcript"
	"github.com/nguyentantai21042004/caseclip/internal/watcher"
	"github.com/nguyentantai21042004/caseclip/pkg/executor"
)

type flags struct {
	config     string
	transcript string
	recordings string
	splits     string
	catalog    string
	ledger     string
	retries    int
	retryDelay time.Duration
	worker     string
	provider   string
	logLevel   string
	watch      bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.config, "config", "config.yaml", "path to the YAML config file")
	flag.StringVar(&f.transcript, "transcript", "", "transcript document (.docx, .txt or .md)")
	flag.StringVar(&f.recordings, "recordings", "", "directory holding {date}.mp4 recordings")
	flag.StringVar(&f.splits, "splits", "", "output directory for clips (default {recordings}/Splits)")
	flag.StringVar(&f.catalog, "catalog", "", "catalog file, .csv or .xlsx (default {recordings}/cases.csv)")
	flag.StringVar(&f.ledger, "ledger", "", "progress ledger, .json or .db (default {recordings}/progress.json)")
	flag.IntVar(&f.retries, "retries", -1, "retries per generation call (default 3)")
	flag.DurationVar(&f.retryDelay, "retry-delay", 0, "delay between generation attempts (default 3s)")
	flag.StringVar(&f.worker, "worker", "", "worker name attached to logs and events (default hostname)")
	flag.StringVar(&f.provider, "provider", "", "generation provider: chat or gemini")
	flag.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	flag.BoolVar(&f.watch, "watch", false, "keep running and re-run when the transcript changes")
	flag.Parse()
	return f
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	runID := uuid.NewString()
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format).
		With("run_id", runID).
		With("worker", cfg.Worker)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Case Clip Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript: %s", cfg.Paths.Transcript)
	log.Info(ctx, "Recordings: %s", cfg.Paths.Recordings)
	log.Info(ctx, "Clips: %s", cfg.Paths.Splits)
	log.Info(ctx, "Catalog: %s", cfg.Paths.Catalog)
	log.Info(ctx, "Ledger: %s", cfg.Paths.Ledger)
	log.Info(ctx, "Provider: %s (retries %d, delay %s)", cfg.Generation.Provider, *cfg.Generation.MaxRetries, cfg.Generation.RetryDelay)

	m := metrics.New()
	defer func() {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn(ctx, "Failed to write metrics: %v", err)
		}
	}()

	proc, cleanup, err := build(cfg, runID, log, m)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		return 1
	}
	defer cleanup()

	if !f.watch {
		if _, err := proc.Run(ctx); err != nil {
			log.Error(ctx, "Run failed: %v", err)
			return 1
		}
		return 0
	}

	handler := func(ctx context.Context) error {
		_, err := proc.Run(ctx)
		if werr := m.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			log.Warn(ctx, "Failed to write metrics: %v", werr)
		}
		return err
	}

	w, err := watcher.New(cfg.Paths.Transcript, handler, log, 0)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		return 1
	}
	defer w.Stop()

	// The watch is registered before the first pass, so edits made while it
	// runs queue another pass.
	w.Trigger()

	log.Info(ctx, "Press Ctrl+C to stop")
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Watcher error: %v", err)
		return 1
	}

	log.Info(ctx, "Case Clip Pipeline stopped")
	return 0
}

// loadConfig layers .env, the YAML file, the environment and flags, then
// validates.
func loadConfig(f flags) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(f.config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	override(&cfg.Paths.Transcript, f.transcript)
	override(&cfg.Paths.Recordings, f.recordings)
	override(&cfg.Paths.Splits, f.splits)
	override(&cfg.Paths.Catalog, f.catalog)
	override(&cfg.Paths.Ledger, f.ledger)
	override(&cfg.Generation.Provider, f.provider)
	override(&cfg.Logging.Level, f.logLevel)
	override(&cfg.Worker, f.worker)
	if f.retryDelay > 0 {
		cfg.Generation.RetryDelay = f.retryDelay
	}
	if f.retries >= 0 {
		cfg.Generation.MaxRetries = &f.retries
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// build wires the pipeline stages. The returned cleanup closes the ledger
// and the event publisher.
func build(cfg *config.Config, runID string, log logger.Logger, m *metrics.Metrics) (processor.Processor, func(), error) {
	source, err := transcript.Open(cfg.Paths.Transcript)
	if err != nil {
		return nil, nil, err
	}

	gen, err := enrichment.NewGenerator(cfg.Generation, log)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(cfg.Paths.Splits, 0755); err != nil {
		return nil, nil, fmt.Errorf("create clip directory: %w", err)
	}

	ldg := ledger.New(cfg.Paths.Ledger, log)
	pub := events.New(cfg.Events, runID, cfg.Worker, log)

	deps := processor.Deps{
		Source:    source,
		Segmenter: segmenter.New(cfg.Segmenter, log),
		Enricher:  enrichment.New(cfg.Generation, gen, log, m),
		Extractor: clipper.New(cfg, executor.New(), log),
		Ledger:    ldg,
		Catalog:   catalog.New(cfg.Paths.Catalog, cfg.Catalog),
		Events:    pub,
	}
	if cfg.Brief.Enabled {
		deps.Brief = brief.New(cfg, log)
	}

	cleanup := func() {
		ctx := context.Background()
		if err := ldg.Close(); err != nil {
			log.Warn(ctx, "Failed to close ledger: %v", err)
		}
		if err := pub.Close(); err != nil {
			log.Warn(ctx, "Failed to close event publisher: %v", err)
		}
	}

	return processor.New(deps, log, m), cleanup, nil
}
