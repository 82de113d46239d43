package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// ProcessCase runs CLEANING, DERIVING_METADATA, EXTRACTING_CLIP and
// RECORDING in order. The first error moves the case to FAILED.
func (p *implProcessor) ProcessCase(ctx context.Context, c models.Case) Result {
	log := p.logger.With("case_id", c.CaseID)
	res := Result{CaseID: c.CaseID, State: models.StatePending}
	ec := models.EnrichedCase{Case: c}

	steps := []struct {
		state models.State
		run   func() error
	}{
		{models.StateCleaning, func() error {
			cleaned, err := p.enricher.Clean(ctx, c.RawText)
			if err != nil {
				return fmt.Errorf("clean: %w", err)
			}
			ec.CleanedText = cleaned
			return nil
		}},
		{models.StateDerivingMetadata, func() error {
			meta, err := p.enricher.DeriveMetadata(ctx, ec.CleanedText)
			if err != nil {
				return fmt.Errorf("derive metadata: %w", err)
			}
			ec.Metadata = meta
			return nil
		}},
		{models.StateExtractingClip, func() error {
			clip, err := p.extractor.Extract(ctx, c)
			if err != nil {
				return fmt.Errorf("extract clip: %w", err)
			}
			ec.ClipPath = clip
			return nil
		}},
		{models.StateRecording, func() error {
			return p.record(ctx, ec)
		}},
	}

	for _, step := range steps {
		res.State = step.state
		log.Debug(ctx, "Case %s -> %s", c.CaseID, step.state)

		start := time.Now()
		err := step.run()
		p.metrics.ObserveStage(strings.ToLower(step.state.String()), time.Since(start))

		if err != nil {
			res.FailedAt = step.state
			res.State = models.StateFailed
			res.Kind = models.KindOf(err)
			res.Err = err
			log.Error(ctx, "Case %s failed during %s: %v", c.CaseID, step.state, err)
			return res
		}
	}

	res.State = models.StateCompleted
	res.Enriched = ec
	log.Info(ctx, "Case %s completed: %s", c.CaseID, ec.Title)
	return res
}

// record writes the optional brief, then the catalog row.
func (p *implProcessor) record(ctx context.Context, ec models.EnrichedCase) error {
	if p.brief != nil {
		if _, err := p.brief.Write(ctx, ec); err != nil {
			return fmt.Errorf("write brief: %w", err)
		}
	}
	if err := p.catalog.Append(ctx, ec); err != nil {
		return fmt.Errorf("append catalog row: %w", err)
	}
	return nil
}
