package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// Run loads the ledger, segments the transcript and processes every case
// that is not completed yet, one at a time in document order.
func (p *implProcessor) Run(ctx context.Context) (Summary, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting case pipeline")
	p.logger.Info(ctx, "========================================")

	if err := p.ledger.Load(ctx); err != nil {
		return Summary{}, fmt.Errorf("load ledger: %w", err)
	}
	snap := p.ledger.Snapshot()
	p.logger.Info(ctx, "Ledger: %d completed, %d failed", len(snap.Completed), len(snap.Failed))

	paragraphs, err := p.source.Paragraphs(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("read transcript: %w", err)
	}

	cases, err := p.segmenter.Segment(ctx, paragraphs)
	if err != nil {
		return Summary{}, fmt.Errorf("segment transcript: %w", err)
	}

	if err := p.reconcile(ctx, cases); err != nil {
		return Summary{}, fmt.Errorf("reconcile catalog: %w", err)
	}

	var pending []models.Case
	for _, c := range cases {
		if !p.ledger.IsCompleted(c.CaseID) {
			pending = append(pending, c)
		}
	}

	summary := Summary{Total: len(cases), Pending: len(pending)}
	p.logger.Info(ctx, "Found %d cases, %d pending", summary.Total, summary.Pending)

	var runErr error
	for i, c := range pending {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		p.logger.Info(ctx, "[%d/%d] Processing case %s", i+1, len(pending), c.CaseID)
		summary.Processed++

		res := p.ProcessCase(ctx, c)
		// The outcome is recorded even when the run was interrupted mid-case.
		rctx := context.WithoutCancel(ctx)
		if res.Err != nil {
			p.metrics.ObserveCase("failed")
			if err := p.ledger.MarkFailed(rctx, c.CaseID); err != nil {
				p.logger.Error(ctx, "Failed to record failure of %s: %v", c.CaseID, err)
			}
			runErr = &CaseError{CaseID: c.CaseID, FailedAt: res.FailedAt, Kind: res.Kind, Err: res.Err}
			p.logger.Error(ctx, "%v", runErr)
			break
		}

		if err := p.ledger.MarkCompleted(rctx, c.CaseID); err != nil {
			runErr = fmt.Errorf("mark %s completed: %w", c.CaseID, err)
			break
		}
		p.metrics.ObserveCase("completed")
		p.publish(ctx, res.Enriched)
	}

	snap = p.ledger.Snapshot()
	summary.Completed = len(snap.Completed)
	summary.Failed = len(snap.Failed)

	p.logger.Info(ctx, "========================================")
	if runErr != nil {
		p.logger.Info(ctx, "Pipeline stopped")
	} else {
		p.logger.Info(ctx, "Pipeline completed successfully!")
	}
	p.logger.Info(ctx, "Processed this run: %d", summary.Processed)
	p.logger.Info(ctx, "Ledger: %d completed, %d failed", summary.Completed, summary.Failed)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return summary, runErr
}

// reconcile marks cases whose catalog row exists as completed, so a crash
// between the catalog write and the ledger write does not process them twice.
func (p *implProcessor) reconcile(ctx context.Context, cases []models.Case) error {
	ids, err := p.catalog.CaseIDs(ctx)
	if err != nil {
		return err
	}

	for _, c := range cases {
		if !ids[c.CaseID] || p.ledger.IsCompleted(c.CaseID) {
			continue
		}
		p.logger.Warn(ctx, "Case %s is in the catalog but not the ledger, marking completed", c.CaseID)
		if err := p.ledger.MarkCompleted(ctx, c.CaseID); err != nil {
			return err
		}
		p.metrics.ObserveCase("reconciled")
	}
	return nil
}

func (p *implProcessor) publish(ctx context.Context, ec models.EnrichedCase) {
	if p.events == nil {
		return
	}
	if err := p.events.PublishCompleted(ctx, ec); err != nil {
		p.logger.Warn(ctx, "Failed to publish completion of %s: %v", ec.CaseID, err)
	}
}
