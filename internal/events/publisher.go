// Package events publishes case lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nguyentantai21042004/caseclip/internal/config"
	"github.com/nguyentantai21042004/caseclip/internal/logger"
	"github.com/nguyentantai21042004/caseclip/internal/models"
)

const typeCaseCompleted = "case.completed"

// CaseCompleted is the payload of a case.completed event.
type CaseCompleted struct {
	Type              string    `json:"type"`
	CaseID            string    `json:"case_id"`
	Date              string    `json:"date"`
	Title             string    `json:"title"`
	PrimaryCategory   string    `json:"primary_category"`
	SecondaryCategory string    `json:"secondary_category"`
	Tags              []string  `json:"tags"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time,omitempty"`
	ClipPath          string    `json:"clip_path"`
	RunID             string    `json:"run_id"`
	Worker            string    `json:"worker"`
	CompletedAt       time.Time `json:"completed_at"`
}

type kafkaPublisher struct {
	writer  *kafka.Writer
	topic   string
	runID   string
	worker  string
	enabled bool
	logger  logger.Logger
}

// New creates a Kafka publisher. Without brokers it runs in log-only mode.
func New(cfg config.EventsConfig, runID, worker string, log logger.Logger) Publisher {
	p := &kafkaPublisher{
		topic:  cfg.Topic,
		runID:  runID,
		worker: worker,
		logger: log,
	}

	if len(cfg.Brokers) == 0 {
		log.Debug(context.Background(), "Kafka disabled, using log-only mode")
		return p
	}

	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    &kafka.Transport{Dial: dialer.DialFunc},
	}
	p.enabled = true

	log.Info(context.Background(), "Kafka publisher initialized (brokers: %v, topic: %s)", cfg.Brokers, cfg.Topic)
	return p
}

func (p *kafkaPublisher) PublishCompleted(ctx context.Context, ec models.EnrichedCase) error {
	payload, err := json.Marshal(p.caseCompleted(ec, time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.logger.Debug(ctx, "Publishing %s for %s: %s", typeCaseCompleted, ec.CaseID, payload)

	if !p.enabled || p.writer == nil {
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(ec.CaseID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(typeCaseCompleted)},
			{Key: "worker", Value: []byte(p.worker)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *kafkaPublisher) caseCompleted(ec models.EnrichedCase, at time.Time) CaseCompleted {
	return CaseCompleted{
		Type:              typeCaseCompleted,
		CaseID:            ec.CaseID,
		Date:              ec.Date,
		Title:             ec.Title,
		PrimaryCategory:   ec.PrimaryCategory,
		SecondaryCategory: ec.SecondaryCategory,
		Tags:              ec.Tags,
		StartTime:         ec.StartTime,
		EndTime:           ec.EndTime,
		ClipPath:          ec.ClipPath,
		RunID:             p.runID,
		Worker:            p.worker,
		CompletedAt:       at,
	}
}

func (p *kafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
