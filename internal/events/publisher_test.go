package events

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/caseclip/internal/config"
	"github.com/nguyentantai21042004/caseclip/internal/logger"
	"github.com/nguyentantai21042004/caseclip/internal/models"
)

func sampleCase() models.EnrichedCase {
	return models.EnrichedCase{
		Case:     models.Case{Date: "2024-03-01", CaseID: "2024030102", StartTime: "12:00", LastOfDate: true},
		Metadata: models.Metadata{Title: "换城市", PrimaryCategory: "情感婚恋", SecondaryCategory: "异地恋", Tags: []string{"异地恋"}},
		ClipPath: "/rec/Splits/2024-03-01/2024030102.mp4",
	}
}

func TestLogOnlyMode(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput("debug", "text", &buf)

	p := New(config.EventsConfig{Topic: "caseclip.cases"}, "run-1", "worker-a", log)
	defer p.Close()

	if err := p.PublishCompleted(context.Background(), sampleCase()); err != nil {
		t.Fatalf("PublishCompleted() error = %v", err)
	}
	if !strings.Contains(buf.String(), "2024030102") {
		t.Errorf("event was not logged: %s", buf.String())
	}
}

func TestNewEnabledWithBrokers(t *testing.T) {
	p := New(config.EventsConfig{Brokers: []string{"localhost:9092"}, Topic: "caseclip.cases"}, "run-1", "w", logger.Nop())
	kp := p.(*kafkaPublisher)
	if !kp.enabled || kp.writer == nil {
		t.Fatalf("publisher not enabled")
	}
	if kp.writer.Topic != "caseclip.cases" {
		t.Errorf("topic = %q", kp.writer.Topic)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCaseCompletedPayload(t *testing.T) {
	p := New(config.EventsConfig{}, "run-1", "worker-a", logger.Nop()).(*kafkaPublisher)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	data, err := json.Marshal(p.caseCompleted(sampleCase(), at))
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		field string
		want  any
	}{
		{"type", "case.completed"},
		{"case_id", "2024030102"},
		{"run_id", "run-1"},
		{"worker", "worker-a"},
		{"completed_at", "2024-03-01T12:00:00Z"},
	}
	for _, tt := range tests {
		if got[tt.field] != tt.want {
			t.Errorf("%s = %v, want %v", tt.field, got[tt.field], tt.want)
		}
	}
	if _, ok := got["end_time"]; ok {
		t.Errorf("open-ended case should omit end_time")
	}
}
