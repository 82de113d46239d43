package segmenter

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/nguyentantai21042004/caseclip/internal/config"
	"github.com/nguyentantai21042004/caseclip/internal/logger"
	"github.com/nguyentantai21042004/caseclip/internal/models"
)

func newTestSegmenter() Segmenter {
	return New(config.SegmenterConfig{CaseMarker: "案例", SpeakerMarker: "说话人"}, logger.Nop())
}

var twoDayDocument = []string{
	"# 2025-11-06",
	"开场闲聊",
	"案例",
	"11:38 说话人1 我想问一下",
	"12:00 说话人2 你说",
	"",
	"案例",
	"  26:08 说话人1 第二个问题  ",
	"内容",
	"案例",
	"1:02:03 说话人1 第三个",
	"2025-11-07",
	"案例",
	"05:10 说话人1 新的一天",
}

func TestSegment(t *testing.T) {
	cases, err := newTestSegmenter().Segment(context.Background(), twoDayDocument)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}

	want := []models.Case{
		{
			Date: "2025-11-06", SequenceIndex: 1, CaseID: "2025110601",
			StartTime: "11:38", EndTime: "26:08",
			RawText: "11:38 说话人1 我想问一下\n12:00 说话人2 你说",
		},
		{
			Date: "2025-11-06", SequenceIndex: 2, CaseID: "2025110602",
			StartTime: "26:08", EndTime: "1:02:03",
			RawText: "26:08 说话人1 第二个问题\n内容",
		},
		{
			Date: "2025-11-06", SequenceIndex: 3, CaseID: "2025110603",
			StartTime: "1:02:03", EndTime: "", LastOfDate: true,
			RawText: "1:02:03 说话人1 第三个",
		},
		{
			Date: "2025-11-07", SequenceIndex: 1, CaseID: "2025110701",
			StartTime: "05:10", EndTime: "", LastOfDate: true,
			RawText: "05:10 说话人1 新的一天",
		},
	}

	if !reflect.DeepEqual(cases, want) {
		t.Errorf("Segment() =\n%+v\nwant\n%+v", cases, want)
	}
}

func TestSegmentTwoMarkers(t *testing.T) {
	doc := []string{"2025-11-06", "案例", "11:38 说话人1 a", "案例", "26:08 说话人2 b"}
	cases, err := newTestSegmenter().Segment(context.Background(), doc)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}

	var ids []string
	for _, c := range cases {
		ids = append(ids, c.CaseID)
	}
	if !reflect.DeepEqual(ids, []string{"2025110601", "2025110602"}) {
		t.Errorf("ids = %v", ids)
	}
	if cases[0].EndTime != "26:08" {
		t.Errorf("first EndTime = %q, want 26:08", cases[0].EndTime)
	}
	if !cases[1].OpenEnded() {
		t.Error("last case should be open-ended")
	}
}

func TestSegmentDeterministic(t *testing.T) {
	s := newTestSegmenter()
	first, err := s.Segment(context.Background(), twoDayDocument)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Segment(context.Background(), twoDayDocument)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("segmenting twice should yield identical cases")
	}
}

func TestSegmentBoundariesChainWithinDate(t *testing.T) {
	cases, err := newTestSegmenter().Segment(context.Background(), twoDayDocument)
	if err != nil {
		t.Fatal(err)
	}
	for i := range cases {
		last := i+1 == len(cases) || cases[i+1].Date != cases[i].Date
		if last {
			if cases[i].EndTime != "" || !cases[i].LastOfDate {
				t.Errorf("%s: last of date should be open-ended", cases[i].CaseID)
			}
			continue
		}
		if cases[i].EndTime != cases[i+1].StartTime {
			t.Errorf("%s: EndTime %q != next StartTime %q", cases[i].CaseID, cases[i].EndTime, cases[i+1].StartTime)
		}
	}
}

func TestSegmentMissingStartTime(t *testing.T) {
	doc := []string{"2025-11-06", "案例", "没有时间戳的内容", "案例", "10:00 说话人1 有"}
	cases, err := newTestSegmenter().Segment(context.Background(), doc)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if cases[0].StartTime != "" {
		t.Errorf("StartTime = %q, want empty", cases[0].StartTime)
	}
	if cases[0].EndTime != "10:00" {
		t.Errorf("EndTime = %q", cases[0].EndTime)
	}
}

func TestSegmentUnknownBoundaryIsNotOpenEnded(t *testing.T) {
	doc := []string{"2025-11-06", "案例", "10:00 说话人1 a", "案例", "no time here"}
	cases, err := newTestSegmenter().Segment(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if cases[0].EndTime != "" || cases[0].OpenEnded() {
		t.Errorf("first case should have an unknown, not open, end: %+v", cases[0])
	}
}

func TestSegmentNoMarkers(t *testing.T) {
	cases, err := newTestSegmenter().Segment(context.Background(), []string{"2025-11-06", "just talk"})
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(cases) != 0 {
		t.Errorf("len(cases) = %d, want 0", len(cases))
	}
}

func TestSegmentDefects(t *testing.T) {
	tests := []struct {
		name string
		doc  []string
	}{
		{"marker before date", []string{"案例", "10:00 说话人1 a"}},
		{"repeated date", []string{"2025-11-06", "案例", "2025-11-06", "案例"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestSegmenter().Segment(context.Background(), tt.doc)
			if !errors.Is(err, models.ErrSegmentationDefect) {
				t.Errorf("Segment() error = %v, want segmentation defect", err)
			}
		})
	}
}

func TestSegmentCustomMarkers(t *testing.T) {
	s := New(config.SegmenterConfig{CaseMarker: "CASE", SpeakerMarker: "Speaker"}, logger.Nop())
	cases, err := s.Segment(context.Background(), []string{"2025-01-02", "CASE", "00:05 Speaker A hi"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 1 || cases[0].StartTime != "00:05" || cases[0].CaseID != "2025010201" {
		t.Errorf("cases = %+v", cases)
	}
}
