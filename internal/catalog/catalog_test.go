package catalog

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nguyentantai21042004/caseclip/internal/config"
	"github.com/nguyentantai21042004/caseclip/internal/models"
)

func enriched(id, start, end string, last bool) models.EnrichedCase {
	return models.EnrichedCase{
		Case: models.Case{
			Date:       "2024-03-01",
			CaseID:     id,
			StartTime:  start,
			EndTime:    end,
			LastOfDate: last,
			RawText:    "00:30 说话人1 你好，\"老师\"\n第二行",
		},
		Metadata: models.Metadata{
			Title:               "要不要为他换城市",
			PrimaryCategory:     "情感婚恋",
			SecondaryCategory:   "异地恋",
			Tags:                []string{"异地恋", "城市选择", "沟通"},
			TargetAudience:      "年轻人",
			ApplicableScenarios: "迁移抉择",
		},
		CleanedText: "当事人：你好。",
		ClipPath:    "/rec/Splits/2024-03-01/" + id + ".mp4",
	}
}

func TestRow(t *testing.T) {
	got := row(enriched("2024030102", "12:00", "", true), "视频结尾")
	if len(got) != len(header) {
		t.Fatalf("row has %d columns, header %d", len(got), len(header))
	}
	if got[5] != "异地恋、城市选择、沟通" {
		t.Errorf("tags = %q", got[5])
	}
	if got[7] != "视频结尾" {
		t.Errorf("end = %q", got[7])
	}

	got = row(enriched("2024030101", "00:30", "12:00", false), "视频结尾")
	if got[6] != "00:30" || got[7] != "12:00" {
		t.Errorf("times = %q - %q", got[6], got[7])
	}
}

func TestCSVWriter(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "cases.csv")
	w := New(path, config.CatalogConfig{})

	ids, err := w.CaseIDs(ctx)
	if err != nil || len(ids) != 0 {
		t.Fatalf("CaseIDs() on missing file = %v, %v", ids, err)
	}

	if err := w.Append(ctx, enriched("2024030101", "00:30", "12:00", false)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	// A second writer on the same file must not repeat the header.
	w2 := New(path, config.CatalogConfig{})
	if err := w2.Append(ctx, enriched("2024030102", "12:00", "", true)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\ufeff") {
		t.Errorf("missing byte order mark")
	}
	if n := strings.Count(string(data), "案例编号"); n != 1 {
		t.Errorf("header written %d times", n)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff")))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("catalog is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if !reflect.DeepEqual(records[0], header) {
		t.Errorf("header = %v", records[0])
	}
	if records[1][10] != "00:30 说话人1 你好，\"老师\"\n第二行" {
		t.Errorf("raw text did not round trip: %q", records[1][10])
	}
	if records[2][7] != "视频结尾" {
		t.Errorf("open end = %q", records[2][7])
	}

	ids, err = w.CaseIDs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"2024030101": true, "2024030102": true}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("CaseIDs() = %v, want %v", ids, want)
	}
}

func TestCSVCustomOpenEndLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")
	w := New(path, config.CatalogConfig{OpenEndLabel: "END"})
	if err := w.Append(context.Background(), enriched("a", "00:10", "", true)); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), ",END,") {
		t.Errorf("custom label missing: %s", data)
	}
}

func TestXLSXWriter(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cases.xlsx")
	w := New(path, config.CatalogConfig{})

	for _, ec := range []models.EnrichedCase{
		enriched("2024030101", "00:30", "12:00", false),
		enriched("2024030102", "12:00", "", true),
	} {
		if err := w.Append(ctx, ec); err != nil {
			t.Fatalf("Append(%s) error = %v", ec.CaseID, err)
		}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "案例编号" || rows[1][0] != "2024030101" || rows[2][7] != "视频结尾" {
		t.Errorf("rows = %v", rows)
	}

	ids, err := w.CaseIDs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || !ids["2024030102"] {
		t.Errorf("CaseIDs() = %v", ids)
	}
}
