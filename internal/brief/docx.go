package brief

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

const (
	fontName  = "Microsoft YaHei"
	fontSize  = 12
	titleSize = 16
)

func (w *implWriter) Write(ctx context.Context, ec models.EnrichedCase) (string, error) {
	dir := filepath.Join(w.splits, ec.Date)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create brief directory: %w", err)
	}
	outPath := filepath.Join(dir, ec.CaseID+".docx")

	if err := w.render(ec, outPath); err != nil {
		return "", fmt.Errorf("write brief %s: %w", outPath, err)
	}

	w.logger.Debug(ctx, "Brief written: %s", outPath)
	return outPath, nil
}

func (w *implWriter) render(ec models.EnrichedCase, outPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), ec.Title, true, titleSize)
	addField(doc.AddParagraph(""), "案例编号", ec.CaseID)
	addField(doc.AddParagraph(""), "分类", ec.PrimaryCategory+" / "+ec.SecondaryCategory)
	addField(doc.AddParagraph(""), "标签", strings.Join(ec.Tags, "、"))
	addField(doc.AddParagraph(""), "时间", ec.StartTime+" - "+w.end(ec))
	addField(doc.AddParagraph(""), "适用人群", ec.TargetAudience)
	addField(doc.AddParagraph(""), "适用场景", ec.ApplicableScenarios)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "案例文字稿", true, 14)
	for _, line := range strings.Split(ec.CleanedText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		addStyledRun(doc.AddParagraph(""), line, false, fontSize)
	}

	return doc.SaveTo(outPath)
}

func (w *implWriter) end(ec models.EnrichedCase) string {
	if ec.EndTime == "" {
		return w.openEndLabel
	}
	return ec.EndTime
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addField(p *docx.Paragraph, label, value string) {
	p.AddText(label+"：").Font(fontName).Size(fontSize).Color("000000").Bold(true)
	p.AddText(value).Font(fontName).Size(fontSize).Color("000000")
}
