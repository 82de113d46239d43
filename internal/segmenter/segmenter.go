package segmenter

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

// Segment walks the paragraphs in order. Date lines reset the per-date
// sequence, case markers open a new case, and the first "<time> <speaker>"
// line of a case sets its start time. End times are filled in afterwards
// from the next case of the same date.
func (s *implSegmenter) Segment(ctx context.Context, paragraphs []string) ([]models.Case, error) {
	var (
		cases       []models.Case
		currentDate string
		index       int
		current     *models.Case
		lines       []string
		seen        = make(map[string]bool)
	)

	flush := func() {
		if current == nil {
			return
		}
		current.RawText = strings.TrimSpace(strings.Join(lines, "\n"))
		cases = append(cases, *current)
		current = nil
		lines = nil
	}

	for i, para := range paragraphs {
		text := strings.TrimSpace(para)

		if m := reDate.FindStringSubmatch(text); m != nil {
			currentDate = m[1]
			index = 0
			s.logger.Debug(ctx, "Found date %s at paragraph %d", currentDate, i+1)
			continue
		}

		if text == s.caseMarker {
			flush()
			if currentDate == "" {
				return nil, fmt.Errorf("%w: case marker at paragraph %d precedes any date line", models.ErrSegmentationDefect, i+1)
			}

			index++
			id := strings.ReplaceAll(currentDate, "-", "") + fmt.Sprintf("%02d", index)
			if seen[id] {
				return nil, fmt.Errorf("%w: duplicate case id %s at paragraph %d", models.ErrSegmentationDefect, id, i+1)
			}
			seen[id] = true

			current = &models.Case{
				Date:          currentDate,
				SequenceIndex: index,
				CaseID:        id,
			}
			s.logger.Debug(ctx, "Found case %s", id)
			continue
		}

		if current == nil {
			continue
		}

		if current.StartTime == "" {
			if m := s.reStart.FindStringSubmatch(text); m != nil {
				current.StartTime = m[1]
			}
		}
		lines = append(lines, text)
	}
	flush()

	linkBoundaries(cases)

	s.logger.Info(ctx, "Segmented %d cases from %d paragraphs", len(cases), len(paragraphs))
	return cases, nil
}

// linkBoundaries sets each case's end to the next case's start within the
// same date. The last case of a date stays open-ended.
func linkBoundaries(cases []models.Case) {
	for i := range cases {
		if i+1 < len(cases) && cases[i+1].Date == cases[i].Date {
			cases[i].EndTime = cases[i+1].StartTime
			cases[i].LastOfDate = false
			continue
		}
		cases[i].EndTime = ""
		cases[i].LastOfDate = true
	}
}
