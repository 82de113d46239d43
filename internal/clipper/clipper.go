package clipper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/caseclip/internal/models"
	"github.com/nguyentantai21042004/caseclip/internal/timecode"
)

// Extract stream-copies the case's span of its date's recording and returns
// the clip path. An open-ended case runs to the end of the recording.
func (e *implExtractor) Extract(ctx context.Context, c models.Case) (string, error) {
	args, outPath, err := e.buildArgs(c)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(e.recordingPath(c)); err != nil {
		return "", fmt.Errorf("%w: recording for %s: %v", models.ErrClipExtraction, c.Date, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("%w: create clip directory: %v", models.ErrClipExtraction, err)
	}

	e.logger.Info(ctx, "Cutting clip %s (%s - %s)", c.CaseID, c.StartTime, endLabel(c))

	if _, err := e.executor.Execute(ctx, e.ffmpeg, args...); err != nil {
		e.removePartial(ctx, outPath)
		return "", fmt.Errorf("%w: ffmpeg: %w", models.ErrClipExtraction, err)
	}

	e.logger.Info(ctx, "Clip written: %s", outPath)
	return outPath, nil
}

// buildArgs validates the case boundaries and returns the ffmpeg arguments
// and output path.
// -ss: seek on the input, -t: duration (omitted for open-ended cases),
// -c copy: no re-encode, -y: overwrite.
func (e *implExtractor) buildArgs(c models.Case) ([]string, string, error) {
	if c.StartTime == "" {
		return nil, "", fmt.Errorf("%w: case %s has no start time", models.ErrSegmentationDefect, c.CaseID)
	}
	start, err := timecode.Parse(c.StartTime)
	if err != nil {
		return nil, "", fmt.Errorf("%w: case %s start time: %v", models.ErrSegmentationDefect, c.CaseID, err)
	}

	duration := -1
	switch {
	case c.EndTime != "":
		end, err := timecode.Parse(c.EndTime)
		if err != nil {
			return nil, "", fmt.Errorf("%w: case %s end time: %v", models.ErrSegmentationDefect, c.CaseID, err)
		}
		duration = end - start
		if duration <= 0 {
			return nil, "", fmt.Errorf("%w: case %s ends at %s before it starts at %s",
				models.ErrSegmentationDefect, c.CaseID, c.EndTime, c.StartTime)
		}
	case !c.OpenEnded():
		return nil, "", fmt.Errorf("%w: case %s has an unknown end boundary", models.ErrSegmentationDefect, c.CaseID)
	}

	inPath := e.recordingPath(c)
	outPath := filepath.Join(e.splits, c.Date, c.CaseID+"."+e.extension)

	args := []string{"-i", inPath, "-ss", timecode.ToHMS(start)}
	if duration > 0 {
		args = append(args, "-t", fmt.Sprintf("%d", duration))
	}
	args = append(args, "-c", "copy", "-y", outPath)

	return args, outPath, nil
}

func (e *implExtractor) recordingPath(c models.Case) string {
	return filepath.Join(e.recordings, c.Date+"."+e.extension)
}

func (e *implExtractor) removePartial(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		e.logger.Warn(ctx, "Failed to remove partial clip %s: %v", path, err)
	}
}

func endLabel(c models.Case) string {
	if c.EndTime == "" {
		return "end"
	}
	return c.EndTime
}
