package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nguyentantai21042004/caseclip/internal/models"
)

const (
	opClean    = "clean"
	opMetadata = "metadata"
)

var (
	reFenceOpen  = regexp.MustCompile("^```(?:json)?\\s*\n")
	reFenceClose = regexp.MustCompile("\n\\s*```$")
)

// CallError is returned when every attempt of a generation call failed.
// It matches models.ErrTransport and the last underlying error.
type CallError struct {
	Operation string
	Attempts  int
	Err       error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Operation, e.Attempts, e.Err)
}

func (e *CallError) Unwrap() []error {
	return []error{models.ErrTransport, e.Err}
}

// Clean returns the model's cleaned version of rawText as is.
func (e *implEnricher) Clean(ctx context.Context, rawText string) (string, error) {
	return e.generate(ctx, opClean, fmt.Sprintf(cleanPrompt, rawText))
}

// DeriveMetadata asks for structured metadata and decodes it. A malformed
// answer is an ErrMetadataParse and is not retried.
func (e *implEnricher) DeriveMetadata(ctx context.Context, cleanedText string) (models.Metadata, error) {
	answer, err := e.generate(ctx, opMetadata, fmt.Sprintf(metadataPrompt, cleanedText, e.tagMin, e.tagMax))
	if err != nil {
		return models.Metadata{}, err
	}

	meta, err := parseMetadata(answer)
	if err != nil {
		return models.Metadata{}, err
	}

	if n := len(meta.Tags); (e.tagMin > 0 && n < e.tagMin) || (e.tagMax > 0 && n > e.tagMax) {
		e.logger.Warn(ctx, "Metadata has %d tags, expected %d-%d", n, e.tagMin, e.tagMax)
	}

	return meta, nil
}

// generate sends prompt, retrying transport failures up to maxRetries times
// with a constant delay.
func (e *implEnricher) generate(ctx context.Context, op, prompt string) (string, error) {
	var (
		answer   string
		attempts int
		lastErr  error
	)

	operation := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		attempts++
		text, err := e.gen.Generate(ctx, prompt)
		if err != nil {
			lastErr = err
			e.metrics.ObserveAttempt(op, "error")
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}

		e.metrics.ObserveAttempt(op, "ok")
		answer = text
		return nil
	}

	notify := func(err error, wait time.Duration) {
		e.logger.Warn(ctx, "%s attempt %d/%d failed: %v (retrying in %s)", op, attempts, e.maxRetries+1, err, wait)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(e.retryDelay), uint64(e.maxRetries)),
		ctx,
	)

	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return "", &CallError{Operation: op, Attempts: attempts, Err: lastErr}
	}

	return answer, nil
}

// stripFence removes a surrounding ``` or ```json code fence.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	s = reFenceOpen.ReplaceAllString(s, "")
	s = reFenceClose.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func parseMetadata(answer string) (models.Metadata, error) {
	var meta models.Metadata
	if err := json.Unmarshal([]byte(stripFence(answer)), &meta); err != nil {
		return models.Metadata{}, fmt.Errorf("%w: %v", models.ErrMetadataParse, err)
	}

	missing := []string{}
	for name, value := range map[string]string{
		"title":                meta.Title,
		"primary_category":     meta.PrimaryCategory,
		"secondary_category":   meta.SecondaryCategory,
		"target_audience":      meta.TargetAudience,
		"applicable_scenarios": meta.ApplicableScenarios,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(meta.Tags) == 0 {
		missing = append(missing, "tags")
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return models.Metadata{}, fmt.Errorf("%w: missing fields %s", models.ErrMetadataParse, strings.Join(missing, ", "))
	}

	return meta, nil
}
