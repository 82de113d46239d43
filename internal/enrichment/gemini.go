package enrichment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/caseclip/internal/logger"
)

// geminiGenerator calls Gemini, rotating through the supplied API keys when
// one is rate limited.
type geminiGenerator struct {
	apiKeys     []string
	model       string
	temperature float32
	logger      logger.Logger

	mu         sync.Mutex
	currentKey int
	clients    map[int]*genai.Client
}

// NewGeminiGenerator creates a Generator backed by the Gemini API.
func NewGeminiGenerator(apiKeys []string, model string, temperature float64, log logger.Logger) Generator {
	return &geminiGenerator{
		apiKeys:     apiKeys,
		model:       model,
		temperature: float32(temperature),
		logger:      log,
		clients:     make(map[int]*genai.Client),
	}
}

// Generate sends the prompt and returns the concatenated text parts of the
// first candidate. Rotates API keys on 429 / quota errors.
func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	var lastErr error
	for range len(g.apiKeys) {
		idx, client, err := g.client(ctx)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature: genai.Ptr(g.temperature),
		})
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all Gemini API keys exhausted: %w", lastErr)
}

func (g *geminiGenerator) client(ctx context.Context) (int, *genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.currentKey
	if c, ok := g.clients[idx]; ok {
		return idx, c, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKeys[idx],
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return idx, nil, err
	}
	g.clients[idx] = c
	return idx, c, nil
}

func (g *geminiGenerator) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
