package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"

	"prosody-eval-go/internal/config"
	"prosody-eval-go/internal/logger"
	"prosody-eval-go/internal/types"
)

// Generator sends an instruction plus a document to a text-generation model
// and returns the reply text.
type Generator interface {
	Generate(ctx context.Context, instruction, document string) (string, error)
}

// New builds the generator selected by cfg.Provider, wrapped with retries.
// The returned close func releases provider resources.
func New(ctx context.Context, cfg config.Collector, log *logger.Logger) (Generator, func() error, error) {
	var (
		gen     Generator
		closeFn = func() error { return nil }
	)
	switch cfg.Provider {
	case config.ProviderMock:
		log.Info("mock LLM mode ON - returning deterministic ratings")
		gen = MockGenerator{}
	case config.ProviderGemini:
		g, err := NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		gen, closeFn = g, g.Close
	case config.ProviderGateway:
		gen = &GatewayGenerator{
			URL:    cfg.GatewayURL,
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			Client: &http.Client{Timeout: cfg.RequestTimeout},
		}
	default:
		return nil, nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}

	return &Retrying{
		Next:           gen,
		MaxRetries:     cfg.MaxRetries,
		MaxElapsed:     cfg.MaxRetryTime,
		AttemptTimeout: cfg.RequestTimeout,
		Log:            log,
	}, closeFn, nil
}

// MockGenerator returns a fenced rating derived from the document bytes,
// in the shape Gemini usually answers with.
type MockGenerator struct{}

func (MockGenerator) Generate(_ context.Context, _, document string) (string, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(document))
	sum := h.Sum32()
	rating := types.Rating{
		Accuracy:  types.DimensionRating{Score: int(sum%5) + 1, Comment: "mock"},
		Fluency:   types.DimensionRating{Score: int(sum/5%5) + 1, Comment: "mock"},
		Prosody:   types.DimensionRating{Score: int(sum/25%5) + 1, Comment: "mock"},
		Reasoning: "mock rating",
	}
	b, err := json.MarshalIndent(rating, "", "  ")
	if err != nil {
		return "", err
	}
	return "```json\n" + string(b) + "\n```", nil
}
