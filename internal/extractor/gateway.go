package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"
)

// HTTPDoer abstracts the HTTP client used by the gateway.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GatewayGenerator talks to an OpenAI-compatible chat completions endpoint.
// One call is one attempt; client errors come back as backoff.Permanent so
// Retrying gives up on them immediately.
type GatewayGenerator struct {
	URL    string
	APIKey string
	Model  string
	Client HTTPDoer
}

func (g *GatewayGenerator) Generate(ctx context.Context, instruction, document string) (string, error) {
	if g.URL == "" || g.APIKey == "" {
		return "", backoff.Permanent(errors.New("llm gateway not configured"))
	}
	reqBody := map[string]any{
		"model": g.Model,
		"messages": []map[string]string{
			{"role": "user", "content": instruction},
			{"role": "user", "content": document},
		},
		"temperature": 0.0,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(data))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("llm server error: status=%d body=%s", resp.StatusCode, body)
	}
	if resp.StatusCode >= 400 {
		// Permanent: don't retry on client errors
		return "", backoff.Permanent(fmt.Errorf("llm client error: status=%d body=%s", resp.StatusCode, body))
	}

	content, ok := contentFromChoices(body)
	if !ok {
		return "", fmt.Errorf("unexpected llm response: %s", body)
	}
	return content, nil
}

// contentFromChoices reads openai-style choices[0].message.content.
func contentFromChoices(body []byte) (string, bool) {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		return "", false
	}
	return parsed.Choices[0].Message.Content, true
}
