package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GroqAnnotator talks to Groq's OpenAI-compatible chat completions API.
// Groq enforces much tighter input limits than the other services, so it is
// the usual candidate for the chunked adapter.
type GroqAnnotator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGroq(apiKey string) *GroqAnnotator {
	return &GroqAnnotator{
		apiKey:  apiKey,
		baseURL: "https://api.groq.com/openai/v1",
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GroqAnnotator) Annotate(ctx context.Context, req Request) (string, error) {
	messages := make([]map[string]string, 0, 2)
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})
	payload, _ := json.Marshal(map[string]any{
		"model":       req.Model,
		"messages":    messages,
		"max_tokens":  req.MaxOutputTokens,
		"temperature": req.Temperature,
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: "groq", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: "groq", Err: fmt.Errorf("annotate request failed: %w", err)}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", &ProviderError{Provider: "groq", Status: resp.StatusCode, Err: errors.New(string(body))}
	}
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ProviderError{Provider: "groq", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &EmptyResponseError{Provider: "groq", Detail: "empty choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}
