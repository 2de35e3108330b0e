package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const anthropicVersion = "2023-06-01"

// AnthropicAnnotator calls the Anthropic messages API. Text blocks from the
// response are joined; non-text blocks are ignored.
type AnthropicAnnotator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAnthropic(apiKey string) *AnthropicAnnotator {
	return &AnthropicAnnotator{
		apiKey:  apiKey,
		baseURL: "https://api.anthropic.com/v1",
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (a *AnthropicAnnotator) Annotate(ctx context.Context, req Request) (string, error) {
	body := map[string]any{
		"model":       req.Model,
		"max_tokens":  req.MaxOutputTokens,
		"temperature": req.Temperature,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
	}
	if req.System != "" {
		body["system"] = req.System
	}
	payload, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: "anthropic", Err: err}
	}
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: "anthropic", Err: fmt.Errorf("annotate request failed: %w", err)}
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", &ProviderError{Provider: "anthropic", Status: resp.StatusCode, Err: errors.New(string(raw))}
	}
	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &ProviderError{Provider: "anthropic", Err: fmt.Errorf("decode response: %w", err)}
	}
	parts := make([]string, 0, len(parsed.Content))
	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return "", &EmptyResponseError{Provider: "anthropic", Detail: "stop_reason=" + parsed.StopReason}
	}
	return text, nil
}
