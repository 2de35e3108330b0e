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

// OpenAIAnnotator calls the OpenAI chat completions API. The JSON output
// contract is enforced through the prompt; no structured-output schema is
// passed, so responses may need brace extraction downstream.
type OpenAIAnnotator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAI(apiKey string) *OpenAIAnnotator {
	return &OpenAIAnnotator{
		apiKey:  apiKey,
		baseURL: "https://api.openai.com/v1",
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (o *OpenAIAnnotator) Annotate(ctx context.Context, req Request) (string, error) {
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
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: "openai", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: "openai", Err: fmt.Errorf("annotate request failed: %w", err)}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", &ProviderError{Provider: "openai", Status: resp.StatusCode, Err: errors.New(string(body))}
	}
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ProviderError{Provider: "openai", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &EmptyResponseError{Provider: "openai", Detail: "empty choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}
