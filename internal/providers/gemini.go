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

// GeminiAnnotator calls the generateContent endpoint with a structured
// output schema, so well-behaved responses are already strict JSON with
// every answer key present. The schema is built from the active question
// codes at construction time.
type GeminiAnnotator struct {
	apiKey  string
	baseURL string
	codes   []string
	client  *http.Client
}

func NewGemini(apiKey string, codes []string) *GeminiAnnotator {
	return &GeminiAnnotator{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		codes:   codes,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float64        `json:"temperature"`
	MaxOutputTokens  int            `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

func (g *GeminiAnnotator) Annotate(ctx context.Context, req Request) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      req.Temperature,
			MaxOutputTokens:  req.MaxOutputTokens,
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema(g.codes),
		},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Err: fmt.Errorf("marshal request: %w", err)}
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, req.Model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Err: fmt.Errorf("annotate request failed: %w", err)}
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", &ProviderError{Provider: "gemini", Status: resp.StatusCode, Err: errors.New(string(raw))}
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []geminiPart `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &ProviderError{Provider: "gemini", Err: fmt.Errorf("decode response: %w", err)}
	}

	var sb strings.Builder
	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		// Keep the block/finish diagnostics: an empty chunk must surface why.
		detail := make([]string, 0, 2)
		if parsed.PromptFeedback.BlockReason != "" {
			detail = append(detail, "blockReason="+parsed.PromptFeedback.BlockReason)
		}
		if len(parsed.Candidates) > 0 && parsed.Candidates[0].FinishReason != "" {
			detail = append(detail, "finishReason="+parsed.Candidates[0].FinishReason)
		}
		return "", &EmptyResponseError{Provider: "gemini", Detail: strings.Join(detail, " ")}
	}
	return text, nil
}

// responseSchema requires every answer code plus a justification, mirroring
// the JSON contract spelled out in the prompt.
func responseSchema(codes []string) map[string]any {
	answerProps := make(map[string]any, len(codes))
	for _, code := range codes {
		answerProps[code] = map[string]any{"type": "INTEGER"}
	}
	return map[string]any{
		"type":     "OBJECT",
		"required": []string{"answers", "justification"},
		"properties": map[string]any{
			"answers": map[string]any{
				"type":       "OBJECT",
				"required":   codes,
				"properties": answerProps,
			},
			"justification": map[string]any{
				"type":        "STRING",
				"description": "2-6 sentences citing evidence from the article text.",
			},
		},
	}
}
