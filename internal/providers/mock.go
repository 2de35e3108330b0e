package providers

import (
	"context"
	"crypto/sha256"
	"encoding/json"
)

// MockAnnotator is a deterministic stand-in used when no API key should be
// spent: the answer for each code is derived from a hash of the prompt, so
// repeated runs on the same input produce identical output.
type MockAnnotator struct {
	codes []string
}

func NewMock(codes []string) *MockAnnotator {
	return &MockAnnotator{codes: codes}
}

func (m *MockAnnotator) Annotate(ctx context.Context, req Request) (string, error) {
	_ = ctx
	answers := make(map[string]int, len(m.codes))
	for _, code := range m.codes {
		h := sha256.Sum256([]byte(req.Prompt + "|" + code))
		answers[code] = int(h[0]) % 2
	}
	out, _ := json.Marshal(map[string]any{
		"answers":       answers,
		"justification": "Deterministic mock output; replace with a real provider for semantic quality.",
	})
	return string(out), nil
}
