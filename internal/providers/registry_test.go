package providers

import (
	"context"
	"strings"
	"testing"
)

func TestRegistryUnknownProvider(t *testing.T) {
	_, err := New("deepseek", []string{"A1"})
	if err == nil || !strings.Contains(err.Error(), "unsupported provider") {
		t.Fatalf("expected unsupported provider error, got %v", err)
	}
}

func TestRegistryMissingKeyIsFatal(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := New("openai", []string{"A1"}); err == nil {
		t.Fatal("expected missing key error")
	}
}

func TestRegistryBuildsAdapters(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "k")
	t.Setenv("ANTHROPIC_API_KEY", "k")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GROQ_API_KEY", "k")
	for _, name := range Names() {
		if _, err := New(name, []string{"A1"}); err != nil {
			t.Fatalf("build %s: %v", name, err)
		}
	}
	// Names are case-insensitive.
	if _, err := New(" Gemini ", []string{"A1"}); err != nil {
		t.Fatalf("trimmed mixed case: %v", err)
	}
}

func TestMockIsDeterministic(t *testing.T) {
	m := NewMock([]string{"A1", "A2"})
	a, err := m.Annotate(context.Background(), Request{Prompt: "p"})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := m.Annotate(context.Background(), Request{Prompt: "p"})
	if a != b {
		t.Fatal("mock must be deterministic for identical prompts")
	}
}
