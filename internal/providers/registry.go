package providers

import (
	"fmt"
	"strings"

	"framecoder/internal/config"
)

// envKeys maps provider names to the environment variable holding their
// credential. Missing keys are a startup error, caught before any input
// record is read.
var envKeys = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
	"groq":      "GROQ_API_KEY",
}

// New builds the adapter for a provider name. Selection happens exactly once
// at startup; after this, the rest of the pipeline only sees the Annotator
// interface.
func New(name string, codes []string) (Annotator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mock":
		return NewMock(codes), nil
	case "openai":
		key, err := config.RequireEnv(envKeys["openai"])
		if err != nil {
			return nil, err
		}
		return NewOpenAI(key), nil
	case "anthropic":
		key, err := config.RequireEnv(envKeys["anthropic"])
		if err != nil {
			return nil, err
		}
		return NewAnthropic(key), nil
	case "gemini":
		key, err := config.RequireEnv(envKeys["gemini"])
		if err != nil {
			return nil, err
		}
		return NewGemini(key, codes), nil
	case "groq":
		key, err := config.RequireEnv(envKeys["groq"])
		if err != nil {
			return nil, err
		}
		return NewGroq(key), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// Names lists the providers New accepts, for CLI help and validation.
func Names() []string {
	return []string{"openai", "anthropic", "gemini", "groq", "mock"}
}
