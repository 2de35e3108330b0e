package config

import (
	"os"
	"strconv"
)

// Config carries every knob for one annotation run. It is built once at
// startup (env defaults overlaid by CLI flags) and passed by reference into
// the components that need it; there is no package-level mutable state.
type Config struct {
	InPath  string
	OutPath string

	Provider string
	Model    string

	IDField   string
	TextField string
	AlsoStore string

	MaxOutputTokens int
	Temperature     float64
	SleepSeconds    float64
	MaxRetries      int

	Resume  bool
	SkipIDs string
	OnlyIDs string
	DryRun  bool

	// ChunkSize > 0 routes articles through the chunked adapter.
	ChunkSize int

	// QuestionsPath overrides the built-in question set when non-empty.
	QuestionsPath string

	// AuditPostgresURL enables the per-attempt audit trail when non-empty.
	AuditPostgresURL string
}

func Load() Config {
	return Config{
		IDField:          getenv("FRAMECODER_ID_FIELD", "id"),
		TextField:        getenv("FRAMECODER_TEXT_FIELD", "text"),
		AlsoStore:        getenv("FRAMECODER_ALSO_STORE", "cnki_id"),
		MaxOutputTokens:  getenvInt("FRAMECODER_MAX_OUTPUT_TOKENS", 1200),
		Temperature:      0.0,
		SleepSeconds:     0.2,
		MaxRetries:       getenvInt("FRAMECODER_MAX_RETRIES", 3),
		ChunkSize:        getenvInt("FRAMECODER_CHUNK_SIZE", 0),
		AuditPostgresURL: getenv("FRAMECODER_AUDIT_POSTGRES_URL", ""),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
