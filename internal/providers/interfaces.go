package providers

import "context"

// Request is one annotation call. System and Prompt are fully rendered text;
// adapters never alter the article content, only the transport framing.
type Request struct {
	Model           string
	System          string
	Prompt          string
	MaxOutputTokens int
	Temperature     float64
}

// Annotator is the low-level capability every backing LLM service exposes:
// one prompt in, raw response text out. Transport, auth and service quirks
// live behind this boundary; parsing and validation happen above it.
type Annotator interface {
	Annotate(ctx context.Context, req Request) (string, error)
}

// ArticleAnnotator is what the run driver talks to. Implementations decide
// how an article becomes one or more Annotator calls (whole-article prompt,
// or chunked with OR aggregation) and return the raw response text for the
// article as a whole.
type ArticleAnnotator interface {
	AnnotateArticle(ctx context.Context, article string, req Request) (string, error)
}
