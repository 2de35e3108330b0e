package providers

import (
	"context"

	"framecoder/internal/prompt"
	"framecoder/internal/questions"
)

// Prompted sends the whole article in a single call: render the full-article
// prompt, attach the shared system instructions, delegate to the adapter.
type Prompted struct {
	Inner     Annotator
	Questions []questions.Question
}

func NewPrompted(inner Annotator, qs []questions.Question) *Prompted {
	return &Prompted{Inner: inner, Questions: qs}
}

func (p *Prompted) AnnotateArticle(ctx context.Context, article string, req Request) (string, error) {
	req.System = prompt.SystemInstructions
	req.Prompt = prompt.Build(article, p.Questions)
	return p.Inner.Annotate(ctx, req)
}
