package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"framecoder/internal/answers"
	"framecoder/internal/prompt"
	"framecoder/internal/questions"
	"framecoder/internal/util"
)

// Chunked splits oversized article text into fixed-size character chunks and
// annotates each chunk independently with the wrapped adapter. Answers are
// ORed across chunks: a question is 1 for the article if any chunk answered
// 1. A chunk that yields no usable text fails the whole article.
type Chunked struct {
	Inner     Annotator
	Questions []questions.Question
	ChunkSize int
}

func NewChunked(inner Annotator, qs []questions.Question, chunkSize int) *Chunked {
	return &Chunked{Inner: inner, Questions: qs, ChunkSize: chunkSize}
}

func (c *Chunked) AnnotateArticle(ctx context.Context, article string, req Request) (string, error) {
	codes := questions.Codes(c.Questions)
	chunks := util.ChunkText(article, c.ChunkSize)
	total := len(chunks)

	chunkSets := make([]answers.Set, 0, total)
	chunkJusts := make([]string, 0, total)
	for i, chunk := range chunks {
		chunkReq := req
		chunkReq.System = prompt.SystemInstructions
		chunkReq.Prompt = prompt.BuildChunk(i+1, total, chunk, c.Questions)

		raw, err := c.Inner.Annotate(ctx, chunkReq)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, total, err)
		}
		v, err := answers.ParseStrict(raw)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, total, err)
		}
		set, just, err := answers.Normalize(v, codes)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, total, err)
		}
		chunkSets = append(chunkSets, set)
		if just != "" {
			chunkJusts = append(chunkJusts, just)
		}
	}

	final := answers.Merge(chunkSets, codes)

	// Keep the combined justification short: at most the first two chunks
	// that produced one.
	if len(chunkJusts) > 2 {
		chunkJusts = chunkJusts[:2]
	}
	just := ""
	for i, j := range chunkJusts {
		if i > 0 {
			just += "\n\n"
		}
		just += j
	}

	out, err := json.Marshal(map[string]any{
		"answers":       final,
		"justification": just,
	})
	if err != nil {
		return "", fmt.Errorf("marshal aggregated answers: %w", err)
	}
	return string(out), nil
}
