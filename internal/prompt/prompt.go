package prompt

import (
	"fmt"
	"strings"

	"framecoder/internal/questions"
)

// SystemInstructions is shared by every provider adapter. The strict-JSON
// rule matters: normalization downstream coerces values but not shape.
const SystemInstructions = `You are a careful research assistant.
Rules:
- Answer ONLY using information contained in the provided article text. Do not use outside knowledge.
- Each question must be answered with exactly 1 or 0 (1=yes, 0=no).
- If the article does not clearly justify "yes", answer 0.
- After the answers, write a 1-2 paragraph justification explaining the main textual evidence you relied on.
- Output must be STRICT JSON only, matching the schema exactly.`

// Build renders the full-article prompt: verbatim article text, each
// question as "<code>: <text>" in set order, and the strict JSON contract.
// The article text is never truncated here; chunking for oversized inputs
// is the provider adapter's concern.
func Build(articleText string, qs []questions.Question) string {
	var b strings.Builder
	b.WriteString("ARTICLE TEXT (analyze carefully):\n\"\"\"\n")
	b.WriteString(articleText)
	b.WriteString("\n\"\"\"\n\n")
	writeQuestionBlock(&b, qs)
	return b.String()
}

// BuildChunk renders the prompt for chunk index (1-based) of total. The model
// is told to answer from this chunk alone and default unsupported answers
// to 0; the chunked adapter ORs the per-chunk answer sets afterwards.
func BuildChunk(index, total int, chunkText string, qs []questions.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are analyzing CHUNK %d/%d of the same article.\n", index, total)
	b.WriteString("Only use this chunk to answer. If the answer is not clearly supported in this chunk, output 0.\n\n")
	b.WriteString("CHUNK TEXT:\n\"\"\"\n")
	b.WriteString(chunkText)
	b.WriteString("\n\"\"\"\n\n")
	writeQuestionBlock(&b, qs)
	return b.String()
}

func writeQuestionBlock(b *strings.Builder, qs []questions.Question) {
	b.WriteString("QUESTIONS:\n")
	for _, q := range qs {
		b.WriteString(q.Code)
		b.WriteString(": ")
		b.WriteString(q.Text)
		b.WriteByte('\n')
	}
	b.WriteString("\nReturn STRICT JSON in exactly this shape (no extra keys, no markdown, no commentary outside JSON):\n")
	b.WriteString(jsonShape(qs))
	b.WriteByte('\n')
}

// jsonShape writes an example response object with every code zeroed, five
// codes per line, so the model sees the exact key set it must return.
func jsonShape(qs []questions.Question) string {
	var b strings.Builder
	b.WriteString("{\n  \"answers\": {\n")
	for i, q := range qs {
		if i%5 == 0 {
			b.WriteString("    ")
		}
		fmt.Fprintf(&b, "%q: 0", q.Code)
		if i != len(qs)-1 {
			b.WriteString(",")
		}
		if i%5 == 4 || i == len(qs)-1 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("  },\n  \"justification\": \"1-2 paragraphs explaining evidence from the article text\"\n}")
	return b.String()
}
