package prompt

import (
	"strings"
	"testing"

	"framecoder/internal/questions"
)

func TestBuildContainsArticleAndQuestions(t *testing.T) {
	qs := questions.Default()
	article := "Line one.\nLine two with 中文 text."
	p := Build(article, qs)

	if !strings.Contains(p, article) {
		t.Fatal("article text must appear verbatim")
	}
	for _, q := range qs {
		if !strings.Contains(p, q.Code+": "+q.Text) {
			t.Fatalf("missing rendered question %s", q.Code)
		}
	}
	if !strings.Contains(p, "STRICT JSON") {
		t.Fatal("missing strict JSON instruction")
	}
	if !strings.Contains(p, `"A1": 0`) || !strings.Contains(p, `"B10": 0`) {
		t.Fatal("JSON shape must list every code")
	}
	// Question order is stable.
	if strings.Index(p, "A1:") > strings.Index(p, "B1:") {
		t.Fatal("questions rendered out of order")
	}
}

func TestBuildChunkHeader(t *testing.T) {
	qs := questions.Default()
	p := BuildChunk(2, 3, "chunk body", qs)
	if !strings.Contains(p, "CHUNK 2/3") {
		t.Fatal("missing chunk header")
	}
	if !strings.Contains(p, "chunk body") {
		t.Fatal("missing chunk text")
	}
	if !strings.Contains(p, "output 0") {
		t.Fatal("missing default-to-zero instruction")
	}
}
