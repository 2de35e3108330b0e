package util

import (
	"strings"
	"testing"
)

func TestChunkText(t *testing.T) {
	text := "abcdefghijklmnopqrstuvwxyz"
	chunks := ChunkText(text, 10)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0] != "abcdefghij" || chunks[2] != "uvwxyz" {
		t.Fatalf("unexpected chunks: %v", chunks)
	}
	if strings.Join(chunks, "") != text {
		t.Fatal("chunks must re-assemble into the original text")
	}
}

func TestChunkTextRuneBoundaries(t *testing.T) {
	text := "日本語のテキスト"
	chunks := ChunkText(text, 3)
	if strings.Join(chunks, "") != text {
		t.Fatalf("multi-byte text mangled: %v", chunks)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
}

func TestChunkTextEmpty(t *testing.T) {
	chunks := ChunkText("", 100)
	if len(chunks) != 1 || chunks[0] != "" {
		t.Fatalf("empty text should yield one empty chunk, got %v", chunks)
	}
}

func TestChunkTextDisabled(t *testing.T) {
	chunks := ChunkText("abc", 0)
	if len(chunks) != 1 || chunks[0] != "abc" {
		t.Fatalf("non-positive size should return text whole, got %v", chunks)
	}
}
