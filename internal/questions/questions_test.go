package questions

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSet(t *testing.T) {
	qs := Default()
	if len(qs) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(qs))
	}
	codes := Codes(qs)
	if codes[0] != "A1" || codes[9] != "A10" || codes[10] != "B1" || codes[19] != "B10" {
		t.Fatalf("unexpected code order: %v", codes)
	}
	if err := Validate(qs); err != nil {
		t.Fatalf("default set should validate: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	doc := "- code: Q1\n  text: Does the article mention sanctions?\n- code: Q2\n  text: Does the article mention trade?\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	qs, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(qs) != 2 || qs[1].Code != "Q2" {
		t.Fatalf("unexpected questions: %+v", qs)
	}
}

func TestValidateRejectsDuplicates(t *testing.T) {
	qs := []Question{{Code: "Q1", Text: "a"}, {Code: "Q1", Text: "b"}}
	if err := Validate(qs); err == nil {
		t.Fatal("expected duplicate code error")
	}
	if err := Validate(nil); err == nil {
		t.Fatal("expected empty set error")
	}
	if err := Validate([]Question{{Code: "", Text: "x"}}); err == nil {
		t.Fatal("expected empty code error")
	}
}
