package record

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framecoder/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScannerReadsRowsAndSkipsBlanks(t *testing.T) {
	path := writeFile(t, "in.jsonl", `{"id":"a","text":"one"}

{"id":"b","text":"two"}
`)
	sc, err := OpenInput(path)
	if err != nil {
		t.Fatal(err)
	}
	defer sc.Close()

	var ids []string
	for {
		row, ok, err := sc.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		ids = append(ids, row["id"].(string))
	}
	if strings.Join(ids, ",") != "a,b" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestScannerMalformedLineIsConfigError(t *testing.T) {
	path := writeFile(t, "in.jsonl", "{\"id\":\"a\"}\nnot json\n")
	sc, err := OpenInput(path)
	if err != nil {
		t.Fatal(err)
	}
	defer sc.Close()

	if _, ok, err := sc.Next(); err != nil || !ok {
		t.Fatalf("first row should parse: %v", err)
	}
	_, _, err = sc.Next()
	var ce *config.Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should name the line: %v", err)
	}
}

func TestScannerNoTrailingNewline(t *testing.T) {
	path := writeFile(t, "in.jsonl", `{"id":"only"}`)
	sc, err := OpenInput(path)
	if err != nil {
		t.Fatal(err)
	}
	defer sc.Close()
	row, ok, err := sc.Next()
	if err != nil || !ok || row["id"] != "only" {
		t.Fatalf("last line without newline must still parse: %v %v %v", row, ok, err)
	}
	if _, ok, _ := sc.Next(); ok {
		t.Fatal("expected end of input")
	}
}

func TestAppendAndLoadDoneIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	a, err := OpenAppend(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Append(map[string]any{"custom_id": "x", "error": nil}); err != nil {
		t.Fatal(err)
	}
	if err := a.Append(map[string]any{"custom_id": "y", "error": "boom"}); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	done, err := LoadDoneIDs(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(done) != 2 {
		t.Fatalf("expected 2 done ids, got %v", done)
	}
	if _, ok := done["x"]; !ok {
		t.Fatal("missing id x")
	}
}

func TestLoadDoneIDsMissingFile(t *testing.T) {
	done, err := LoadDoneIDs(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(done) != 0 {
		t.Fatalf("expected empty done-set, got %v", done)
	}
}

func TestLoadDoneIDsSkipsGarbageLines(t *testing.T) {
	path := writeFile(t, "out.jsonl", "{\"custom_id\":\"a\"}\ngarbage\n{\"custom_id\":\"b\"}\n")
	done, err := LoadDoneIDs(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(done) != 2 {
		t.Fatalf("expected 2 ids despite garbage line, got %v", done)
	}
}

func TestAppenderDoesNotEscapeUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	a, err := OpenAppend(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Append(map[string]any{"custom_id": "z", "justification": "中文 & <tags>"}); err != nil {
		t.Fatal(err)
	}
	_ = a.Close()
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "中文 & <tags>") {
		t.Fatalf("unicode/html should be written verbatim: %s", b)
	}
}
