package merge

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"framecoder/internal/questions"

	"github.com/stretchr/testify/require"
)

var qs = []questions.Question{
	{Code: "A1", Text: "mentions sanctions?"},
	{Code: "A2", Text: "mentions trade?"},
}

func writeResults(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWriteComparison(t *testing.T) {
	gemini := writeResults(t, "gemini.jsonl",
		`{"custom_id":"art_1","answers":{"A1":1,"A2":0},"justification":"gemini says"}`,
		`{"custom_id":"art_2","answers":{"A1":0,"A2":0},"justification":""}`,
	)
	claude := writeResults(t, "claude.jsonl",
		`{"custom_id":"art_1","answers":{"A1":0,"A2":1},"justification":"claude says"}`,
	)
	out := filepath.Join(t.TempDir(), "compare.csv")

	require.NoError(t, Write([]string{gemini, claude}, nil, qs, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// header + 2 articles x (2 questions + justification)
	require.Len(t, rows, 1+2*3)
	require.Equal(t, []string{"custom_id", "question", "gemini", "claude"}, rows[0])

	// art_1 rows come first (sorted ids).
	require.Equal(t, []string{"art_1", "A1: mentions sanctions?", "1", "0"}, rows[1])
	require.Equal(t, []string{"art_1", "A2: mentions trade?", "0", "1"}, rows[2])
	require.Equal(t, []string{"art_1", "justification", "gemini says", "claude says"}, rows[3])

	// art_2 is absent from the claude file: N/A fill.
	require.Equal(t, []string{"art_2", "A1: mentions sanctions?", "0", "N/A"}, rows[4])
	require.Equal(t, []string{"art_2", "justification", "", "N/A"}, rows[6])
}

func TestWriteCustomLabels(t *testing.T) {
	a := writeResults(t, "a.jsonl", `{"custom_id":"x","answers":{"A1":1,"A2":1},"justification":"j"}`)
	out := filepath.Join(t.TempDir(), "cmp.csv")
	require.NoError(t, Write([]string{a}, []string{"Gemini"}, qs, out))

	f, _ := os.Open(out)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "Gemini", rows[0][2])
}

func TestWriteRejectsLabelMismatch(t *testing.T) {
	a := writeResults(t, "a.jsonl", `{"custom_id":"x","answers":{},"justification":""}`)
	err := Write([]string{a}, []string{"one", "two"}, qs, filepath.Join(t.TempDir(), "o.csv"))
	require.Error(t, err)
}

func TestWriteRejectsNoInputs(t *testing.T) {
	require.Error(t, Write(nil, nil, qs, filepath.Join(t.TempDir(), "o.csv")))
}
