// Package merge joins the annotation outputs of several providers into one
// wide comparison table, one row per (article, question) plus a
// justification row per article.
package merge

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"framecoder/internal/questions"
	"framecoder/internal/record"
	"framecoder/internal/util"
)

type annotation struct {
	answers       map[string]int
	justification string
}

// resultSet holds one output file's annotations keyed by custom_id.
type resultSet struct {
	label string
	byID  map[string]annotation
}

// Write reads every input annotation file and writes the comparison CSV.
// Labels default to the input file names without extension. Articles absent
// from a file show "N/A" in its column, so partial runs still line up.
func Write(inputs []string, labels []string, qs []questions.Question, outPath string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files to merge")
	}
	if len(labels) > 0 && len(labels) != len(inputs) {
		return fmt.Errorf("got %d labels for %d inputs", len(labels), len(inputs))
	}

	sets := make([]resultSet, 0, len(inputs))
	for i, path := range inputs {
		label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if len(labels) > 0 {
			label = labels[i]
		}
		byID, err := loadResults(path)
		if err != nil {
			return err
		}
		sets = append(sets, resultSet{label: label, byID: byID})
	}

	ids := make(map[string]struct{})
	for _, set := range sets {
		for id := range set.byID {
			ids[id] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	if err := util.EnsureDir(filepath.Dir(outPath)); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create merge output: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)

	header := []string{"custom_id", "question"}
	for _, set := range sets {
		header = append(header, set.label)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write merge header: %w", err)
	}

	for _, id := range sorted {
		for _, q := range qs {
			row := []string{id, q.Code + ": " + q.Text}
			for _, set := range sets {
				row = append(row, answerCell(set, id, q.Code))
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write merge row: %w", err)
			}
		}
		row := []string{id, "justification"}
		for _, set := range sets {
			cell := "N/A"
			if a, ok := set.byID[id]; ok {
				cell = a.justification
			}
			row = append(row, cell)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write merge row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func answerCell(set resultSet, id, code string) string {
	a, ok := set.byID[id]
	if !ok {
		return "N/A"
	}
	v, ok := a.answers[code]
	if !ok {
		return "N/A"
	}
	return strconv.Itoa(v)
}

func loadResults(path string) (map[string]annotation, error) {
	sc, err := record.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	out := make(map[string]annotation)
	for {
		row, ok, err := sc.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		id, _ := row["custom_id"].(string)
		if id == "" {
			continue
		}
		a := annotation{answers: map[string]int{}}
		if ans, ok := row["answers"].(map[string]any); ok {
			for code, v := range ans {
				a.answers[code] = coerceInt(v)
			}
		}
		if j, ok := row["justification"].(string); ok {
			a.justification = j
		}
		out[id] = a
	}
}

func coerceInt(v any) int {
	f, ok := v.(float64)
	if ok && f == 1 {
		return 1
	}
	return 0
}
