// Package search scans a corpus file for concept keywords in titles and
// abstracts. Concepts are named lists of regex variants loaded from YAML,
// so mixed-script vocabularies (Chinese terms next to English acronyms)
// live in a data file instead of code.
package search

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"

	"framecoder/internal/record"
	"framecoder/internal/util"

	"gopkg.in/yaml.v3"
)

// Concept is one named group of search patterns, compiled case-insensitive.
type Concept struct {
	Name     string
	Patterns []*regexp.Regexp
}

// LoadConcepts reads a YAML mapping of concept name to pattern list.
func LoadConcepts(path string) ([]Concept, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read concepts: %w", err)
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse concepts %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no concepts defined in %s", path)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Concept, 0, len(raw))
	for _, name := range names {
		c := Concept{Name: name}
		for _, v := range raw[name] {
			if v == "" {
				continue
			}
			re, err := regexp.Compile("(?i)" + v)
			if err != nil {
				return nil, fmt.Errorf("concept %s: bad pattern %q: %w", name, v, err)
			}
			c.Patterns = append(c.Patterns, re)
		}
		if len(c.Patterns) == 0 {
			return nil, fmt.Errorf("concept %s has no patterns", name)
		}
		out = append(out, c)
	}
	return out, nil
}

// ConceptHits lists the articles matching one concept.
type ConceptHits struct {
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// Summary is the JSON report of one scan.
type Summary struct {
	SourceFile  string                 `json:"source_file"`
	NumArticles int                    `json:"num_articles_scanned"`
	Results     map[string]ConceptHits `json:"results"`
}

// Run scans title+abstract of every record and reports which articles match
// each concept. Both the flat layout and the nested metadata.article layout
// are understood. Records without an id are skipped, not fatal.
func Run(corpusPath string, concepts []Concept) (Summary, error) {
	sc, err := record.OpenInput(corpusPath)
	if err != nil {
		return Summary{}, err
	}
	defer sc.Close()

	hits := make(map[string][]string, len(concepts))
	total := 0
	for {
		row, ok, err := sc.Next()
		if err != nil {
			return Summary{}, err
		}
		if !ok {
			break
		}
		id, _ := row["id"].(string)
		if id == "" {
			continue
		}
		title, abstract := titleAbstract(row)
		text := title + "\n" + abstract
		total++

		for _, c := range concepts {
			for _, re := range c.Patterns {
				if re.MatchString(text) {
					hits[c.Name] = append(hits[c.Name], id)
					break
				}
			}
		}
	}

	results := make(map[string]ConceptHits, len(concepts))
	for _, c := range concepts {
		ids := hits[c.Name]
		results[c.Name] = ConceptHits{Count: len(ids), IDs: ids}
	}
	return Summary{SourceFile: corpusPath, NumArticles: total, Results: results}, nil
}

// WriteReports writes the JSON summary and the long-format CSV
// (concept,id per row). Both go through atomic writes.
func WriteReports(s Summary, concepts []Concept, jsonPath, csvPath string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := util.WriteTextAtomic(jsonPath, string(b)+"\n"); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"concept", "id"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range concepts {
		for _, id := range s.Results[c.Name].IDs {
			if err := w.Write([]string{c.Name, id}); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return util.WriteTextAtomic(csvPath, buf.String())
}

// titleAbstract tries the flat layout first, then metadata.article.
func titleAbstract(row record.Row) (string, string) {
	title, _ := row["title"].(string)
	abstract, _ := row["abstract"].(string)
	if title != "" && abstract != "" {
		return title, abstract
	}
	md, _ := row["metadata"].(map[string]any)
	art, _ := md["article"].(map[string]any)
	if title == "" {
		title, _ = art["title"].(string)
	}
	if abstract == "" {
		abstract, _ = art["abstract"].(string)
	}
	return title, abstract
}
