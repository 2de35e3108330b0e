// Package record is the JSON-Lines store adapter: streaming input reads,
// append-only output writes, and the done-set used for resumable runs.
package record

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"framecoder/internal/config"
)

// Row is one input record with all auxiliary fields preserved.
type Row map[string]any

// Scanner streams rows from an input file, tracking line numbers so a
// malformed line can be reported precisely. Blank lines are skipped.
type Scanner struct {
	f    *os.File
	r    *bufio.Reader
	line int
}

func OpenInput(path string) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return &Scanner{f: f, r: bufio.NewReader(f)}, nil
}

// Next returns the next row, or ok=false at end of input. A line that is not
// valid JSON is a configuration error carrying its line number: the input
// file itself is broken, not one provider call.
func (s *Scanner) Next() (Row, bool, error) {
	for {
		line, err := s.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, false, fmt.Errorf("read input: %w", err)
		}
		atEOF := errors.Is(err, io.EOF)
		s.line++
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if atEOF {
				return nil, false, nil
			}
			continue
		}
		var row Row
		if jsonErr := json.Unmarshal([]byte(trimmed), &row); jsonErr != nil {
			return nil, false, config.Errorf("invalid JSON on line %d: %v", s.line, jsonErr)
		}
		return row, true, nil
	}
}

func (s *Scanner) Close() error {
	return s.f.Close()
}

// Appender writes one JSON object per line to an append-only output log.
// Rows are never rewritten; reprocessing relies on the done-set instead.
type Appender struct {
	f   *os.File
	enc *json.Encoder
}

func OpenAppend(path string) (*Appender, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	return &Appender{f: f, enc: enc}, nil
}

func (a *Appender) Append(row any) error {
	if err := a.enc.Encode(row); err != nil {
		return fmt.Errorf("append output row: %w", err)
	}
	return nil
}

func (a *Appender) Close() error {
	return a.f.Close()
}

// LoadDoneIDs rebuilds the done-set from an existing output file: every
// custom_id already present. A missing file means nothing is done yet, and
// unparseable lines are skipped rather than aborting a resume.
func LoadDoneIDs(path string) (map[string]struct{}, error) {
	done := make(map[string]struct{})
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return done, nil
		}
		return nil, fmt.Errorf("open existing output: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			var row map[string]any
			if jsonErr := json.Unmarshal([]byte(trimmed), &row); jsonErr == nil {
				if id, ok := row["custom_id"].(string); ok && id != "" {
					done[id] = struct{}{}
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return done, nil
			}
			return nil, fmt.Errorf("read existing output: %w", err)
		}
	}
}
