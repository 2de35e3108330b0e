// Package answers turns loosely-typed model output into strict answer sets:
// every question code present, every value exactly 0 or 1.
package answers

import (
	"encoding/json"
	"strings"
)

// Set maps question codes to 0/1. After Normalize it always holds every
// code of the active question set.
type Set map[string]int

// ParseError means no JSON object could be recovered from the raw response,
// even after brace extraction.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return "parse response JSON: " + e.Cause.Error()
}

func (e *ParseError) Unwrap() error { return e.Cause }

// SchemaError means the decoded value violated the shape contract: the top
// level is not an object, or "answers" is absent or not an object. Value
// level problems never raise this; they are coerced instead.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "response shape: " + e.Reason
}

// ParseStrict decodes raw model text into a JSON value. A direct parse is
// tried first; on failure the substring between the first '{' and the last
// '}' is retried, which tolerates models that wrap JSON in prose or
// markdown fences.
func ParseStrict(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	var v any
	err := json.Unmarshal([]byte(raw), &v)
	if err == nil {
		return v, nil
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, &ParseError{Cause: err}
	}
	if err2 := json.Unmarshal([]byte(raw[start:end+1]), &v); err2 != nil {
		return nil, &ParseError{Cause: err2}
	}
	return v, nil
}

// Normalize coerces a decoded response into a complete answer set plus a
// justification string. Per code: true, 1 and "1" (trimmed) become 1;
// everything else, including a missing key, becomes 0. Justification
// defaults to "" when absent or not a string.
func Normalize(v any, codes []string) (Set, string, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, "", &SchemaError{Reason: "top-level value is not an object"}
	}
	rawAnswers, present := obj["answers"]
	if !present {
		return nil, "", &SchemaError{Reason: "missing 'answers' object"}
	}
	ans, ok := rawAnswers.(map[string]any)
	if !ok {
		return nil, "", &SchemaError{Reason: "'answers' is not an object"}
	}

	out := make(Set, len(codes))
	for _, code := range codes {
		out[code] = coerce(ans[code])
	}

	just := ""
	if j, ok := obj["justification"].(string); ok {
		just = strings.TrimSpace(j)
	}
	return out, just, nil
}

func coerce(v any) int {
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
	case float64:
		if t == 1 {
			return 1
		}
	case int:
		if t == 1 {
			return 1
		}
	case string:
		if strings.TrimSpace(t) == "1" {
			return 1
		}
	}
	return 0
}

// AllZero returns a complete set with every code answered 0, used for
// FAILED records after retry exhaustion.
func AllZero(codes []string) Set {
	out := make(Set, len(codes))
	for _, code := range codes {
		out[code] = 0
	}
	return out
}

// Merge ORs per-chunk answer sets: a code is 1 in the result if any chunk
// answered 1. A signal present anywhere in the article counts as present
// in the whole article.
func Merge(chunks []Set, codes []string) Set {
	out := AllZero(codes)
	for _, c := range chunks {
		for _, code := range codes {
			if c[code] == 1 {
				out[code] = 1
			}
		}
	}
	return out
}
