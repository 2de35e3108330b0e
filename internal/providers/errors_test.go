package providers

import (
	"errors"
	"fmt"
	"testing"

	"framecoder/internal/answers"
)

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"provider":      {&ProviderError{Provider: "openai", Status: 500, Err: errors.New("boom")}, "provider"},
		"empty":         {&EmptyResponseError{Provider: "gemini"}, "empty"},
		"parse":         {&answers.ParseError{Cause: errors.New("bad")}, "parse"},
		"schema":        {&answers.SchemaError{Reason: "nope"}, "schema"},
		"wrapped empty": {fmt.Errorf("chunk 2/3: %w", &EmptyResponseError{Provider: "groq"}), "empty"},
		"plain":         {errors.New("x"), "other"},
	}
	for name, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Fatalf("%s: got %s want %s", name, got, tc.want)
		}
	}
	if Classify(nil) != "" {
		t.Fatal("nil error should classify to empty string")
	}
}

func TestProviderErrorMessages(t *testing.T) {
	e := &ProviderError{Provider: "openai", Status: 429, Err: errors.New("rate limit")}
	if e.Error() != "openai: status 429: rate limit" {
		t.Fatalf("unexpected message: %s", e.Error())
	}
	e2 := &ProviderError{Provider: "groq", Err: errors.New("dial tcp: timeout")}
	if e2.Error() != "groq: dial tcp: timeout" {
		t.Fatalf("unexpected message: %s", e2.Error())
	}
	if !errors.Is(e, e.Err) {
		t.Fatal("ProviderError must unwrap its cause")
	}
}
