package providers

import (
	"errors"
	"fmt"

	"framecoder/internal/answers"
)

// ProviderError covers network, auth and service failures. Status carries
// the HTTP status when one was received.
type ProviderError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// EmptyResponseError means the service answered but produced no usable text,
// typically a safety block or an empty candidate list.
type EmptyResponseError struct {
	Provider string
	Detail   string
}

func (e *EmptyResponseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s returned no usable text (%s)", e.Provider, e.Detail)
	}
	return fmt.Sprintf("%s returned no usable text", e.Provider)
}

// Classify buckets an error for the audit trail. All of these kinds are
// retryable by the run driver; configuration errors never reach it.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	var pe *ProviderError
	var ee *EmptyResponseError
	var parseErr *answers.ParseError
	var schemaErr *answers.SchemaError
	switch {
	case errors.As(err, &ee):
		return "empty"
	case errors.As(err, &pe):
		return "provider"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &schemaErr):
		return "schema"
	default:
		return "other"
	}
}
