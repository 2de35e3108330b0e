package config

import (
	"fmt"
	"os"
	"strings"
)

// Error marks a problem with the run setup or the input data itself
// (missing credentials, malformed input line, missing id field). These
// abort the whole run instead of degrading to a per-record failure.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

func Errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// RequireEnv returns the named environment variable or a fatal Error
// telling the user where to set it.
func RequireEnv(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", Errorf("missing %s; put it in .env or set it as an environment variable", key)
	}
	return v, nil
}
