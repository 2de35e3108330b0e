package run

import "strings"

// ParseIDList turns a comma-separated flag value into a membership set.
// Empty entries are dropped; an empty string yields an empty set.
func ParseIDList(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out[part] = struct{}{}
		}
	}
	return out
}
