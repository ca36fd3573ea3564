package secrets

import "strings"

var placeholderMarkers = []string{
	"example", "placeholder", "dummy", "test", "fake", "sample",
	"your_", "insert_", "replace_", "todo", "fixme", "xxx",
	"aaaa", "bbbb", "cccc", "1111", "2222", "0000",
}

// isLikelyFalsePositive rejects matches that are comments, placeholders,
// too short, or near-constant strings.
func isLikelyFalsePositive(line, secret string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "*") {
		return true
	}

	secretLower := strings.ToLower(secret)
	for _, marker := range placeholderMarkers {
		if strings.Contains(secretLower, marker) || strings.Contains(trimmed, marker) {
			return true
		}
	}

	if len(secret) < 8 {
		return true
	}
	return distinctChars(secret) < 3
}

func distinctChars(s string) int {
	seen := map[rune]struct{}{}
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}
