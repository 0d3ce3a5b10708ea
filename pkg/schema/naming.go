package schema

import (
	"strings"
	"unicode"
)

// SnakeCase converts a Go identifier to snake_case.
// Acronyms are kept together: HTTPAddr -> http_addr.
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// EnvKey derives an environment variable name from a prefix and a field
// name: uppercased, with every character outside [A-Z0-9_] replaced by '_'.
//
//	EnvKey("APP_", "log-level") == "APP_LOG_LEVEL"
func EnvKey(prefix, name string) string {
	raw := strings.ToUpper(prefix + name)
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
