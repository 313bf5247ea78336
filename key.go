package omniconf

import (
	"strings"
	"unicode"
)

// NormalizeKey converts a raw key into its canonical form: upper-case with
// `-`, `.` and spaces folded to `_`. Two keys that normalize identically
// address the same configuration entry, so lookups are effectively
// case-insensitive.
func NormalizeKey(key string) string {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case '-', '.', ' ':
			return '_'
		default:
			return unicode.ToUpper(r)
		}
	}, key)
	return normalized
}

// fieldKey converts an exported Go field name into its configuration key,
// e.g. "MaxConnections" -> "MAX_CONNECTIONS", "DBHost" -> "DB_HOST".
func fieldKey(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			// Break before a new word: lower->Upper, or the last capital of
			// an acronym followed by a lower-case run (DBHost -> DB_HOST).
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// keyField derives a Go field name from a configuration key,
// e.g. "MY_VAR" -> "MyVar". Used by [BindKey] when no explicit field name
// is given.
func keyField(key string) string {
	parts := strings.Split(NormalizeKey(key), "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}
