package pattern

import "strings"

// metaChars lists every character Escape prefixes with a backslash.
const metaChars = `\/()[]{}?*+.$^|`

// Escape returns the regex-safe representation of a single literal character.
func Escape(r rune) string {
	if strings.ContainsRune(metaChars, r) {
		return `\` + string(r)
	}
	return string(r)
}

// EscapeString escapes every character of s.
func EscapeString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		sb.WriteString(Escape(r))
	}
	return sb.String()
}

// unescapeString drops the backslash in front of each escaped character.
func unescapeString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}
