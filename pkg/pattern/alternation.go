package pattern

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// parseAlternation reads `;>("a"|"b")|("c")<;` from the start of s and returns
// its clauses along with the number of bytes consumed.
func parseAlternation(s string) ([][]string, int, error) {
	var clauses [][]string

	// position of the first clause's opening parenthesis
	i := len(alternationOpen) - 1
	for {
		if i >= len(s) || s[i] != '(' {
			return nil, 0, fmt.Errorf("expected '(' at offset %d", i)
		}
		i++

		var clause []string
		for {
			lit, next, err := readLiteral(s, i)
			if err != nil {
				return nil, 0, err
			}
			clause = append(clause, lit)
			i = next

			if i < len(s) && s[i] == '|' {
				i++
				continue
			}
			if i < len(s) && s[i] == ')' {
				i++
				break
			}
			return nil, 0, fmt.Errorf("expected '|' or ')' at offset %d", i)
		}
		clauses = append(clauses, clause)

		switch {
		case strings.HasPrefix(s[i:], "|("):
			i++
		case strings.HasPrefix(s[i:], alternationClose):
			return clauses, i + len(alternationClose), nil
		default:
			return nil, 0, fmt.Errorf("expected '|(' or %q at offset %d", alternationClose, i)
		}
	}
}

// readLiteral reads a double-quoted literal starting at s[i]. A backslash escapes
// the following character.
func readLiteral(s string, i int) (string, int, error) {
	if i >= len(s) || s[i] != '"' {
		return "", 0, fmt.Errorf("expected '\"' at offset %d", i)
	}
	start := i

	var sb strings.Builder
	i++
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case escapeChar:
			if i+size >= len(s) {
				return "", 0, fmt.Errorf("unterminated literal at offset %d", start)
			}
			next, nextSize := utf8.DecodeRuneInString(s[i+size:])
			sb.WriteRune(next)
			i += size + nextSize
			continue
		case '"':
			if sb.Len() == 0 {
				return "", 0, fmt.Errorf("empty literal at offset %d", start)
			}
			return sb.String(), i + size, nil
		}
		sb.WriteRune(r)
		i += size
	}
	return "", 0, fmt.Errorf("unterminated literal at offset %d", start)
}

// renderAlternation emits ((?:a|b)|(?:c)). A literal that prefixes a longer
// literal of the same alternation is guarded so the longer one wins, and is
// repeated unguarded in a trailing clause so the match can still fall back to
// it. Canonical finds the guarded copy first, so the fallback never changes
// which clause a literal belongs to.
func renderAlternation(clauses [][]string) string {
	var all []string
	for _, clause := range clauses {
		all = append(all, clause...)
	}

	var sb strings.Builder
	var fallback []string
	seen := make(map[string]bool)
	sb.WriteByte('(')
	for i, clause := range clauses {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString("(?:")
		for j, lit := range clause {
			if j > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(EscapeString(lit))
			if guard := prefixGuard(lit, all); guard != "" {
				sb.WriteString(guard)
				if !seen[lit] {
					seen[lit] = true
					fallback = append(fallback, EscapeString(lit))
				}
			}
		}
		sb.WriteByte(')')
	}
	if len(fallback) > 0 {
		sb.WriteString("|(?:")
		sb.WriteString(strings.Join(fallback, "|"))
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

func prefixGuard(lit string, all []string) string {
	seen := make(map[string]bool)
	var tails []string
	for _, other := range all {
		if len(other) <= len(lit) || !strings.HasPrefix(other, lit) {
			continue
		}
		tail := other[len(lit):]
		if seen[tail] {
			continue
		}
		seen[tail] = true
		tails = append(tails, EscapeString(tail))
	}
	if len(tails) == 0 {
		return ""
	}
	return "(?!" + strings.Join(tails, "|") + ")"
}

// Canonical returns the canonical value of the alternation clause that contains
// the captured literal. It reads the clauses back from the generated expression
// at the group's regex span.
func (r *CompiledRule) Canonical(ordinal int, captured string) (string, bool) {
	spec, ok := r.Group(ordinal)
	if !ok || spec.Kind != Alternation {
		return "", false
	}

	text := spec.RegexSpan.Slice(r.expr)
	text = strings.TrimSuffix(strings.TrimPrefix(text, "("), ")")

	var clauses [][]string
	for _, clause := range splitTopLevel(text) {
		clause = strings.TrimSuffix(strings.TrimPrefix(clause, "(?:"), ")")
		var lits []string
		for _, branch := range splitTopLevel(clause) {
			lits = append(lits, branchLiteral(branch))
		}
		clauses = append(clauses, lits)
	}

	for _, same := range []func(a, b string) bool{
		func(a, b string) bool { return a == b },
		strings.EqualFold,
	} {
		for _, lits := range clauses {
			for _, lit := range lits {
				if same(lit, captured) {
					return lits[len(lits)-1], true
				}
			}
		}
	}
	return "", false
}

// splitTopLevel splits s on '|' outside parentheses, honoring escapes
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escapeChar:
			i++
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// branchLiteral strips the lookahead guard and escapes from one emitted literal
func branchLiteral(branch string) string {
	for i := 0; i < len(branch); i++ {
		switch branch[i] {
		case escapeChar:
			i++
		case '(':
			return unescapeString(branch[:i])
		}
	}
	return unescapeString(branch)
}
