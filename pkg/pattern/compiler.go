package pattern

import (
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
)

const (
	groupOpen        = ";?("
	nonCapturingMark = "?:"
	alternationOpen  = ";>("
	alternationClose = "<;"
	escapeChar       = '\\'
)

// compiler holds the state of one Compile call
type compiler struct {
	*ledger
	groups  []GroupSpec
	ordinal int
}

// Compile parses a pattern into a rule with an empty template and no assertion.
// Use Fill to attach those.
func Compile(source string) (*CompiledRule, error) {
	logger := logging.GetLogger("pattern.compiler")

	c := &compiler{ledger: newLedger(source)}
	if err := c.sequence(); err != nil {
		logger.Debug().Err(err).Str("pattern", source).Msg("Pattern rejected")
		return nil, err
	}

	expr := c.String()
	re, err := compileHost(expr, 0)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidRegex, "pattern compiles to an invalid expression %q", expr).
			WithDetail(errors.DetailPattern, source)
	}

	logger.Trace().
		Str("pattern", source).
		Str("regex", expr).
		Int("groups", len(c.groups)).
		Msg("Pattern compiled")

	return &CompiledRule{
		source: source,
		expr:   expr,
		regex:  re,
		groups: c.groups,
	}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(source string) *CompiledRule {
	rule, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return rule
}

// CompileRule compiles a pattern and fills in its template and assertion
func CompileRule(source, template, assertion string) (*CompiledRule, error) {
	rule, err := Compile(source)
	if err != nil {
		return nil, err
	}
	return rule.Fill(template, assertion)
}

// sequence compiles top-level text, where everything outside a segment is literal.
func (c *compiler) sequence() error {
	for !c.done() {
		switch {
		case c.escapedIntroducer():
			c.literalIntroducer()
		case c.backslashRun():
			c.emit(2, EscapeString(`\`))
		case c.hasPrefix(groupOpen):
			if err := c.group(); err != nil {
				return err
			}
		case c.hasPrefix(alternationOpen):
			if err := c.alternation(); err != nil {
				return err
			}
		default:
			r, size := utf8.DecodeRuneInString(c.rest())
			c.emit(size, Escape(r))
		}
	}
	return nil
}

func (c *compiler) escapedIntroducer() bool {
	rest := c.rest()
	if len(rest) == 0 || rest[0] != escapeChar {
		return false
	}
	return strings.HasPrefix(rest[1:], groupOpen) || strings.HasPrefix(rest[1:], alternationOpen)
}

// backslashRun reports whether the text starts with an escaped backslash that
// leads up to an introducer, as in `\\;?(`. Before an introducer every pair of
// backslashes is one literal backslash and an odd one left over escapes it.
func (c *compiler) backslashRun() bool {
	rest := c.rest()
	n := 0
	for n < len(rest) && rest[n] == escapeChar {
		n++
	}
	if n < 2 {
		return false
	}
	after := rest[n:]
	return strings.HasPrefix(after, groupOpen) || strings.HasPrefix(after, alternationOpen)
}

// literalIntroducer drops the escape and writes the introducer as literal text
func (c *compiler) literalIntroducer() {
	c.emit(1, "")
	c.emit(len(groupOpen), EscapeString(c.rest()[:len(groupOpen)]))
}

func (c *compiler) group() error {
	dslStart, regexStart := c.mark()

	spec := GroupSpec{Kind: Capturing}
	opener := "("
	consumed := len(groupOpen)
	if strings.HasPrefix(c.rest()[consumed:], nonCapturingMark) {
		spec.Kind = NonCapturing
		opener = "(?:"
		consumed += len(nonCapturingMark)
	} else {
		c.ordinal++
		spec.Ordinal = c.ordinal
	}

	// reserve the slot now so nested groups land after this one
	idx := len(c.groups)
	c.groups = append(c.groups, spec)
	c.emit(consumed, opener)

	if err := c.body(dslStart); err != nil {
		return err
	}
	c.emit(1, ")")

	dslEnd, regexEnd := c.mark()
	c.groups[idx].DSLSpan = Span{Start: dslStart, End: dslEnd}
	c.groups[idx].RegexSpan = Span{Start: regexStart, End: regexEnd}
	return nil
}

// body copies a group body up to its closing parenthesis, which is left unconsumed.
func (c *compiler) body(groupStart int) error {
	// indexes into c.groups of open raw parentheses, -1 when untracked
	var open []int

	for {
		if c.done() {
			return c.unbalanced(groupStart)
		}

		rest := c.rest()
		switch {
		case c.escapedIntroducer():
			c.literalIntroducer()
		case rest[0] == escapeChar:
			_, size := utf8.DecodeRuneInString(rest[1:])
			c.copyRaw(1 + size)
		case strings.HasPrefix(rest, groupOpen):
			if err := c.group(); err != nil {
				return err
			}
		case strings.HasPrefix(rest, alternationOpen):
			if err := c.alternation(); err != nil {
				return err
			}
		case rest[0] == '[':
			c.charClass()
		case rest[0] == '(':
			idx, err := c.rawGroup()
			if err != nil {
				return err
			}
			open = append(open, idx)
		case rest[0] == ')':
			if len(open) == 0 {
				return nil
			}
			idx := open[len(open)-1]
			open = open[:len(open)-1]
			c.copyRaw(1)
			if idx >= 0 {
				dsl, regex := c.mark()
				c.groups[idx].DSLSpan.End = dsl
				c.groups[idx].RegexSpan.End = regex
			}
		default:
			_, size := utf8.DecodeRuneInString(rest)
			c.copyRaw(size)
		}
	}
}

// rawGroup copies the opening of a plain parenthesized group found in a body.
// Capturing ones are numbered like DSL groups and their index is returned.
func (c *compiler) rawGroup() (int, error) {
	dsl, regex := c.mark()
	rest := c.rest()

	if !strings.HasPrefix(rest, "(?") {
		c.ordinal++
		c.groups = append(c.groups, GroupSpec{
			Ordinal:   c.ordinal,
			Kind:      Capturing,
			DSLSpan:   Span{Start: dsl, End: dsl},
			RegexSpan: Span{Start: regex, End: regex},
		})
		c.copyRaw(1)
		return len(c.groups) - 1, nil
	}

	if isNamedGroup(rest) {
		return -1, c.unsupported(dsl, "named groups are numbered out of order by the regex engine")
	}
	if disablesCapture(rest) {
		return -1, c.unsupported(dsl, "the explicit capture flag changes group numbering")
	}

	c.copyRaw(2)
	return -1, nil
}

func isNamedGroup(s string) bool {
	switch {
	case strings.HasPrefix(s, "(?P<"), strings.HasPrefix(s, "(?'"):
		return true
	case strings.HasPrefix(s, "(?<"):
		return !strings.HasPrefix(s, "(?<=") && !strings.HasPrefix(s, "(?<!")
	}
	return false
}

// disablesCapture reports an inline option group such as (?n) or (?in:...)
func disablesCapture(s string) bool {
	s = strings.TrimPrefix(s, "(?")
	hasN := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'n':
			hasN = true
		case 'i', 'm', 's', 'x', '-':
		case ')', ':':
			return hasN
		default:
			return false
		}
	}
	return false
}

// charClass copies a bracket expression verbatim. Parentheses inside it are literal.
func (c *compiler) charClass() {
	c.copyRaw(1)
	rest := c.rest()

	i := 0
	if strings.HasPrefix(rest, "^") {
		i++
	}
	if strings.HasPrefix(rest[i:], "]") {
		i++
	}
	for i < len(rest) {
		switch rest[i] {
		case escapeChar:
			i += 2
			continue
		case ']':
			c.copyRaw(i + 1)
			return
		}
		i++
	}
	c.copyRaw(len(rest))
}

func (c *compiler) alternation() error {
	dslStart, regexStart := c.mark()

	clauses, consumed, err := parseAlternation(c.rest())
	if err != nil {
		return errors.Wrapf(err, errors.ErrMalformedAlternation, "malformed alternation at position %d", dslStart).
			WithDetail(errors.DetailPosition, dslStart).
			WithDetail(errors.DetailPattern, c.src)
	}

	c.ordinal++
	c.emit(consumed, renderAlternation(clauses))

	dslEnd, regexEnd := c.mark()
	c.groups = append(c.groups, GroupSpec{
		Ordinal:   c.ordinal,
		Kind:      Alternation,
		DSLSpan:   Span{Start: dslStart, End: dslEnd},
		RegexSpan: Span{Start: regexStart, End: regexEnd},
	})
	return nil
}

func (c *compiler) unbalanced(pos int) error {
	return errors.Newf(errors.ErrUnbalancedBracket, "group opened at position %d is never closed", pos).
		WithDetail(errors.DetailPosition, pos).
		WithDetail(errors.DetailPattern, c.src)
}

func (c *compiler) unsupported(pos int, reason string) error {
	return errors.Newf(errors.ErrUnsupportedGroup, "unsupported group at position %d: %s", pos, reason).
		WithDetail(errors.DetailPosition, pos).
		WithDetail(errors.DetailPattern, c.src)
}
