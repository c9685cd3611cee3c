package rewrite

import (
	"strconv"
	"strings"
)

const (
	tokenOpen        = ";:("
	conditionSep     = "):"
	conditionClose   = "):;"
	negatedCondition = "!("
	refMarker        = '%'
)

type segmentKind int

const (
	literalSegment segmentKind = iota
	placeholderSegment
	conditionalSegment
)

// segment is one piece of a parsed template. raw keeps the original text so
// unresolved tokens can be emitted untouched.
type segment struct {
	kind     segmentKind
	raw      string
	ordinal  int
	fragment string
	negate   bool
	value    string
}

// Template is a parsed replacement template.
//
//	;:(N)                       capture N, or the canonical value for an alternation
//	;:(frag):(N=value):;        frag when capture N equals value
//	;:(frag):!(N=value):;       frag when capture N differs from value
//
// Inside frag every %M is replaced by capture M. Anything else is literal.
type Template struct {
	source   string
	segments []segment
}

// ParseTemplate splits a template into literal text, placeholders and
// conditional fragments. It never fails: text that is not a well-formed token
// is kept literally.
func ParseTemplate(source string) Template {
	t := Template{source: source}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{kind: literalSegment, raw: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(source); {
		rest := source[i:]
		if !strings.HasPrefix(rest, tokenOpen) {
			lit.WriteByte(source[i])
			i++
			continue
		}

		if seg, n, ok := scanPlaceholder(rest); ok {
			flush()
			t.segments = append(t.segments, seg)
			i += n
			continue
		}
		if seg, n, ok := scanConditional(rest); ok {
			flush()
			t.segments = append(t.segments, seg)
			i += n
			continue
		}

		lit.WriteByte(source[i])
		i++
	}
	flush()

	return t
}

// String returns the template source
func (t Template) String() string { return t.source }

// Ordinals lists every capture ordinal the template refers to, in order of
// first appearance.
func (t Template) Ordinals() []int {
	seen := make(map[int]bool)
	var out []int
	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, seg := range t.segments {
		switch seg.kind {
		case placeholderSegment:
			add(seg.ordinal)
		case conditionalSegment:
			add(seg.ordinal)
			for _, ref := range fragmentRefs(seg.fragment) {
				add(ref.ordinal)
			}
		}
	}
	return out
}

func scanPlaceholder(s string) (segment, int, bool) {
	i := len(tokenOpen)
	j := scanDigits(s, i)
	if j == i || j >= len(s) || s[j] != ')' {
		return segment{}, 0, false
	}
	ordinal, err := strconv.Atoi(s[i:j])
	if err != nil {
		return segment{}, 0, false
	}
	return segment{kind: placeholderSegment, raw: s[:j+1], ordinal: ordinal}, j + 1, true
}

// scanConditional takes the earliest `):` that is followed by a well-formed
// condition. The fragment may not contain another token opener.
func scanConditional(s string) (segment, int, bool) {
	for k := len(tokenOpen); k < len(s); k++ {
		if strings.HasPrefix(s[k:], tokenOpen) {
			return segment{}, 0, false
		}
		if !strings.HasPrefix(s[k:], conditionSep) {
			continue
		}

		j := k + len(conditionSep)
		negate := false
		switch {
		case strings.HasPrefix(s[j:], negatedCondition):
			negate = true
			j += len(negatedCondition)
		case strings.HasPrefix(s[j:], "("):
			j++
		default:
			continue
		}

		d := scanDigits(s, j)
		if d == j || d >= len(s) || s[d] != '=' {
			continue
		}
		ordinal, err := strconv.Atoi(s[j:d])
		if err != nil {
			continue
		}

		end := strings.Index(s[d+1:], conditionClose)
		if end < 0 {
			return segment{}, 0, false
		}
		n := d + 1 + end + len(conditionClose)
		return segment{
			kind:     conditionalSegment,
			raw:      s[:n],
			ordinal:  ordinal,
			fragment: s[len(tokenOpen):k],
			negate:   negate,
			value:    s[d+1 : d+1+end],
		}, n, true
	}
	return segment{}, 0, false
}

func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

type fragmentRef struct {
	start, end int
	ordinal    int
}

// fragmentRefs finds every %M in a conditional fragment
func fragmentRefs(fragment string) []fragmentRef {
	var refs []fragmentRef
	for i := 0; i < len(fragment); i++ {
		if fragment[i] != refMarker {
			continue
		}
		j := scanDigits(fragment, i+1)
		if j == i+1 {
			continue
		}
		ordinal, err := strconv.Atoi(fragment[i+1 : j])
		if err != nil {
			continue
		}
		refs = append(refs, fragmentRef{start: i, end: j, ordinal: ordinal})
		i = j - 1
	}
	return refs
}
