package pattern

import "fmt"

// GroupKind identifies what a group segment compiles into
type GroupKind int

const (
	// Capturing groups substitute their raw captured text
	Capturing GroupKind = iota
	// NonCapturing groups are tracked for bookkeeping only and have no ordinal
	NonCapturing
	// Alternation groups substitute the canonical value of the matched clause
	Alternation
)

func (k GroupKind) String() string {
	switch k {
	case Capturing:
		return "capturing"
	case NonCapturing:
		return "non-capturing"
	case Alternation:
		return "alternation"
	default:
		return fmt.Sprintf("GroupKind(%d)", int(k))
	}
}

// Span is a half-open byte range [Start, End)
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int { return s.End - s.Start }

// Slice returns the part of text covered by the span
func (s Span) Slice(text string) string {
	if s.Start < 0 || s.End > len(text) || s.Start > s.End {
		return ""
	}
	return text[s.Start:s.End]
}

// GroupSpec describes one group of a compiled pattern.
//
// DSLSpan addresses the group in the pattern source, RegexSpan addresses the same
// group in the generated expression. Ordinal is zero for non-capturing groups.
type GroupSpec struct {
	Ordinal   int       `json:"ordinal" yaml:"ordinal"`
	Kind      GroupKind `json:"kind" yaml:"kind"`
	DSLSpan   Span      `json:"dsl_span" yaml:"dsl_span"`
	RegexSpan Span      `json:"regex_span" yaml:"regex_span"`
}

// Delta is the length difference between generated and source text
// accumulated up to the start of this group.
func (g GroupSpec) Delta() int {
	return g.RegexSpan.Start - g.DSLSpan.Start
}

// Captures reports whether the group produces a numbered capture
func (g GroupSpec) Captures() bool {
	return g.Kind != NonCapturing
}
