package rewrite

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/arthur-debert/cmdcorrect/pkg/logging"
	"github.com/arthur-debert/cmdcorrect/pkg/pattern"
)

// WarningKind classifies a rewrite warning
type WarningKind string

const (
	// UnresolvedOrdinal means a template token named a group with no capture in the match
	UnresolvedOrdinal WarningKind = "unresolved_ordinal"
	// MatchTimeout means the regex engine gave up; the subject is left unchanged
	MatchTimeout WarningKind = "match_timeout"
)

// Warning is a non-fatal problem found while rewriting
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Ordinal int         `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
	Offset  int         `json:"offset" yaml:"offset"`
	Message string      `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at %d: %s", w.Kind, w.Offset, w.Message)
}

// Span is a half-open rune range [Start, End)
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Edit records one replaced match. Original addresses the subject, Rewritten
// addresses the result text.
type Edit struct {
	Original    Span   `json:"original" yaml:"original"`
	Rewritten   Span   `json:"rewritten" yaml:"rewritten"`
	Matched     string `json:"matched" yaml:"matched"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// Result is the detailed outcome of applying one rule to one subject
type Result struct {
	Text     string    `json:"text" yaml:"text"`
	Changed  bool      `json:"changed" yaml:"changed"`
	Asserted bool      `json:"asserted,omitempty" yaml:"asserted,omitempty"`
	Edits    []Edit    `json:"edits,omitempty" yaml:"edits,omitempty"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Rewrite applies rule to subject and returns the rewritten text
func Rewrite(rule *pattern.CompiledRule, subject string) string {
	return Apply(rule, subject).Text
}

// Apply applies rule to subject.
//
// A matching assertion returns the subject untouched. Otherwise every
// non-overlapping match, left to right, is replaced by an instance of the
// rule's template.
func Apply(rule *pattern.CompiledRule, subject string) Result {
	logger := logging.GetLogger("rewrite")
	result := Result{Text: subject}

	if guard := rule.AssertionMatcher(); guard != nil {
		asserted, err := guard.MatchString(subject)
		if err != nil {
			result.Warnings = append(result.Warnings, timeoutWarning(0, err))
			logger.Warn().Err(err).Str("assertion", rule.Assertion()).Msg("Assertion timed out")
			return result
		}
		if asserted {
			result.Asserted = true
			return result
		}
	}

	tmpl := ParseTemplate(rule.Template())
	runes := []rune(subject)

	var out strings.Builder
	out.Grow(len(subject))

	var edits []Edit
	var warnings []Warning
	last, delta := 0, 0

	m, err := rule.Matcher().FindStringMatch(subject)
	for err == nil && m != nil {
		inst := instance{rule: rule, match: m}
		replacement := inst.render(tmpl)
		warnings = append(warnings, inst.warnings...)

		out.WriteString(string(runes[last:m.Index]))
		out.WriteString(replacement)

		n := utf8.RuneCountInString(replacement)
		edits = append(edits, Edit{
			Original:    Span{Start: m.Index, End: m.Index + m.Length},
			Rewritten:   Span{Start: m.Index + delta, End: m.Index + delta + n},
			Matched:     m.String(),
			Replacement: replacement,
		})
		delta += n - m.Length
		last = m.Index + m.Length

		m, err = rule.Matcher().FindNextMatch(m)
	}

	if err != nil {
		result.Warnings = append(warnings, timeoutWarning(last, err))
		logger.Warn().Err(err).Str("pattern", rule.Source()).Msg("Match timed out, subject left unchanged")
		return result
	}

	out.WriteString(string(runes[last:]))

	result.Text = out.String()
	result.Changed = result.Text != subject
	result.Edits = edits
	result.Warnings = warnings

	if len(warnings) > 0 {
		logger.Debug().
			Str("pattern", rule.Source()).
			Int("warnings", len(warnings)).
			Msg("Rewrite finished with warnings")
	}
	return result
}

func timeoutWarning(offset int, err error) Warning {
	return Warning{Kind: MatchTimeout, Offset: offset, Message: err.Error()}
}

// instance renders the template for a single match
type instance struct {
	rule     *pattern.CompiledRule
	match    *regexp2.Match
	warnings []Warning
}

func (in *instance) render(tmpl Template) string {
	var sb strings.Builder
	for _, seg := range tmpl.segments {
		switch seg.kind {
		case literalSegment:
			sb.WriteString(seg.raw)

		case placeholderSegment:
			value, ok := in.value(seg.ordinal)
			if !ok {
				in.unresolved(seg.ordinal, seg.raw)
				sb.WriteString(seg.raw)
				continue
			}
			sb.WriteString(value)

		case conditionalSegment:
			captured, ok := in.capture(seg.ordinal)
			if !ok {
				in.unresolved(seg.ordinal, seg.raw)
				sb.WriteString(seg.raw)
				continue
			}
			if (captured == seg.value) != seg.negate {
				sb.WriteString(in.expand(seg.fragment))
			}
		}
	}
	return sb.String()
}

// expand replaces each %M in a kept fragment
func (in *instance) expand(fragment string) string {
	refs := fragmentRefs(fragment)
	if len(refs) == 0 {
		return fragment
	}

	var sb strings.Builder
	last := 0
	for _, ref := range refs {
		sb.WriteString(fragment[last:ref.start])
		value, ok := in.value(ref.ordinal)
		if !ok {
			in.unresolved(ref.ordinal, fragment[ref.start:ref.end])
			value = fragment[ref.start:ref.end]
		}
		sb.WriteString(value)
		last = ref.end
	}
	sb.WriteString(fragment[last:])
	return sb.String()
}

// capture returns the raw text of a participating group
func (in *instance) capture(ordinal int) (string, bool) {
	if _, ok := in.rule.Group(ordinal); !ok {
		return "", false
	}
	g := in.match.GroupByNumber(ordinal)
	if g == nil || len(g.Captures) == 0 {
		return "", false
	}
	return g.String(), true
}

// value is the substitution text: the raw capture, or the canonical value
// of the matched clause for alternations
func (in *instance) value(ordinal int) (string, bool) {
	captured, ok := in.capture(ordinal)
	if !ok {
		return "", false
	}
	spec, _ := in.rule.Group(ordinal)
	if spec.Kind != pattern.Alternation {
		return captured, true
	}
	if canonical, found := in.rule.Canonical(ordinal, captured); found {
		return canonical, true
	}
	return captured, true
}

func (in *instance) unresolved(ordinal int, token string) {
	in.warnings = append(in.warnings, Warning{
		Kind:    UnresolvedOrdinal,
		Ordinal: ordinal,
		Offset:  in.match.Index,
		Message: fmt.Sprintf("%s refers to group %d which did not capture", token, ordinal),
	})
}
