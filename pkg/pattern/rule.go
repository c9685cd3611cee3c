package pattern

import (
	"time"

	"github.com/dlclark/regexp2"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
)

// CompiledRule is a compiled pattern with its template and optional assertion.
// It is never modified after construction and is safe for concurrent use.
type CompiledRule struct {
	source string
	expr   string
	regex  *regexp2.Regexp
	groups []GroupSpec

	template  string
	assertion string
	guard     *regexp2.Regexp

	timeout time.Duration
}

func compileHost(expr string, timeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return re, nil
}

// Fill returns a copy of the rule carrying the given template and assertion.
// The assertion is a plain regular expression; an empty one disables the guard.
func (r *CompiledRule) Fill(template, assertion string) (*CompiledRule, error) {
	filled := *r
	filled.template = template
	filled.assertion = assertion
	filled.guard = nil

	if assertion != "" {
		guard, err := compileHost(assertion, r.timeout)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidRegex, "invalid assertion %q", assertion).
				WithDetail(errors.DetailPattern, assertion)
		}
		filled.guard = guard
	}
	return &filled, nil
}

// WithMatchTimeout returns a copy of the rule whose expressions give up after d.
// A zero duration means no limit. Each copy gets its own compiled expressions
// since a regexp2.Regexp shares its runner cache with struct copies.
func (r *CompiledRule) WithMatchTimeout(d time.Duration) (*CompiledRule, error) {
	if d == r.timeout {
		return r, nil
	}
	limited := *r
	limited.timeout = d

	regex, err := compileHost(r.expr, d)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidRegex, "pattern compiles to an invalid expression %q", r.expr).
			WithDetail(errors.DetailPattern, r.source)
	}
	limited.regex = regex

	if r.guard != nil {
		guard, err := compileHost(r.assertion, d)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidRegex, "invalid assertion %q", r.assertion).
				WithDetail(errors.DetailPattern, r.assertion)
		}
		limited.guard = guard
	}
	return &limited, nil
}

// Source returns the pattern text the rule was compiled from
func (r *CompiledRule) Source() string { return r.source }

// Regex returns the generated regular expression
func (r *CompiledRule) Regex() string { return r.expr }

// Template returns the replacement template
func (r *CompiledRule) Template() string { return r.template }

// Assertion returns the assertion expression, empty when the rule has none
func (r *CompiledRule) Assertion() string { return r.assertion }

// MatchTimeout returns the per-match time limit, zero when unlimited
func (r *CompiledRule) MatchTimeout() time.Duration { return r.timeout }

// Matcher returns the compiled host expression. Callers must not modify it.
func (r *CompiledRule) Matcher() *regexp2.Regexp { return r.regex }

// AssertionMatcher returns the compiled assertion, or nil when there is none.
// Callers must not modify it.
func (r *CompiledRule) AssertionMatcher() *regexp2.Regexp { return r.guard }

// Groups returns the group table in source order
func (r *CompiledRule) Groups() []GroupSpec {
	out := make([]GroupSpec, len(r.groups))
	copy(out, r.groups)
	return out
}

// Group looks up the group with the given ordinal
func (r *CompiledRule) Group(ordinal int) (GroupSpec, bool) {
	if ordinal <= 0 {
		return GroupSpec{}, false
	}
	for _, g := range r.groups {
		if g.Ordinal == ordinal && g.Captures() {
			return g, true
		}
	}
	return GroupSpec{}, false
}

// CaptureCount returns the number of numbered groups
func (r *CompiledRule) CaptureCount() int {
	n := 0
	for _, g := range r.groups {
		if g.Captures() {
			n++
		}
	}
	return n
}
