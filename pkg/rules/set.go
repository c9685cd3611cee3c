package rules

import (
	"fmt"
	"strings"
	"time"

	ac "github.com/petar-dambovaliev/aho-corasick"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
	"github.com/arthur-debert/cmdcorrect/pkg/notify"
	"github.com/arthur-debert/cmdcorrect/pkg/pattern"
	"github.com/arthur-debert/cmdcorrect/pkg/rewrite"
)

// Rule is a definition that compiled successfully
type Rule struct {
	Definition
	Compiled *pattern.CompiledRule

	keywords *ac.AhoCorasick
}

// Rejection is a definition that failed to compile
type Rejection struct {
	Definition Definition `json:"definition" yaml:"definition"`
	Err        error      `json:"-" yaml:"-"`
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%s: %v", r.Definition, r.Err)
}

// Options tune how a set is compiled and applied
type Options struct {
	// MatchTimeout bounds every regex evaluation, zero means no limit
	MatchTimeout time.Duration
	// Extractor removes notification markers, nil means notify.NewExtractor()
	Extractor *notify.Extractor
}

// Set is an ordered list of compiled rules
type Set struct {
	rules     []Rule
	extractor notify.Extractor
}

// Compile compiles defs in order. Disabled definitions are left out silently,
// broken ones are left out and returned as rejections.
func Compile(defs []Definition, opts Options) (*Set, []Rejection) {
	logger := logging.GetLogger("rules.set")
	defer logging.LogOperationStart(logger, "compile rules")()

	set := &Set{extractor: notify.NewExtractor()}
	if opts.Extractor != nil {
		set.extractor = *opts.Extractor
	}

	var rejected []Rejection
	for _, def := range defs {
		if def.Disabled {
			logger.Debug().Str("rule", def.Name).Msg("Skipping disabled rule")
			continue
		}

		rule, err := compileRule(def, opts.MatchTimeout)
		if err != nil {
			ev := logger.Warn().
				Err(err).
				Str("rule", def.String()).
				Str("pattern", def.Pattern)
			if pos, ok := errors.GetPosition(err); ok {
				ev = ev.Int("position", pos)
			}
			ev.Msg("Rule rejected")
			rejected = append(rejected, Rejection{Definition: def, Err: err})
			continue
		}
		set.rules = append(set.rules, rule)
	}

	logger.Info().
		Int("compiled", len(set.rules)).
		Int("rejected", len(rejected)).
		Msg("Rule set compiled")
	return set, rejected
}

func compileRule(def Definition, timeout time.Duration) (Rule, error) {
	if def.Pattern == "" {
		return Rule{}, errors.New(errors.ErrRuleInvalid, "rule has an empty pattern").
			WithDetail("rule", def.Name)
	}

	compiled, err := pattern.CompileRule(def.Pattern, def.Template, def.Assertion)
	if err != nil {
		return Rule{}, err
	}
	if timeout > 0 {
		if compiled, err = compiled.WithMatchTimeout(timeout); err != nil {
			return Rule{}, err
		}
	}

	return Rule{
		Definition: def,
		Compiled:   compiled,
		keywords:   buildKeywords(def.Requires),
	}, nil
}

// buildKeywords returns nil when the rule has no usable keyword
func buildKeywords(requires []string) *ac.AhoCorasick {
	var words []string
	for _, w := range requires {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}

	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		AsciiCaseInsensitive: true,
		MatchKind:            ac.LeftMostLongestMatch,
	})
	built := builder.Build(words)
	return &built
}

// Eligible reports whether the rule's keywords allow it to run on text.
// Leftmost matching reports at least one match whenever any keyword occurs.
func (r Rule) Eligible(text string) bool {
	if r.keywords == nil {
		return true
	}
	return len(r.keywords.FindAll(text)) > 0
}

// Problems lists template references that can never resolve against the
// rule's pattern
func (r Rule) Problems() []string {
	var problems []string
	for _, ord := range rewrite.ParseTemplate(r.Template).Ordinals() {
		if _, ok := r.Compiled.Group(ord); !ok {
			problems = append(problems, fmt.Sprintf("template references group %d, pattern has %d", ord, r.Compiled.CaptureCount()))
		}
	}
	return problems
}

// Apply runs the rule on its own over subject, with the default extractor
func (r Rule) Apply(subject string) Outcome {
	single := Set{rules: []Rule{r}, extractor: notify.NewExtractor()}
	return single.Apply(subject)
}

// Rules returns the compiled rules in application order
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of compiled rules
func (s *Set) Len() int { return len(s.rules) }

// Apply runs every rule over subject in order. Each rule is followed by
// marker extraction, so the next rule never sees a marker.
func (s *Set) Apply(subject string) Outcome {
	out := Outcome{Original: subject}
	text := subject

	for _, r := range s.rules {
		if !r.Eligible(text) {
			out.Skipped++
			continue
		}

		res := rewrite.Apply(r.Compiled, text)
		for _, w := range res.Warnings {
			out.Warnings = append(out.Warnings, RuleWarning{Rule: r.Name, Warning: w})
		}

		n := s.extractor.Extract(res.Text)
		for _, e := range n.Entries {
			out.Notifications = append(out.Notifications, Notice{Rule: r.Name, Entry: e})
		}

		if n.Text != text {
			out.Applied = append(out.Applied, r.Name)
		}
		text = n.Text
	}

	out.Text = text
	out.Changed = text != subject
	return out
}
