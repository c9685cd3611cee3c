package rules

import (
	"fmt"

	"github.com/arthur-debert/cmdcorrect/pkg/notify"
	"github.com/arthur-debert/cmdcorrect/pkg/rewrite"
)

// Definition is a rule as written by the user
type Definition struct {
	Name      string `koanf:"name" json:"name" yaml:"name"`
	Pattern   string `koanf:"pattern" json:"pattern" yaml:"pattern"`
	Template  string `koanf:"template" json:"template" yaml:"template"`
	Assertion string `koanf:"assertion" json:"assertion,omitempty" yaml:"assertion,omitempty"`
	// Requires lists keywords of which at least one must occur in the
	// subject for the rule to run. Matching ignores ASCII case.
	Requires []string `koanf:"requires" json:"requires,omitempty" yaml:"requires,omitempty"`
	Disabled bool     `koanf:"disabled" json:"disabled,omitempty" yaml:"disabled,omitempty"`

	// Origin is where the definition was read from, "file:line" for legacy files
	Origin string `koanf:"-" json:"origin,omitempty" yaml:"origin,omitempty"`
}

// String names the definition for logs and reports
func (d Definition) String() string {
	if d.Origin == "" {
		return d.Name
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Origin)
}

// Notice is a notification entry raised by a named rule
type Notice struct {
	Rule         string `json:"rule" yaml:"rule"`
	notify.Entry `yaml:",inline"`
}

// RuleWarning is a rewrite warning raised by a named rule
type RuleWarning struct {
	Rule            string `json:"rule" yaml:"rule"`
	rewrite.Warning `yaml:",inline"`
}

// Outcome is the result of running a whole rule set over one subject
type Outcome struct {
	Original string `json:"original" yaml:"original"`
	Text     string `json:"text" yaml:"text"`
	Changed  bool   `json:"changed" yaml:"changed"`
	// Applied names the rules that changed the text, in application order
	Applied       []string      `json:"applied,omitempty" yaml:"applied,omitempty"`
	Skipped       int           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Notifications []Notice      `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	Warnings      []RuleWarning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
