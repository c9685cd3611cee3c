package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/cmdcorrect/pkg/rules"
)

// GroupRow describes one group of a compiled pattern
type GroupRow struct {
	Ordinal int    `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
	Kind    string `json:"kind" yaml:"kind"`
	Source  string `json:"source" yaml:"source"`
	Regex   string `json:"regex" yaml:"regex"`
	Delta   int    `json:"delta" yaml:"delta"`
}

// Explanation is what a rule compiles into
type Explanation struct {
	Name      string         `json:"name" yaml:"name"`
	Pattern   string         `json:"pattern" yaml:"pattern"`
	Regex     string         `json:"regex" yaml:"regex"`
	Template  string         `json:"template,omitempty" yaml:"template,omitempty"`
	Assertion string         `json:"assertion,omitempty" yaml:"assertion,omitempty"`
	Groups    []GroupRow     `json:"groups,omitempty" yaml:"groups,omitempty"`
	Problems  []string       `json:"problems,omitempty" yaml:"problems,omitempty"`
	Example   *rules.Outcome `json:"example,omitempty" yaml:"example,omitempty"`
}

// Explain describes a compiled rule. A non-empty subject is run through the
// rule as an example.
func Explain(rule rules.Rule, subject string) Explanation {
	c := rule.Compiled
	e := Explanation{
		Name:      rule.Name,
		Pattern:   c.Source(),
		Regex:     c.Regex(),
		Template:  c.Template(),
		Assertion: c.Assertion(),
		Problems:  rule.Problems(),
	}
	for _, g := range c.Groups() {
		e.Groups = append(e.Groups, GroupRow{
			Ordinal: g.Ordinal,
			Kind:    g.Kind.String(),
			Source:  g.DSLSpan.Slice(c.Source()),
			Regex:   g.RegexSpan.Slice(c.Regex()),
			Delta:   g.Delta(),
		})
	}
	if subject != "" {
		out := rule.Apply(subject)
		e.Example = &out
	}
	return e
}

// Markdown writes the explanation as a markdown document
func (e Explanation) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Rule %s\n\n", e.Name)
	writeBlock(&b, "Pattern", e.Pattern)
	writeBlock(&b, "Compiled regex", e.Regex)
	if e.Template != "" {
		writeBlock(&b, "Template", e.Template)
	}
	if e.Assertion != "" {
		writeBlock(&b, "Assertion", e.Assertion)
	}

	if len(e.Groups) > 0 {
		b.WriteString("## Groups\n\n")
		b.WriteString("| # | kind | source | regex |\n|---|---|---|---|\n")
		for _, g := range e.Groups {
			ord := "-"
			if g.Ordinal > 0 {
				ord = fmt.Sprint(g.Ordinal)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", ord, g.Kind, cell(g.Source), cell(g.Regex))
		}
		b.WriteString("\n")
	}

	if len(e.Problems) > 0 {
		b.WriteString("## Problems\n\n")
		for _, p := range e.Problems {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	if e.Example != nil {
		b.WriteString("## Example\n\n")
		writeBlock(&b, "Subject", e.Example.Original)
		writeBlock(&b, "Result", e.Example.Text)
		for _, n := range e.Example.Notifications {
			fmt.Fprintf(&b, "- notification: %s at %d\n", n.Message, n.Position)
		}
		for _, w := range e.Example.Warnings {
			fmt.Fprintf(&b, "- warning: %s\n", w.Warning.String())
		}
	}
	return b.String()
}

// Explain prints an explanation; styled output goes through glamour
func (p *Printer) Explain(e Explanation) error {
	if p.format.Structured() {
		return p.encode(e)
	}

	md := e.Markdown()
	if p.styled() {
		md = NewMarkdownRenderer().Render(md)
	}
	_, err := io.WriteString(p.w, md)
	return err
}

func writeBlock(b *strings.Builder, title, body string) {
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	fmt.Fprintf(b, "**%s**\n\n%s\n%s\n%s\n\n", title, fence, body, fence)
}

// cell renders s as a code span that is safe inside a table row
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	tick := "`"
	for strings.Contains(s, tick) {
		tick += "`"
	}
	return tick + " " + s + " " + tick
}
