package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with named styles
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   make(map[string]lipgloss.Style),
		patterns: make(map[string]*regexp.Regexp),
	}
	for tag, style := range map[string]lipgloss.Style{
		"title":    TitleStyle,
		"subtitle": SubtitleStyle,
		"success":  SuccessStyle,
		"error":    ErrorStyle,
		"warning":  WarningStyle,
		"info":     InfoStyle,
		"muted":    MutedStyle,
		"code":     CodeStyle,
		"command":  CommandStyle,
		"removed":  RemovedStyle,
		"added":    AddedStyle,
		"location": LocationStyle,
		"caret":    CaretStyle,
		"bold":     lipgloss.NewStyle().Bold(true),
		"italic":   lipgloss.NewStyle().Italic(true),
	} {
		p.AddStyle(tag, style)
	}
	return p
}

// Render processes markup text and returns styled output.
// Nested tags are resolved innermost first; content may hold ANSI
// sequences from an earlier pass but no other '['.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		before := result
		for tag, pattern := range p.patterns {
			style := p.styles[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				sub := pattern.FindStringSubmatch(match)
				if len(sub) != 2 {
					return match
				}
				return style.Render(sub[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// Strip removes markup tags without styling
func (p *MarkupParser) Strip(text string) string {
	for tag := range p.styles {
		text = strings.ReplaceAll(text, "["+tag+"]", "")
		text = strings.ReplaceAll(text, "[/"+tag+"]", "")
	}
	return text
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
	quoted := regexp.QuoteMeta(tag)
	p.patterns[tag] = regexp.MustCompile(`\[` + quoted + `\]((?:[^\[]|\x1b\[)*?)\[/` + quoted + `\]`)
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
