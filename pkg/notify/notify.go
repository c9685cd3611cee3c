// Package notify strips inline annotation markers from rewritten commands.
//
// A rule template may contain `;!(message)` markers. They never end up in the
// corrected command; instead each one becomes an Entry pointing at the place it
// was removed from, with a short context window around that place.
package notify

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/cmdcorrect/pkg/style"
)

const (
	markerOpen  = ";!("
	markerClose = ')'

	// DefaultWidth is the number of runes shown on each side of a marker
	DefaultWidth = 20
	// DefaultCaret is inserted into the context where a marker was
	DefaultCaret = ">!<"
)

// Entry is one extracted notification
type Entry struct {
	Highlighted string `json:"-" yaml:"-"`
	Context     string `json:"context" yaml:"context"`
	Message     string `json:"message" yaml:"message"`
	// Position is the rune offset of the marker in the cleaned text
	Position int `json:"position" yaml:"position"`
}

// Notification is the cleaned text together with its entries in marker order
type Notification struct {
	Text    string  `json:"text" yaml:"text"`
	Entries []Entry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// Messages returns the entry messages in order
func (n Notification) Messages() []string {
	out := make([]string, len(n.Entries))
	for i, e := range n.Entries {
		out[i] = e.Message
	}
	return out
}

// Extractor builds notifications with a configurable context window
type Extractor struct {
	Width int
	Caret string
	Style lipgloss.Style
}

// NewExtractor returns an extractor with the default window, caret and style
func NewExtractor() Extractor {
	return Extractor{Width: DefaultWidth, Caret: DefaultCaret, Style: style.CaretStyle}
}

// Extract uses the default extractor
func Extract(text string) Notification {
	return NewExtractor().Extract(text)
}

// Extract removes every marker from text, left to right. Each position is
// taken in the text as it stands once the earlier markers are gone.
func (e Extractor) Extract(text string) Notification {
	type mark struct {
		pos int
		msg string
	}

	var marks []mark
	var cleaned strings.Builder
	cleaned.Grow(len(text))
	runes := 0

	rest := text
	for {
		i := strings.Index(rest, markerOpen)
		if i < 0 {
			break
		}
		end := closingParen(rest[i+len(markerOpen):])
		if end < 0 {
			break
		}

		cleaned.WriteString(rest[:i])
		runes += len([]rune(rest[:i]))
		marks = append(marks, mark{
			pos: runes,
			msg: rest[i+len(markerOpen) : i+len(markerOpen)+end],
		})
		rest = rest[i+len(markerOpen)+end+1:]
	}
	cleaned.WriteString(rest)

	n := Notification{Text: cleaned.String()}
	if len(marks) == 0 {
		return n
	}

	chars := []rune(n.Text)
	caret := e.Caret
	highlighted := e.Style.Render(caret)
	for _, m := range marks {
		before, after := e.window(chars, m.pos)
		n.Entries = append(n.Entries, Entry{
			Highlighted: before + highlighted + after,
			Context:     before + caret + after,
			Message:     m.msg,
			Position:    m.pos,
		})
	}
	return n
}

// closingParen returns the index of the ')' that closes a marker body, counting
// nested parentheses, or -1 when the body is never closed
func closingParen(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case markerClose:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// window returns up to Width runes on either side of pos, clipped to the text
func (e Extractor) window(chars []rune, pos int) (string, string) {
	width := e.Width
	if width < 0 {
		width = 0
	}
	start := pos - width
	if start < 0 {
		start = 0
	}
	end := pos + width
	if end > len(chars) {
		end = len(chars)
	}
	return string(chars[start:pos]), string(chars[pos:end])
}
