package output

import (
	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/cmdcorrect/pkg/logging"
)

// MarkdownRenderer renders markdown for the terminal
type MarkdownRenderer struct {
	Style string // "auto", a glamour standard style name or a path to a style file
	Width int    // word wrap, 0 keeps glamour's default
}

// NewMarkdownRenderer returns a renderer that detects the terminal background
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{Style: "auto"}
}

// Render returns content rendered by glamour, or content itself if glamour
// fails
func (r *MarkdownRenderer) Render(content string) string {
	var options []glamour.TermRendererOption

	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}

	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		logger := logging.GetLogger("output.markdown")
		logger.Debug().Err(err).Msg("Falling back to raw markdown")
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		logger := logging.GetLogger("output.markdown")
		logger.Debug().Err(err).Msg("Falling back to raw markdown")
		return content
	}
	return rendered
}
