// Package output renders command results as styled text, plain text, JSON or
// YAML.
package output

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
	"github.com/arthur-debert/cmdcorrect/pkg/style"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Printer writes results in one format
type Printer struct {
	w         io.Writer
	format    Format
	templates *template.Template
}

// New returns a printer for w. FormatAuto is resolved against w when it is a
// file and falls back to FormatText otherwise.
func New(w io.Writer, format Format) (*Printer, error) {
	if format == FormatAuto {
		format = FormatText
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	p := &Printer{w: w, format: format}
	tmpl, err := template.New("output").Funcs(p.funcs()).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to parse output templates")
	}
	p.templates = tmpl

	logger := logging.GetLogger("output")
	logger.Debug().Str("format", string(format)).Msg("Created printer")
	return p, nil
}

// Format returns the resolved format
func (p *Printer) Format() Format { return p.format }

func (p *Printer) styled() bool { return p.format == FormatText }

// paint renders s with st in styled output only
func (p *Printer) paint(st lipgloss.Style, s string) string {
	if !p.styled() {
		return s
	}
	return st.Render(s)
}

// markup resolves [tag] markup, or strips it for plain output
func (p *Printer) markup(s string) string {
	if !p.styled() {
		return style.Strip(s)
	}
	return style.Render(s)
}

func (p *Printer) funcs() template.FuncMap {
	return template.FuncMap{
		"command":  func(s string) string { return p.paint(style.CommandStyle, s) },
		"removed":  func(s string) string { return p.paint(style.RemovedStyle, s) },
		"added":    func(s string) string { return p.paint(style.AddedStyle, s) },
		"location": func(s string) string { return p.paint(style.LocationStyle, s) },
		"muted":    func(s string) string { return p.paint(style.MutedStyle, s) },
		"join":     strings.Join,
		"status": func(s style.Status) string {
			if !p.styled() {
				return fmt.Sprintf("%-9s", s)
			}
			return style.RenderStatus(s)
		},
		"caret": func(plain, highlighted string) string {
			if p.styled() && highlighted != "" {
				return highlighted
			}
			return plain
		},
	}
}

// render executes a named template and writes the result after markup
func (p *Printer) render(name string, data interface{}) error {
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to render %s", name)
	}
	_, err := io.WriteString(p.w, p.markup(buf.String()))
	return err
}

// encode writes v as JSON or YAML
func (p *Printer) encode(v interface{}) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Newf(errors.ErrInternal, "format %s is not structured", p.format)
	}
}

// Message prints a one line message
func (p *Printer) Message(msg string) error {
	if p.format.Structured() {
		return p.encode(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(p.w, p.markup(msg))
	return err
}

// Error prints an error together with its code
func (p *Printer) Error(err error) error {
	code := errors.GetErrorCode(err)
	if p.format.Structured() {
		obj := map[string]interface{}{"error": err.Error()}
		if code != "" {
			obj["code"] = string(code)
		}
		if details := errors.GetErrorDetails(err); len(details) > 0 {
			obj["details"] = details
		}
		return p.encode(obj)
	}
	_, werr := fmt.Fprintf(p.w, "%s %s\n", p.paint(style.ErrorStyle, "error:"), err.Error())
	return werr
}
