package sources

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
)

// TextFile holds one command per line. Blank lines and lines starting with
// '#' are not commands and are written back untouched. A leading '/' is kept
// as part of the command.
type TextFile struct {
	path string
}

// NewTextFile returns a text source for path
func NewTextFile(path string) *TextFile {
	return &TextFile{path: path}
}

// Name returns the file path
func (f *TextFile) Name() string { return f.path }

// Subjects returns every command line
func (f *TextFile) Subjects() ([]Subject, error) {
	lines, _, err := f.read()
	if err != nil {
		return nil, err
	}

	var subjects []Subject
	for i, line := range lines {
		if isCommandLine(line) {
			subjects = append(subjects, Subject{
				Location: fmt.Sprintf("line %d", i+1),
				Command:  line,
				Index:    i,
			})
		}
	}

	logger := logging.GetLogger("sources.text")
	logger.Debug().
		Str("path", f.path).
		Int("commands", len(subjects)).
		Msg("Read text source")
	return subjects, nil
}

// Write replaces the lines named by updated
func (f *TextFile) Write(updated []Subject) error {
	lines, endings, err := f.read()
	if err != nil {
		return err
	}

	for _, s := range updated {
		if s.Index < 0 || s.Index >= len(lines) {
			return errors.Newf(errors.ErrSourceWrite, "line %d is outside %s", s.Index+1, f.path).
				WithDetail("path", f.path)
		}
		if strings.ContainsAny(s.Command, "\r\n") {
			return errors.Newf(errors.ErrSourceWrite, "command for line %d spans several lines", s.Index+1).
				WithDetail("path", f.path)
		}
		lines[s.Index] = s.Command
	}

	var content strings.Builder
	for i, line := range lines {
		content.WriteString(line)
		content.WriteString(endings[i])
	}

	info, err := os.Stat(f.path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceWrite, "failed to stat %s", f.path)
	}
	if err := os.WriteFile(f.path, []byte(content.String()), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrSourceWrite, "failed to write %s", f.path).
			WithDetail("path", f.path)
	}
	return nil
}

// read splits the file into lines and returns the line ending that followed
// each one, empty for a last line without a newline
func (f *TextFile) read() ([]string, []string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrSourceRead, "failed to read %s", f.path).
			WithDetail("path", f.path)
	}

	var lines, endings []string
	rest := string(data)
	for rest != "" {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			lines = append(lines, rest)
			endings = append(endings, "")
			break
		}
		line, eol := rest[:i], "\n"
		if strings.HasSuffix(line, "\r") {
			line, eol = line[:len(line)-1], "\r\n"
		}
		lines = append(lines, line)
		endings = append(endings, eol)
		rest = rest[i+1:]
	}
	return lines, endings, nil
}

func isCommandLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}
