package sources

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
)

// CommandBlockTag is the element holding one command in an XML export
const CommandBlockTag = "commandblock"

// XMLFile is an export of command blocks:
//
//	<world>
//	  <commandblock x="1" y="64" z="-3">say hi</commandblock>
//	</world>
//
// Elements may sit at any depth. The location is built from the x, y and z
// attributes.
type XMLFile struct {
	path string
}

// NewXMLFile returns an XML source for path
func NewXMLFile(path string) *XMLFile {
	return &XMLFile{path: path}
}

// Name returns the file path
func (f *XMLFile) Name() string { return f.path }

// Subjects returns the text of every command block in document order
func (f *XMLFile) Subjects() ([]Subject, error) {
	_, blocks, err := f.read()
	if err != nil {
		return nil, err
	}

	subjects := make([]Subject, 0, len(blocks))
	for i, el := range blocks {
		subjects = append(subjects, Subject{
			Location: blockLocation(el, i),
			Command:  strings.TrimSpace(el.Text()),
			Index:    i,
		})
	}

	logger := logging.GetLogger("sources.xml")
	logger.Debug().
		Str("path", f.path).
		Int("commands", len(subjects)).
		Msg("Read xml source")
	return subjects, nil
}

// Write sets the text of the command blocks named by updated
func (f *XMLFile) Write(updated []Subject) error {
	doc, blocks, err := f.read()
	if err != nil {
		return err
	}

	for _, s := range updated {
		if s.Index < 0 || s.Index >= len(blocks) {
			return errors.Newf(errors.ErrSourceWrite, "command block %d is outside %s", s.Index, f.path).
				WithDetail("path", f.path)
		}
		blocks[s.Index].SetText(s.Command)
	}

	if err := doc.WriteToFile(f.path); err != nil {
		return errors.Wrapf(err, errors.ErrSourceWrite, "failed to write %s", f.path).
			WithDetail("path", f.path)
	}
	return nil
}

func (f *XMLFile) read() (*etree.Document, []*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(f.path); err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrSourceRead, "failed to read %s", f.path).
			WithDetail("path", f.path)
	}
	return doc, doc.FindElements("//" + CommandBlockTag), nil
}

func blockLocation(el *etree.Element, i int) string {
	x := el.SelectAttrValue("x", "")
	y := el.SelectAttrValue("y", "")
	z := el.SelectAttrValue("z", "")
	if x == "" && y == "" && z == "" {
		return fmt.Sprintf("block #%d", i+1)
	}
	return fmt.Sprintf("%s %s %s", x, y, z)
}
