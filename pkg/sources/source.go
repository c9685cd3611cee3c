// Package sources reads commands out of files and writes corrected commands
// back into them, leaving everything else in the file as it was.
package sources

import (
	"path/filepath"
	"strings"
)

// Subject is one command together with where it was found
type Subject struct {
	// Location is a human readable position inside the source
	Location string `json:"location" yaml:"location"`
	Command  string `json:"command" yaml:"command"`
	// Index identifies the command slot inside the source for Write
	Index int `json:"-" yaml:"-"`
}

// Source is a file holding commands
type Source interface {
	Name() string
	Subjects() ([]Subject, error)
	// Write stores the commands of updated into their slots. Slots not named
	// by updated keep their content.
	Write(updated []Subject) error
}

// Open picks the source type from the file extension
func Open(path string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return NewXMLFile(path)
	default:
		return NewTextFile(path)
	}
}

// OpenAll opens every path in order
func OpenAll(paths []string) []Source {
	out := make([]Source, 0, len(paths))
	for _, p := range paths {
		out = append(out, Open(p))
	}
	return out
}
