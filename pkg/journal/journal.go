// Package journal keeps a history of applied corrections so the latest batch
// can be undone. The history is a TOML document with one [[batch]] table per
// run that changed something.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
)

// DefaultKeep is how many batches are retained before the oldest are dropped
const DefaultKeep = 50

// Correction is one rewritten command
type Correction struct {
	Source   string `toml:"source" json:"source" yaml:"source"`
	Location string `toml:"location" json:"location" yaml:"location"`
	Index    int    `toml:"index" json:"index" yaml:"index"`
	Before   string `toml:"before" json:"before" yaml:"before"`
	After    string `toml:"after" json:"after" yaml:"after"`
}

// Batch groups the corrections of one run
type Batch struct {
	ID          string       `toml:"id" json:"id" yaml:"id"`
	Time        time.Time    `toml:"time" json:"time" yaml:"time"`
	Corrections []Correction `toml:"corrections" json:"corrections" yaml:"corrections"`
}

type document struct {
	Batches []Batch `toml:"batch"`
}

// Journal is a batch history stored at a path
type Journal struct {
	path string
	keep int
	now  func() time.Time
}

// New returns a journal stored at path
func New(path string) *Journal {
	return &Journal{path: path, keep: DefaultKeep, now: time.Now}
}

// Path returns where the journal is stored
func (j *Journal) Path() string { return j.path }

// Batches returns every recorded batch, oldest first. A missing file is an
// empty journal.
func (j *Journal) Batches() ([]Batch, error) {
	data, err := os.ReadFile(j.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrJournalRead, "failed to read journal %s", j.path)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrJournalRead, "failed to parse journal %s", j.path).
			WithDetail("path", j.path)
	}
	return doc.Batches, nil
}

// Record appends a batch, filling in its ID and time, and returns it
func (j *Journal) Record(corrections []Correction) (Batch, error) {
	logger := logging.GetLogger("journal")

	batches, err := j.Batches()
	if err != nil {
		return Batch{}, err
	}

	now := j.now().UTC().Truncate(time.Millisecond)
	batch := Batch{
		ID:          fmt.Sprintf("%s-%d", now.Format("20060102-150405"), len(batches)+1),
		Time:        now,
		Corrections: corrections,
	}
	batches = append(batches, batch)
	if j.keep > 0 && len(batches) > j.keep {
		batches = batches[len(batches)-j.keep:]
	}

	if err := j.save(batches); err != nil {
		return Batch{}, err
	}

	logger.Info().
		Str("batch", batch.ID).
		Int("corrections", len(corrections)).
		Msg("Recorded batch")
	return batch, nil
}

// Last returns the newest batch
func (j *Journal) Last() (Batch, error) {
	batches, err := j.Batches()
	if err != nil {
		return Batch{}, err
	}
	if len(batches) == 0 {
		return Batch{}, errors.New(errors.ErrJournalEmpty, "nothing to undo")
	}
	return batches[len(batches)-1], nil
}

// Pop removes the newest batch and returns it
func (j *Journal) Pop() (Batch, error) {
	batches, err := j.Batches()
	if err != nil {
		return Batch{}, err
	}
	if len(batches) == 0 {
		return Batch{}, errors.New(errors.ErrJournalEmpty, "nothing to undo")
	}

	last := batches[len(batches)-1]
	if err := j.save(batches[:len(batches)-1]); err != nil {
		return Batch{}, err
	}
	return last, nil
}

// save writes the whole document through a temp file in the same directory
func (j *Journal) save(batches []Batch) error {
	data, err := toml.Marshal(document{Batches: batches})
	if err != nil {
		return errors.Wrap(err, errors.ErrJournalWrite, "failed to encode journal")
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrJournalWrite, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".journal-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrJournalWrite, "failed to create temp file in %s", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, errors.ErrJournalWrite, "failed to write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrJournalWrite, "failed to write %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return errors.Wrapf(err, errors.ErrJournalWrite, "failed to replace %s", j.path)
	}
	return nil
}
