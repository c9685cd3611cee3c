package corrector

import (
	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/journal"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
	"github.com/arthur-debert/cmdcorrect/pkg/sources"
)

// Conflict is a journaled command that no longer holds the corrected text
type Conflict struct {
	journal.Correction `yaml:",inline"`
	Current            string `json:"current" yaml:"current"`
}

// UndoReport summarizes an undo
type UndoReport struct {
	Batch     string        `json:"batch" yaml:"batch"`
	Restored  int           `json:"restored" yaml:"restored"`
	Conflicts []Conflict    `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Errors    []SourceError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Undo restores the commands of the newest journal batch. A command that was
// edited since the batch is left alone and reported as a conflict. The batch
// leaves the journal once every source was written.
func Undo(j *journal.Journal, open func(path string) sources.Source) (*UndoReport, error) {
	logger := logging.GetLogger("corrector.undo")
	defer logging.LogOperationStart(logger, "undo")()

	batch, err := j.Last()
	if err != nil {
		return nil, err
	}
	if open == nil {
		open = sources.Open
	}

	report := &UndoReport{Batch: batch.ID}

	var order []string
	bySource := map[string][]journal.Correction{}
	for _, c := range batch.Corrections {
		if _, ok := bySource[c.Source]; !ok {
			order = append(order, c.Source)
		}
		bySource[c.Source] = append(bySource[c.Source], c)
	}

	for _, name := range order {
		src := open(name)
		subjects, err := src.Subjects()
		if err != nil {
			report.addError(name, err)
			continue
		}
		current := make(map[int]string, len(subjects))
		for _, s := range subjects {
			current[s.Index] = s.Command
		}

		var restore []sources.Subject
		for _, c := range bySource[name] {
			now, ok := current[c.Index]
			if !ok || now != c.After {
				report.Conflicts = append(report.Conflicts, Conflict{Correction: c, Current: now})
				continue
			}
			restore = append(restore, sources.Subject{Location: c.Location, Command: c.Before, Index: c.Index})
		}
		if len(restore) == 0 {
			continue
		}
		if err := src.Write(restore); err != nil {
			report.addError(name, err)
			continue
		}
		report.Restored += len(restore)
	}

	if len(report.Errors) > 0 {
		return report, errors.Newf(errors.ErrSourceWrite, "undo of batch %s incomplete, journal kept", batch.ID)
	}
	if _, err := j.Pop(); err != nil {
		return report, err
	}

	logger.Info().
		Str("batch", batch.ID).
		Int("restored", report.Restored).
		Int("conflicts", len(report.Conflicts)).
		Msg("Undo finished")
	return report, nil
}

func (r *UndoReport) addError(source string, err error) {
	r.Errors = append(r.Errors, SourceError{Source: source, Err: err, Message: err.Error()})
}
