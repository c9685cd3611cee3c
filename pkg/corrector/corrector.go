package corrector

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/arthur-debert/cmdcorrect/pkg/journal"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
	"github.com/arthur-debert/cmdcorrect/pkg/rules"
	"github.com/arthur-debert/cmdcorrect/pkg/sources"
)

// Options configure a correction run
type Options struct {
	Sources []sources.Source
	Rules   *rules.Set
	// DryRun computes the report without touching sources or the journal
	DryRun bool
	// Workers bounds concurrent rewriting, values below one mean NumCPU
	Workers int
	// Journal records the batch, nil disables undo history
	Journal *journal.Journal
}

// Finding is the outcome for one command that changed, notified or warned
type Finding struct {
	Source   string `json:"source" yaml:"source"`
	Location string `json:"location" yaml:"location"`
	rules.Outcome `yaml:",inline"`
}

// SourceError is a source that could not be processed
type SourceError struct {
	Source string `json:"source" yaml:"source"`
	Err    error  `json:"-" yaml:"-"`
	// Message mirrors Err for serialized reports
	Message string `json:"error" yaml:"error"`
}

// RuleCount is how many commands one rule changed
type RuleCount struct {
	Rule  string `json:"rule" yaml:"rule"`
	Count int    `json:"count" yaml:"count"`
}

// Report summarizes a run
type Report struct {
	DryRun   bool          `json:"dry_run" yaml:"dry_run"`
	Sources  int           `json:"sources" yaml:"sources"`
	Found    int           `json:"found" yaml:"found"`
	Changed  int           `json:"changed" yaml:"changed"`
	Notified int           `json:"notified" yaml:"notified"`
	PerRule  []RuleCount   `json:"per_rule,omitempty" yaml:"per_rule,omitempty"`
	Findings []Finding     `json:"findings,omitempty" yaml:"findings,omitempty"`
	Errors   []SourceError `json:"errors,omitempty" yaml:"errors,omitempty"`
	Batch    string        `json:"batch,omitempty" yaml:"batch,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

type job struct {
	source  int
	subject sources.Subject
}

// Run corrects every source. It only returns an error when ctx is done; per
// source failures end up in Report.Errors.
func Run(ctx context.Context, opts Options) (*Report, error) {
	logger := logging.GetLogger("corrector")
	start := time.Now()

	report := &Report{DryRun: opts.DryRun, Sources: len(opts.Sources)}

	var jobs []job
	for i, src := range opts.Sources {
		subjects, err := src.Subjects()
		if err != nil {
			report.addError(src.Name(), err)
			logger.Warn().Err(err).Str("source", src.Name()).Msg("Skipping unreadable source")
			continue
		}
		for _, s := range subjects {
			jobs = append(jobs, job{source: i, subject: s})
		}
	}
	report.Found = len(jobs)

	outcomes, err := apply(ctx, opts.Rules, jobs, opts.Workers)
	if err != nil {
		return nil, err
	}

	perRule := map[string]int{}
	updates := make(map[int][]sources.Subject)
	var corrections []journal.Correction

	for i, out := range outcomes {
		j := jobs[i]
		name := opts.Sources[j.source].Name()

		if out.Changed {
			report.Changed++
			for _, r := range out.Applied {
				perRule[r]++
			}
			updated := j.subject
			updated.Command = out.Text
			updates[j.source] = append(updates[j.source], updated)
			corrections = append(corrections, journal.Correction{
				Source:   name,
				Location: j.subject.Location,
				Index:    j.subject.Index,
				Before:   out.Original,
				After:    out.Text,
			})
		}
		if len(out.Notifications) > 0 {
			report.Notified++
		}
		if out.Changed || len(out.Notifications) > 0 || len(out.Warnings) > 0 {
			report.Findings = append(report.Findings, Finding{
				Source:   name,
				Location: j.subject.Location,
				Outcome:  out,
			})
		}
	}
	report.PerRule = sortCounts(perRule)

	if !opts.DryRun && len(corrections) > 0 {
		written := writeBack(opts.Sources, updates, report)
		corrections = keepWritten(corrections, written)

		if opts.Journal != nil && len(corrections) > 0 {
			batch, err := opts.Journal.Record(corrections)
			if err != nil {
				report.addError(opts.Journal.Path(), err)
				logger.Error().Err(err).Msg("Failed to record undo journal")
			} else {
				report.Batch = batch.ID
			}
		}
	}

	report.Duration = time.Since(start)
	logger.Info().
		Int("sources", report.Sources).
		Int("found", report.Found).
		Int("changed", report.Changed).
		Bool("dry_run", opts.DryRun).
		Dur("duration", report.Duration).
		Msg("Correction run finished")
	return report, nil
}

// apply runs the set over every job. Outcomes are indexed like jobs.
func apply(ctx context.Context, set *rules.Set, jobs []job, workers int) ([]rules.Outcome, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	outcomes := make([]rules.Outcome, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				outcomes[i] = set.Apply(jobs[i].subject.Command)
			}
		}()
	}

	var err error
feed:
	for i := range jobs {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return outcomes, nil
}

// writeBack stores the updates per source and returns the names written
func writeBack(srcs []sources.Source, updates map[int][]sources.Subject, report *Report) map[string]bool {
	logger := logging.GetLogger("corrector")
	written := map[string]bool{}

	for i, subjects := range updates {
		src := srcs[i]
		if err := src.Write(subjects); err != nil {
			report.addError(src.Name(), err)
			logger.Error().Err(err).Str("source", src.Name()).Msg("Failed to write source")
			continue
		}
		written[src.Name()] = true
		logger.Debug().Str("source", src.Name()).Int("commands", len(subjects)).Msg("Wrote source")
	}
	return written
}

func keepWritten(corrections []journal.Correction, written map[string]bool) []journal.Correction {
	kept := corrections[:0]
	for _, c := range corrections {
		if written[c.Source] {
			kept = append(kept, c)
		}
	}
	return kept
}

func sortCounts(counts map[string]int) []RuleCount {
	out := make([]RuleCount, 0, len(counts))
	for r, n := range counts {
		out = append(out, RuleCount{Rule: r, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Rule < out[j].Rule
	})
	return out
}

func (r *Report) addError(source string, err error) {
	r.Errors = append(r.Errors, SourceError{Source: source, Err: err, Message: err.Error()})
}
