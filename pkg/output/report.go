package output

import (
	"github.com/arthur-debert/cmdcorrect/pkg/corrector"
	"github.com/arthur-debert/cmdcorrect/pkg/rules"
	"github.com/arthur-debert/cmdcorrect/pkg/style"
)

type reportView struct {
	*corrector.Report
	Modifications int
}

type outcomeView struct {
	Status  style.Status
	Outcome rules.Outcome
}

// OutcomeStatus classifies the result of one subject
func OutcomeStatus(out rules.Outcome) style.Status {
	switch {
	case out.Changed:
		return style.StatusChanged
	case len(out.Notifications) > 0:
		return style.StatusNotified
	default:
		return style.StatusUnchanged
	}
}

// Report prints the result of a correction run
func (p *Printer) Report(r *corrector.Report) error {
	if p.format.Structured() {
		return p.encode(r)
	}

	view := reportView{Report: r}
	for _, c := range r.PerRule {
		view.Modifications += c.Count
	}
	return p.render("report", view)
}

// Outcome prints the result of running a rule set over a single subject
func (p *Printer) Outcome(out rules.Outcome) error {
	if p.format.Structured() {
		return p.encode(out)
	}
	return p.render("outcome", outcomeView{Status: OutcomeStatus(out), Outcome: out})
}

// Undo prints the result of an undo
func (p *Printer) Undo(r *corrector.UndoReport) error {
	if p.format.Structured() {
		return p.encode(r)
	}
	return p.render("undo", r)
}
