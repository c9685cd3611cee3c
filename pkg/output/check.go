package output

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/rules"
	"github.com/arthur-debert/cmdcorrect/pkg/style"
)

// CheckRow is the compile status of one rule definition
type CheckRow struct {
	Rule     string       `json:"rule" yaml:"rule"`
	Origin   string       `json:"origin,omitempty" yaml:"origin,omitempty"`
	Status   style.Status `json:"status" yaml:"status"`
	Code     string       `json:"code,omitempty" yaml:"code,omitempty"`
	Position *int         `json:"position,omitempty" yaml:"position,omitempty"`
	Detail   string       `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// CheckRows lists compiled rules followed by rejected ones
func CheckRows(set *rules.Set, rejected []rules.Rejection) []CheckRow {
	var rows []CheckRow
	for _, r := range set.Rules() {
		row := CheckRow{Rule: r.Name, Origin: r.Origin, Status: style.StatusOK}
		if problems := r.Problems(); len(problems) > 0 {
			row.Status = style.StatusNotified
			row.Detail = strings.Join(problems, "; ")
		}
		rows = append(rows, row)
	}
	for _, rej := range rejected {
		row := CheckRow{
			Rule:   rej.Definition.Name,
			Origin: rej.Definition.Origin,
			Status: style.StatusRejected,
			Code:   string(errors.GetErrorCode(rej.Err)),
			Detail: rej.Err.Error(),
		}
		if pos, ok := errors.GetPosition(rej.Err); ok {
			row.Position = &pos
		}
		rows = append(rows, row)
	}
	return rows
}

// Check prints the compile status of a rule set as a table
func (p *Printer) Check(rows []CheckRow) error {
	if p.format.Structured() {
		return p.encode(rows)
	}
	if len(rows) == 0 {
		return p.Message("No rules configured")
	}

	data := pterm.TableData{{"Rule", "Status", "Origin", "Detail"}}
	for _, row := range rows {
		status := string(row.Status)
		if p.styled() {
			status = style.StatusStyle(row.Status).Sprint(status)
		}
		data = append(data, []string{row.Rule, status, row.Origin, row.Detail})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if !p.styled() {
		table = table.WithHeaderStyle(pterm.NewStyle()).WithSeparatorStyle(pterm.NewStyle())
	}
	out, err := table.Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render rule table")
	}
	_, err = fmt.Fprintln(p.w, out)
	return err
}
