package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status is the outcome of correcting one subject or compiling one rule
type Status string

const (
	StatusChanged   Status = "changed"   // Rewritten by at least one rule
	StatusUnchanged Status = "unchanged" // No rule changed it
	StatusNotified  Status = "notified"  // Carries notifications for the operator
	StatusRejected  Status = "rejected"  // Rule failed to compile
	StatusOK        Status = "ok"        // Rule compiled
	StatusError     Status = "error"     // Source could not be read or written
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusChanged:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusOK:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusNotified:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case StatusRejected, StatusError:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// RenderStatus renders a fixed-width status label
func RenderStatus(status Status) string {
	return StatusStyle(status).Sprint(fmt.Sprintf("%-9s", status))
}
