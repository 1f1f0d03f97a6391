package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	phaseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Summary renders a run report for the console: one line per account per
// phase, plus per-phase totals.
func Summary(run *RunReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Run %s", run.ID)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s)", run.FinishedAt.Sub(run.StartedAt).Round(time.Second))))
	b.WriteString("\n")

	for _, phase := range run.Phases {
		b.WriteString("\n")
		b.WriteString(phaseStyle.Render(phase.Phase))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d ok / %d failed", phase.Succeeded(), phase.Failed())))
		b.WriteString("\n")

		for _, r := range phase.Results {
			if r.Success {
				b.WriteString(fmt.Sprintf("  %s %s", okStyle.Render("✓"), r.Account))
				if r.Payload != "" {
					b.WriteString(dimStyle.Render("  " + r.Payload))
				}
			} else {
				b.WriteString(fmt.Sprintf("  %s %s  %s", failStyle.Render("✗"), r.Account, failStyle.Render(r.Err)))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
