// Package tui renders terminal output: the summary report and banner.
package tui

import (
	"fmt"
	"strings"

	"github.com/carbondash/carbondash/pkg/domain"
)

// BuildReport assembles the markdown dataset report shown by the summary
// command.
func BuildReport(summary domain.Summary, series []domain.Series) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", summary.Title)
	fmt.Fprintf(&b, "**Metric:** %s\n\n", summary.Metric.Label)
	fmt.Fprintf(&b, "- Observations: %d\n", summary.Rows)
	fmt.Fprintf(&b, "- Areas: %d\n", summary.Areas)
	if !summary.First.IsZero() {
		fmt.Fprintf(&b, "- Range: %s to %s\n", summary.First.Format("2006-01"), summary.Last.Format("2006-01"))
	}
	b.WriteString("\n")

	if len(series) == 0 {
		return b.String()
	}

	b.WriteString("## Extremes by Area\n\n")
	b.WriteString("| Area | Min | Min Date | Max | Max Date |\n")
	b.WriteString("|------|-----|----------|-----|----------|\n")
	for _, s := range series {
		if s.Min == nil || s.Max == nil {
			continue
		}
		fmt.Fprintf(&b, "| %s | %.1f | %s | %.1f | %s |\n",
			s.Area,
			s.Min.Value, s.Min.Date.Format("2006-01"),
			s.Max.Value, s.Max.Date.Format("2006-01"),
		)
	}

	return b.String()
}
