package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Summary table colors
const (
	colorHeader  = "135"     // purple header labels
	colorGood    = "#7CFC00" // lawn green - healthy coverage
	colorCaution = "#FFD700" // gold - long gaps
	colorBad     = "#FF6347" // tomato - no coverage at all
	colorDim     = "60"
)

// RenderSummary renders the per-site coverage table for the terminal. Rows
// are colored by how well the site is served: green when covered, gold when
// the longest gap exceeds half the horizon, red when the site is never
// covered.
func RenderSummary(d *Document) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorHeader)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	goodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorGood))
	cautionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorCaution))
	badStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorBad))

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Coverage Summary @ %s", d.GeneratedAt.Format(time.RFC3339))))
	b.WriteString("\n")
	if d.RunID != "" {
		b.WriteString(dimStyle.Render("run " + d.RunID))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("─", 86))
	b.WriteString("\n")

	if len(d.Reports) == 0 {
		b.WriteString("No sites in scenario\n")
		return b.String()
	}

	header := fmt.Sprintf("%-24s %-10s %-10s %7s %14s %11s",
		"Site", "Branch", "Region", "Passes", "Longest Gap", "Redundancy")
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 86))
	b.WriteString("\n")

	totalPasses := 0
	for _, r := range d.Reports {
		name := r.SiteName
		if name == "" {
			name = r.SiteID
		}
		row := fmt.Sprintf("%-24s %-10s %-10s %7d %14s %10.2f%%",
			truncate(name, 24),
			truncate(r.Branch, 10),
			truncate(r.Region, 10),
			r.PassCount,
			formatGap(r.LongestGapSeconds),
			r.RedundancyIndex*100,
		)

		style := goodStyle
		switch {
		case r.PassCount == 0:
			style = badStyle
		case r.LongestGapSeconds*2 > d.Scenario.HorizonSeconds:
			style = cautionStyle
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")

		totalPasses += r.PassCount
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %d passes across %d sites\n", totalPasses, len(d.Reports)))
	return b.String()
}

func formatGap(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
