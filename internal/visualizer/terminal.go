// Package visualizer renders answer distributions as terminal bar
// charts, PNG charts, and summary tables.
package visualizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/surveyscope/surveyscope-cli/internal/analyzer"
)

// ErrEmptyDistribution is returned when a chart is requested for a
// distribution with zero entries.
var ErrEmptyDistribution = errors.New("distribution has no entries")

const (
	defaultBarWidth = 50
	maxLabelWidth   = 35
)

// TerminalBarChart renders a distribution as a text bar chart, one bar
// per answer token scaled to the largest count.
func TerminalBarChart(dist *analyzer.Distribution, title string, barWidth int) (string, error) {
	if dist == nil || len(dist.Entries) == 0 {
		return "", ErrEmptyDistribution
	}
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	maxCount := dist.Entries[0].Count
	for _, e := range dist.Entries {
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}

	heading := color.New(color.FgCyan, color.Bold).Sprintf("Distribution for: %s", title)
	var b strings.Builder
	b.WriteString("\n" + heading + "\n")
	b.WriteString(strings.Repeat("=", ruleWidth(title)) + "\n")

	for _, e := range dist.Entries {
		width := 0
		if maxCount > 0 {
			width = e.Count * barWidth / maxCount
		}
		bar := strings.Repeat("█", width)
		fmt.Fprintf(&b, "%-*s %s %6d (%5.1f%%)\n", maxLabelWidth, truncate(e.Answer, maxLabelWidth), bar, e.Count, e.Percent)
	}
	return b.String(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func ruleWidth(title string) int {
	w := len(title) + 20
	if w > 80 {
		w = 80
	}
	return w
}
