package visualizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/surveyscope/surveyscope-cli/internal/analyzer"
)

// SummaryTable renders the top answers of a distribution as a text table.
// topN <= 0 shows every entry.
func SummaryTable(dist *analyzer.Distribution, title string, topN int) (string, error) {
	if dist == nil || len(dist.Entries) == 0 {
		return "", ErrEmptyDistribution
	}

	entries := dist.Entries
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nTop %d answers for: %s\n", len(entries), title)

	tw := tablewriter.NewWriter(&b)
	tw.SetHeader([]string{"Answer", "Count", "Percent"})
	tw.SetAutoWrapText(false)
	for _, e := range entries {
		tw.Append([]string{
			truncate(e.Answer, maxLabelWidth),
			strconv.Itoa(e.Count),
			fmt.Sprintf("%.1f%%", e.Percent),
		})
	}
	tw.SetFooter([]string{"total", strconv.Itoa(dist.TotalTokens), "100.0%"})
	tw.Render()

	return b.String(), nil
}
