package visualizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/surveyscope/surveyscope-cli/internal/analyzer"
)

// topNBars caps how many answers a PNG chart shows so long-tail
// distributions stay readable.
const topNBars = 20

// SaveBarChart renders a distribution as a PNG bar chart (one bar per
// answer, y-axis = percent of token occurrences) and writes it under dir.
// It returns the path of the saved file.
func SaveBarChart(dist *analyzer.Distribution, title, dir string) (string, error) {
	if dist == nil || len(dist.Entries) == 0 {
		return "", ErrEmptyDistribution
	}

	entries := dist.Entries
	if len(entries) > topNBars {
		entries = entries[:topNBars]
	}

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.Percent
		labels[i] = truncate(e.Answer, 20)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Distribution: %s", title)
	p.Y.Label.Text = "Percent"
	p.X.Tick.Label.Rotation = 0.5
	p.X.Tick.Label.XAlign = -0.9

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return "", fmt.Errorf("build bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir chart dir: %w", err)
	}
	path := filepath.Join(dir, chartFilename(title))
	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("save chart: %w", err)
	}
	return path, nil
}

// chartFilename derives a filesystem-safe name from the question plus a
// short unique suffix so repeated charts never overwrite each other.
func chartFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	name := b.String()
	if len(name) > 50 {
		name = name[:50]
	}
	if name == "" {
		name = "chart"
	}
	return fmt.Sprintf("%s_%s.png", name, uuid.NewString()[:8])
}
