package visualizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyscope/surveyscope-cli/internal/analyzer"
)

func sampleDist() *analyzer.Distribution {
	return &analyzer.Distribution{
		Question: "Lang",
		Entries: []analyzer.Entry{
			{Answer: "Go", Count: 2, Percent: 66.7},
			{Answer: "Python", Count: 1, Percent: 33.3},
		},
		TotalTokens: 3,
		Respondents: 2,
	}
}

func TestTerminalBarChart(t *testing.T) {
	out, err := TerminalBarChart(sampleDist(), "Lang", 50)
	require.NoError(t, err)

	assert.Contains(t, out, "Distribution for: Lang")
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "Python")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "33.3%")

	// the top answer gets the widest bar
	lines := strings.Split(out, "\n")
	var goBar, pyBar int
	for _, l := range lines {
		if strings.HasPrefix(l, "Go ") {
			goBar = strings.Count(l, "█")
		}
		if strings.HasPrefix(l, "Python ") {
			pyBar = strings.Count(l, "█")
		}
	}
	assert.Greater(t, goBar, pyBar)
}

func TestTerminalBarChart_Empty(t *testing.T) {
	_, err := TerminalBarChart(&analyzer.Distribution{Question: "Lang"}, "Lang", 50)
	assert.ErrorIs(t, err, ErrEmptyDistribution)

	_, err = TerminalBarChart(nil, "Lang", 50)
	assert.ErrorIs(t, err, ErrEmptyDistribution)
}

func TestTerminalBarChart_TruncatesLongAnswers(t *testing.T) {
	dist := &analyzer.Distribution{
		Question: "Lang",
		Entries: []analyzer.Entry{
			{Answer: strings.Repeat("x", 60), Count: 1, Percent: 100},
		},
		TotalTokens: 1,
	}
	out, err := TerminalBarChart(dist, "Lang", 50)
	require.NoError(t, err)
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("x", 60))
}

func TestSaveBarChart(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveBarChart(sampleDist(), "Lang Used", dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".png"))
	assert.Contains(t, filepath.Base(path), "Lang_Used")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	// repeated saves never collide
	path2, err := SaveBarChart(sampleDist(), "Lang Used", dir)
	require.NoError(t, err)
	assert.NotEqual(t, path, path2)
}

func TestSaveBarChart_Empty(t *testing.T) {
	_, err := SaveBarChart(&analyzer.Distribution{Question: "Lang"}, "Lang", t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyDistribution)
}

func TestSummaryTable(t *testing.T) {
	out, err := SummaryTable(sampleDist(), "Lang", 10)
	require.NoError(t, err)

	assert.Contains(t, out, "Top 2 answers for: Lang")
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "3") // total token count in the footer
}

func TestSummaryTable_TopNCap(t *testing.T) {
	dist := &analyzer.Distribution{
		Question: "Lang",
		Entries: []analyzer.Entry{
			{Answer: "Go", Count: 3, Percent: 50},
			{Answer: "Python", Count: 2, Percent: 33.3},
			{Answer: "Rust", Count: 1, Percent: 16.7},
		},
		TotalTokens: 6,
	}
	out, err := SummaryTable(dist, "Lang", 2)
	require.NoError(t, err)
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "Python")
	assert.NotContains(t, out, "Rust")
}

func TestSummaryTable_Empty(t *testing.T) {
	_, err := SummaryTable(nil, "Lang", 10)
	assert.ErrorIs(t, err, ErrEmptyDistribution)
}

func TestChartFilename(t *testing.T) {
	name := chartFilename("Which language do you use?")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotContains(t, name, "?")
	assert.NotContains(t, name, " ")

	assert.True(t, strings.HasPrefix(chartFilename("???"), "chart_"))
}
