package analyzer

import (
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/surveyscope/surveyscope-cli/internal/survey"
)

// NumericSummary describes the parseable numeric answers of one question
// over the current filtered view. Non-numeric and empty cells are skipped.
type NumericSummary struct {
	Question string
	Count    int
	Mean     float64
	Median   float64
	StdDev   float64
	Min      float64
	Max      float64
}

// NumericStats computes a NumericSummary for a question. It fails with
// NoNumericDataError when no answer in the view parses as a number.
func (a *Analyzer) NumericStats(question string) (*NumericSummary, error) {
	if a.table == nil {
		return nil, ErrNoDataLoaded
	}
	col, ok := a.table.ColumnIndex(question)
	if !ok {
		return nil, &UnknownColumnError{Column: question}
	}

	var values stats.Float64Data
	for _, row := range a.view {
		for _, tok := range survey.SplitAnswer(a.table.Cell(row, col)) {
			if x, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64); err == nil {
				values = append(values, x)
			}
		}
	}
	if len(values) == 0 {
		return nil, &NoNumericDataError{Column: strings.TrimSpace(question)}
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(values)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return nil, err
	}
	// Sample std dev is undefined for a single value; report 0 like the
	// rest of the summary fields.
	std := 0.0
	if len(values) > 1 {
		std, err = stats.StandardDeviationSample(values)
		if err != nil {
			return nil, err
		}
	}

	return &NumericSummary{
		Question: strings.TrimSpace(question),
		Count:    len(values),
		Mean:     mean,
		Median:   median,
		StdDev:   std,
		Min:      min,
		Max:      max,
	}, nil
}
