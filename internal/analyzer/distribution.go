package analyzer

import (
	"math"
	"sort"

	"github.com/surveyscope/surveyscope-cli/internal/survey"
)

// Entry is one answer token with its count and share of total token
// occurrences in the column.
type Entry struct {
	Answer  string
	Count   int
	Percent float64
}

// Distribution is the answer-frequency breakdown for one question over
// the current filtered view. Percentages are of total token occurrences,
// not of respondents: a multi-choice cell with N tokens contributes N
// occurrences. Entries are ordered by descending count, ties by the
// order each token was first seen.
type Distribution struct {
	Question    string
	Entries     []Entry
	TotalTokens int
	Respondents int
}

// Distribution computes the answer distribution for a question over the
// current view. Empty cells are excluded from both the counts and the
// denominator.
func (a *Analyzer) Distribution(question string) (*Distribution, error) {
	if a.table == nil {
		return nil, ErrNoDataLoaded
	}
	col, ok := a.table.ColumnIndex(question)
	if !ok {
		return nil, &UnknownColumnError{Column: question}
	}

	counts := make(map[string]int)
	var order []string
	total := 0
	answered := 0
	for _, row := range a.view {
		tokens := survey.SplitAnswer(a.table.Cell(row, col))
		if len(tokens) == 0 {
			continue
		}
		answered++
		for _, tok := range tokens {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
			total++
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, tok := range order {
		c := counts[tok]
		entries = append(entries, Entry{
			Answer:  tok,
			Count:   c,
			Percent: roundPercent(c, total),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return &Distribution{
		Question:    question,
		Entries:     entries,
		TotalTokens: total,
		Respondents: answered,
	}, nil
}

func roundPercent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
