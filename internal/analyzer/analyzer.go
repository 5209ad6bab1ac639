package analyzer

import (
	"sort"
	"strings"

	"github.com/surveyscope/surveyscope-cli/internal/survey"
)

// Condition is one respondent filter: the question to inspect and the
// answer token a row must carry to pass.
type Condition struct {
	Question string
	Option   string
}

// Analyzer owns the loaded survey table and the active filter conditions.
// Conditions accumulate in insertion order and are AND-combined; the
// filtered view is a list of row indices into the original table, so the
// original is never mutated and reset is always exact.
type Analyzer struct {
	table      *survey.Table
	conditions []Condition
	view       []int
}

// New returns an Analyzer with no table loaded.
func New() *Analyzer {
	return &Analyzer{}
}

// SetTable replaces the loaded table wholesale and clears all conditions.
func (a *Analyzer) SetTable(t *survey.Table) {
	a.table = t
	a.conditions = nil
	a.view = fullView(t)
}

// Loaded reports whether a table is present.
func (a *Analyzer) Loaded() bool { return a.table != nil }

// Table returns the original table, or nil before a load.
func (a *Analyzer) Table() *survey.Table { return a.table }

// Questions returns the ordered question headers.
func (a *Analyzer) Questions() ([]string, error) {
	if a.table == nil {
		return nil, ErrNoDataLoaded
	}
	return a.table.Questions(), nil
}

// Search returns questions whose name contains keyword as a
// case-insensitive substring, in original column order. An empty keyword
// matches every question.
func (a *Analyzer) Search(keyword string) ([]string, error) {
	if a.table == nil {
		return nil, ErrNoDataLoaded
	}
	kw := strings.ToLower(strings.TrimSpace(keyword))
	var matches []string
	for _, q := range a.table.Questions() {
		if kw == "" || strings.Contains(strings.ToLower(q), kw) {
			matches = append(matches, q)
		}
	}
	return matches, nil
}

// Filter appends a condition and recomputes the view as the conjunction
// of all active conditions over the original table. It returns the number
// of respondents remaining.
func (a *Analyzer) Filter(question, option string) (int, error) {
	if a.table == nil {
		return 0, ErrNoDataLoaded
	}
	question = strings.TrimSpace(question)
	if _, ok := a.table.ColumnIndex(question); !ok {
		return 0, &UnknownColumnError{Column: question}
	}
	a.conditions = append(a.conditions, Condition{Question: question, Option: strings.TrimSpace(option)})
	a.recompute()
	return len(a.view), nil
}

// Reset clears all conditions; the view returns to the full table.
func (a *Analyzer) Reset() error {
	if a.table == nil {
		return ErrNoDataLoaded
	}
	a.conditions = nil
	a.view = fullView(a.table)
	return nil
}

// Conditions returns the active conditions in application order.
func (a *Analyzer) Conditions() []Condition {
	out := make([]Condition, len(a.conditions))
	copy(out, a.conditions)
	return out
}

// Respondents returns the number of rows in the current filtered view.
func (a *Analyzer) Respondents() int { return len(a.view) }

// Options returns the sorted unique answer tokens for a question over the
// current view. Multi-choice cells contribute each token separately.
func (a *Analyzer) Options(question string) ([]string, error) {
	if a.table == nil {
		return nil, ErrNoDataLoaded
	}
	col, ok := a.table.ColumnIndex(question)
	if !ok {
		return nil, &UnknownColumnError{Column: question}
	}
	seen := make(map[string]bool)
	for _, row := range a.view {
		for _, tok := range survey.SplitAnswer(a.table.Cell(row, col)) {
			seen[tok] = true
		}
	}
	opts := make([]string, 0, len(seen))
	for tok := range seen {
		opts = append(opts, tok)
	}
	sort.Strings(opts)
	return opts, nil
}

// recompute rebuilds the view from scratch: a row passes when every
// condition matches one of its cell's answer tokens.
func (a *Analyzer) recompute() {
	cols := make([]int, len(a.conditions))
	for i, c := range a.conditions {
		cols[i], _ = a.table.ColumnIndex(c.Question)
	}
	view := make([]int, 0, a.table.NumRespondents())
	for row := 0; row < a.table.NumRespondents(); row++ {
		pass := true
		for i, c := range a.conditions {
			if !cellMatches(a.table.Cell(row, cols[i]), c.Option) {
				pass = false
				break
			}
		}
		if pass {
			view = append(view, row)
		}
	}
	a.view = view
}

// cellMatches reports whether any semicolon-separated token of the cell
// equals option, comparing trimmed and case-insensitively. Single values
// are a one-token list, so exact match falls out of the same rule.
// Missing cells never match.
func cellMatches(cell, option string) bool {
	for _, tok := range survey.SplitAnswer(cell) {
		if strings.EqualFold(tok, option) {
			return true
		}
	}
	return false
}

func fullView(t *survey.Table) []int {
	view := make([]int, t.NumRespondents())
	for i := range view {
		view[i] = i
	}
	return view
}
