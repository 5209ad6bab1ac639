package survey

import "strings"

// Table is an in-memory survey: ordered question headers and respondent
// rows. Rows are normalized to the header width so cell access never
// needs a bounds check.
type Table struct {
	headers []string
	index   map[string]int
	rows    [][]string
}

// NewTable validates headers and rows and builds the column index.
// Headers are trimmed; they must be non-empty and unique after trimming.
func NewTable(path string, headers []string, rows [][]string) (*Table, error) {
	if len(headers) == 0 {
		return nil, &InvalidFormatError{Path: path, Reason: "no columns"}
	}
	if len(rows) == 0 {
		return nil, &InvalidFormatError{Path: path, Reason: "no data rows"}
	}

	trimmed := make([]string, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			return nil, &InvalidFormatError{Path: path, Reason: "empty question header"}
		}
		if _, seen := index[name]; seen {
			return nil, &DuplicateHeaderError{Path: path, Header: name}
		}
		trimmed[i] = name
		index[name] = i
	}

	norm := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == len(trimmed) {
			norm[i] = row
			continue
		}
		padded := make([]string, len(trimmed))
		copy(padded, row)
		norm[i] = padded
	}

	return &Table{headers: trimmed, index: index, rows: norm}, nil
}

// Questions returns the ordered question headers.
func (t *Table) Questions() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// ColumnIndex returns the position of a question, or false if absent.
// Lookup is by exact trimmed header name.
func (t *Table) ColumnIndex(question string) (int, bool) {
	idx, ok := t.index[strings.TrimSpace(question)]
	return idx, ok
}

// NumQuestions returns the number of columns.
func (t *Table) NumQuestions() int { return len(t.headers) }

// NumRespondents returns the number of data rows.
func (t *Table) NumRespondents() int { return len(t.rows) }

// Cell returns the value at (row, col). Rows are pre-normalized to the
// header width.
func (t *Table) Cell(row, col int) string { return t.rows[row][col] }

// IsMultipleChoice reports whether any non-empty cell in the column
// contains a semicolon-separated answer list.
func (t *Table) IsMultipleChoice(question string) bool {
	col, ok := t.ColumnIndex(question)
	if !ok {
		return false
	}
	for _, row := range t.rows {
		if v := strings.TrimSpace(row[col]); v != "" && strings.Contains(v, ";") {
			return true
		}
	}
	return false
}

// SplitAnswer splits a cell into trimmed answer tokens. Single values
// come back as a one-token list; empty tokens are dropped.
func SplitAnswer(cell string) []string {
	parts := strings.Split(cell, ";")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if tok := strings.TrimSpace(p); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
