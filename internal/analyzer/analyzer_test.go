package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyscope/surveyscope-cli/internal/survey"
)

func newTestAnalyzer(t *testing.T, headers []string, rows [][]string) *Analyzer {
	t.Helper()
	tbl, err := survey.NewTable("test.xlsx", headers, rows)
	require.NoError(t, err)
	a := New()
	a.SetTable(tbl)
	return a
}

func sampleAnalyzer(t *testing.T) *Analyzer {
	return newTestAnalyzer(t,
		[]string{"Country", "Lang", "Age"},
		[][]string{
			{"US", "Go;Python", "25"},
			{"US", "Go", "31"},
			{"DE", "Python", "28"},
			{"FR", "", "44"},
		},
	)
}

func TestQuestions_NoDataLoaded(t *testing.T) {
	a := New()
	_, err := a.Questions()
	assert.ErrorIs(t, err, ErrNoDataLoaded)

	_, err = a.Search("x")
	assert.ErrorIs(t, err, ErrNoDataLoaded)

	_, err = a.Filter("Country", "US")
	assert.ErrorIs(t, err, ErrNoDataLoaded)

	assert.ErrorIs(t, a.Reset(), ErrNoDataLoaded)
}

func TestQuestions_Order(t *testing.T) {
	a := sampleAnalyzer(t)
	qs, err := a.Questions()
	require.NoError(t, err)
	assert.Equal(t, []string{"Country", "Lang", "Age"}, qs)
}

func TestSearch(t *testing.T) {
	a := sampleAnalyzer(t)

	// empty keyword matches everything, original order
	all, err := a.Search("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Country", "Lang", "Age"}, all)

	// case-insensitive substring
	got, err := a.Search("cOUnt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Country"}, got)

	none, err := a.Search("salary")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFilter_ExactMatch(t *testing.T) {
	a := sampleAnalyzer(t)
	remaining, err := a.Filter("Country", "US")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
}

func TestFilter_MultiChoiceTokenMatch(t *testing.T) {
	a := sampleAnalyzer(t)
	remaining, err := a.Filter("Lang", "Python")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining) // rows 0 and 2

	// case- and whitespace-insensitive
	a2 := sampleAnalyzer(t)
	remaining, err = a2.Filter("Lang", "  python ")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
}

func TestFilter_MissingCellsNeverMatch(t *testing.T) {
	a := sampleAnalyzer(t)
	remaining, err := a.Filter("Lang", "")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestFilter_Conjunctive(t *testing.T) {
	a := sampleAnalyzer(t)
	_, err := a.Filter("Country", "US")
	require.NoError(t, err)
	remaining, err := a.Filter("Lang", "Go")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	remaining, err = a.Filter("Lang", "Python")
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestFilter_OrderIndependent(t *testing.T) {
	a1 := sampleAnalyzer(t)
	_, err := a1.Filter("Country", "US")
	require.NoError(t, err)
	n1, err := a1.Filter("Lang", "Go")
	require.NoError(t, err)

	a2 := sampleAnalyzer(t)
	_, err = a2.Filter("Lang", "Go")
	require.NoError(t, err)
	n2, err := a2.Filter("Country", "US")
	require.NoError(t, err)

	assert.Equal(t, n1, n2)

	d1, err := a1.Distribution("Lang")
	require.NoError(t, err)
	d2, err := a2.Distribution("Lang")
	require.NoError(t, err)
	assert.Equal(t, d1.Entries, d2.Entries)
}

func TestFilter_UnknownColumn(t *testing.T) {
	a := sampleAnalyzer(t)
	_, err := a.Filter("Salary", "high")
	var unknown *UnknownColumnError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Salary", unknown.Column)

	// failed filter must not change the view
	assert.Equal(t, 4, a.Respondents())
	assert.Empty(t, a.Conditions())
}

func TestReset_RestoresFullView(t *testing.T) {
	a := sampleAnalyzer(t)
	_, err := a.Filter("Country", "US")
	require.NoError(t, err)
	_, err = a.Filter("Lang", "Go")
	require.NoError(t, err)
	require.Equal(t, 2, a.Respondents())

	require.NoError(t, a.Reset())
	assert.Equal(t, 4, a.Respondents())
	assert.Empty(t, a.Conditions())

	// view rows come back in original order
	d, err := a.Distribution("Country")
	require.NoError(t, err)
	assert.Equal(t, "US", d.Entries[0].Answer)
	assert.Equal(t, 4, d.Respondents)
}

func TestSetTable_ReplacesWholesale(t *testing.T) {
	a := sampleAnalyzer(t)
	_, err := a.Filter("Country", "US")
	require.NoError(t, err)

	tbl, err := survey.NewTable("other.csv",
		[]string{"City"},
		[][]string{{"Berlin"}, {"Paris"}},
	)
	require.NoError(t, err)
	a.SetTable(tbl)

	assert.Equal(t, 2, a.Respondents())
	assert.Empty(t, a.Conditions())
	qs, err := a.Questions()
	require.NoError(t, err)
	assert.Equal(t, []string{"City"}, qs)
}

func TestOptions(t *testing.T) {
	a := sampleAnalyzer(t)
	opts, err := a.Options("Lang")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Python"}, opts)

	// options respect the current view
	_, err = a.Filter("Country", "DE")
	require.NoError(t, err)
	opts, err = a.Options("Lang")
	require.NoError(t, err)
	assert.Equal(t, []string{"Python"}, opts)

	_, err = a.Options("Salary")
	var unknown *UnknownColumnError
	assert.ErrorAs(t, err, &unknown)
}
