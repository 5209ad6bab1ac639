package analyzer

import (
	"errors"
	"fmt"
)

// ErrNoDataLoaded is returned by every operation that needs a table
// before one has been loaded.
var ErrNoDataLoaded = errors.New("no data loaded")

// UnknownColumnError indicates the requested question is not in the table.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("question %q not found in dataset", e.Column)
}

// NoNumericDataError indicates a column has no values parseable as numbers.
type NoNumericDataError struct {
	Column string
}

func (e *NoNumericDataError) Error() string {
	return fmt.Sprintf("question %q has no numeric answers", e.Column)
}
