package survey

import "fmt"

// FileNotFoundError indicates the requested survey file does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// InvalidFormatError indicates the file could not be parsed as a survey
// table: unreadable spreadsheet, no columns, or no data rows.
type InvalidFormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid survey file %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid survey file %s: %s", e.Path, e.Reason)
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

// DuplicateHeaderError indicates two header cells are identical after
// trimming whitespace.
type DuplicateHeaderError struct {
	Path   string
	Header string
}

func (e *DuplicateHeaderError) Error() string {
	return fmt.Sprintf("duplicate question header %q in %s", e.Header, e.Path)
}
