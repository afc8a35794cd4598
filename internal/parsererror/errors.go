// Package parsererror holds the typed errors returned while reading bank exports and
// edited category files.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError is a single value in a source row that could not be converted.
type ParseError struct {
	Parser string
	Row    int // 1-based data row, 0 when unknown
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: failed to parse %s='%s': %v",
			e.Parser, e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError means the input is not the expected kind of file, typically
// because required header columns are absent.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Missing        []string // required columns not found
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	where := "input"
	if e.FilePath != "" {
		where = fmt.Sprintf("file '%s'", e.FilePath)
	}
	msg := fmt.Sprintf("invalid format in %s: %s. Expected: %s", where, e.Msg, e.ExpectedFormat)
	if len(e.Missing) > 0 {
		msg += ". Missing columns: " + strings.Join(e.Missing, ", ")
	}
	return msg
}

// ValidationError is a record that parsed but breaks a data rule.
type ValidationError struct {
	Row    int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for row %d: %s", e.Row, e.Reason)
}
