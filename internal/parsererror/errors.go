// Package parsererror defines the typed errors returned while reading an
// upload.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyUpload is returned when an upload or store holds no data rows.
var ErrEmptyUpload = errors.New("no data rows found")

// ParseError represents a failure to decode an upload.
type ParseError struct {
	Loader string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: failed to parse: %v", e.Loader, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Loader, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an upload whose header row is unusable.
type ValidationError struct {
	FilePath string
	Reason   string
	Missing  []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("validation failed for %s: %s: %s",
			e.FilePath, e.Reason, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents a file that is not a readable spreadsheet.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // optional
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// IsUserError reports whether err is caused by the upload itself rather than
// by the environment. The HTTP layer maps these to 4xx responses.
func IsUserError(err error) bool {
	var validationErr *ValidationError
	var formatErr *InvalidFormatError
	var parseErr *ParseError
	return errors.Is(err, ErrEmptyUpload) ||
		errors.As(err, &validationErr) ||
		errors.As(err, &formatErr) ||
		errors.As(err, &parseErr)
}
