package csvimport

import (
	"errors"
	"fmt"
)

// Common import errors
var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrNoDataRows is returned when the CSV file has no data rows
	ErrNoDataRows = errors.New("CSV file contains no data rows")
)

// HeaderError reports required columns missing from the header row
type HeaderError struct {
	Missing []string
}

// Error implements the error interface
func (e *HeaderError) Error() string {
	return fmt.Sprintf("missing required columns: %v", e.Missing)
}
