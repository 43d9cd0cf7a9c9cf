package csvhist

import "errors"

// Error kinds, test with errors.Is.
var (
	// ErrFileNotFound is returned when the input path is not a readable file.
	ErrFileNotFound = errors.New("file not found")

	// ErrParse is returned for malformed delimited data, e.g. rows with a field count
	// different from the header.
	ErrParse = errors.New("malformed delimited data")

	// ErrColumnNotFound is returned when a requested column is absent from a table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrEmptyData is returned when there is nothing to parse or to count.
	ErrEmptyData = errors.New("no data")

	// ErrBinCount is returned for a bin count lower than 1.
	ErrBinCount = errors.New("bin count must be positive")
)
