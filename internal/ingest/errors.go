package ingest

import "errors"

var (
	// ErrUnsupportedFormat is returned for a source file whose extension
	// does not match the reader it was handed to.
	ErrUnsupportedFormat = errors.New("unsupported source format")
	// ErrEmptyHeader is returned for a CSV file without a header row.
	ErrEmptyHeader = errors.New("csv has no header row")
)
