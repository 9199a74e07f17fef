package kasane

import (
	"errors"
	"fmt"

	"github.com/yacchi/kasane/format"
)

var (
	// ErrPathNotFound is returned by Load when the directory does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrNotADirectory is returned by Load when the path is not a directory.
	ErrNotADirectory = errors.New("config store must be a directory")

	// ErrUnsupportedFormat is returned by Save and SaveTo when no codec is
	// registered for the requested format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ParseError is returned by Load when a configuration file cannot be parsed.
// The configuration keeps everything merged before the failing file.
type ParseError struct {
	Path   string
	Format format.Name
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s file %q: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError is returned by Save when the output file cannot be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// QueryError is returned by Query when the expression cannot be evaluated.
type QueryError struct {
	Expression string
	Err        error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q: %v", e.Expression, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
