// Package errs defines the user-facing error taxonomy and its exit codes.
package errs

import (
	"errors"
	"fmt"
)

// ErrEmptyPattern is returned when a search or grep pattern is empty.
var ErrEmptyPattern = errors.New("empty search pattern")

// IO wraps a filesystem failure for a given input path.
type IO struct {
	Path string
	Err  error
}

func (e *IO) Error() string { return fmt.Sprintf("cannot read '%s': %v", e.Path, e.Err) }
func (e *IO) Unwrap() error { return e.Err }

// InvalidRegex reports a pattern that failed to compile.
type InvalidRegex struct {
	Pattern string
	Err     error
}

func (e *InvalidRegex) Error() string {
	return fmt.Sprintf("invalid regex '%s': %v", e.Pattern, e.Err)
}
func (e *InvalidRegex) Unwrap() error { return e.Err }

// BinaryFile reports refusal to display binary content.
type BinaryFile struct {
	Path string
}

func (e *BinaryFile) Error() string {
	return fmt.Sprintf("'%s' is a binary file (use --force-binary to view it anyway)", e.Path)
}

// InvalidLineRange reports a malformed --lines argument.
type InvalidLineRange struct {
	Range string
}

func (e *InvalidLineRange) Error() string {
	return fmt.Sprintf("invalid line range '%s' (expected START:END, :END or START:)", e.Range)
}

// Usage reports a malformed command line (unknown flag, bad value).
type Usage struct {
	Err error
}

func (e *Usage) Error() string { return e.Err.Error() }
func (e *Usage) Unwrap() error { return e.Err }

// Encoding reports input that could not be decoded as text.
type Encoding struct {
	Path string
}

func (e *Encoding) Error() string { return fmt.Sprintf("cannot decode '%s' as text", e.Path) }

// ExitCode maps an error to the process exit status: 0 on success, 2 for
// usage-class errors (bad regex, bad line range), 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var re *InvalidRegex
	var lr *InvalidLineRange
	var us *Usage
	if errors.As(err, &re) || errors.As(err, &lr) || errors.As(err, &us) {
		return 2
	}
	return 1
}
