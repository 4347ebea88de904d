package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is matched by every error returned from Load and Save.
	ErrIO = errors.New("file access failed")
	// ErrLineRange is matched by errors for line numbers outside [1, Len()].
	ErrLineRange = errors.New("line number out of range")
)

// IOError records a failed file operation together with the normalized path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// IndexError reports a 1-based line number that does not address a line.
type IndexError struct {
	Line int
	Len  int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("line %d: buffer is empty", e.Line)
	}
	return fmt.Sprintf("line %d: want 1..%d", e.Line, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrLineRange }
