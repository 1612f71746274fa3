// Package apperr defines the error taxonomy shared across the build pipeline.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a slug does not resolve to any source file.
var ErrNotFound = errors.New("not found")

// CompileError reports a rejected stylesheet source. Line and Column are
// zero when the underlying compiler did not provide a position.
type CompileError struct {
	Path   string // source file, relative to the source root
	Line   int
	Column int
	Detail string // compiler diagnostic, verbatim
}

func (e *CompileError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("compile %s:%d: %s", e.Path, e.Line, e.Detail)
	case e.Path != "":
		return fmt.Sprintf("compile %s: %s", e.Path, e.Detail)
	default:
		return fmt.Sprintf("compile: %s", e.Detail)
	}
}
