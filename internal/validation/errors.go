package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// StructureError is returned by RequireNoErrors and carries the
// error-severity violations that make a document unusable.
type StructureError struct {
	Violations []types.Violation
}

func (e *StructureError) Error() string {
	details := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		details[i] = v.Details
	}
	return fmt.Sprintf("%d structural error(s): %s", len(details), strings.Join(details, "; "))
}

// FileReadError wraps a failure to open or scan a LaTeX file. Path is empty
// when the content came from a reader.
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to read LaTeX content: %v", e.Cause)
	}
	return fmt.Sprintf("failed to read LaTeX file %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
