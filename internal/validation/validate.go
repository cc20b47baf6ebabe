// Package validation checks generated LaTeX documents for structural problems.
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Options controls which checks run
type Options struct {
	// MaxCharsPerLine is the content width for line length warnings.
	// Zero means DefaultMaxCharsPerLine; negative disables the check.
	MaxCharsPerLine int
	// CV, when set, adds warnings for core fields left blank
	CV *types.CVData
}

// ValidateFromContent runs the structure checks and the line length check on
// a LaTeX document held in memory.
func ValidateFromContent(latexContent string, opts Options) (*types.Violations, error) {
	var allViolations []types.Violation

	// 1. Structure
	allViolations = append(allViolations, CheckStructure(latexContent)...)

	// 2. Line lengths
	if opts.MaxCharsPerLine >= 0 {
		lineViolations, err := CheckLineLengths(strings.NewReader(latexContent), opts.MaxCharsPerLine)
		if err != nil {
			return nil, fmt.Errorf("failed to validate line lengths: %w", err)
		}
		allViolations = append(allViolations, lineViolations...)
	}

	// 3. Export readiness of the record
	if opts.CV != nil {
		allViolations = append(allViolations, CoreFieldViolations(opts.CV)...)
	}

	return &types.Violations{Violations: allViolations}, nil
}

// ValidateFile validates a LaTeX file on disk
func ValidateFile(texPath string, opts Options) (*types.Violations, error) {
	content, err := os.ReadFile(texPath)
	if err != nil {
		return nil, &FileReadError{Path: texPath, Cause: err}
	}
	return ValidateFromContent(string(content), opts)
}

// CoreFieldViolations returns one warning per core field the record leaves blank
func CoreFieldViolations(cv *types.CVData) []types.Violation {
	missing := cv.MissingCoreFields()
	if len(missing) == 0 {
		return nil
	}
	violations := make([]types.Violation, 0, len(missing))
	for _, field := range missing {
		violations = append(violations, types.Violation{
			Type:     types.ViolationMissingCoreField,
			Severity: types.SeverityWarning,
			Details:  fmt.Sprintf("%s is required before export", field),
		})
	}
	return violations
}

// RequireNoErrors returns a *StructureError holding the error-severity
// violations, or nil when there are none.
func RequireNoErrors(violations *types.Violations) error {
	if !violations.HasErrors() {
		return nil
	}
	var errs []types.Violation
	for _, v := range violations.Violations {
		if v.Severity == types.SeverityError {
			errs = append(errs, v)
		}
	}
	return &StructureError{Violations: errs}
}
