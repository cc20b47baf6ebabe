// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Violation severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation types reported by LaTeX structure checks
const (
	ViolationUnbalancedBraces = "unbalanced_braces"
	ViolationEnvironment      = "environment_mismatch"
	ViolationMissingShell     = "missing_document_shell"
	ViolationEmptyEnvironment = "empty_list"
	ViolationLineTooLong      = "line_too_long"
	ViolationMissingCoreField = "missing_core_field"
)

// Violation represents a single problem found in a generated document
type Violation struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Details          string   `json:"details"`
	AffectedSections []string `json:"affected_sections,omitempty"`
	LineNumber       *int     `json:"line_number,omitempty"`
	CharCount        *int     `json:"char_count,omitempty"`
}

// Violations represents a collection of problems found in a generated document
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation has error severity
func (v *Violations) HasErrors() bool {
	if v == nil {
		return false
	}
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}
