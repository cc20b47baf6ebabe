// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxDetailsWidth bounds a violation's details line
	maxDetailsWidth = 45
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to width runes, ending with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCVSummary outputs the personal header and entry counts of a CV record
func (p *Printer) PrintCVSummary(cv *types.CVData) {
	if cv == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", cv.FullName))
	sb.WriteString(fmt.Sprintf("Title:     %s\n", cv.Title))
	sb.WriteString(fmt.Sprintf("Template:  %s\n", cv.Template))
	sb.WriteString("\n")

	counts := []struct {
		label string
		n     int
	}{
		{"Experience", len(cv.Experience)},
		{"Education", len(cv.Education)},
		{"Certifications", len(cv.Certifications)},
		{"Projects", len(cv.Projects)},
		{"Activities", len(cv.ExtracurricularActivities)},
		{"Languages", len(cv.Languages)},
	}
	for _, c := range counts {
		sb.WriteString(fmt.Sprintf("  • %-15s %d\n", c.label, c.n))
	}

	if missing := cv.MissingCoreFields(); len(missing) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing before export: %s", strings.Join(missing, ", ")))
	}

	p.printBox("CV RECORD", strings.TrimRight(sb.String(), "\n"))
}

// PrintSections outputs the sections a layout produced, with their body sizes
func (p *Printer) PrintSections(template types.TemplateID, sections []rendering.Section) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Layout: %s (%d sections)\n\n", template, len(sections)))

	for i, section := range sections {
		lines := strings.Count(section.Body, "\n") + 1
		sb.WriteString(fmt.Sprintf("%d. %s (%d lines)", i+1, section.Title, lines))
		if i < len(sections)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RENDERED SECTIONS", sb.String())
}

// PrintViolations outputs any structural problems found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		marker := "⚠"
		if v.Severity == types.SeverityError {
			marker = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, v.Type))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(v.Details, maxDetailsWidth)))
		if len(v.AffectedSections) > 0 {
			sb.WriteString(fmt.Sprintf("  in %s\n", strings.Join(v.AffectedSections, ", ")))
		}
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("STRUCTURE VIOLATIONS", strings.TrimRight(sb.String(), "\n"))
}
