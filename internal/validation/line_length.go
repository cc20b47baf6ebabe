package validation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// DefaultMaxCharsPerLine is the content width above which a line is reported
const DefaultMaxCharsPerLine = 90

// maxScanLine bounds a single source line; generated entries can be long
const maxScanLine = 1024 * 1024

var (
	// LaTeX command pattern matches commands like \textbf{content} or \begin{environment}
	latexCommandPattern = regexp.MustCompile(`\\([a-zA-Z]+|.)\{[^}]*\}`)
)

// ValidateLineLengths checks if any lines in the LaTeX file exceed the maximum character count
func ValidateLineLengths(texPath string, maxChars int) ([]types.Violation, error) {
	file, err := os.Open(texPath)
	if err != nil {
		return nil, &FileReadError{Path: texPath, Cause: err}
	}
	defer func() { _ = file.Close() }()

	return CheckLineLengths(file, maxChars)
}

// CheckLineLengths reports every line whose visible content exceeds maxChars.
// Comment-only lines are skipped and trailing comments are ignored.
func CheckLineLengths(r io.Reader, maxChars int) ([]types.Violation, error) {
	if maxChars <= 0 {
		maxChars = DefaultMaxCharsPerLine
	}

	var violations []types.Violation
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScanLine)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			continue
		}

		contentLength := countContentChars(stripComment(line))
		if contentLength > maxChars {
			violations = append(violations, types.Violation{
				Type:       types.ViolationLineTooLong,
				Severity:   types.SeverityWarning,
				Details:    fmt.Sprintf("Line %d has %d characters, maximum is %d", lineNum, contentLength, maxChars),
				LineNumber: intPtr(lineNum),
				CharCount:  intPtr(contentLength),
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &FileReadError{Cause: err}
	}

	return violations, nil
}

// countContentChars approximates the character count of actual content in a LaTeX line
// by replacing each single-argument command with its argument.
func countContentChars(line string) int {
	processed := latexCommandPattern.ReplaceAllStringFunc(line, func(match string) string {
		start := strings.Index(match, "{")
		end := strings.LastIndex(match, "}")
		if start >= 0 && end > start {
			return match[start+1 : end]
		}
		return ""
	})

	return len([]rune(strings.TrimSpace(processed)))
}

// stripComment cuts the line at the first unescaped %
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			return line[:i]
		}
	}
	return line
}

// intPtr returns a pointer to an integer
func intPtr(i int) *int {
	return &i
}
