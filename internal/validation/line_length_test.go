package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func TestValidateLineLengths_NoViolations(t *testing.T) {
	tmpDir := t.TempDir()
	texFile := filepath.Join(tmpDir, "test.tex")
	content := `\documentclass{article}
\begin{document}
Short line
Another short line
\end{document}`
	err := os.WriteFile(texFile, []byte(content), 0644)
	require.NoError(t, err)

	violations, err := ValidateLineLengths(texFile, 90)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateLineLengths_WithViolations(t *testing.T) {
	tmpDir := t.TempDir()
	texFile := filepath.Join(tmpDir, "test.tex")
	// Create a line that exceeds 90 characters
	longLine := strings.Repeat("a", 100)
	content := fmt.Sprintf(`\documentclass{article}
\begin{document}
%s
Short line
\end{document}`, longLine)
	err := os.WriteFile(texFile, []byte(content), 0644)
	require.NoError(t, err)

	violations, err := ValidateLineLengths(texFile, 90)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, types.ViolationLineTooLong, violations[0].Type)
	assert.Equal(t, types.SeverityWarning, violations[0].Severity)
	require.NotNil(t, violations[0].LineNumber)
	assert.Equal(t, 3, *violations[0].LineNumber)
	require.NotNil(t, violations[0].CharCount)
	assert.Equal(t, 100, *violations[0].CharCount)
}

func TestValidateLineLengths_SkipsComments(t *testing.T) {
	tmpDir := t.TempDir()
	texFile := filepath.Join(tmpDir, "test.tex")
	longComment := strings.Repeat("a", 100)
	content := fmt.Sprintf(`\documentclass{article}
%% %s
\begin{document}
Short line %% %s
\end{document}`, longComment, longComment)
	err := os.WriteFile(texFile, []byte(content), 0644)
	require.NoError(t, err)

	violations, err := ValidateLineLengths(texFile, 90)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateLineLengths_FileNotFound(t *testing.T) {
	_, err := ValidateLineLengths("/nonexistent/file.tex", 90)
	assert.Error(t, err)
	var fileErr *FileReadError
	assert.ErrorAs(t, err, &fileErr)
}

func TestCheckLineLengths_DefaultLimit(t *testing.T) {
	violations, err := CheckLineLengths(strings.NewReader(strings.Repeat("b", DefaultMaxCharsPerLine+1)), 0)
	require.NoError(t, err)
	assert.Len(t, violations, 1)
}

func TestCheckLineLengths_VeryLongLine(t *testing.T) {
	violations, err := CheckLineLengths(strings.NewReader(strings.Repeat("c", 200*1024)), 90)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, 200*1024, *violations[0].CharCount)
}

func TestCountContentChars_SimpleText(t *testing.T) {
	assert.Equal(t, 16, countContentChars("Simple text line"))
}

func TestCountContentChars_WithLaTeXCommands(t *testing.T) {
	// \textbf{text} counts "text", not the command
	assert.Equal(t, len("Important text"), countContentChars(`\textbf{Important text}`))
}

func TestCountContentChars_MultiByte(t *testing.T) {
	assert.Equal(t, 6, countContentChars("résumé"))
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Content here % this is a comment", "Content here "},
		{`Cut costs by 30\% overall`, `Cut costs by 30\% overall`},
		{`\begin{itemize}%`, `\begin{itemize}`},
		{`line break\\% comment`, `line break\\`},
		{"no comment", "no comment"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, stripComment(tt.input))
		})
	}
}
