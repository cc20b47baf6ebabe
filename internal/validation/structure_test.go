package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

func violationTypes(violations []types.Violation) []string {
	out := make([]string, len(violations))
	for i, v := range violations {
		out[i] = v.Type
	}
	return out
}

const wellFormed = `\documentclass{article}
\begin{document}
\section{Skills}
\textbf{Go} and 100\% \{literal\} braces \textbackslash{}
\begin{itemize}%
\item One
\end{itemize}
\end{document}
`

func TestCheckStructure_WellFormed(t *testing.T) {
	assert.Empty(t, CheckStructure(wellFormed))
}

func TestCheckStructure_GeneratedDocumentsAreWellFormed(t *testing.T) {
	cv := &types.CVData{
		FullName: `Jane {Evil} O'Brien\`,
		Title:    "50% & rising",
		Summary:  `\end{document} % not a comment`,
		Skills:   "C#, {Go}",
		Experience: []types.Experience{{
			Company:     "Acme",
			Description: "• }\n- {\n-\n• \\begin{itemize}",
		}},
		Projects: []types.Project{{Name: "x_y", Description: "-", Link: "https://a.b/%7B"}},
	}

	for _, id := range types.TemplateIDs {
		t.Run(string(id), func(t *testing.T) {
			assert.Empty(t, CheckStructure(rendering.RenderWithTemplate(cv, id)))
		})
	}
}

func TestCheckStructure_UnexpectedClosingBrace(t *testing.T) {
	content := "\\documentclass{article}\n\\begin{document}\n\\section{Profile}\ntext}\n\\end{document}"

	violations := CheckStructure(content)
	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, types.ViolationUnbalancedBraces, v.Type)
	assert.Equal(t, types.SeverityError, v.Severity)
	require.NotNil(t, v.LineNumber)
	assert.Equal(t, 4, *v.LineNumber)
	assert.Equal(t, []string{"Profile"}, v.AffectedSections)
}

func TestCheckStructure_UnclosedBrace(t *testing.T) {
	content := "\\documentclass{article}\n\\begin{document}\n\\textbf{open\n\\end{document}"

	violations := CheckStructure(content)
	require.Len(t, violations, 1)
	assert.Equal(t, types.ViolationUnbalancedBraces, violations[0].Type)
	assert.Equal(t, 3, *violations[0].LineNumber)
	assert.Contains(t, violations[0].Details, "1 brace(s) left open")
}

func TestCheckStructure_BracesInCommentsIgnored(t *testing.T) {
	content := "\\documentclass{article}\n% {{{ folded\n\\begin{document}\nx\n\\end{document}"
	assert.Empty(t, CheckStructure(content))
}

func TestCheckStructure_MismatchedEnvironment(t *testing.T) {
	content := "\\documentclass{article}\n\\begin{document}\n\\begin{itemize}\n\\item a\n\\end{enumerate}\n\\end{itemize}\n\\end{document}"

	violations := CheckStructure(content)
	require.Len(t, violations, 1)
	assert.Equal(t, types.ViolationEnvironment, violations[0].Type)
	assert.Equal(t, 5, *violations[0].LineNumber)
	assert.Contains(t, violations[0].Details, `\begin{itemize} from line 3`)
}

func TestCheckStructure_EndWithoutBegin(t *testing.T) {
	content := "\\documentclass{article}\n\\begin{document}\n\\end{itemize}\n\\end{document}"

	violations := CheckStructure(content)
	assert.Equal(t, []string{types.ViolationEnvironment}, violationTypes(violations))
}

func TestCheckStructure_UnclosedEnvironment(t *testing.T) {
	content := "\\documentclass{article}\n\\begin{document}\nbody"

	violations := CheckStructure(content)
	assert.Equal(t, []string{types.ViolationEnvironment, types.ViolationMissingShell}, violationTypes(violations))
	assert.Contains(t, violations[0].Details, `\begin{document} on line 2 is never closed`)
	assert.Contains(t, violations[1].Details, `\end{document}`)
}

func TestCheckStructure_MissingShell(t *testing.T) {
	violations := CheckStructure("just text")
	require.Len(t, violations, 1)
	assert.Equal(t, types.ViolationMissingShell, violations[0].Type)
	assert.Nil(t, violations[0].LineNumber)
	assert.Equal(t, `Document is missing \documentclass, \begin{document}, \end{document}`, violations[0].Details)
}

func TestCheckStructure_EmptyItemize(t *testing.T) {
	content := "\\documentclass{article}\n\\begin{document}\n\\section{Projects \\& Interests}\n\\begin{itemize}%\n\\end{itemize}\n\\end{document}"

	violations := CheckStructure(content)
	require.Len(t, violations, 1)
	assert.Equal(t, types.ViolationEmptyEnvironment, violations[0].Type)
	assert.Equal(t, 4, *violations[0].LineNumber)
	assert.Equal(t, []string{`Projects \& Interests`}, violations[0].AffectedSections)
}

func TestCheckStructure_InlineList(t *testing.T) {
	content := "\\documentclass{article}\n\\begin{document}\n\\begin{itemize}\\item a\\end{itemize}\n\\end{document}"
	assert.Empty(t, CheckStructure(content))
}

func TestCheckStructure_ItemsepIsNotAnItem(t *testing.T) {
	content := "\\documentclass{article}\n\\begin{document}\n\\begin{itemize}\\itemsep0pt\n\\end{itemize}\n\\end{document}"
	assert.Equal(t, []string{types.ViolationEmptyEnvironment}, violationTypes(CheckStructure(content)))
}
