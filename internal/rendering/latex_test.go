package rendering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "custom.tex.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRenderCustom_ValidTemplate(t *testing.T) {
	path := writeTemplate(t, `\documentclass{article}
\begin{document}
<<.FullName>> (<<.Title>>) <<.Email>>
<<range .Sections>><<.Title>>;<<end>>
\end{document}
`)

	cv := &types.CVData{
		FullName: "Jane Doe",
		Title:    "R&D Lead",
		Email:    "jane@example.com",
		Skills:   "Go",
	}
	result, err := RenderCustom(cv, path, types.TemplateClassic)
	require.NoError(t, err)
	assert.Contains(t, result, `Jane Doe (R\&D Lead) jane@example.com`)
	assert.Contains(t, result, "Languages;Skills;")
	assert.Contains(t, result, `\begin{document}`)
}

func TestRenderCustom_FunctionsAndRawRecord(t *testing.T) {
	path := writeTemplate(t, `<<range .CV.Experience>><<sanitize .Company>>|<<range bullets .Description>>[<<.>>]<<end>><<end>>
<<url .CV.Website>> <<handle .CV.GitHub>> <<upper (print .Template)>> <<escape "a_b">>`)

	cv := &types.CVData{
		Website: "https://x.dev/a_b",
		GitHub:  "https://github.com/jane/",
		Experience: []types.Experience{
			{Company: "Acme & Co", Description: "- One\n- Two"},
		},
	}
	result, err := RenderCustom(cv, path, types.TemplateEuropass)
	require.NoError(t, err)
	assert.Contains(t, result, `Acme \& Co|[One][Two]`)
	assert.Contains(t, result, `https://x.dev/a\_b jane EUROPASS a\_b`)
}

func TestRenderCustom_SectionsFollowLayout(t *testing.T) {
	path := writeTemplate(t, `<<range .Sections>><<.Title>>
<<end>>`)

	cv := &types.CVData{Experience: []types.Experience{{Company: "Acme"}}}

	europass, err := RenderCustom(cv, path, types.TemplateEuropass)
	require.NoError(t, err)
	assert.Contains(t, europass, TitleWorkExperience)

	classic, err := RenderCustom(cv, path, "unknown")
	require.NoError(t, err)
	assert.Contains(t, classic, TitleExperience)
}

func TestRenderCustom_NilRecord(t *testing.T) {
	path := writeTemplate(t, `[<<.FullName>>]`)

	result, err := RenderCustom(nil, path, types.TemplateClassic)
	require.NoError(t, err)
	assert.Equal(t, "[]", result)
}

func TestRenderCustom_MissingFile(t *testing.T) {
	_, err := RenderCustom(&types.CVData{}, filepath.Join(t.TempDir(), "missing.tmpl"), types.TemplateClassic)
	require.Error(t, err)

	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Contains(t, tmplErr.Message, "template file not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderCustom_ParseError(t *testing.T) {
	path := writeTemplate(t, `<<if .FullName>>unterminated`)

	_, err := RenderCustom(&types.CVData{}, path, types.TemplateClassic)
	require.Error(t, err)

	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, "failed to parse template", tmplErr.Message)
}

func TestRenderCustom_BraceDelimitersAreLiteral(t *testing.T) {
	path := writeTemplate(t, `\textbf{{<<.LastName>>}}`)

	result, err := RenderCustom(&types.CVData{FullName: "Jane Doe"}, path, types.TemplateClassic)
	require.NoError(t, err)
	assert.Equal(t, `\textbf{{Doe}}`, result)
}

func TestRenderCustom_ExecuteError(t *testing.T) {
	path := writeTemplate(t, `<<.NoSuchField>>`)

	_, err := RenderCustom(&types.CVData{}, path, types.TemplateClassic)
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "failed to execute template", renderErr.Message)
}
