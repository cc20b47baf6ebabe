package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

func completeCV() *types.CVData {
	return &types.CVData{
		FullName: "Jane Doe",
		Title:    "Engineer",
		Email:    "jane@example.com",
		Skills:   "Go, SQL",
		Experience: []types.Experience{{
			Company:     "Acme",
			Role:        "Engineer",
			StartDate:   "2020",
			IsCurrent:   true,
			Description: "• Built things\n• Fixed things",
		}},
	}
}

func TestRenderDocument_Layouts(t *testing.T) {
	cv := completeCV()

	for _, id := range types.TemplateIDs {
		t.Run(string(id), func(t *testing.T) {
			result, err := renderDocument(cv, id, "", 90)
			require.NoError(t, err)

			assert.Equal(t, id, result.template)
			assert.Equal(t, rendering.RenderWithTemplate(cv, id), result.latex)
			assert.Equal(t, rendering.LayoutFor(id).Sections(cv), result.sections)
			require.NotNil(t, result.violations)
			assert.False(t, result.violations.HasErrors())
		})
	}
}

func TestRenderDocument_UnknownTemplateFallsBack(t *testing.T) {
	result, err := renderDocument(completeCV(), "", "", 90)
	require.NoError(t, err)
	assert.Equal(t, types.TemplateClassic, result.template)
}

func TestRenderDocument_CoreFieldWarnings(t *testing.T) {
	result, err := renderDocument(&types.CVData{FullName: "Jane Doe"}, types.TemplateClassic, "", -1)
	require.NoError(t, err)

	var details []string
	for _, v := range result.violations.Violations {
		if v.Type == types.ViolationMissingCoreField {
			details = append(details, v.Details)
		}
	}
	assert.Equal(t, []string{"title is required before export", "email is required before export"}, details)
}

func TestRenderDocument_CustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tex.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`\documentclass{article}
\begin{document}
<<.FirstName>> <<.LastName>>
<<range .Sections>>\section{<<.Title>>}
<<end>>\end{document}
`), 0644))

	result, err := renderDocument(completeCV(), types.TemplateBanking, path, 90)
	require.NoError(t, err)

	assert.Equal(t, types.TemplateBanking, result.template)
	assert.Contains(t, result.latex, "Jane Doe")
	assert.Contains(t, result.latex, `\section{Skills}`)
	assert.False(t, result.violations.HasErrors())
}

func TestRenderDocument_CustomTemplateMissing(t *testing.T) {
	_, err := renderDocument(completeCV(), types.TemplateClassic, "/nonexistent/custom.tmpl", 90)
	require.Error(t, err)

	var templateErr *rendering.TemplateError
	assert.True(t, errors.As(err, &templateErr))
}

func TestCheckStrict(t *testing.T) {
	cv := completeCV()
	result, err := renderDocument(cv, types.TemplateClassic, "", 90)
	require.NoError(t, err)
	assert.NoError(t, checkStrict(cv, result))

	incomplete := &types.CVData{FullName: "Jane Doe"}
	result, err = renderDocument(incomplete, types.TemplateClassic, "", 90)
	require.NoError(t, err)
	err = checkStrict(incomplete, result)
	require.Error(t, err)
	assert.Equal(t, "missing core fields: title, email", err.Error())

	broken := &renderResult{
		template: types.TemplateEuropass,
		violations: &types.Violations{Violations: []types.Violation{
			{Type: types.ViolationUnbalancedBraces, Severity: types.SeverityError, Details: "unexpected }"},
		}},
	}
	err = checkStrict(cv, broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "europass: ")
	assert.Contains(t, err.Error(), "unexpected }")
}

func TestRenderAll(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	cv := completeCV()

	results, err := renderAll(cv, outDir, 90)
	require.NoError(t, err)
	require.Len(t, results, len(types.TemplateIDs))

	for i, id := range types.TemplateIDs {
		assert.Equal(t, id, results[i].template)

		content, err := os.ReadFile(filepath.Join(outDir, "cv-"+string(id)+".tex"))
		require.NoError(t, err)
		assert.Equal(t, results[i].latex, string(content))
		assert.Equal(t, rendering.RenderWithTemplate(cv, id), string(content))
	}
}

func TestWriteOutput_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "cv.tex")

	require.NoError(t, writeOutput(path, "content"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestRenderCommand_ToStdout(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "render", "--in", testdataPath("valid", "cv.yaml"))
	output, err := cmd.Output()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(output), `\documentclass[11pt,a4paper,sans]{moderncv}`))
	assert.Contains(t, string(output), `\moderncvstyle{banking}`)
}

func TestRenderCommand_TemplateFlagOverridesRecord(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outputFile := filepath.Join(t.TempDir(), "cv.tex")

	cmd := exec.Command(binaryPath, "render",
		"--in", testdataPath("valid", "cv.yaml"),
		"--template", "europass",
		"--out", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Successfully rendered europass CV")

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), `\documentclass[english,a4paper,nologo]{europecv}`))
}

func TestRenderCommand_AllTemplates(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outDir := t.TempDir()

	cmd := exec.Command(binaryPath, "render",
		"--in", testdataPath("valid", "cv.json"),
		"--all-templates",
		"--out-dir", outDir)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	for _, id := range types.TemplateIDs {
		assert.FileExists(t, filepath.Join(outDir, "cv-"+string(id)+".tex"))
	}
}

func TestRenderCommand_MissingInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "render")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --in or --cv-id must be provided")
}

func TestRenderCommand_UnknownTemplate(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "render", "--in", testdataPath("valid", "cv.json"), "--template", "neon")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), `unknown template "neon"`)
}

func TestRenderCommand_OutDirRequiresAllTemplates(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "render", "--in", testdataPath("valid", "cv.json"), "--out-dir", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--out-dir is only used with --all-templates")
}

func TestRenderCommand_StrictFailsOnMissingCoreFields(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "render", "--in", testdataPath("invalid", "cv_bad_fields.json"), "--strict")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "missing core fields: fullName, title")
}

func TestRenderCommand_ConfigFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := t.TempDir()
	outputFile := filepath.Join(dir, "cv.tex")
	input, err := filepath.Abs(testdataPath("valid", "cv.json"))
	require.NoError(t, err)

	configFile := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"input": "`+filepath.ToSlash(input)+`", "output": "`+filepath.ToSlash(outputFile)+`", "template": "banking"}`), 0644))

	cmd := exec.Command(binaryPath, "render", "--config", configFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `\moderncvstyle{banking}`)
}
