package rendering

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/cv-builder/internal/types"
)

// TemplateData represents the data structure passed to a custom LaTeX template.
// Personal fields are already sanitized; CV gives raw access for the
// template functions.
type TemplateData struct {
	Template  types.TemplateID
	FullName  string
	FirstName string
	LastName  string
	Title     string
	Email     string
	Phone     string
	LinkedIn  string
	GitHub    string
	Homepage  string
	Sections  []Section
	CV        *types.CVData
}

// templateFuncs are available to custom templates
var templateFuncs = template.FuncMap{
	"escape":   EscapeLaTeX,
	"sanitize": Sanitize,
	"url":      EscapeURL,
	"handle":   ExtractHandle,
	"bullets":  BulletLines,
	"upper":    strings.ToUpper,
}

// RenderCustom renders cv through a user supplied text/template file. The
// sections are built by the layout named id, so a custom template can reuse
// the built-in section bodies while owning the document shell.
func RenderCustom(cv *types.CVData, templatePath string, id types.TemplateID) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	data := buildTemplateData(cv, id)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &RenderError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	// LaTeX uses braces heavily, so actions are delimited with << >> instead of {{ }}
	tmpl, err := template.New("cv").Delims("<<", ">>").Funcs(templateFuncs).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

// buildTemplateData constructs the template data structure from a CV record
func buildTemplateData(cv *types.CVData, id types.TemplateID) *TemplateData {
	if cv == nil {
		cv = &types.CVData{}
	}
	layout := LayoutFor(id)
	info := newPersonalInfo(cv)

	return &TemplateData{
		Template:  layout.ID(),
		FullName:  Sanitize(cv.FullName),
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Title:     info.Title,
		Email:     info.Email,
		Phone:     info.Phone,
		LinkedIn:  info.LinkedIn,
		GitHub:    info.GitHub,
		Homepage:  info.Homepage,
		Sections:  layout.Sections(cv),
		CV:        cv,
	}
}
