package cvdata

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonathan/cv-builder/internal/types"
)

// Options controls Normalize
type Options struct {
	// StripMarkup removes HTML pasted from rich text editors
	StripMarkup bool
}

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// lineBreakTags are the tags that end a visual line in pasted rich text
var lineBreakTags = regexp.MustCompile(`(?i)<br\s*/?>|</(p|li|div|h[1-6])>`)

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	return markupPolicy
}

// StripMarkup removes every HTML tag from text and decodes entities. Block
// and line-break tags become newlines so that pasted lists keep one bullet
// per line.
func StripMarkup(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}
	withBreaks := lineBreakTags.ReplaceAllString(text, "\n")
	return html.UnescapeString(markupSanitizer().Sanitize(withBreaks))
}

// Normalize cleans a loaded record in place: string fields are trimmed,
// entries marked current get the "Present" end date the editor stores, and
// markup is optionally stripped.
func Normalize(cv *types.CVData, opts Options) {
	if cv == nil {
		return
	}

	clean := func(s string) string {
		if opts.StripMarkup {
			s = StripMarkup(s)
		}
		return strings.TrimSpace(s)
	}

	cv.FullName = clean(cv.FullName)
	cv.Title = clean(cv.Title)
	cv.Email = clean(cv.Email)
	cv.Phone = clean(cv.Phone)
	cv.Website = clean(cv.Website)
	cv.LinkedIn = clean(cv.LinkedIn)
	cv.GitHub = clean(cv.GitHub)
	cv.Summary = clean(cv.Summary)
	cv.Skills = clean(cv.Skills)
	if id, ok := types.ParseTemplateID(string(cv.Template)); ok {
		cv.Template = id
	}

	for i := range cv.Experience {
		exp := &cv.Experience[i]
		exp.Company = clean(exp.Company)
		exp.Role = clean(exp.Role)
		exp.EmploymentType = clean(exp.EmploymentType)
		exp.Location = clean(exp.Location)
		exp.StartDate = clean(exp.StartDate)
		exp.EndDate = endDate(clean(exp.EndDate), exp.IsCurrent)
		exp.Technologies = clean(exp.Technologies)
		exp.Description = clean(exp.Description)
	}

	for i := range cv.Education {
		edu := &cv.Education[i]
		edu.Institution = clean(edu.Institution)
		edu.Degree = clean(edu.Degree)
		edu.Speciality = clean(edu.Speciality)
		edu.Location = clean(edu.Location)
		edu.StartDate = clean(edu.StartDate)
		edu.EndDate = endDate(clean(edu.EndDate), edu.IsCurrent)
		edu.Year = clean(edu.Year)
		edu.Details = clean(edu.Details)
	}

	for i := range cv.Certifications {
		cert := &cv.Certifications[i]
		cert.Name = clean(cert.Name)
		cert.Provider = clean(cert.Provider)
		cert.Date = clean(cert.Date)
		cert.Details = clean(cert.Details)
	}

	for i := range cv.Projects {
		project := &cv.Projects[i]
		project.Name = clean(project.Name)
		project.Technologies = clean(project.Technologies)
		project.Link = clean(project.Link)
		project.Description = clean(project.Description)
	}

	for i := range cv.ExtracurricularActivities {
		activity := &cv.ExtracurricularActivities[i]
		activity.Organization = clean(activity.Organization)
		activity.Location = clean(activity.Location)
		activity.StartDate = clean(activity.StartDate)
		activity.EndDate = endDate(clean(activity.EndDate), activity.IsCurrent)
		activity.Description = clean(activity.Description)
	}

	for i := range cv.Languages {
		lang := &cv.Languages[i]
		lang.Name = clean(lang.Name)
		lang.Proficiency = normalizeProficiency(clean(lang.Proficiency))
	}
}

func endDate(end string, current bool) string {
	if current {
		return types.PresentSentinel
	}
	return end
}

var proficiencyLevels = []string{"Native", "Fluent", "Advanced", "Intermediate", "Basic"}

// normalizeProficiency fixes the case of known levels, e.g. "fluent" -> "Fluent"
func normalizeProficiency(level string) string {
	for _, known := range proficiencyLevels {
		if strings.EqualFold(level, known) {
			return known
		}
	}
	return level
}
