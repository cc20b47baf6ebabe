package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Section titles. Titles are LaTeX source, so they carry their own escapes.
const (
	TitleProfile        = "Profile"
	TitleEducation      = "Education"
	TitleActivities     = "Extracurricular Activities"
	TitleCertifications = "Certifications"
	TitleExperience     = "Professional Experience"
	TitleLanguages      = "Languages"
	TitleSkills         = "Skills"
	TitleProjects       = `Projects \& Interests`
	TitleWorkExperience = "Work Experience"
)

// NoLanguagesPlaceholder is the text shown when no language line is produced
const NoLanguagesPlaceholder = "No languages specified"

// Section is one titled block of a generated document
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Format renders the section with the layout's heading command, e.g. \section
func (s Section) Format(heading string) string {
	return fmt.Sprintf("%%-----------%s-----------\n%s{%s}\n%s\n", strings.ToUpper(s.Title), heading, s.Title, s.Body)
}

// sectionDef pairs a title with the builder producing its body
type sectionDef struct {
	title string
	body  func(cv *types.CVData) string
}

// newSection is the only place deciding whether a section is emitted:
// a body that is blank after trimming never produces a heading.
func newSection(title, body string) (Section, bool) {
	if strings.TrimSpace(body) == "" {
		return Section{}, false
	}
	return Section{Title: title, Body: body}, true
}

// buildSections runs every section definition in order and keeps the non-blank sections
func buildSections(cv *types.CVData, defs []sectionDef) []Section {
	sections := make([]Section, 0, len(defs))
	for _, def := range defs {
		if section, ok := newSection(def.title, def.body(cv)); ok {
			sections = append(sections, section)
		}
	}
	return sections
}

// joinEntries joins rendered entries, skipping the ones that came out empty
func joinEntries(entries []string) string {
	kept := entries[:0]
	for _, entry := range entries {
		if entry != "" {
			kept = append(kept, entry)
		}
	}
	return strings.Join(kept, "\n")
}

func allEmpty(values ...string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

// cventry formats moderncv's six-argument entry command. The description
// argument opens with % so that a multi-line body adds no stray space.
func cventry(dates, title, employer, location, extra, description string) string {
	if description != "" && strings.Contains(description, "\n") {
		description = "%\n" + description
	}
	return fmt.Sprintf(`\cventry{%s}{%s}{%s}{%s}{%s}{%s}`, dates, title, employer, location, extra, description)
}

func profileBody(cv *types.CVData) string {
	summary := Sanitize(cv.Summary)
	if summary == "" {
		return ""
	}
	return `\cvitem{}{` + summary + `}`
}

// educationPeriod shows start--end when both dates are known, else the year
func educationPeriod(edu types.Education) string {
	start := strings.TrimSpace(edu.StartDate)
	end := strings.TrimSpace(edu.EndDate)
	if start != "" && (end != "" || edu.IsCurrent) {
		return DateRange(start, end, edu.IsCurrent)
	}
	return Sanitize(edu.Year)
}

func educationEntry(edu types.Education) string {
	period := educationPeriod(edu)
	degree := Sanitize(edu.Degree)
	institution := Sanitize(edu.Institution)
	location := Sanitize(edu.Location)
	speciality := Sanitize(edu.Speciality)
	details := Sanitize(edu.Details)
	if allEmpty(period, degree, institution, location, speciality, details) {
		return ""
	}
	return cventry(period, degree, institution, location, speciality, details)
}

func educationBody(cv *types.CVData) string {
	entries := make([]string, len(cv.Education))
	for i, edu := range cv.Education {
		entries[i] = educationEntry(edu)
	}
	return joinEntries(entries)
}

// roleLabel appends the employment type in parentheses when one is set
func roleLabel(role, employmentType string) string {
	role = Sanitize(role)
	employmentType = Sanitize(employmentType)
	if employmentType == "" {
		return role
	}
	return strings.TrimSpace(role + " (" + employmentType + ")")
}

func technologiesLine(technologies string) string {
	tech := Sanitize(technologies)
	if tech == "" {
		return ""
	}
	return `\textit{Technologies \& Skills:} ` + tech
}

func experienceEntry(exp types.Experience) string {
	dates := DateRange(exp.StartDate, exp.EndDate, exp.IsCurrent)
	role := roleLabel(exp.Role, exp.EmploymentType)
	company := Sanitize(exp.Company)
	location := Sanitize(exp.Location)
	description := joinEntries([]string{
		itemize(ReflowBullets(exp.Description, false)),
		technologiesLine(exp.Technologies),
	})
	if allEmpty(dates, role, company, location, description) {
		return ""
	}
	return cventry(dates, role, company, location, "", description)
}

func experienceBody(cv *types.CVData) string {
	entries := make([]string, len(cv.Experience))
	for i, exp := range cv.Experience {
		entries[i] = experienceEntry(exp)
	}
	return joinEntries(entries)
}

func activityEntry(activity types.ExtracurricularActivity) string {
	dates := DateRange(activity.StartDate, activity.EndDate, activity.IsCurrent)
	organization := Sanitize(activity.Organization)
	location := Sanitize(activity.Location)
	description := itemize(ReflowBullets(activity.Description, false))
	if allEmpty(dates, organization, location, description) {
		return ""
	}
	return cventry(dates, organization, location, "", "", description)
}

func activitiesBody(cv *types.CVData) string {
	entries := make([]string, len(cv.ExtracurricularActivities))
	for i, activity := range cv.ExtracurricularActivities {
		entries[i] = activityEntry(activity)
	}
	return joinEntries(entries)
}

// certificationEntry skips entries whose fields are all blank, matching
// how projects and languages treat empty entries.
func certificationEntry(cert types.Certification) string {
	date := Sanitize(cert.Date)
	name := Sanitize(cert.Name)
	provider := Sanitize(cert.Provider)
	details := Sanitize(cert.Details)
	if allEmpty(date, name, provider, details) {
		return ""
	}
	return cventry(date, name, provider, "", "", details)
}

func certificationsBody(cv *types.CVData) string {
	entries := make([]string, len(cv.Certifications))
	for i, cert := range cv.Certifications {
		entries[i] = certificationEntry(cert)
	}
	return joinEntries(entries)
}

// skillsBody keeps the comma-separated skills as one sanitized unit
func skillsBody(item string) func(cv *types.CVData) string {
	return func(cv *types.CVData) string {
		skills := Sanitize(cv.Skills)
		if skills == "" {
			return ""
		}
		return item + `{}{` + skills + `}`
	}
}

func linkMarker(link string) string {
	escaped := EscapeURL(link)
	if escaped == "" {
		return ""
	}
	return `\href{` + escaped + `}{[Link]}`
}

func projectEntry(project types.Project, flat bool) string {
	name := Sanitize(project.Name)
	var content string
	if flat {
		content = strings.TrimSpace(strings.Join([]string{ReflowBullets(project.Description, true), linkMarker(project.Link)}, " "))
	} else {
		content = joinEntries([]string{itemize(ReflowBullets(project.Description, false)), linkMarker(project.Link)})
	}
	if name == "" || content == "" {
		return ""
	}
	return `\cvitem{` + name + `}{` + content + `}`
}

func projectsBody(flat bool) func(cv *types.CVData) string {
	return func(cv *types.CVData) string {
		entries := make([]string, len(cv.Projects))
		for i, project := range cv.Projects {
			entries[i] = projectEntry(project, flat)
		}
		return joinEntries(entries)
	}
}

// languagesBody emits one line per complete entry. When no line survives,
// the section shows NoLanguagesPlaceholder instead of disappearing.
func languagesBody(item string) func(cv *types.CVData) string {
	return func(cv *types.CVData) string {
		var lines []string
		for _, lang := range cv.Languages {
			name := Sanitize(lang.Name)
			level := Sanitize(lang.Proficiency)
			if name == "" || level == "" {
				continue
			}
			lines = append(lines, item+`{`+name+`}{`+level+`}`)
		}
		if len(lines) == 0 {
			return item + `{}{` + NoLanguagesPlaceholder + `}`
		}
		return strings.Join(lines, "\n")
	}
}
