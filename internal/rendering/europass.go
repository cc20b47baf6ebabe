package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// europassLayout renders the standardized European layout with the
// europecv class. It only carries work experience, education, languages
// and skills.
type europassLayout struct{}

func (europassLayout) ID() types.TemplateID {
	return types.TemplateEuropass
}

func (europassLayout) sectionDefs() []sectionDef {
	return []sectionDef{
		{title: TitleWorkExperience, body: europassExperienceBody},
		{title: TitleEducation, body: europassEducationBody},
		{title: TitleLanguages, body: languagesBody(`\ecvitem`)},
		{title: TitleSkills, body: skillsBody(`\ecvitem`)},
	}
}

func (l europassLayout) Sections(cv *types.CVData) []Section {
	return buildSections(cv, l.sectionDefs())
}

func (l europassLayout) Render(cv *types.CVData) string {
	info := newPersonalInfo(cv)

	var b strings.Builder
	b.WriteString("\\documentclass[english,a4paper,nologo]{europecv}\n\n")
	b.WriteString("% Europass layout\n")
	b.WriteString("\\usepackage[utf8]{inputenc}\n")
	b.WriteString("\\usepackage[T1]{fontenc}\n")
	b.WriteString("\\usepackage[a4paper,top=1.5cm,left=1cm,right=1cm,bottom=2cm]{geometry}\n")
	b.WriteString("\\usepackage{enumitem}\n")
	b.WriteString("\\usepackage{hyperref}\n\n")

	b.WriteString("% Personal data\n")
	fmt.Fprintf(&b, "\\ecvname{%s}\n", europassName(info))
	writeOptional(&b, "\\ecvtelephone{%s}\n", info.Phone)
	writeOptional(&b, "\\ecvemail{%s}\n", info.Email)
	writeOptional(&b, "\\ecvhomepage{%s}\n", info.Homepage)

	b.WriteString("\n\\begin{document}\n\\begin{europecv}\n\\ecvpersonalinfo\n")
	writeOptional(&b, "\\ecvitem{\\large\\textbf{Desired employment}}{\\large\\textbf{%s}}\n", info.Title)
	writeOptional(&b, "\\ecvitem{LinkedIn}{%s}\n", info.LinkedIn)
	writeOptional(&b, "\\ecvitem{GitHub}{%s}\n", info.GitHub)
	b.WriteString("\n")

	writeSections(&b, l.Sections(cv), `\ecvsection`)
	b.WriteString("\\end{europecv}\n\\end{document}\n")
	return b.String()
}

// europassName follows the "Surname, Name" convention of the format
func europassName(info personalInfo) string {
	if info.FirstName == "" {
		return info.LastName
	}
	return info.LastName + ", " + info.FirstName
}

// ecvEntry writes one \ecvitem per non-empty line. The dates label the first
// line; an entry with dates but no content still gets one line.
func ecvEntry(dates string, lines ...string) string {
	var out []string
	for _, line := range lines {
		if line == "" {
			continue
		}
		label := ""
		if len(out) == 0 {
			label = dates
		}
		out = append(out, `\ecvitem{`+label+`}{`+line+`}`)
	}
	if len(out) == 0 && dates != "" {
		out = append(out, `\ecvitem{`+dates+`}{}`)
	}
	return strings.Join(out, "\n")
}

func bold(text string) string {
	if text == "" {
		return ""
	}
	return `\textbf{` + text + `}`
}

// commaJoin joins the non-empty parts with ", "
func commaJoin(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}

func europassExperienceBody(cv *types.CVData) string {
	entries := make([]string, len(cv.Experience))
	for i, exp := range cv.Experience {
		entries[i] = ecvEntry(
			DateRange(exp.StartDate, exp.EndDate, exp.IsCurrent),
			bold(roleLabel(exp.Role, exp.EmploymentType)),
			commaJoin(Sanitize(exp.Company), Sanitize(exp.Location)),
			itemize(ReflowBullets(exp.Description, false)),
			technologiesLine(exp.Technologies),
		)
	}
	return joinEntries(entries)
}

func europassEducationBody(cv *types.CVData) string {
	entries := make([]string, len(cv.Education))
	for i, edu := range cv.Education {
		entries[i] = ecvEntry(
			educationPeriod(edu),
			bold(Sanitize(edu.Degree)),
			commaJoin(Sanitize(edu.Institution), Sanitize(edu.Location)),
			Sanitize(edu.Speciality),
			Sanitize(edu.Details),
		)
	}
	return joinEntries(entries)
}
