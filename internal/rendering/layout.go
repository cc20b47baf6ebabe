package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Layout renders a whole document for one template identifier
type Layout interface {
	ID() types.TemplateID
	// Sections returns the non-empty sections in document order
	Sections(cv *types.CVData) []Section
	Render(cv *types.CVData) string
}

// layouts is the single dispatch table from identifier to layout
var layouts = map[types.TemplateID]Layout{
	types.TemplateClassic:  moderncvLayout{id: types.TemplateClassic, style: "classic", color: "green"},
	types.TemplateBanking:  moderncvLayout{id: types.TemplateBanking, style: "banking", color: "blue", flatProjects: true},
	types.TemplateEuropass: europassLayout{},
}

// LayoutFor returns the layout registered for id, or the classic layout
// when id is empty or unknown.
func LayoutFor(id types.TemplateID) Layout {
	if layout, ok := layouts[id]; ok {
		return layout
	}
	return layouts[types.TemplateClassic]
}

// Render generates the LaTeX document for cv using the layout named by
// cv.Template. A nil record renders like an empty one.
func Render(cv *types.CVData) string {
	if cv == nil {
		return RenderWithTemplate(nil, types.TemplateClassic)
	}
	return RenderWithTemplate(cv, cv.Template)
}

// RenderWithTemplate generates the LaTeX document for cv with an explicit
// layout, ignoring cv.Template.
func RenderWithTemplate(cv *types.CVData, id types.TemplateID) string {
	if cv == nil {
		cv = &types.CVData{}
	}
	return LayoutFor(id).Render(cv)
}

// personalInfo holds the sanitized personal fields shared by every layout
type personalInfo struct {
	FirstName string
	LastName  string
	Title     string
	Email     string
	Phone     string
	LinkedIn  string
	GitHub    string
	Homepage  string

	// Handles as \social arguments, where moderncv builds the link from them
	LinkedInURL string
	GitHubURL   string
}

func newPersonalInfo(cv *types.CVData) personalInfo {
	first, last := SplitName(cv.FullName)
	return personalInfo{
		FirstName: Sanitize(first),
		LastName:  Sanitize(last),
		Title:     Sanitize(cv.Title),
		Email:     Sanitize(cv.Email),
		Phone:     Sanitize(cv.Phone),
		LinkedIn:  Sanitize(ExtractHandle(cv.LinkedIn)),
		GitHub:    Sanitize(ExtractHandle(cv.GitHub)),
		Homepage:  EscapeURL(CleanURL(cv.Website)),

		LinkedInURL: EscapeURL(ExtractHandle(cv.LinkedIn)),
		GitHubURL:   EscapeURL(ExtractHandle(cv.GitHub)),
	}
}

// writeOptional writes format with value only when value is non-empty
func writeOptional(b *strings.Builder, format, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, format, value)
}

// writeSections writes each section followed by a blank line
func writeSections(b *strings.Builder, sections []Section, heading string) {
	for _, section := range sections {
		b.WriteString(section.Format(heading))
		b.WriteString("\n")
	}
}

// moderncvLayout covers the classic and banking layouts, which share their
// builders and order and differ in style, color and project form.
type moderncvLayout struct {
	id           types.TemplateID
	style        string
	color        string
	flatProjects bool
}

func (l moderncvLayout) ID() types.TemplateID {
	return l.id
}

func (l moderncvLayout) sectionDefs() []sectionDef {
	return []sectionDef{
		{title: TitleProfile, body: profileBody},
		{title: TitleEducation, body: educationBody},
		{title: TitleActivities, body: activitiesBody},
		{title: TitleCertifications, body: certificationsBody},
		{title: TitleExperience, body: experienceBody},
		{title: TitleLanguages, body: languagesBody(`\cvitem`)},
		{title: TitleSkills, body: skillsBody(`\cvitem`)},
		{title: TitleProjects, body: projectsBody(l.flatProjects)},
	}
}

func (l moderncvLayout) Sections(cv *types.CVData) []Section {
	return buildSections(cv, l.sectionDefs())
}

func (l moderncvLayout) Render(cv *types.CVData) string {
	info := newPersonalInfo(cv)

	var b strings.Builder
	b.WriteString("\\documentclass[11pt,a4paper,sans]{moderncv}\n\n")
	b.WriteString("% ModernCV theme and color\n")
	fmt.Fprintf(&b, "\\moderncvstyle{%s}\n", l.style)
	fmt.Fprintf(&b, "\\moderncvcolor{%s}\n", l.color)
	b.WriteString("\\usepackage[utf8]{inputenc}\n")
	b.WriteString("\\usepackage[scale=0.8]{geometry}\n")
	b.WriteString("\\setlength{\\hintscolumnwidth}{3cm} % width of the date column\n")
	b.WriteString("\\usepackage{enumitem}\n\n")

	b.WriteString("% Personal data\n")
	fmt.Fprintf(&b, "\\name{%s}{%s}\n", info.FirstName, info.LastName)
	writeOptional(&b, "\\title{%s}\n", info.Title)
	writeOptional(&b, "\\phone[mobile]{%s}\n", info.Phone)
	writeOptional(&b, "\\email{%s}\n", info.Email)
	writeOptional(&b, "\\social[linkedin]{%s}\n", info.LinkedInURL)
	writeOptional(&b, "\\social[github]{%s}\n", info.GitHubURL)
	writeOptional(&b, "\\homepage{%s}\n", info.Homepage)

	b.WriteString("\n\\begin{document}\n\n\\makecvtitle\n\n")
	writeSections(&b, l.Sections(cv), `\section`)
	b.WriteString("\\end{document}\n")
	return b.String()
}
