// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// TemplateID selects a whole-document layout
type TemplateID string

// Known layouts. An empty or unknown identifier renders as TemplateClassic.
const (
	TemplateClassic  TemplateID = "classic"
	TemplateBanking  TemplateID = "banking"
	TemplateEuropass TemplateID = "europass"
)

// TemplateIDs lists the known layouts in display order
var TemplateIDs = []TemplateID{TemplateClassic, TemplateBanking, TemplateEuropass}

// ParseTemplateID normalizes a user supplied identifier. The boolean reports
// whether the identifier named a known layout.
func ParseTemplateID(s string) (TemplateID, bool) {
	id := TemplateID(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TemplateIDs {
		if id == known {
			return id, true
		}
	}
	return TemplateClassic, false
}

// PresentSentinel is the end date the editor stores for ongoing entries
const PresentSentinel = "Present"

// CVData is the complete CV record edited in the form UI
type CVData struct {
	FullName string     `json:"fullName" yaml:"fullName"`
	Title    string     `json:"title" yaml:"title"`
	Email    string     `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone    string     `json:"phone" yaml:"phone"`
	Website  string     `json:"website" yaml:"website" validate:"omitempty,url"`
	LinkedIn string     `json:"linkedin" yaml:"linkedin"`
	GitHub   string     `json:"github" yaml:"github"`
	Summary  string     `json:"summary" yaml:"summary"`
	Skills   string     `json:"skills" yaml:"skills"` // Comma separated
	Template TemplateID `json:"template,omitempty" yaml:"template,omitempty" validate:"omitempty,oneof=classic banking europass"`

	Experience                []Experience              `json:"experience" yaml:"experience" validate:"dive"`
	Education                 []Education               `json:"education" yaml:"education" validate:"dive"`
	Certifications            []Certification           `json:"certifications" yaml:"certifications" validate:"dive"`
	Projects                  []Project                 `json:"projects" yaml:"projects" validate:"dive"`
	ExtracurricularActivities []ExtracurricularActivity `json:"extracurricularActivities" yaml:"extracurricularActivities" validate:"dive"`
	Languages                 []Language                `json:"languages" yaml:"languages" validate:"dive"`
}

// Experience represents one work experience entry
type Experience struct {
	ID             string `json:"id" yaml:"id"`
	Company        string `json:"company" yaml:"company"`
	Role           string `json:"role" yaml:"role"`
	EmploymentType string `json:"employmentType" yaml:"employmentType"`
	Location       string `json:"location" yaml:"location"`
	StartDate      string `json:"startDate" yaml:"startDate"`
	EndDate        string `json:"endDate" yaml:"endDate"`
	IsCurrent      bool   `json:"isCurrent" yaml:"isCurrent"`
	Technologies   string `json:"technologies" yaml:"technologies"`
	Description    string `json:"description" yaml:"description"` // Bullet points separated by newlines
}

// Education represents one education entry
type Education struct {
	ID          string `json:"id" yaml:"id"`
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Speciality  string `json:"speciality" yaml:"speciality"`
	Location    string `json:"location" yaml:"location"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	IsCurrent   bool   `json:"isCurrent" yaml:"isCurrent"`
	Year        string `json:"year" yaml:"year"`
	Details     string `json:"details" yaml:"details"`
}

// Certification represents one certification entry
type Certification struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Provider string `json:"provider" yaml:"provider"`
	Date     string `json:"date" yaml:"date"`
	Details  string `json:"details" yaml:"details"`
}

// Project represents one project entry
type Project struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Technologies string `json:"technologies" yaml:"technologies"`
	Link         string `json:"link" yaml:"link"`
	Description  string `json:"description" yaml:"description"`
}

// ExtracurricularActivity represents one activity entry
type ExtracurricularActivity struct {
	ID           string `json:"id" yaml:"id"`
	Organization string `json:"organization" yaml:"organization"`
	Location     string `json:"location" yaml:"location"`
	StartDate    string `json:"startDate" yaml:"startDate"`
	EndDate      string `json:"endDate" yaml:"endDate"`
	IsCurrent    bool   `json:"isCurrent" yaml:"isCurrent"`
	Description  string `json:"description" yaml:"description"`
}

// Language represents one spoken language and its level
type Language struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Proficiency string `json:"proficiency" yaml:"proficiency" validate:"omitempty,oneof=Native Fluent Advanced Intermediate Basic"`
}

// Validate validates the CVData using the validator.
// Rendering never requires a valid record; this is advisory linting.
func (cv *CVData) Validate() error {
	validate := validator.New()
	return validate.Struct(cv)
}

// MissingCoreFields returns the names of the fields that must be filled
// before a CV is exported (full name, title and email).
func (cv *CVData) MissingCoreFields() []string {
	if cv == nil {
		return []string{"fullName", "title", "email"}
	}
	var missing []string
	if strings.TrimSpace(cv.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(cv.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(cv.Email) == "" {
		missing = append(missing, "email")
	}
	return missing
}
