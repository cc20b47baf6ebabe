package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateID(t *testing.T) {
	tests := []struct {
		input string
		want  TemplateID
		known bool
	}{
		{"classic", TemplateClassic, true},
		{"banking", TemplateBanking, true},
		{"europass", TemplateEuropass, true},
		{"  Europass ", TemplateEuropass, true},
		{"", TemplateClassic, false},
		{"fancy", TemplateClassic, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, known := ParseTemplateID(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestCVData_JSONWireNames(t *testing.T) {
	content := `{
		"fullName": "Jane Doe",
		"title": "Engineer",
		"template": "banking",
		"extracurricularActivities": [{"id": "a1", "organization": "Chess Club", "isCurrent": true}],
		"experience": [{"id": "e1", "company": "Acme", "employmentType": "Full-time"}],
		"languages": [{"id": "l1", "name": "French", "proficiency": "Fluent"}]
	}`

	var cv CVData
	require.NoError(t, json.Unmarshal([]byte(content), &cv))

	assert.Equal(t, "Jane Doe", cv.FullName)
	assert.Equal(t, TemplateBanking, cv.Template)
	require.Len(t, cv.ExtracurricularActivities, 1)
	assert.True(t, cv.ExtracurricularActivities[0].IsCurrent)
	require.Len(t, cv.Experience, 1)
	assert.Equal(t, "Full-time", cv.Experience[0].EmploymentType)
	assert.Empty(t, cv.Education)
}

func TestCVData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cv      CVData
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty record is valid",
			cv:      CVData{},
			wantErr: false,
		},
		{
			name: "valid record",
			cv: CVData{
				FullName:  "Jane Doe",
				Email:     "jane@example.com",
				Website:   "https://jane.dev",
				Template:  TemplateEuropass,
				Languages: []Language{{Name: "German", Proficiency: "Native"}},
			},
			wantErr: false,
		},
		{
			name:    "invalid email",
			cv:      CVData{Email: "not-an-email"},
			wantErr: true,
			errMsg:  "Email",
		},
		{
			name:    "unknown template",
			cv:      CVData{Template: "fancy"},
			wantErr: true,
			errMsg:  "Template",
		},
		{
			name:    "unknown proficiency",
			cv:      CVData{Languages: []Language{{Name: "Dutch", Proficiency: "Expert"}}},
			wantErr: true,
			errMsg:  "Proficiency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cv.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErrs validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrs)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCVData_MissingCoreFields(t *testing.T) {
	var nilCV *CVData
	assert.Equal(t, []string{"fullName", "title", "email"}, nilCV.MissingCoreFields())

	cv := &CVData{FullName: "Jane Doe", Title: "  "}
	assert.Equal(t, []string{"title", "email"}, cv.MissingCoreFields())

	cv.Title = "Engineer"
	cv.Email = "jane@example.com"
	assert.Empty(t, cv.MissingCoreFields())
}
