package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/cvdata"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/validation"
	cvschema "github.com/jonathan/cv-builder/schemas"
)

// RenderRequest represents the request body for /render and /render/tex.
// Exactly one of CV and CVID must be set.
type RenderRequest struct {
	CV          *types.CVData `json:"cv,omitempty"`
	CVID        string        `json:"cv_id,omitempty"`
	Template    string        `json:"template,omitempty"`
	StripMarkup bool          `json:"strip_markup,omitempty"`
}

// RenderResponse represents the response for /render
type RenderResponse struct {
	Template types.TemplateID    `json:"template"`
	LaTeX    string              `json:"latex"`
	Sections []rendering.Section `json:"sections"`
	Warnings []types.Violation   `json:"warnings"`
	RenderID string              `json:"render_id,omitempty"`
}

// ValidateRequest represents the request body for /validate. The record is
// kept raw so that schema checks see exactly what the client sent.
type ValidateRequest struct {
	CV json.RawMessage `json:"cv"`
}

// ValidationIssue is one problem found in a submitted record
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateResponse represents the response for /validate
type ValidateResponse struct {
	Valid             bool              `json:"valid"`
	Errors            []ValidationIssue `json:"errors"`
	MissingCoreFields []string          `json:"missing_core_fields"`
}

// TemplatesResponse represents the response for /templates
type TemplatesResponse struct {
	Templates []types.TemplateID `json:"templates"`
	Default   types.TemplateID   `json:"default"`
}

// rendered is the outcome shared by both render endpoints
type rendered struct {
	template types.TemplateID
	latex    string
	sections []rendering.Section
	cv       *types.CVData
	renderID string
}

// decodeJSON reads a size-limited body and rejects unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// render resolves the record, normalizes it and generates the document.
// Records loaded by id have their output stored against the saved CV.
func (s *Server) render(w http.ResponseWriter, r *http.Request) (*rendered, error) {
	var req RenderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}

	cv, cvID, err := s.resolveCV(r, req)
	if err != nil {
		return nil, err
	}

	cvdata.Normalize(cv, cvdata.Options{StripMarkup: req.StripMarkup})

	id := cv.Template
	if req.Template != "" {
		parsed, ok := types.ParseTemplateID(req.Template)
		if !ok {
			return nil, &ErrValidation{Field: "template", Message: fmt.Sprintf("unknown template %q", req.Template)}
		}
		id = parsed
	}

	layout := rendering.LayoutFor(id)
	out := &rendered{
		template: layout.ID(),
		latex:    layout.Render(cv),
		sections: layout.Sections(cv),
		cv:       cv,
	}

	if cvID != uuid.Nil {
		saved, err := s.store.SaveRender(r.Context(), cvID, out.template, out.latex)
		if err != nil {
			return nil, fmt.Errorf("failed to save render: %w", err)
		}
		out.renderID = saved.ID.String()
	}

	s.log.Debug("cv rendered", "template", out.template, "sections", len(out.sections), "saved", out.renderID != "")
	return out, nil
}

// resolveCV returns the inline record or loads the saved one
func (s *Server) resolveCV(r *http.Request, req RenderRequest) (*types.CVData, uuid.UUID, error) {
	switch {
	case req.CV != nil && req.CVID != "":
		return nil, uuid.Nil, &ErrValidation{Field: "cv_id", Message: "cv and cv_id are mutually exclusive"}
	case req.CV != nil:
		return req.CV, uuid.Nil, nil
	case req.CVID == "":
		return nil, uuid.Nil, &ErrValidation{Field: "cv", Message: "cv or cv_id is required"}
	}

	id, err := uuid.Parse(req.CVID)
	if err != nil {
		return nil, uuid.Nil, &ErrValidation{Field: "cv_id", Message: "invalid CV ID format"}
	}
	if s.store == nil {
		return nil, uuid.Nil, &ErrStorageUnavailable{}
	}

	saved, err := s.store.GetCV(r.Context(), id)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if saved == nil {
		return nil, uuid.Nil, &ErrCVNotFound{ID: id.String()}
	}
	return &saved.Data, id, nil
}

// handleRender returns the generated document with its sections and
// export warnings
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	out, err := s.render(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	warnings := validation.CoreFieldViolations(out.cv)
	if warnings == nil {
		warnings = []types.Violation{}
	}

	s.jsonResponse(w, http.StatusOK, RenderResponse{
		Template: out.template,
		LaTeX:    out.latex,
		Sections: out.sections,
		Warnings: warnings,
		RenderID: out.renderID,
	})
}

// handleRenderTeX returns the generated document as a downloadable file
func (s *Server) handleRenderTeX(w http.ResponseWriter, r *http.Request) {
	out, err := s.render(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/x-tex; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="cv-%s.tex"`, out.template))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out.latex)); err != nil {
		s.log.Error("failed to write tex response", "error", err)
	}
}

// handleValidate checks a record against the CV schema and the struct rules
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if len(req.CV) == 0 || string(req.CV) == "null" {
		s.writeError(w, &ErrValidation{Field: "cv", Message: "cv is required"})
		return
	}

	issues := []ValidationIssue{}

	err := schemas.ValidateJSONString(string(cvschema.CV()), string(req.CV))
	var schemaErr *schemas.ValidationError
	switch {
	case errors.As(err, &schemaErr):
		for _, fe := range schemaErr.Errors {
			issues = append(issues, ValidationIssue{Field: fe.Field, Message: fe.Message})
		}
	case err != nil:
		s.writeError(w, fmt.Errorf("failed to validate against schema: %w", err))
		return
	}

	var cv types.CVData
	if err := json.Unmarshal(req.CV, &cv); err != nil {
		// The schema check has already reported the shape problem
		s.jsonResponse(w, http.StatusOK, ValidateResponse{
			Valid:             false,
			Errors:            issues,
			MissingCoreFields: []string{},
		})
		return
	}

	issues = appendStructIssues(issues, cv.Validate())

	missing := cv.MissingCoreFields()
	if missing == nil {
		missing = []string{}
	}

	s.jsonResponse(w, http.StatusOK, ValidateResponse{
		Valid:             len(issues) == 0,
		Errors:            issues,
		MissingCoreFields: missing,
	})
}

// appendStructIssues converts validator errors into issues, skipping any
// field the schema check already reported
func appendStructIssues(issues []ValidationIssue, err error) []ValidationIssue {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return issues
	}

	seen := make(map[string]bool, len(issues))
	for _, issue := range issues {
		seen[strings.ToLower(issue.Field)] = true
	}

	for _, fe := range fieldErrs {
		field := structField(fe.Namespace())
		if seen[strings.ToLower(field)] {
			continue
		}
		issues = append(issues, ValidationIssue{
			Field:   field,
			Message: fmt.Sprintf("failed %q check", fe.Tag()),
		})
	}
	return issues
}

// structField turns "CVData.Languages[0].Proficiency" into
// "Languages.0.Proficiency", the path style used by schema errors
func structField(namespace string) string {
	field := strings.TrimPrefix(namespace, "CVData.")
	field = strings.NewReplacer("[", ".", "]", "").Replace(field)
	return field
}

// handleTemplates lists the layout identifiers
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{
		Templates: types.TemplateIDs,
		Default:   types.TemplateClassic,
	})
}
