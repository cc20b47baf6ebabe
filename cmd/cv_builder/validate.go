package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/cv-builder/internal/cvdata"
	"github.com/jonathan/cv-builder/internal/schemas"
	cvschema "github.com/jonathan/cv-builder/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a CV record against the CV schema",
	Long: `Checks a CV record file (JSON or YAML) against the CV JSON Schema and the
record's field rules, then reports any core field that must be filled before export.

Uses the embedded schema unless --schema is given.`,
	RunE: runValidate,
}

var (
	validateInput  string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to CV record (.json, .yaml, .yml) (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (optional)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

// validateRecordSchema checks the raw record so that unknown fields and wrong
// types are reported by path instead of failing the decode
func validateRecordSchema(path string, schemaPath string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read CV record: %w", err)
	}

	schemaContent := cvschema.CV()
	if schemaPath != "" {
		if schemaContent, err = os.ReadFile(schemaPath); err != nil {
			return &schemas.SchemaLoadError{Path: schemaPath, Message: "failed to read schema file", Cause: err}
		}
	}

	switch cvdata.FormatFromPath(path) {
	case cvdata.FormatYAML:
		var doc any
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
		return schemas.ValidateDocument(schemaContent, doc)
	default:
		return schemas.ValidateJSONString(string(schemaContent), string(content))
	}
}

func runValidate(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(validateInput); os.IsNotExist(err) {
		return fmt.Errorf("CV record not found: %s", validateInput)
	}

	var problems []string

	err := validateRecordSchema(validateInput, validateSchema)
	var schemaErr *schemas.ValidationError
	switch {
	case errors.As(err, &schemaErr):
		for _, fe := range schemaErr.Errors {
			problems = append(problems, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
	case err != nil:
		return err
	}

	// Field rules only make sense once the record decodes
	if len(problems) == 0 {
		cv, err := cvdata.LoadCV(validateInput)
		if err != nil {
			return fmt.Errorf("failed to load CV record: %w", err)
		}

		var fieldErrs validator.ValidationErrors
		if errors.As(cv.Validate(), &fieldErrs) {
			for _, fe := range fieldErrs {
				problems = append(problems, fmt.Sprintf("%s: failed %q check", fe.Namespace(), fe.Tag()))
			}
		}

		for _, field := range cv.MissingCoreFields() {
			_, _ = fmt.Fprintf(os.Stdout, "Warning: %s is required before export\n", field)
		}
	}

	if len(problems) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateInput)
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation failed: %s\n", validateInput)
	for i, problem := range problems {
		_, _ = fmt.Fprintf(os.Stdout, "  %d. %s\n", i+1, problem)
	}
	return fmt.Errorf("validation found %d problem(s)", len(problems))
}
