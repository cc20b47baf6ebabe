package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/cvdata"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/validation"
	cvschema "github.com/jonathan/cv-builder/schemas"
)

var validateLatexCmd = &cobra.Command{
	Use:   "validate-latex",
	Short: "Check a generated LaTeX CV for structural problems",
	Long:  "Checks a LaTeX file for unbalanced braces, mismatched environments, a missing document shell, empty lists and overlong lines.",
	RunE:  runValidateLatex,
}

var (
	validateLatexInput    string
	validateLatexCV       string
	validateLatexMaxChars int
	validateLatexOutput   string
	validateLatexVerbose  bool
)

func init() {
	validateLatexCmd.Flags().StringVarP(&validateLatexInput, "in", "i", "", "Path to LaTeX file (required)")
	validateLatexCmd.Flags().StringVar(&validateLatexCV, "cv", "", "Path to the CV record, to also report missing core fields (optional)")
	validateLatexCmd.Flags().IntVar(&validateLatexMaxChars, "max-chars", validation.DefaultMaxCharsPerLine, "Maximum content characters per line (-1 disables the check)")
	validateLatexCmd.Flags().StringVarP(&validateLatexOutput, "out", "o", "", "Path to output Violations JSON file (required)")
	validateLatexCmd.Flags().BoolVarP(&validateLatexVerbose, "verbose", "v", false, "Print a summary of the violations")

	if err := validateLatexCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := validateLatexCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(validateLatexCmd)
}

func runValidateLatex(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(validateLatexInput); os.IsNotExist(err) {
		return fmt.Errorf("LaTeX file not found: %s", validateLatexInput)
	}

	var cv *types.CVData
	if validateLatexCV != "" {
		loaded, err := cvdata.LoadCV(validateLatexCV)
		if err != nil {
			return fmt.Errorf("failed to load CV record: %w", err)
		}
		cv = loaded
	}

	violations, err := validation.ValidateFile(validateLatexInput, validation.Options{
		MaxCharsPerLine: validateLatexMaxChars,
		CV:              cv,
	})
	if err != nil {
		var fileErr *validation.FileReadError
		if errors.As(err, &fileErr) {
			return fmt.Errorf("validation failed: %w", err)
		}
		return fmt.Errorf("failed to validate LaTeX: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(violations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal violations to JSON: %w", err)
	}

	// Validate output against schema (non-fatal)
	if err := schemas.ValidateJSONString(string(cvschema.Violations()), string(jsonBytes)); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Generated violations do not validate against schema: %v\n", err)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
		}
	}

	if err := writeOutput(validateLatexOutput, string(jsonBytes)); err != nil {
		return fmt.Errorf("failed to write violations: %w", err)
	}

	if validateLatexVerbose {
		observability.NewPrinter(os.Stdout).PrintViolations(violations)
	}

	if len(violations.Violations) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Validation passed: No violations found\n")
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation found %d violation(s)\n", len(violations.Violations))
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", validateLatexOutput)

	if err := validation.RequireNoErrors(violations); err != nil {
		return err
	}
	return nil
}
