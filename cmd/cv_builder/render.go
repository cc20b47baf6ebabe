package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/cvdata"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/logger"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/validation"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a CV record to LaTeX",
	Long: `Generates a complete LaTeX document from a CV record file or a saved CV.

The layout comes from --template, then the config file, then the record's own
template field. Configuration can be loaded from a JSON file using --config.
Command-line arguments override config file values.`,
	RunE: runRender,
}

var (
	renderConfigPath     string
	renderInput          string
	renderCVID           string
	renderDatabaseURL    string
	renderTemplate       string
	renderCustomTemplate string
	renderOutput         string
	renderOutputDir      string
	renderAllTemplates   bool
	renderMaxChars       int
	renderStripMarkup    bool
	renderStrict         bool
	renderVerbose        bool
	renderLogMode        string
)

func init() {
	// Config file flag (processed first)
	renderCmd.Flags().StringVar(&renderConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to CV record (.json, .yaml, .yml)")
	renderCmd.Flags().StringVar(&renderCVID, "cv-id", "", "ID of a saved CV to render (mutually exclusive with --in)")
	renderCmd.Flags().StringVar(&renderDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Layout: classic, banking or europass")
	renderCmd.Flags().StringVar(&renderCustomTemplate, "custom-template", "", "Path to a text/template LaTeX file using << >> delimiters")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output .tex file (defaults to stdout)")
	renderCmd.Flags().StringVar(&renderOutputDir, "out-dir", "", "Output directory for --all-templates")
	renderCmd.Flags().BoolVar(&renderAllTemplates, "all-templates", false, "Render every layout into --out-dir")
	renderCmd.Flags().IntVar(&renderMaxChars, "max-chars", validation.DefaultMaxCharsPerLine, "Maximum content characters per line (-1 disables the check)")
	renderCmd.Flags().BoolVar(&renderStripMarkup, "strip-markup", false, "Remove HTML pasted from rich text editors")
	renderCmd.Flags().BoolVar(&renderStrict, "strict", false, "Fail on structural errors or missing core fields")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print detailed debug information")
	renderCmd.Flags().StringVar(&renderLogMode, "log-mode", "", "Log format: development or production")

	rootCmd.AddCommand(renderCmd)
}

// resolveRenderConfig merges the config file, explicitly set flags and
// defaults, then checks the combination
func resolveRenderConfig(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if renderConfigPath != "" {
		loadedCfg, err := config.LoadConfig(renderConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	flags := cmd.Flags()
	if flags.Changed("in") {
		cfg.Input = renderInput
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = renderDatabaseURL
	}
	if flags.Changed("template") {
		cfg.Template = renderTemplate
	}
	if flags.Changed("custom-template") {
		cfg.CustomTemplate = renderCustomTemplate
	}
	if flags.Changed("out") {
		cfg.Output = renderOutput
	}
	if flags.Changed("out-dir") {
		cfg.OutputDir = renderOutputDir
	}
	if flags.Changed("max-chars") {
		cfg.MaxChars = renderMaxChars
	}
	if flags.Changed("strip-markup") {
		cfg.StripMarkup = renderStripMarkup
	}
	if flags.Changed("strict") {
		cfg.Strict = renderStrict
	}
	if flags.Changed("verbose") {
		cfg.Verbose = renderVerbose
	}
	if flags.Changed("log-mode") {
		cfg.LogMode = renderLogMode
	}

	// Negative disables the line check; config.Validate only accepts
	// non-negative values so it is carried separately.
	lineCheckOff := cfg.MaxChars < 0
	if lineCheckOff {
		cfg.MaxChars = 0
	}

	// Step 3: Apply defaults for unset values. Template stays empty so the
	// record's own template field can decide.
	cfg = cfg.MergeWithDefaults(config.Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MaxChars:    validation.DefaultMaxCharsPerLine,
		LogMode:     config.LogModeDevelopment,
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if lineCheckOff {
		cfg.MaxChars = -1
	}

	// Step 4: Validate required fields
	if cfg.Input == "" && renderCVID == "" {
		return cfg, fmt.Errorf("either --in or --cv-id must be provided")
	}
	if cfg.Input != "" && renderCVID != "" {
		return cfg, fmt.Errorf("--in and --cv-id are mutually exclusive; provide only one")
	}
	if renderCVID != "" && cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required with --cv-id")
	}
	if renderAllTemplates {
		if cfg.OutputDir == "" {
			return cfg, fmt.Errorf("--out-dir is required with --all-templates")
		}
		if cfg.CustomTemplate != "" {
			return cfg, fmt.Errorf("--custom-template cannot be combined with --all-templates")
		}
	} else if cfg.OutputDir != "" {
		return cfg, fmt.Errorf("--out-dir is only used with --all-templates")
	}

	return cfg, nil
}

// renderResult is one generated document and its checks
type renderResult struct {
	template   types.TemplateID
	latex      string
	sections   []rendering.Section
	violations *types.Violations
}

// renderDocument generates the document for one layout and runs the
// structural checks on it
func renderDocument(cv *types.CVData, id types.TemplateID, customTemplate string, maxChars int) (*renderResult, error) {
	layout := rendering.LayoutFor(id)
	result := &renderResult{
		template: layout.ID(),
		sections: layout.Sections(cv),
	}

	if customTemplate != "" {
		latex, err := rendering.RenderCustom(cv, customTemplate, layout.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to render custom template: %w", err)
		}
		result.latex = latex
	} else {
		result.latex = layout.Render(cv)
	}

	violations, err := validation.ValidateFromContent(result.latex, validation.Options{
		MaxCharsPerLine: maxChars,
		CV:              cv,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check %s document: %w", result.template, err)
	}
	result.violations = violations

	return result, nil
}

// checkStrict fails when a document has structural errors or the record
// misses a core field
func checkStrict(cv *types.CVData, result *renderResult) error {
	if err := validation.RequireNoErrors(result.violations); err != nil {
		return fmt.Errorf("%s: %w", result.template, err)
	}
	if missing := cv.MissingCoreFields(); len(missing) > 0 {
		return fmt.Errorf("missing core fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// renderAll renders every layout concurrently and writes one file per layout
// into outDir. Results are returned in layout order.
func renderAll(cv *types.CVData, outDir string, maxChars int) ([]*renderResult, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]*renderResult, len(types.TemplateIDs))
	var g errgroup.Group
	for i, id := range types.TemplateIDs {
		g.Go(func() error {
			result, err := renderDocument(cv, id, "", maxChars)
			if err != nil {
				return err
			}
			if err := writeOutput(templateOutputPath(outDir, id), result.latex); err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func templateOutputPath(outDir string, id types.TemplateID) string {
	return filepath.Join(outDir, fmt.Sprintf("cv-%s.tex", id))
}

// writeOutput writes content to path, creating parent directories
func writeOutput(path, content string) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// loadRecord reads the record from a file or from the saved CV table
func loadRecord(ctx context.Context, cfg config.Config, log *logger.Logger) (*types.CVData, *db.DB, uuid.UUID, error) {
	if cfg.Input != "" {
		cv, err := cvdata.LoadCV(cfg.Input)
		if err != nil {
			return nil, nil, uuid.Nil, fmt.Errorf("failed to load CV record: %w", err)
		}
		log.Debug("loaded CV record", "path", cfg.Input, "format", cvdata.FormatFromPath(cfg.Input))
		return cv, nil, uuid.Nil, nil
	}

	cvID, err := uuid.Parse(renderCVID)
	if err != nil {
		return nil, nil, uuid.Nil, fmt.Errorf("invalid cv-id: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, uuid.Nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	saved, err := database.GetCV(ctx, cvID)
	if err != nil {
		database.Close()
		return nil, nil, uuid.Nil, fmt.Errorf("failed to load CV from database: %w", err)
	}
	if saved == nil {
		database.Close()
		return nil, nil, uuid.Nil, fmt.Errorf("cv not found: %s", cvID)
	}

	log.Debug("loaded saved CV", "cv_id", cvID, "name", saved.Name)
	return &saved.Data, database, cvID, nil
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveRenderConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	cv, database, cvID, err := loadRecord(ctx, cfg, log)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	cvdata.Normalize(cv, cvdata.Options{StripMarkup: cfg.StripMarkup})

	printer := observability.NewPrinter(os.Stderr)
	if cfg.Verbose {
		printer.PrintCVSummary(cv)
	}

	if renderAllTemplates {
		results, err := renderAll(cv, cfg.OutputDir, cfg.MaxChars)
		if err != nil {
			return err
		}
		for _, result := range results {
			reportResult(log, printer, cfg.Verbose, result)
			if database != nil {
				if err := saveRender(ctx, database, cvID, result, os.Stdout); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", templateOutputPath(cfg.OutputDir, result.template))
		}
		if cfg.Strict {
			for _, result := range results {
				if err := checkStrict(cv, result); err != nil {
					return err
				}
			}
		}
		return nil
	}

	id := cv.Template
	if cfg.Template != "" {
		id, _ = types.ParseTemplateID(cfg.Template)
	}

	result, err := renderDocument(cv, id, cfg.CustomTemplate, cfg.MaxChars)
	if err != nil {
		return err
	}
	reportResult(log, printer, cfg.Verbose, result)

	if cfg.Strict {
		if err := checkStrict(cv, result); err != nil {
			return err
		}
	}

	if cfg.Output == "" {
		_, _ = io.WriteString(os.Stdout, result.latex)
	} else {
		if err := writeOutput(cfg.Output, result.latex); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "Successfully rendered %s CV\n", result.template)
		_, _ = fmt.Fprintf(os.Stderr, "Output: %s\n", cfg.Output)
	}

	if database != nil {
		return saveRender(ctx, database, cvID, result, os.Stderr)
	}
	return nil
}

// reportResult logs the checks for one document and prints the verbose boxes
func reportResult(log *logger.Logger, printer *observability.Printer, verbose bool, result *renderResult) {
	if verbose {
		printer.PrintSections(result.template, result.sections)
		printer.PrintViolations(result.violations)
	}
	for _, v := range result.violations.Violations {
		if v.Severity == types.SeverityError {
			log.Warn("structural error in generated document", "template", result.template, "type", v.Type, "details", v.Details)
		} else {
			log.Debug("document warning", "template", result.template, "type", v.Type, "details", v.Details)
		}
	}
	log.Debug("rendered document", "template", result.template, "sections", len(result.sections), "bytes", len(result.latex))
}

func saveRender(ctx context.Context, database *db.DB, cvID uuid.UUID, result *renderResult, out io.Writer) error {
	saved, err := database.SaveRender(ctx, cvID, result.template, result.latex)
	if err != nil {
		return fmt.Errorf("failed to save render to database: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Saved %s render %s for CV %s\n", result.template, saved.ID, cvID)
	return nil
}
