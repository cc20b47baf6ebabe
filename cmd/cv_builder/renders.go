package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/types"
)

var rendersCmd = &cobra.Command{
	Use:   "renders",
	Short: "List or fetch stored renders of a saved CV",
	Long: `Lists the LaTeX documents stored for a saved CV, newest first.

With --template, writes the latest render for that layout to --out (or stdout) instead.`,
	RunE: runRenders,
}

var (
	rendersCVID        string
	rendersTemplate    string
	rendersOutput      string
	rendersDatabaseURL string
)

func init() {
	rendersCmd.Flags().StringVar(&rendersCVID, "cv-id", "", "ID of the saved CV (required)")
	rendersCmd.Flags().StringVarP(&rendersTemplate, "template", "t", "", "Fetch the latest render for this layout")
	rendersCmd.Flags().StringVarP(&rendersOutput, "out", "o", "", "Path to write the fetched render (defaults to stdout)")
	rendersCmd.Flags().StringVar(&rendersDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	if err := rendersCmd.MarkFlagRequired("cv-id"); err != nil {
		panic(fmt.Sprintf("failed to mark cv-id flag as required: %v", err))
	}

	rootCmd.AddCommand(rendersCmd)
}

func runRenders(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cvID, err := uuid.Parse(rendersCVID)
	if err != nil {
		return fmt.Errorf("invalid cv-id: %w", err)
	}

	var template types.TemplateID
	if rendersTemplate != "" {
		id, ok := types.ParseTemplateID(rendersTemplate)
		if !ok {
			return fmt.Errorf("unknown template %q", rendersTemplate)
		}
		template = id
	}

	if rendersDatabaseURL == "" {
		rendersDatabaseURL = os.Getenv("DATABASE_URL")
	}
	if rendersDatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, rendersDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if template == "" {
		summaries, err := database.ListRenders(ctx, cvID)
		if err != nil {
			return fmt.Errorf("failed to list renders: %w", err)
		}
		return printRenderSummaries(os.Stdout, summaries)
	}

	render, err := database.GetLatestRender(ctx, cvID, template)
	if err != nil {
		return fmt.Errorf("failed to load render: %w", err)
	}
	if render == nil {
		return fmt.Errorf("no %s render stored for CV %s", template, cvID)
	}

	if rendersOutput == "" {
		_, _ = io.WriteString(os.Stdout, render.TeX)
		return nil
	}
	return writeOutput(rendersOutput, render.TeX)
}

// printRenderSummaries writes one aligned row per stored render
func printRenderSummaries(out io.Writer, summaries []db.RenderSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(out, "No renders stored")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTEMPLATE\tSIZE\tCREATED")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Template, s.Size, s.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
