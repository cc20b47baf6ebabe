package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/cvdata"
	"github.com/jonathan/cv-builder/internal/db"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store a CV record in the database",
	Long:  "Loads a CV record file, normalizes it and saves it to the cvs table. Prints the new CV id for use with render --cv-id.",
	RunE:  runImport,
}

var (
	importInput       string
	importUserID      string
	importName        string
	importDatabaseURL string
)

func init() {
	importCmd.Flags().StringVarP(&importInput, "in", "i", "", "Path to CV record (.json, .yaml, .yml) (required)")
	importCmd.Flags().StringVarP(&importUserID, "user", "u", "", "Owner of the saved CV (required)")
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "Display name (defaults to the file name)")
	importCmd.Flags().StringVar(&importDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	if err := importCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := importCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if importDatabaseURL == "" {
		importDatabaseURL = os.Getenv("DATABASE_URL")
	}
	if importDatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	cv, err := cvdata.LoadCV(importInput)
	if err != nil {
		return fmt.Errorf("failed to load CV record: %w", err)
	}
	cvdata.Normalize(cv, cvdata.Options{})

	name := importName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(importInput), filepath.Ext(importInput))
	}

	database, err := db.Connect(ctx, importDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	id, err := database.SaveCV(ctx, importUserID, name, cv)
	if err != nil {
		return fmt.Errorf("failed to save CV: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s\n", id)
	return nil
}
