package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/types"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available layouts",
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(_ *cobra.Command, _ []string) error {
	for _, id := range types.TemplateIDs {
		if id == types.TemplateClassic {
			_, _ = fmt.Fprintf(os.Stdout, "%s (default)\n", id)
			continue
		}
		_, _ = fmt.Fprintf(os.Stdout, "%s\n", id)
	}
	return nil
}
