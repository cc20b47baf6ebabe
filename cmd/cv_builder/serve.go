package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/logger"
	"github.com/jonathan/cv-builder/internal/server"
)

var (
	servePort    int
	serveVerbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server that renders and validates CV records.

PORT overrides the default port when --port is not given. DATABASE_URL is
optional and enables rendering saved CVs by id. LOG_MODE selects development
or production logging.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Log at debug level")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := servePort
	if !cmd.Flags().Changed("port") {
		if env := os.Getenv("PORT"); env != "" {
			parsed, err := strconv.Atoi(env)
			if err != nil {
				return fmt.Errorf("invalid PORT %q: %w", env, err)
			}
			port = parsed
		}
	}

	log, err := logger.New(os.Getenv("LOG_MODE"), serveVerbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	cfg := server.Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Logger:      log,
	}

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
