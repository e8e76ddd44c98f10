package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/wordsmithery/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes tone management and generation sessions, with SSE progress streaming.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to config or PORT, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	repo, store, err := openTones(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	runner, closeBackend, err := newRunner(ctx, cfg, repo)
	if err != nil {
		return err
	}
	defer closeBackend() //nolint:errcheck

	srv := server.New(server.Config{Port: cfg.Port}, runner, repo)
	return srv.Start()
}
