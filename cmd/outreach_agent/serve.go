package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-pipeline/internal/server"
)

var (
	servePort        int
	serveDatabaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP tool server",
	Long:  "Start an HTTP server exposing the five pipeline tools plus metrics, lead, and reset endpoints. Without a database URL the server runs against an in-memory store.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := openStore(ctx, serveDatabaseURL, false)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Port: servePort}, st)
	return srv.Start()
}
