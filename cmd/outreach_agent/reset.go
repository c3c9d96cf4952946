package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-pipeline/internal/outreach"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all pipeline data",
	RunE:  runReset,
}

var resetDatabaseURL string

func init() {
	resetCmd.Flags().StringVar(&resetDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := openStore(ctx, resetDatabaseURL, false)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := outreach.New(st).Reset(ctx); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	fmt.Println("Pipeline data cleared.")
	return nil
}
