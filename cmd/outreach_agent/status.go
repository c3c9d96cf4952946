package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-pipeline/internal/observability"
	"github.com/jonathan/outreach-pipeline/internal/outreach"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report pipeline metrics and lead distribution",
	RunE:  runStatus,
}

var (
	statusIncludeLeads bool
	statusDatabaseURL  string
)

func init() {
	statusCmd.Flags().BoolVar(&statusIncludeLeads, "leads", false, "Include the lead listing")
	statusCmd.Flags().StringVar(&statusDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := openStore(ctx, statusDatabaseURL, true)
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := outreach.New(st).Status(ctx, types.StatusRequest{IncludeLeads: statusIncludeLeads})
	if err != nil {
		return fmt.Errorf("status aggregation failed: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintMetrics(result.Metrics)
	if statusIncludeLeads {
		printer.PrintLeads(result.Leads)
	}
	return nil
}
