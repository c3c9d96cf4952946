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

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic leads in status NEW",
	Long:  "Generate a batch of synthetic B2B leads. With --seed the same inputs always produce the same leads.",
	RunE:  runGenerate,
}

var (
	generateCount       int
	generateSeed        int64
	generateIndustries  []string
	generateDatabaseURL string
	generateVerbose     bool
)

func init() {
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 10, "Number of leads to generate (1-1000)")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Deterministic generation seed")
	generateCmd.Flags().StringSliceVar(&generateIndustries, "industries", nil, "Restrict generation to these industries")
	generateCmd.Flags().StringVar(&generateDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print generated leads")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := openStore(ctx, generateDatabaseURL, true)
	if err != nil {
		return err
	}
	defer st.Close()

	req := types.GenerateRequest{Count: generateCount, Industries: generateIndustries}
	if cmd.Flags().Changed("seed") {
		seed := generateSeed
		req.Seed = &seed
	}

	result, err := outreach.New(st).GenerateLeads(ctx, req)
	if err != nil {
		return fmt.Errorf("lead generation failed: %w", err)
	}

	fmt.Printf("Generated %d leads (%d requested)\n", result.InsertedCount, result.RequestedCount)
	if generateVerbose {
		observability.NewPrinter(os.Stdout).PrintLeads(result.Leads)
	}
	return nil
}
