package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-pipeline/internal/observability"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich NEW leads with business context",
	Long:  "Derive company size, persona, pain points, and buying triggers for NEW leads, moving them to ENRICHED. AI mode augments the offline heuristics with model-generated insights.",
	RunE:  runEnrich,
}

var (
	enrichLeadIDs     []string
	enrichMode        string
	enrichBatchSize   int
	enrichAPIKey      string
	enrichDatabaseURL string
	enrichVerbose     bool
)

func init() {
	enrichCmd.Flags().StringSliceVar(&enrichLeadIDs, "lead-ids", nil, "Enrich only these leads (default: all NEW leads)")
	enrichCmd.Flags().StringVar(&enrichMode, "mode", "offline", "Enrichment mode: offline or ai")
	enrichCmd.Flags().IntVar(&enrichBatchSize, "batch-size", 0, "Leads per batch (1-200)")
	enrichCmd.Flags().StringVar(&enrichAPIKey, "api-key", "", "Gemini API Key for AI mode (optional, defaults to GEMINI_API_KEY env var)")
	enrichCmd.Flags().StringVar(&enrichDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	enrichCmd.Flags().BoolVarP(&enrichVerbose, "verbose", "v", false, "Print enrichment records")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := openStore(ctx, enrichDatabaseURL, true)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, cleanup, err := newService(ctx, st, enrichAPIKey)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := svc.EnrichLeads(ctx, types.EnrichRequest{
		LeadIDs:   enrichLeadIDs,
		Mode:      types.EnrichMode(enrichMode),
		BatchSize: enrichBatchSize,
	})
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	fmt.Printf("Enriched %d leads, skipped %d\n", result.EnrichedCount, result.SkippedCount)
	for _, s := range result.Skipped {
		fmt.Printf("  skipped %s: %s\n", s.LeadID, s.Reason)
	}
	if enrichVerbose {
		printer := observability.NewPrinter(os.Stdout)
		for i := range result.Enrichments {
			printer.PrintEnrichment(&result.Enrichments[i])
		}
	}
	return nil
}
