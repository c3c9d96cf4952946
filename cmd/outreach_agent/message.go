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

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Draft personalized outreach messages for ENRICHED leads",
	Long:  "Draft template-based email and LinkedIn messages personalized from each lead's enrichment record, moving leads to MESSAGED.",
	RunE:  runMessage,
}

var (
	messageLeadIDs     []string
	messageChannels    []string
	messageABVariants  bool
	messageDatabaseURL string
	messageVerbose     bool
)

func init() {
	messageCmd.Flags().StringSliceVar(&messageLeadIDs, "lead-ids", nil, "Draft only for these leads (default: all ENRICHED leads)")
	messageCmd.Flags().StringSliceVar(&messageChannels, "channels", nil, "Channels to draft for (default: email, linkedin)")
	messageCmd.Flags().BoolVar(&messageABVariants, "ab-variants", true, "Draft both A and B variants")
	messageCmd.Flags().StringVar(&messageDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	messageCmd.Flags().BoolVarP(&messageVerbose, "verbose", "v", false, "Print drafted messages")

	rootCmd.AddCommand(messageCmd)
}

func runMessage(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := openStore(ctx, messageDatabaseURL, true)
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := outreach.New(st).GenerateMessages(ctx, types.MessageRequest{
		LeadIDs:    messageLeadIDs,
		Channels:   toChannels(messageChannels),
		ABVariants: messageABVariants,
	})
	if err != nil {
		return fmt.Errorf("message drafting failed: %w", err)
	}

	fmt.Printf("Drafted %d messages for %d leads, skipped %d\n",
		result.MessageCount, result.MessagedLeadCount, result.SkippedCount)
	for _, s := range result.Skipped {
		fmt.Printf("  skipped %s: %s\n", s.LeadID, s.Reason)
	}
	if messageVerbose {
		observability.NewPrinter(os.Stdout).PrintMessages(result.Messages)
	}
	return nil
}
