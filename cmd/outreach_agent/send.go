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

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Deliver drafted messages for MESSAGED leads",
	Long:  "Send one drafted message per MESSAGED lead under a shared rate limit with exponential-backoff retries, moving each lead to SENT or FAILED. Dry-run mode records results without leaving the process.",
	RunE:  runSend,
}

var (
	sendLeadIDs     []string
	sendMode        string
	sendChannel     string
	sendVariant     string
	sendRateLimit   int
	sendMaxRetries  int
	sendBatchSize   int
	sendVerbose     bool
	sendDatabaseURL string
)

func init() {
	sendCmd.Flags().StringSliceVar(&sendLeadIDs, "lead-ids", nil, "Send only to these leads (default: all MESSAGED leads)")
	sendCmd.Flags().StringVar(&sendMode, "mode", "dry_run", "Delivery mode: dry_run or live")
	sendCmd.Flags().StringVar(&sendChannel, "channel", "email", "Channel to send on: email or linkedin")
	sendCmd.Flags().StringVar(&sendVariant, "variant", "A", "Message variant to send: A or B")
	sendCmd.Flags().IntVar(&sendRateLimit, "rate-limit", 10, "Sends admitted per minute (1-60)")
	sendCmd.Flags().IntVar(&sendMaxRetries, "max-retries", 3, "Extra send attempts after the first (0-5)")
	sendCmd.Flags().IntVar(&sendBatchSize, "batch-size", 10, "Leads per delivery batch (1-200)")
	sendCmd.Flags().BoolVarP(&sendVerbose, "verbose", "v", false, "Print the recorded delivery history")
	sendCmd.Flags().StringVar(&sendDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(sendCmd)
}

func runSend(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := openStore(ctx, sendDatabaseURL, true)
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := outreach.New(st).SendOutreach(ctx, types.SendRequest{
		LeadIDs:    sendLeadIDs,
		Mode:       types.SendMode(sendMode),
		Channel:    types.Channel(sendChannel),
		Variant:    types.Variant(sendVariant),
		RateLimit:  sendRateLimit,
		MaxRetries: sendMaxRetries,
		BatchSize:  sendBatchSize,
	})
	if err != nil {
		return fmt.Errorf("delivery failed: %w", err)
	}

	fmt.Printf("Delivery complete (%s): %d sent, %d failed\n",
		summary.Mode, summary.SentCount, summary.FailedCount)
	for _, r := range summary.Results {
		line := fmt.Sprintf("  %s [%s] %s after %d attempt(s)", r.LeadID, r.Channel, r.Outcome, r.AttemptCount)
		if r.Error != "" {
			line += ": " + r.Error
		}
		fmt.Println(line)
	}
	if sendVerbose {
		history, err := st.DeliveryResults(ctx)
		if err != nil {
			return fmt.Errorf("failed to load delivery history: %w", err)
		}
		observability.NewPrinter(os.Stdout).PrintDeliverySummary(history)
	}
	return nil
}
