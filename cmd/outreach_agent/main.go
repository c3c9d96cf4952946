// Package main provides the entry point for the outreach pipeline CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "outreach_agent",
	Short: "Lead outreach pipeline agent",
	Long:  "Generates synthetic B2B leads, enriches them with business context, drafts personalized A/B messages, and delivers them through rate-limited, retried channels, either step by step or under agent orchestration.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
