package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-pipeline/internal/config"
	"github.com/jonathan/outreach-pipeline/internal/observability"
	"github.com/jonathan/outreach-pipeline/internal/outreach"
	"github.com/jonathan/outreach-pipeline/internal/pipeline"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full outreach pipeline end-to-end",
	Long: `Orchestrates the entire outreach process under agent control: generate -> enrich -> message -> send.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values, and environment variables (LEAD_COUNT, ENRICHMENT_MODE, SEND_MODE, RATE_LIMIT, MAX_RETRIES, BATCH_SIZE, SEED) fill anything still unset.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runLeadCount   int
	runSeed        int64
	runIndustries  []string
	runEnrichMode  string
	runChannels    []string
	runABVariants  bool
	runSendMode    string
	runChannel     string
	runRateLimit   int
	runMaxRetries  int
	runBatchSize   int
	runAPIKey      string
	runVerbose     bool
	runDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().IntVarP(&runLeadCount, "count", "n", 0, "Number of leads to generate")
	runCommand.Flags().Int64Var(&runSeed, "seed", 0, "Deterministic generation seed")
	runCommand.Flags().StringSliceVar(&runIndustries, "industries", nil, "Restrict generation to these industries")
	runCommand.Flags().StringVar(&runEnrichMode, "enrich-mode", "", "Enrichment mode: offline or ai")
	runCommand.Flags().StringSliceVar(&runChannels, "channels", nil, "Channels to draft messages for (email, linkedin)")
	runCommand.Flags().BoolVar(&runABVariants, "ab-variants", true, "Draft both A and B message variants")
	runCommand.Flags().StringVar(&runSendMode, "send-mode", "", "Delivery mode: dry_run or live")
	runCommand.Flags().StringVar(&runChannel, "channel", "", "Channel to send on (email or linkedin)")
	runCommand.Flags().IntVar(&runRateLimit, "rate-limit", 0, "Sends admitted per minute (1-60)")
	runCommand.Flags().IntVar(&runMaxRetries, "max-retries", -1, "Extra send attempts after the first (0-5)")
	runCommand.Flags().IntVar(&runBatchSize, "batch-size", 0, "Leads per delivery batch (1-200)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key for AI enrichment (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for pipeline persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("count") {
		cfg.LeadCount = runLeadCount
	}
	if cmd.Flags().Changed("seed") {
		seed := runSeed
		cfg.Seed = &seed
	}
	if cmd.Flags().Changed("industries") {
		cfg.Industries = runIndustries
	}
	if cmd.Flags().Changed("enrich-mode") {
		cfg.EnrichMode = runEnrichMode
	}
	if cmd.Flags().Changed("channels") {
		cfg.Channels = runChannels
	}
	if cmd.Flags().Changed("ab-variants") {
		cfg.ABVariants = runABVariants
	}
	if cmd.Flags().Changed("send-mode") {
		cfg.SendMode = runSendMode
	}
	if cmd.Flags().Changed("channel") {
		cfg.Channel = runChannel
	}
	if cmd.Flags().Changed("rate-limit") {
		cfg.RateLimit = runRateLimit
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries = runMaxRetries
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.BatchSize = runBatchSize
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Step 3: Apply defaults for unset values and validate
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 4: Open the store and build the service
	st, err := openStore(ctx, cfg.DatabaseURL, false)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, cleanup, err := newService(ctx, st, cfg.APIKey)
	if err != nil {
		return err
	}
	defer cleanup()

	// Step 5: Build the agent config, letting env vars fill unset fields
	agentCfg := outreach.AgentConfigFromEnv(outreach.AgentConfig{
		LeadCount:  cfg.LeadCount,
		Seed:       cfg.Seed,
		Industries: cfg.Industries,
		EnrichMode: types.EnrichMode(cfg.EnrichMode),
		Channels:   toChannels(cfg.Channels),
		ABVariants: cfg.ABVariants,
		SendMode:   types.SendMode(cfg.SendMode),
		Channel:    types.Channel(cfg.Channel),
		RateLimit:  cfg.RateLimit,
		MaxRetries: cfg.MaxRetries,
		BatchSize:  cfg.BatchSize,
	})

	fmt.Printf("Running outreach pipeline (%d leads, %s enrichment, %s delivery)...\n",
		agentCfg.LeadCount, agentCfg.EnrichMode, agentCfg.SendMode)

	report, err := svc.RunAgent(ctx, agentCfg)
	if report != nil {
		printReport(ctx, svc, report, cfg.Verbose)
	}
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	fmt.Println("Pipeline complete.")
	return nil
}

func printReport(ctx context.Context, svc *outreach.Service, report *pipeline.RunReport, verbose bool) {
	fmt.Printf("Stages run: %v\n", report.StagesRun)
	for _, s := range types.AllStatuses() {
		fmt.Printf("  %-9s %d\n", s, report.Distribution[s])
	}
	if report.LastError != "" {
		fmt.Printf("Last error: %s\n", report.LastError)
	}

	if verbose {
		status, err := svc.Status(ctx, types.StatusRequest{})
		if err == nil {
			observability.NewPrinter(os.Stdout).PrintMetrics(status.Metrics)
		}
	}
}

func toChannels(names []string) []types.Channel {
	out := make([]types.Channel, 0, len(names))
	for _, n := range names {
		out = append(out, types.Channel(n))
	}
	return out
}
