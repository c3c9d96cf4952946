package outreach

import (
	"context"
	"os"
	"strconv"

	"github.com/jonathan/outreach-pipeline/internal/pipeline"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

// AgentConfig parameterizes an end-to-end agent run.
type AgentConfig struct {
	LeadCount  int
	Seed       *int64
	Industries []string
	EnrichMode types.EnrichMode
	Channels   []types.Channel
	ABVariants bool
	SendMode   types.SendMode
	Channel    types.Channel
	RateLimit  int
	MaxRetries int
	BatchSize  int
}

// AgentConfigFromEnv builds an agent config from environment variables,
// falling back to the given defaults for anything unset.
func AgentConfigFromEnv(defaults AgentConfig) AgentConfig {
	cfg := defaults
	if v, ok := envInt("LEAD_COUNT"); ok {
		cfg.LeadCount = v
	}
	if v := os.Getenv("ENRICHMENT_MODE"); v != "" {
		cfg.EnrichMode = types.EnrichMode(v)
	}
	if v := os.Getenv("SEND_MODE"); v != "" {
		cfg.SendMode = types.SendMode(v)
	}
	if v, ok := envInt("RATE_LIMIT"); ok {
		cfg.RateLimit = v
	}
	if v, ok := envInt("MAX_RETRIES"); ok {
		cfg.MaxRetries = v
	}
	if v, ok := envInt("BATCH_SIZE"); ok {
		cfg.BatchSize = v
	}
	if v, ok := envInt("SEED"); ok {
		seed := int64(v)
		cfg.Seed = &seed
	}
	return cfg
}

// BuildAgent binds the service's tool operations to the pipeline agent as
// its four stages.
func (s *Service) BuildAgent(cfg AgentConfig) *pipeline.Agent {
	stages := pipeline.Stages{
		Generate: func(ctx context.Context) error {
			_, err := s.GenerateLeads(ctx, types.GenerateRequest{
				Count:      cfg.LeadCount,
				Seed:       cfg.Seed,
				Industries: cfg.Industries,
			})
			return err
		},
		Enrich: func(ctx context.Context) error {
			_, err := s.EnrichLeads(ctx, types.EnrichRequest{
				Mode:      cfg.EnrichMode,
				BatchSize: cfg.BatchSize,
			})
			return err
		},
		Message: func(ctx context.Context) error {
			_, err := s.GenerateMessages(ctx, types.MessageRequest{
				Channels:   cfg.Channels,
				ABVariants: cfg.ABVariants,
			})
			return err
		},
		Send: func(ctx context.Context) error {
			_, err := s.SendOutreach(ctx, types.SendRequest{
				Mode:       cfg.SendMode,
				Channel:    cfg.Channel,
				RateLimit:  cfg.RateLimit,
				MaxRetries: cfg.MaxRetries,
				BatchSize:  cfg.BatchSize,
			})
			return err
		},
	}
	return pipeline.NewAgent(s.sm, stages)
}

// RunAgent executes the full pipeline under agent control.
func (s *Service) RunAgent(ctx context.Context, cfg AgentConfig) (*pipeline.RunReport, error) {
	return s.BuildAgent(cfg).Run(ctx)
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
