// Package outreach wires the pipeline stages into the five tool operations:
// generate leads, enrich leads, draft messages, send outreach, and report
// status. The CLI, the HTTP tool surface, and the orchestrating agent all
// run through this service.
package outreach

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/outreach-pipeline/internal/deliver"
	"github.com/jonathan/outreach-pipeline/internal/enrich"
	"github.com/jonathan/outreach-pipeline/internal/generate"
	"github.com/jonathan/outreach-pipeline/internal/llm"
	"github.com/jonathan/outreach-pipeline/internal/message"
	"github.com/jonathan/outreach-pipeline/internal/metrics"
	"github.com/jonathan/outreach-pipeline/internal/pipeline"
	"github.com/jonathan/outreach-pipeline/internal/store"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

// Service executes tool operations against a store.
type Service struct {
	store store.Store
	sm    *pipeline.StateMachine

	// llmClient enables AI enrichment mode; nil means offline-only.
	llmClient llm.Client
	// senderFor is deliver.SenderFor unless overridden in tests.
	senderFor func(mode types.SendMode, channel types.Channel) deliver.Sender
}

// New creates a service over the given store.
func New(s store.Store) *Service {
	return &Service{
		store:     s,
		sm:        pipeline.NewStateMachine(s),
		senderFor: deliver.SenderFor,
	}
}

// WithLLMClient enables AI enrichment mode.
func (s *Service) WithLLMClient(c llm.Client) *Service {
	s.llmClient = c
	return s
}

// WithSenderFactory overrides sender selection. Used by tests.
func (s *Service) WithSenderFactory(f func(mode types.SendMode, channel types.Channel) deliver.Sender) *Service {
	s.senderFor = f
	return s
}

// StateMachine exposes the service's state machine for agent construction.
func (s *Service) StateMachine() *pipeline.StateMachine {
	return s.sm
}

// GenerateResult reports the outcome of the generate tool.
type GenerateResult struct {
	RequestedCount int          `json:"requested_count"`
	InsertedCount  int          `json:"inserted_count"`
	Leads          []types.Lead `json:"leads"`
}

// GenerateLeads creates synthetic leads in status NEW.
func (s *Service) GenerateLeads(ctx context.Context, req types.GenerateRequest) (*GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generate request: %w", err)
	}

	gen := generate.New(req.Seed)
	leads, err := gen.Leads(req.Count, req.Industries)
	if err != nil {
		return nil, err
	}

	inserted, err := s.store.InsertLeads(ctx, leads)
	if err != nil {
		return nil, fmt.Errorf("failed to store generated leads: %w", err)
	}

	return &GenerateResult{
		RequestedCount: req.Count,
		InsertedCount:  inserted,
		Leads:          leads,
	}, nil
}

// EnrichResult reports the outcome of the enrich tool. Skipped leads were
// not in a state that admits enrichment.
type EnrichResult struct {
	EnrichedCount int                `json:"enriched_count"`
	SkippedCount  int                `json:"skipped_count"`
	Skipped       []SkippedLead      `json:"skipped,omitempty"`
	Enrichments   []types.Enrichment `json:"enrichments"`
}

// SkippedLead explains why a lead was passed over by a stage.
type SkippedLead struct {
	LeadID string `json:"lead_id"`
	Reason string `json:"reason"`
}

// EnrichLeads enriches NEW leads and moves them to ENRICHED. With no lead
// IDs given it targets every NEW lead. Leads not in NEW are skipped, not
// failed; re-enriching an already-enriched lead is refused.
func (s *Service) EnrichLeads(ctx context.Context, req types.EnrichRequest) (*EnrichResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid enrich request: %w", err)
	}

	mode := req.Mode
	if mode == "" {
		mode = types.EnrichOffline
	}

	var engine *enrich.Engine
	if mode == types.EnrichAI && s.llmClient != nil {
		engine = enrich.NewAIEngine(s.llmClient)
	} else {
		engine = enrich.NewEngine(types.EnrichOffline)
	}

	leads, err := s.targetLeads(ctx, req.LeadIDs, types.StatusNew)
	if err != nil {
		return nil, err
	}

	result := &EnrichResult{}
	for _, lead := range leads {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if lead.Status != types.StatusNew {
			reason := fmt.Sprintf("lead is %s, not %s", lead.Status, types.StatusNew)
			if e, _ := s.store.EnrichmentByLeadID(ctx, lead.ID); e != nil {
				reason = (&enrich.AlreadyEnrichedError{LeadID: lead.ID}).Error()
			}
			result.Skipped = append(result.Skipped, SkippedLead{LeadID: lead.ID, Reason: reason})
			result.SkippedCount++
			continue
		}

		record, err := engine.EnrichLead(ctx, lead)
		if err != nil {
			return result, fmt.Errorf("failed to enrich lead %s: %w", lead.ID, err)
		}
		if err := s.store.InsertEnrichment(ctx, *record); err != nil {
			var exists *store.AlreadyExistsError
			if errors.As(err, &exists) {
				result.Skipped = append(result.Skipped, SkippedLead{
					LeadID: lead.ID,
					Reason: (&enrich.AlreadyEnrichedError{LeadID: lead.ID}).Error(),
				})
				result.SkippedCount++
				continue
			}
			return result, fmt.Errorf("failed to store enrichment: %w", err)
		}
		if _, err := s.sm.Transition(ctx, lead.ID, types.StatusEnriched); err != nil {
			return result, err
		}

		result.Enrichments = append(result.Enrichments, *record)
		result.EnrichedCount++
	}

	return result, nil
}

// MessageResult reports the outcome of the message tool.
type MessageResult struct {
	MessagedLeadCount int             `json:"messaged_lead_count"`
	MessageCount      int             `json:"message_count"`
	SkippedCount      int             `json:"skipped_count"`
	Skipped           []SkippedLead   `json:"skipped,omitempty"`
	Messages          []types.Message `json:"messages"`
}

// GenerateMessages drafts messages for ENRICHED leads and moves them to
// MESSAGED. Leads not in ENRICHED are skipped.
func (s *Service) GenerateMessages(ctx context.Context, req types.MessageRequest) (*MessageResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid message request: %w", err)
	}

	leads, err := s.targetLeads(ctx, req.LeadIDs, types.StatusEnriched)
	if err != nil {
		return nil, err
	}

	gen := message.NewGenerator()
	result := &MessageResult{}
	for _, lead := range leads {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if lead.Status != types.StatusEnriched {
			result.Skipped = append(result.Skipped, SkippedLead{
				LeadID: lead.ID,
				Reason: fmt.Sprintf("lead is %s, not %s", lead.Status, types.StatusEnriched),
			})
			result.SkippedCount++
			continue
		}

		enr, err := s.store.EnrichmentByLeadID(ctx, lead.ID)
		if err != nil {
			return result, err
		}
		if enr == nil {
			result.Skipped = append(result.Skipped, SkippedLead{LeadID: lead.ID, Reason: "no enrichment record"})
			result.SkippedCount++
			continue
		}

		msgs, err := gen.DraftAll(lead, *enr, req.Channels, req.ABVariants)
		if err != nil {
			return result, err
		}
		for _, m := range msgs {
			if err := s.store.InsertMessage(ctx, m); err != nil {
				return result, fmt.Errorf("failed to store message: %w", err)
			}
		}
		if _, err := s.sm.Transition(ctx, lead.ID, types.StatusMessaged); err != nil {
			return result, err
		}

		result.Messages = append(result.Messages, msgs...)
		result.MessageCount += len(msgs)
		result.MessagedLeadCount++
	}

	return result, nil
}

// SendOutreach delivers drafted messages for MESSAGED leads and moves each
// to SENT or FAILED. Leads not in MESSAGED are skipped before delivery
// starts.
func (s *Service) SendOutreach(ctx context.Context, req types.SendRequest) (*deliver.Summary, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid send request: %w", err)
	}

	leads, err := s.targetLeads(ctx, req.LeadIDs, types.StatusMessaged)
	if err != nil {
		return nil, err
	}
	eligible := leads[:0:0]
	for _, lead := range leads {
		if lead.Status == types.StatusMessaged {
			eligible = append(eligible, lead)
		}
	}

	opts := deliver.Options{
		Mode:       req.Mode,
		Channel:    req.Channel,
		Variant:    req.Variant,
		RateLimit:  req.RateLimit,
		MaxRetries: req.MaxRetries,
		BatchSize:  req.BatchSize,
	}
	if opts.Mode == "" {
		opts.Mode = types.SendDryRun
	}
	if opts.Channel == "" {
		opts.Channel = types.ChannelEmail
	}

	sender := s.senderFor(opts.Mode, opts.Channel)
	d := deliver.New(s.store, s.sm, sender, opts)
	return d.Deliver(ctx, eligible, opts)
}

// StatusResult is the status tool's payload.
type StatusResult struct {
	Metrics  *types.PipelineMetrics `json:"metrics"`
	Leads    []types.Lead           `json:"leads,omitempty"`
	Messages []types.Message        `json:"messages,omitempty"`
}

// Status aggregates pipeline metrics, optionally including lead and message
// listings.
func (s *Service) Status(ctx context.Context, req types.StatusRequest) (*StatusResult, error) {
	leads, err := s.store.AllLeads(ctx, 0)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.AllMessages(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.store.DeliveryResults(ctx)
	if err != nil {
		return nil, err
	}

	out := &StatusResult{Metrics: metrics.Compute(leads, messages, results)}
	if req.IncludeLeads {
		out.Leads = filterLeads(leads, req.LeadIDs)
	}
	if req.IncludeMessages {
		out.Messages = messages
	}
	return out, nil
}

// Reset clears all pipeline data.
func (s *Service) Reset(ctx context.Context) error {
	return s.store.Reset(ctx)
}

// targetLeads resolves a stage's input set: the explicitly requested leads,
// or every lead in the stage's entry status when none were named. Unknown
// IDs are an error.
func (s *Service) targetLeads(ctx context.Context, ids []string, entry types.Status) ([]types.Lead, error) {
	if len(ids) > 0 {
		return s.store.LeadsByIDs(ctx, ids)
	}
	return s.sm.EligibleLeads(ctx, entry)
}

func filterLeads(leads []types.Lead, ids []string) []types.Lead {
	if len(ids) == 0 {
		return leads
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]types.Lead, 0, len(ids))
	for _, l := range leads {
		if want[l.ID] {
			out = append(out, l)
		}
	}
	return out
}
