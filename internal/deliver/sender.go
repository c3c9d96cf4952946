// Package deliver executes the send stage: it pushes drafted messages out
// through a channel sender under a shared rate limit, retries transient
// failures with exponential backoff, and records one terminal delivery
// result per lead before moving the lead to SENT or FAILED.
package deliver

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/outreach-pipeline/internal/pipeline"
	"github.com/jonathan/outreach-pipeline/internal/ratelimit"
	"github.com/jonathan/outreach-pipeline/internal/retry"
	"github.com/jonathan/outreach-pipeline/internal/store"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

// Sender performs one send attempt for a message. Implementations exist per
// channel and per mode; a failed attempt returns an error and may be
// retried by the deliverer.
type Sender interface {
	Send(ctx context.Context, lead types.Lead, msg types.Message) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, lead types.Lead, msg types.Message) error

func (f SenderFunc) Send(ctx context.Context, lead types.Lead, msg types.Message) error {
	return f(ctx, lead, msg)
}

// DefaultAttemptTimeout caps a single send attempt.
const DefaultAttemptTimeout = 30 * time.Second

// Options configures a delivery run.
type Options struct {
	Mode           types.SendMode
	Channel        types.Channel
	Variant        types.Variant
	RateLimit      int           // sends admitted per minute
	MaxRetries     int           // extra attempts after the first
	BatchSize      int           // leads processed per batch
	Concurrency    int           // parallel sends within a batch; <=1 is sequential
	AttemptTimeout time.Duration // per-attempt deadline
}

// normalize fills unset options with defaults.
func (o *Options) normalize() {
	if o.Mode == "" {
		o.Mode = types.SendDryRun
	}
	if o.Channel == "" {
		o.Channel = types.ChannelEmail
	}
	if o.Variant == "" {
		o.Variant = types.VariantA
	}
	if o.RateLimit < 1 {
		o.RateLimit = 10
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.BatchSize < 1 {
		o.BatchSize = 10
	}
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}
	if o.AttemptTimeout <= 0 {
		o.AttemptTimeout = DefaultAttemptTimeout
	}
}

// LeadResult reports the terminal outcome for one lead in a delivery run.
type LeadResult struct {
	LeadID       string        `json:"lead_id"`
	Channel      types.Channel `json:"channel"`
	Outcome      types.Outcome `json:"outcome"`
	AttemptCount int           `json:"attempt_count"`
	Error        string        `json:"error,omitempty"`
}

// Summary aggregates a delivery run.
type Summary struct {
	SentCount   int            `json:"sent_count"`
	FailedCount int            `json:"failed_count"`
	Mode        types.SendMode `json:"mode"`
	Results     []LeadResult   `json:"results"`
}

// Deliverer runs the send stage against a store.
type Deliverer struct {
	store   store.Store
	sm      *pipeline.StateMachine
	limiter *ratelimit.Limiter
	policy  *retry.Policy
	sender  Sender
}

// New creates a deliverer. The limiter and retry policy are built from opts;
// the sender decides what a single attempt does.
func New(s store.Store, sm *pipeline.StateMachine, sender Sender, opts Options) *Deliverer {
	opts.normalize()
	return &Deliverer{
		store:   s,
		sm:      sm,
		limiter: ratelimit.New(opts.RateLimit),
		policy:  retry.New(opts.MaxRetries),
		sender:  sender,
	}
}

// NewWithDeps creates a deliverer with an explicit limiter and retry policy.
// Used by tests to inject accelerated clocks.
func NewWithDeps(s store.Store, sm *pipeline.StateMachine, sender Sender, limiter *ratelimit.Limiter, policy *retry.Policy) *Deliverer {
	return &Deliverer{store: s, sm: sm, limiter: limiter, policy: policy, sender: sender}
}

// Deliver sends one message per lead and records exactly one delivery result
// per lead. Leads are processed in batches; cancellation is honored at batch
// boundaries and inside rate-limit and backoff waits. A partially delivered
// run returns the summary accumulated so far alongside the error.
func (d *Deliverer) Deliver(ctx context.Context, leads []types.Lead, opts Options) (*Summary, error) {
	opts.normalize()
	summary := &Summary{Mode: opts.Mode, Results: make([]LeadResult, 0, len(leads))}

	for start := 0; start < len(leads); start += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		end := start + opts.BatchSize
		if end > len(leads) {
			end = len(leads)
		}
		batch := leads[start:end]

		results, err := d.deliverBatch(ctx, batch, opts)
		for _, r := range results {
			summary.Results = append(summary.Results, r)
			if r.Outcome == types.OutcomeSent {
				summary.SentCount++
			} else {
				summary.FailedCount++
			}
		}
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// deliverBatch processes one batch, sequentially or fanned out on an
// errgroup when concurrency allows. Results keep batch order either way.
func (d *Deliverer) deliverBatch(ctx context.Context, batch []types.Lead, opts Options) ([]LeadResult, error) {
	results := make([]LeadResult, len(batch))
	filled := make([]bool, len(batch))

	if opts.Concurrency <= 1 {
		for i, lead := range batch {
			r, err := d.deliverLead(ctx, lead, opts)
			if err != nil {
				return compact(results, filled), err
			}
			results[i] = *r
			filled[i] = true
		}
		return compact(results, filled), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, lead := range batch {
		g.Go(func() error {
			r, err := d.deliverLead(gctx, lead, opts)
			if err != nil {
				return err
			}
			results[i] = *r
			filled[i] = true
			return nil
		})
	}
	err := g.Wait()
	return compact(results, filled), err
}

// deliverLead runs the full attempt sequence for one lead: pick the message,
// wait for a rate-limit slot, retry the send, then persist the terminal
// result and transition the lead. A returned error means the run should
// stop (cancellation or storage failure), not that the send failed; send
// failure is a FAILED outcome.
func (d *Deliverer) deliverLead(ctx context.Context, lead types.Lead, opts Options) (*LeadResult, error) {
	msg, err := d.pickMessage(ctx, lead.ID, opts)
	if err != nil {
		return nil, err
	}

	if err := d.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	attempts, sendErr := d.policy.Execute(ctx, func(ctx context.Context) error {
		actx, cancel := context.WithTimeout(ctx, opts.AttemptTimeout)
		defer cancel()
		return d.sender.Send(actx, lead, *msg)
	})
	if sendErr != nil && ctx.Err() != nil {
		return nil, sendErr
	}

	outcome := types.OutcomeSent
	lastError := ""
	var sentAt *time.Time
	now := time.Now().UTC()
	if sendErr != nil {
		outcome = types.OutcomeFailed
		lastError = sendErr.Error()
	} else {
		sentAt = &now
	}

	result := types.DeliveryResult{
		MessageID:    msg.ID,
		LeadID:       lead.ID,
		Channel:      msg.Channel,
		Outcome:      outcome,
		AttemptCount: attempts,
		LastError:    lastError,
		CompletedAt:  now,
		SentAt:       sentAt,
	}
	if err := d.store.AppendDeliveryResult(ctx, result); err != nil {
		return nil, &Error{Message: "failed to record delivery result", Cause: err}
	}

	target := types.StatusSent
	if outcome == types.OutcomeFailed {
		target = types.StatusFailed
	}
	if _, err := d.sm.Transition(ctx, lead.ID, target); err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to move lead %s to %s", lead.ID, target), Cause: err}
	}

	return &LeadResult{
		LeadID:       lead.ID,
		Channel:      msg.Channel,
		Outcome:      outcome,
		AttemptCount: attempts,
		Error:        lastError,
	}, nil
}

// pickMessage selects the drafted message matching the run's channel and
// variant, falling back to any message on the channel, then to any message
// at all.
func (d *Deliverer) pickMessage(ctx context.Context, leadID string, opts Options) (*types.Message, error) {
	msgs, err := d.store.MessagesByLeadID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, &Error{Message: fmt.Sprintf("lead %s has no drafted messages", leadID)}
	}

	for _, m := range msgs {
		if m.Channel == opts.Channel && m.Variant == opts.Variant {
			return &m, nil
		}
	}
	for _, m := range msgs {
		if m.Channel == opts.Channel {
			return &m, nil
		}
	}
	return &msgs[0], nil
}

// RateLimitStatus exposes the limiter's window occupancy for reporting.
func (d *Deliverer) RateLimitStatus() ratelimit.Status {
	return d.limiter.GetStatus()
}

func compact(results []LeadResult, filled []bool) []LeadResult {
	out := results[:0:0]
	for i, ok := range filled {
		if ok {
			out = append(out, results[i])
		}
	}
	return out
}
