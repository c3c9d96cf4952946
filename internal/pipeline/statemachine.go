// Package pipeline provides the state machine governing lead status
// transitions and the agent that orchestrates the four stages end-to-end.
package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/outreach-pipeline/internal/store"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

// validEdges holds the only permitted status transitions. A lead's status
// is monotonic along NEW -> ENRICHED -> MESSAGED -> {SENT, FAILED}.
var validEdges = map[types.Status][]types.Status{
	types.StatusNew:      {types.StatusEnriched},
	types.StatusEnriched: {types.StatusMessaged},
	types.StatusMessaged: {types.StatusSent, types.StatusFailed},
}

// StateMachine validates and applies lead status transitions against a
// store. It is the only writer of lead statuses.
type StateMachine struct {
	store store.Store
}

// NewStateMachine creates a state machine over the given store.
func NewStateMachine(s store.Store) *StateMachine {
	return &StateMachine{store: s}
}

// CanTransition reports whether an edge from one status to another exists.
func CanTransition(from, to types.Status) bool {
	for _, t := range validEdges[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition moves a lead to the target status. It fails with
// *InvalidTransitionError when no edge exists from the lead's current
// status, and with *PreconditionNotMetError when the target's precondition
// does not hold. On failure the lead is left unchanged.
func (sm *StateMachine) Transition(ctx context.Context, leadID string, target types.Status) (*types.Lead, error) {
	lead, err := sm.store.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(lead.Status, target) {
		return nil, &InvalidTransitionError{LeadID: leadID, From: lead.Status, To: target}
	}

	if err := sm.checkPrecondition(ctx, leadID, target); err != nil {
		return nil, err
	}

	if err := sm.store.UpdateLeadStatus(ctx, leadID, target); err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}

	return sm.store.GetLead(ctx, leadID)
}

// checkPrecondition verifies the target status's entry requirement.
func (sm *StateMachine) checkPrecondition(ctx context.Context, leadID string, target types.Status) error {
	switch target {
	case types.StatusEnriched:
		e, err := sm.store.EnrichmentByLeadID(ctx, leadID)
		if err != nil {
			return err
		}
		if e == nil {
			return &PreconditionNotMetError{LeadID: leadID, Target: target, Reason: "no enrichment record"}
		}
	case types.StatusMessaged:
		msgs, err := sm.store.MessagesByLeadID(ctx, leadID)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			return &PreconditionNotMetError{LeadID: leadID, Target: target, Reason: "no message records"}
		}
	case types.StatusSent, types.StatusFailed:
		results, err := sm.deliveryResultsForLead(ctx, leadID)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return &PreconditionNotMetError{LeadID: leadID, Target: target, Reason: "no delivery result"}
		}
	}
	return nil
}

func (sm *StateMachine) deliveryResultsForLead(ctx context.Context, leadID string) ([]types.DeliveryResult, error) {
	all, err := sm.store.DeliveryResults(ctx)
	if err != nil {
		return nil, err
	}
	var out []types.DeliveryResult
	for _, r := range all {
		if r.LeadID == leadID {
			out = append(out, r)
		}
	}
	return out, nil
}

// EligibleLeads returns the leads currently in the given status. Stages use
// this to pull their input batch.
func (sm *StateMachine) EligibleLeads(ctx context.Context, status types.Status) ([]types.Lead, error) {
	return sm.store.LeadsByStatus(ctx, status, 0)
}

// Distribution returns the lead count per status. Counts always sum to the
// total lead count.
func (sm *StateMachine) Distribution(ctx context.Context) (map[types.Status]int, error) {
	return sm.store.Distribution(ctx)
}
