package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/outreach-pipeline/internal/store"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

func seedLead(t *testing.T, s store.Store, id string, status types.Status) {
	t.Helper()
	now := time.Now().UTC()
	lead := types.Lead{
		ID: id, FullName: "Sam Okafor", CompanyName: "Northwind", Role: "CTO",
		Industry: "Technology", Website: "https://northwind.example.com",
		Email: "sam@northwind.example.com", LinkedInURL: "https://linkedin.com/in/sam-okafor",
		Country: "Canada", Status: types.StatusNew, CreatedAt: now, UpdatedAt: now,
	}
	if _, err := s.InsertLeads(context.Background(), []types.Lead{lead}); err != nil {
		t.Fatal(err)
	}
	if status != types.StatusNew {
		if err := s.UpdateLeadStatus(context.Background(), id, status); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to types.Status
		want     bool
	}{
		{types.StatusNew, types.StatusEnriched, true},
		{types.StatusEnriched, types.StatusMessaged, true},
		{types.StatusMessaged, types.StatusSent, true},
		{types.StatusMessaged, types.StatusFailed, true},
		{types.StatusNew, types.StatusMessaged, false},
		{types.StatusNew, types.StatusSent, false},
		{types.StatusEnriched, types.StatusNew, false},
		{types.StatusSent, types.StatusFailed, false},
		{types.StatusFailed, types.StatusNew, false},
		{types.StatusSent, types.StatusSent, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransitionRequiresEnrichmentRecord(t *testing.T) {
	s := store.NewMemory()
	sm := NewStateMachine(s)
	ctx := context.Background()
	seedLead(t, s, "a", types.StatusNew)

	_, err := sm.Transition(ctx, "a", types.StatusEnriched)
	var precondition *PreconditionNotMetError
	if !errors.As(err, &precondition) {
		t.Fatalf("error = %v, want *PreconditionNotMetError", err)
	}

	// Lead is unchanged on failure.
	lead, _ := s.GetLead(ctx, "a")
	if lead.Status != types.StatusNew {
		t.Errorf("lead status = %s, want NEW after failed transition", lead.Status)
	}

	if err := s.InsertEnrichment(ctx, types.Enrichment{LeadID: "a"}); err != nil {
		t.Fatal(err)
	}
	lead, err = sm.Transition(ctx, "a", types.StatusEnriched)
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if lead.Status != types.StatusEnriched {
		t.Errorf("lead status = %s, want ENRICHED", lead.Status)
	}
}

func TestTransitionRejectsSkippingStages(t *testing.T) {
	s := store.NewMemory()
	sm := NewStateMachine(s)
	ctx := context.Background()
	seedLead(t, s, "a", types.StatusNew)

	// Messaging a NEW lead is not a valid edge, even with a message stored.
	_, err := sm.Transition(ctx, "a", types.StatusMessaged)
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want *InvalidTransitionError", err)
	}
	if invalid.From != types.StatusNew || invalid.To != types.StatusMessaged {
		t.Errorf("InvalidTransitionError = %+v", invalid)
	}
}

func TestTransitionToMessagedRequiresMessage(t *testing.T) {
	s := store.NewMemory()
	sm := NewStateMachine(s)
	ctx := context.Background()
	seedLead(t, s, "a", types.StatusEnriched)

	_, err := sm.Transition(ctx, "a", types.StatusMessaged)
	var precondition *PreconditionNotMetError
	if !errors.As(err, &precondition) {
		t.Fatalf("error = %v, want *PreconditionNotMetError", err)
	}

	if err := s.InsertMessage(ctx, types.Message{ID: "m", LeadID: "a", Channel: types.ChannelEmail, Variant: types.VariantA}); err != nil {
		t.Fatal(err)
	}
	if _, err := sm.Transition(ctx, "a", types.StatusMessaged); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
}

func TestTransitionToTerminalRequiresDeliveryResult(t *testing.T) {
	s := store.NewMemory()
	sm := NewStateMachine(s)
	ctx := context.Background()

	for _, target := range []types.Status{types.StatusSent, types.StatusFailed} {
		id := "lead-" + string(target)
		seedLead(t, s, id, types.StatusMessaged)

		_, err := sm.Transition(ctx, id, target)
		var precondition *PreconditionNotMetError
		if !errors.As(err, &precondition) {
			t.Fatalf("%s: error = %v, want *PreconditionNotMetError", target, err)
		}

		if err := s.AppendDeliveryResult(ctx, types.DeliveryResult{
			LeadID: id, MessageID: "m", Channel: types.ChannelEmail,
			Outcome: types.OutcomeSent, AttemptCount: 1, CompletedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatal(err)
		}
		lead, err := sm.Transition(ctx, id, target)
		if err != nil {
			t.Fatalf("%s: Transition failed: %v", target, err)
		}
		if !lead.Status.Terminal() {
			t.Errorf("%s: status %s is not terminal", target, lead.Status)
		}
	}
}

func TestTransitionUnknownLead(t *testing.T) {
	sm := NewStateMachine(store.NewMemory())
	_, err := sm.Transition(context.Background(), "missing", types.StatusEnriched)
	var notFound *store.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
}
