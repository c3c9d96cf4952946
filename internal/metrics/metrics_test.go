package metrics

import (
	"testing"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

func TestComputeCountsByStatus(t *testing.T) {
	leads := []types.Lead{
		{ID: "a", Status: types.StatusNew},
		{ID: "b", Status: types.StatusNew},
		{ID: "c", Status: types.StatusEnriched},
		{ID: "d", Status: types.StatusMessaged},
		{ID: "e", Status: types.StatusSent},
		{ID: "f", Status: types.StatusSent},
		{ID: "g", Status: types.StatusFailed},
	}
	messages := []types.Message{
		{ID: "m1", LeadID: "e", Channel: types.ChannelEmail},
		{ID: "m2", LeadID: "e", Channel: types.ChannelLinkedIn},
		{ID: "m3", LeadID: "f", Channel: types.ChannelEmail},
	}
	results := []types.DeliveryResult{
		{LeadID: "e", Outcome: types.OutcomeSent},
		{LeadID: "f", Outcome: types.OutcomeSent},
		{LeadID: "g", Outcome: types.OutcomeFailed},
	}

	m := Compute(leads, messages, results)

	if m.TotalLeads != 7 {
		t.Errorf("TotalLeads = %d, want 7", m.TotalLeads)
	}
	if m.NewLeads != 2 || m.EnrichedLeads != 1 || m.MessagedLeads != 1 {
		t.Errorf("stage counts = %d/%d/%d, want 2/1/1", m.NewLeads, m.EnrichedLeads, m.MessagedLeads)
	}
	if m.SentLeads != 2 || m.FailedLeads != 1 {
		t.Errorf("terminal counts = %d/%d, want 2/1", m.SentLeads, m.FailedLeads)
	}
	if m.TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, want 3", m.TotalMessages)
	}
	if m.PerChannel[types.ChannelEmail] != 2 || m.PerChannel[types.ChannelLinkedIn] != 1 {
		t.Errorf("PerChannel = %v, want email:2 linkedin:1", m.PerChannel)
	}
	if m.MessagesSent != 2 || m.MessagesFailed != 1 {
		t.Errorf("delivery counts = %d/%d, want 2/1", m.MessagesSent, m.MessagesFailed)
	}
	want := 2.0 / 3.0
	if m.SuccessRate != want {
		t.Errorf("SuccessRate = %f, want %f", m.SuccessRate, want)
	}
	if m.LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}

func TestComputeEmptyPipeline(t *testing.T) {
	m := Compute(nil, nil, nil)

	if m.TotalLeads != 0 || m.TotalMessages != 0 {
		t.Errorf("totals = %d/%d, want 0/0", m.TotalLeads, m.TotalMessages)
	}
	if m.SuccessRate != 0 {
		t.Errorf("SuccessRate = %f, want 0 with no attempts", m.SuccessRate)
	}
	if m.PerChannel == nil {
		t.Error("PerChannel should be an empty map, not nil")
	}
}
