package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// Memory is a mutex-guarded in-memory Store. Reads return copies so callers
// can inspect pipeline state concurrently with an in-flight run without
// observing partial mutations.
type Memory struct {
	mu          sync.RWMutex
	leads       map[string]types.Lead
	leadOrder   []string
	enrichments map[string]types.Enrichment
	messages    []types.Message
	results     []types.DeliveryResult
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		leads:       make(map[string]types.Lead),
		enrichments: make(map[string]types.Enrichment),
	}
}

// InsertLeads adds leads, skipping IDs that already exist. Returns the
// number inserted.
func (s *Memory) InsertLeads(_ context.Context, leads []types.Lead) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, lead := range leads {
		if _, ok := s.leads[lead.ID]; ok {
			continue
		}
		s.leads[lead.ID] = lead
		s.leadOrder = append(s.leadOrder, lead.ID)
		inserted++
	}
	return inserted, nil
}

// GetLead returns a copy of the lead with the given ID.
func (s *Memory) GetLead(_ context.Context, id string) (*types.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.leads[id]
	if !ok {
		return nil, &NotFoundError{Kind: "lead", ID: id}
	}
	return &lead, nil
}

// LeadsByStatus returns up to limit leads in the given status, in insertion
// order. A limit <= 0 means no limit.
func (s *Memory) LeadsByStatus(_ context.Context, status types.Status, limit int) ([]types.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Lead
	for _, id := range s.leadOrder {
		lead := s.leads[id]
		if lead.Status != status {
			continue
		}
		out = append(out, lead)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// LeadsByIDs returns the leads matching ids. An unknown ID is an error so
// callers never silently operate on a partial set.
func (s *Memory) LeadsByIDs(_ context.Context, ids []string) ([]types.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Lead, 0, len(ids))
	for _, id := range ids {
		lead, ok := s.leads[id]
		if !ok {
			return nil, &NotFoundError{Kind: "lead", ID: id}
		}
		out = append(out, lead)
	}
	return out, nil
}

// AllLeads returns up to limit leads in insertion order.
func (s *Memory) AllLeads(_ context.Context, limit int) ([]types.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.leadOrder)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]types.Lead, 0, n)
	for _, id := range s.leadOrder[:n] {
		out = append(out, s.leads[id])
	}
	return out, nil
}

// UpdateLeadStatus sets the status of an existing lead. Status validity is
// the state machine's responsibility; the store only checks existence.
func (s *Memory) UpdateLeadStatus(_ context.Context, id string, status types.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[id]
	if !ok {
		return &NotFoundError{Kind: "lead", ID: id}
	}
	lead.Status = status
	lead.UpdatedAt = time.Now().UTC()
	s.leads[id] = lead
	return nil
}

// Distribution returns the lead count per status. Every known status is
// present in the map, zero-valued when empty, so counts always sum to the
// total lead count.
func (s *Memory) Distribution(_ context.Context) (map[types.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist := make(map[types.Status]int, 5)
	for _, status := range types.AllStatuses() {
		dist[status] = 0
	}
	for _, lead := range s.leads {
		dist[lead.Status]++
	}
	return dist, nil
}

// InsertEnrichment stores the enrichment record for a lead. A lead may be
// enriched exactly once.
func (s *Memory) InsertEnrichment(_ context.Context, e types.Enrichment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leads[e.LeadID]; !ok {
		return &NotFoundError{Kind: "lead", ID: e.LeadID}
	}
	if _, ok := s.enrichments[e.LeadID]; ok {
		return &AlreadyExistsError{Kind: "enrichment", ID: e.LeadID}
	}
	s.enrichments[e.LeadID] = e
	return nil
}

// EnrichmentByLeadID returns the enrichment for a lead, or nil if none exists.
func (s *Memory) EnrichmentByLeadID(_ context.Context, leadID string) (*types.Enrichment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.enrichments[leadID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// InsertMessage stores a drafted message.
func (s *Memory) InsertMessage(_ context.Context, m types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leads[m.LeadID]; !ok {
		return &NotFoundError{Kind: "lead", ID: m.LeadID}
	}
	s.messages = append(s.messages, m)
	return nil
}

// MessagesByLeadID returns all messages drafted for a lead.
func (s *Memory) MessagesByLeadID(_ context.Context, leadID string) ([]types.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Message
	for _, m := range s.messages {
		if m.LeadID == leadID {
			out = append(out, m)
		}
	}
	return out, nil
}

// AllMessages returns every stored message in generation order.
func (s *Memory) AllMessages(_ context.Context) ([]types.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// AppendDeliveryResult appends a delivery result. Existing results are
// never overwritten.
func (s *Memory) AppendDeliveryResult(_ context.Context, r types.DeliveryResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, r)
	return nil
}

// DeliveryResults returns all delivery results, oldest first.
func (s *Memory) DeliveryResults(_ context.Context) ([]types.DeliveryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.DeliveryResult, len(s.results))
	copy(out, s.results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.Before(out[j].CompletedAt)
	})
	return out, nil
}

// Reset clears all pipeline data.
func (s *Memory) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leads = make(map[string]types.Lead)
	s.leadOrder = nil
	s.enrichments = make(map[string]types.Enrichment)
	s.messages = nil
	s.results = nil
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Memory) Close() {}
