// Package store defines the keyed record store the pipeline runs against,
// plus an in-memory implementation. The pipeline owns all writes for the
// duration of a run; readers get consistent copies, never internal state.
package store

import (
	"context"
	"fmt"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// Store is the persistence boundary for leads, enrichments, messages, and
// delivery results. Implementations must be safe for concurrent readers
// alongside a single writer.
type Store interface {
	InsertLeads(ctx context.Context, leads []types.Lead) (int, error)
	GetLead(ctx context.Context, id string) (*types.Lead, error)
	LeadsByStatus(ctx context.Context, status types.Status, limit int) ([]types.Lead, error)
	LeadsByIDs(ctx context.Context, ids []string) ([]types.Lead, error)
	AllLeads(ctx context.Context, limit int) ([]types.Lead, error)
	UpdateLeadStatus(ctx context.Context, id string, status types.Status) error
	Distribution(ctx context.Context) (map[types.Status]int, error)

	InsertEnrichment(ctx context.Context, e types.Enrichment) error
	EnrichmentByLeadID(ctx context.Context, leadID string) (*types.Enrichment, error)

	InsertMessage(ctx context.Context, m types.Message) error
	MessagesByLeadID(ctx context.Context, leadID string) ([]types.Message, error)
	AllMessages(ctx context.Context) ([]types.Message, error)

	AppendDeliveryResult(ctx context.Context, r types.DeliveryResult) error
	DeliveryResults(ctx context.Context) ([]types.DeliveryResult, error)

	Reset(ctx context.Context) error
	Close()
}

// NotFoundError indicates a record does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// AlreadyExistsError indicates a record that may only be created once
// already exists.
type AlreadyExistsError struct {
	Kind string
	ID   string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.ID)
}
