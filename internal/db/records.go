package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/outreach-pipeline/internal/store"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

// InsertEnrichment stores the enrichment record for a lead. A lead is
// enriched at most once; a second insert fails.
func (db *DB) InsertEnrichment(ctx context.Context, e types.Enrichment) error {
	tag, err := db.pool.Exec(ctx,
		`INSERT INTO enrichments (lead_id, company_size, persona, pain_points, buying_triggers, confidence_score, enrichment_mode, enriched_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (lead_id) DO NOTHING`,
		e.LeadID, e.CompanySize, e.Persona, e.PainPoints, e.BuyingTriggers,
		e.ConfidenceScore, e.Mode, e.EnrichedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &store.AlreadyExistsError{Kind: "enrichment", ID: e.LeadID}
	}
	return nil
}

// EnrichmentByLeadID retrieves a lead's enrichment record, or nil when the
// lead has not been enriched.
func (db *DB) EnrichmentByLeadID(ctx context.Context, leadID string) (*types.Enrichment, error) {
	var e types.Enrichment
	err := db.pool.QueryRow(ctx,
		`SELECT lead_id, company_size, persona, pain_points, buying_triggers, confidence_score, enrichment_mode, enriched_at
		 FROM enrichments WHERE lead_id = $1`, leadID,
	).Scan(&e.LeadID, &e.CompanySize, &e.Persona, &e.PainPoints, &e.BuyingTriggers,
		&e.ConfidenceScore, &e.Mode, &e.EnrichedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get enrichment: %w", err)
	}
	return &e, nil
}

// InsertMessage stores a drafted message.
func (db *DB) InsertMessage(ctx context.Context, m types.Message) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO messages (id, lead_id, channel, variant, subject, body, word_count, cta, referenced_insight, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.LeadID, m.Channel, m.Variant, m.Subject, m.Body,
		m.WordCount, m.CTA, m.ReferencedInsight, m.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

const messageColumns = `id, lead_id, channel, variant, subject, body, word_count, cta, referenced_insight, generated_at`

// MessagesByLeadID retrieves all drafted messages for a lead.
func (db *DB) MessagesByLeadID(ctx context.Context, leadID string) ([]types.Message, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE lead_id = $1 ORDER BY generated_at ASC`, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// AllMessages retrieves every drafted message.
func (db *DB) AllMessages(ctx context.Context) ([]types.Message, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages ORDER BY generated_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]types.Message, error) {
	var msgs []types.Message
	for rows.Next() {
		var m types.Message
		if err := rows.Scan(&m.ID, &m.LeadID, &m.Channel, &m.Variant, &m.Subject,
			&m.Body, &m.WordCount, &m.CTA, &m.ReferencedInsight, &m.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// AppendDeliveryResult records the terminal outcome of a delivery. Results
// are append-only.
func (db *DB) AppendDeliveryResult(ctx context.Context, r types.DeliveryResult) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO delivery_results (message_id, lead_id, channel, outcome, attempt_count, last_error, completed_at, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.MessageID, r.LeadID, r.Channel, r.Outcome, r.AttemptCount,
		r.LastError, r.CompletedAt, r.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append delivery result: %w", err)
	}
	return nil
}

// DeliveryResults retrieves every delivery result in insertion order.
func (db *DB) DeliveryResults(ctx context.Context) ([]types.DeliveryResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT message_id, lead_id, channel, outcome, attempt_count, last_error, completed_at, sent_at
		 FROM delivery_results ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery results: %w", err)
	}
	defer rows.Close()

	var results []types.DeliveryResult
	for rows.Next() {
		var r types.DeliveryResult
		if err := rows.Scan(&r.MessageID, &r.LeadID, &r.Channel, &r.Outcome,
			&r.AttemptCount, &r.LastError, &r.CompletedAt, &r.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
