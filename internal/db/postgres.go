// Package db provides PostgreSQL persistence for the outreach pipeline. It
// implements the same store interface as the in-memory store, so the agent
// and tool handlers run unchanged against either backend.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/outreach-pipeline/internal/store"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*DB)(nil)

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the pipeline tables if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id           UUID PRIMARY KEY,
			full_name    TEXT NOT NULL,
			company_name TEXT NOT NULL,
			role         TEXT NOT NULL,
			industry     TEXT NOT NULL,
			website      TEXT NOT NULL,
			email        TEXT NOT NULL,
			linkedin_url TEXT NOT NULL,
			country      TEXT NOT NULL,
			status       TEXT NOT NULL DEFAULT 'NEW',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS enrichments (
			lead_id          UUID PRIMARY KEY REFERENCES leads(id) ON DELETE CASCADE,
			company_size     TEXT NOT NULL,
			persona          TEXT NOT NULL,
			pain_points      TEXT[] NOT NULL,
			buying_triggers  TEXT[] NOT NULL,
			confidence_score INT NOT NULL,
			enrichment_mode  TEXT NOT NULL,
			enriched_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id                 UUID PRIMARY KEY,
			lead_id            UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
			channel            TEXT NOT NULL,
			variant            TEXT NOT NULL,
			subject            TEXT NOT NULL DEFAULT '',
			body               TEXT NOT NULL,
			word_count         INT NOT NULL,
			cta                TEXT NOT NULL,
			referenced_insight TEXT NOT NULL,
			generated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS delivery_results (
			id            BIGSERIAL PRIMARY KEY,
			message_id    UUID NOT NULL,
			lead_id       UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
			channel       TEXT NOT NULL,
			outcome       TEXT NOT NULL,
			attempt_count INT NOT NULL,
			last_error    TEXT NOT NULL DEFAULT '',
			completed_at  TIMESTAMPTZ NOT NULL,
			sent_at       TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_lead_id ON messages(lead_id)`,
		`CREATE INDEX IF NOT EXISTS idx_delivery_results_lead_id ON delivery_results(lead_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Reset removes all pipeline data. Deleting leads cascades to enrichments,
// messages, and delivery results.
func (db *DB) Reset(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM leads`); err != nil {
		return fmt.Errorf("failed to reset pipeline data: %w", err)
	}
	return nil
}
