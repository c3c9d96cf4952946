package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/outreach-pipeline/internal/store"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

const leadColumns = `id, full_name, company_name, role, industry, website, email, linkedin_url, country, status, created_at, updated_at`

// InsertLeads stores a batch of leads, skipping IDs that already exist.
// It returns the number of leads actually inserted.
func (db *DB) InsertLeads(ctx context.Context, leads []types.Lead) (int, error) {
	inserted := 0
	for _, lead := range leads {
		tag, err := db.pool.Exec(ctx,
			`INSERT INTO leads (`+leadColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (id) DO NOTHING`,
			lead.ID, lead.FullName, lead.CompanyName, lead.Role, lead.Industry,
			lead.Website, lead.Email, lead.LinkedInURL, lead.Country,
			lead.Status, lead.CreatedAt, lead.UpdatedAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert lead %s: %w", lead.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// GetLead retrieves a single lead by ID.
func (db *DB) GetLead(ctx context.Context, id string) (*types.Lead, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &store.NotFoundError{Kind: "lead", ID: id}
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

// LeadsByStatus retrieves leads in a status, oldest first. A limit of 0
// means no limit.
func (db *DB) LeadsByStatus(ctx context.Context, status types.Status, limit int) ([]types.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE status = $1 ORDER BY created_at ASC`
	args := []any{status}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads by status: %w", err)
	}
	defer rows.Close()
	return scanLeads(rows)
}

// LeadsByIDs retrieves the given leads. Unknown IDs fail with a not-found
// error so callers never silently operate on a partial set.
func (db *DB) LeadsByIDs(ctx context.Context, ids []string) ([]types.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = ANY($1) ORDER BY created_at ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads by ids: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, err
	}
	if len(leads) != len(ids) {
		found := make(map[string]bool, len(leads))
		for _, l := range leads {
			found[l.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, &store.NotFoundError{Kind: "lead", ID: id}
			}
		}
	}
	return leads, nil
}

// AllLeads retrieves every lead, oldest first. A limit of 0 means no limit.
func (db *DB) AllLeads(ctx context.Context, limit int) ([]types.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()
	return scanLeads(rows)
}

// UpdateLeadStatus sets a lead's status.
func (db *DB) UpdateLeadStatus(ctx context.Context, id string, status types.Status) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &store.NotFoundError{Kind: "lead", ID: id}
	}
	return nil
}

// Distribution returns the lead count per status, with every status present.
func (db *DB) Distribution(ctx context.Context) (map[types.Status]int, error) {
	dist := make(map[types.Status]int, 5)
	for _, s := range types.AllStatuses() {
		dist[s] = 0
	}

	rows, err := db.pool.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status types.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		dist[status] = count
	}
	return dist, rows.Err()
}

func scanLead(row pgx.Row) (*types.Lead, error) {
	var lead types.Lead
	err := row.Scan(&lead.ID, &lead.FullName, &lead.CompanyName, &lead.Role,
		&lead.Industry, &lead.Website, &lead.Email, &lead.LinkedInURL,
		&lead.Country, &lead.Status, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func scanLeads(rows pgx.Rows) ([]types.Lead, error) {
	var leads []types.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}
