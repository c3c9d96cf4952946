// Package types provides type definitions for structured data used throughout the outreach pipeline.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Status tracks a lead's progress through the pipeline.
type Status string

const (
	StatusNew      Status = "NEW"
	StatusEnriched Status = "ENRICHED"
	StatusMessaged Status = "MESSAGED"
	StatusSent     Status = "SENT"
	StatusFailed   Status = "FAILED"
)

// AllStatuses returns every pipeline status in progression order.
func AllStatuses() []Status {
	return []Status{StatusNew, StatusEnriched, StatusMessaged, StatusSent, StatusFailed}
}

// Valid reports whether s is a known pipeline status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusEnriched, StatusMessaged, StatusSent, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed
}

// ParseStatus converts a string into a Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(s))
	if !st.Valid() {
		return "", fmt.Errorf("unknown lead status: %q", s)
	}
	return st, nil
}

// Channel is an outreach medium.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelLinkedIn Channel = "linkedin"
)

// AllChannels returns the supported outreach channels.
func AllChannels() []Channel {
	return []Channel{ChannelEmail, ChannelLinkedIn}
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelLinkedIn
}

// Variant identifies an A/B message draft.
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantA || v == VariantB
}

// EnrichMode selects how enrichment data is produced.
type EnrichMode string

const (
	EnrichOffline EnrichMode = "offline"
	EnrichAI      EnrichMode = "ai"
)

// Valid reports whether m is a known enrichment mode.
func (m EnrichMode) Valid() bool {
	return m == EnrichOffline || m == EnrichAI
}

// SendMode selects whether delivery actually leaves the system.
type SendMode string

const (
	SendDryRun SendMode = "dry_run"
	SendLive   SendMode = "live"
)

// Valid reports whether m is a known send mode.
func (m SendMode) Valid() bool {
	return m == SendDryRun || m == SendLive
}

// CompanySize classifies a lead's company for enrichment.
type CompanySize string

const (
	SizeSmall      CompanySize = "small"
	SizeMedium     CompanySize = "medium"
	SizeEnterprise CompanySize = "enterprise"
)

// Lead is a prospect record tracked through the pipeline.
type Lead struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name" validate:"required,min=2,max=100"`
	CompanyName string    `json:"company_name" validate:"required,min=1,max=200"`
	Role        string    `json:"role" validate:"required,min=2,max=100"`
	Industry    string    `json:"industry" validate:"required,min=2,max=100"`
	Website     string    `json:"website" validate:"required,url"`
	Email       string    `json:"email" validate:"required,email"`
	LinkedInURL string    `json:"linkedin_url" validate:"required,url"`
	Country     string    `json:"country" validate:"required,min=2,max=100"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Enrichment carries derived business context for a single lead.
// Created once per lead; immutable thereafter.
type Enrichment struct {
	LeadID          string      `json:"lead_id"`
	CompanySize     CompanySize `json:"company_size"`
	Persona         string      `json:"persona"`
	PainPoints      []string    `json:"pain_points"`
	BuyingTriggers  []string    `json:"buying_triggers"`
	ConfidenceScore int         `json:"confidence_score"`
	Mode            EnrichMode  `json:"enrichment_mode"`
	EnrichedAt      time.Time   `json:"enriched_at"`
}

// Message is a drafted outreach message for a lead. Immutable once created.
type Message struct {
	ID                string    `json:"id"`
	LeadID            string    `json:"lead_id"`
	Channel           Channel   `json:"channel"`
	Variant           Variant   `json:"variant"`
	Subject           string    `json:"subject,omitempty"`
	Body              string    `json:"body"`
	WordCount         int       `json:"word_count"`
	CTA               string    `json:"cta"`
	ReferencedInsight string    `json:"referenced_insight"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// Outcome records whether a delivery ultimately succeeded.
type Outcome string

const (
	OutcomeSent   Outcome = "sent"
	OutcomeFailed Outcome = "failed"
)

// DeliveryResult records the terminal outcome of a send attempt sequence
// for one (lead, channel) pair. Results are append-only: a later delivery
// for the same pair adds a new record rather than overwriting history.
type DeliveryResult struct {
	MessageID    string     `json:"message_id"`
	LeadID       string     `json:"lead_id"`
	Channel      Channel    `json:"channel"`
	Outcome      Outcome    `json:"outcome"`
	AttemptCount int        `json:"attempt_count"`
	LastError    string     `json:"last_error,omitempty"`
	CompletedAt  time.Time  `json:"completed_at"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
}

// PipelineMetrics is an aggregated snapshot of pipeline health.
type PipelineMetrics struct {
	TotalLeads     int             `json:"total_leads"`
	NewLeads       int             `json:"new_leads"`
	EnrichedLeads  int             `json:"enriched_leads"`
	MessagedLeads  int             `json:"messaged_leads"`
	SentLeads      int             `json:"sent_leads"`
	FailedLeads    int             `json:"failed_leads"`
	TotalMessages  int             `json:"total_messages"`
	MessagesSent   int             `json:"messages_sent"`
	MessagesFailed int             `json:"messages_failed"`
	SuccessRate    float64         `json:"success_rate"`
	PerChannel     map[Channel]int `json:"per_channel_counts"`
	LastUpdated    time.Time       `json:"last_updated"`
}

// StatusCount returns the lead count for a single status.
func (m *PipelineMetrics) StatusCount(s Status) int {
	switch s {
	case StatusNew:
		return m.NewLeads
	case StatusEnriched:
		return m.EnrichedLeads
	case StatusMessaged:
		return m.MessagedLeads
	case StatusSent:
		return m.SentLeads
	case StatusFailed:
		return m.FailedLeads
	}
	return 0
}
