package types

import (
	"github.com/go-playground/validator/v10"
)

// Validate validates a Lead's profile fields using the validator.
func (l *Lead) Validate() error {
	validate := validator.New()
	return validate.Struct(l)
}

// GenerateRequest holds parameters for the generate tool.
type GenerateRequest struct {
	Count      int      `json:"count" validate:"required,min=1,max=1000"`
	Seed       *int64   `json:"seed,omitempty"`
	Industries []string `json:"industries,omitempty" validate:"omitempty,dive,min=2"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// EnrichRequest holds parameters for the enrich tool.
type EnrichRequest struct {
	LeadIDs   []string   `json:"lead_ids,omitempty"`
	Mode      EnrichMode `json:"mode,omitempty" validate:"omitempty,oneof=offline ai"`
	BatchSize int        `json:"batch_size,omitempty" validate:"omitempty,min=1,max=200"`
}

// Validate validates the EnrichRequest using the validator.
func (r *EnrichRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// MessageRequest holds parameters for the message tool.
type MessageRequest struct {
	LeadIDs    []string  `json:"lead_ids,omitempty"`
	Channels   []Channel `json:"channels,omitempty" validate:"omitempty,dive,oneof=email linkedin"`
	ABVariants bool      `json:"generate_ab_variants"`
}

// Validate validates the MessageRequest using the validator.
func (r *MessageRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SendRequest holds parameters for the send tool.
type SendRequest struct {
	LeadIDs    []string `json:"lead_ids,omitempty"`
	Mode       SendMode `json:"mode,omitempty" validate:"omitempty,oneof=dry_run live"`
	Channel    Channel  `json:"channel,omitempty" validate:"omitempty,oneof=email linkedin"`
	Variant    Variant  `json:"variant,omitempty" validate:"omitempty,oneof=A B"`
	RateLimit  int      `json:"rate_limit,omitempty" validate:"omitempty,min=1,max=60"`
	MaxRetries int      `json:"max_retries" validate:"min=0,max=5"`
	BatchSize  int      `json:"batch_size,omitempty" validate:"omitempty,min=1,max=200"`
}

// Validate validates the SendRequest using the validator.
func (r *SendRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// StatusRequest holds parameters for the status tool.
type StatusRequest struct {
	IncludeLeads    bool     `json:"include_leads"`
	IncludeMessages bool     `json:"include_messages"`
	LeadIDs         []string `json:"lead_ids,omitempty"`
}

// Validate validates the StatusRequest using the validator.
func (r *StatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
