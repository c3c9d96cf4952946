// Package message drafts personalized outreach messages from a lead and its
// enrichment record. Drafting is deterministic: the same lead, channel, and
// variant always yield the same message body.
package message

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// Error wraps failures in message drafting.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("message: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("message: %s", e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Generator drafts outreach messages.
type Generator struct{}

// NewGenerator creates a message generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Draft produces one message for a lead on the given channel and variant.
// The enrichment record supplies the personalization inputs and must belong
// to the same lead.
func (g *Generator) Draft(lead types.Lead, enr types.Enrichment, channel types.Channel, variant types.Variant) (*types.Message, error) {
	if enr.LeadID != lead.ID {
		return nil, &Error{Message: fmt.Sprintf("enrichment belongs to lead %s, not %s", enr.LeadID, lead.ID)}
	}
	if !channel.Valid() {
		return nil, &Error{Message: fmt.Sprintf("unknown channel %q", channel)}
	}
	if !variant.Valid() {
		return nil, &Error{Message: fmt.Sprintf("unknown variant %q", variant)}
	}
	if len(enr.PainPoints) == 0 || len(enr.BuyingTriggers) == 0 {
		return nil, &Error{Message: fmt.Sprintf("enrichment for lead %s has no insights", lead.ID)}
	}

	tmpl := templatesFor(channel)[variant]
	painPoint := enr.PainPoints[0]
	trigger := enr.BuyingTriggers[0]

	fills := map[string]string{
		"{first_name}":     firstName(lead.FullName),
		"{company}":        lead.CompanyName,
		"{industry}":       strings.ToLower(lead.Industry),
		"{pain_point}":     lowerFirst(painPoint),
		"{pain_short}":     shorten(painPoint, 5),
		"{buying_trigger}": lowerFirst(trigger),
		"{trigger_short}":  shorten(trigger, 5),
		"{persona_plural}": personaPlural(enr.Persona),
		"{cta}":            tmpl.cta,
	}

	body := fill(tmpl.body, fills)
	body = truncateWords(body, wordLimits[channel])

	subject := ""
	if channel == types.ChannelEmail {
		subject = fill(tmpl.subject, fills)
	}

	return &types.Message{
		ID:                uuid.New().String(),
		LeadID:            lead.ID,
		Channel:           channel,
		Variant:           variant,
		Subject:           subject,
		Body:              body,
		WordCount:         countWords(body),
		CTA:               tmpl.cta,
		ReferencedInsight: painPoint,
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

// DraftAll produces the full channel x variant matrix for a lead. With A/B
// disabled only variant A is drafted.
func (g *Generator) DraftAll(lead types.Lead, enr types.Enrichment, channels []types.Channel, abVariants bool) ([]types.Message, error) {
	if len(channels) == 0 {
		channels = types.AllChannels()
	}
	variants := []types.Variant{types.VariantA}
	if abVariants {
		variants = append(variants, types.VariantB)
	}

	msgs := make([]types.Message, 0, len(channels)*len(variants))
	for _, ch := range channels {
		for _, v := range variants {
			m, err := g.Draft(lead, enr, ch, v)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, *m)
		}
	}
	return msgs, nil
}

func fill(s string, fills map[string]string) string {
	for placeholder, value := range fills {
		s = strings.ReplaceAll(s, placeholder, value)
	}
	return s
}

func firstName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "there"
	}
	return parts[0]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// shorten returns the first n words of s, lowercased, for use in subjects.
func shorten(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.ToLower(strings.Join(words, " "))
}

// personaPlural renders a persona tag as a plural audience noun.
func personaPlural(persona string) string {
	p := strings.ToLower(persona)
	if strings.HasSuffix(p, "leader") {
		return p + "s"
	}
	if strings.HasSuffix(p, "s") {
		return p
	}
	return p + "s"
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// truncateWords caps s at limit words, preserving line structure where it
// can and appending an ellipsis when content is dropped.
func truncateWords(s string, limit int) string {
	if limit <= 0 || countWords(s) <= limit {
		return s
	}
	words := strings.Fields(s)
	return strings.Join(words[:limit], " ") + "..."
}
