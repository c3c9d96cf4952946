package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

func sampleLead() types.Lead {
	return types.Lead{
		ID:          "0b54c2aa-9c6f-4b6e-9a51-2f0f2b0f5a10",
		FullName:    "Priya Patel",
		CompanyName: "Patel Capital",
		Role:        "CFO",
		Industry:    "Finance",
		Website:     "https://www.patelcapital.com",
		Email:       "priya.patel@patelcapital.com",
		LinkedInURL: "https://www.linkedin.com/in/priya-patel-0042",
		Country:     "United Kingdom",
		Status:      types.StatusNew,
	}
}

func TestEnrichLeadOffline(t *testing.T) {
	engine := NewEngine(types.EnrichOffline)
	record, err := engine.EnrichLead(context.Background(), sampleLead())
	require.NoError(t, err)

	assert.Equal(t, sampleLead().ID, record.LeadID)
	assert.Equal(t, types.EnrichOffline, record.Mode)
	assert.Contains(t, []types.CompanySize{types.SizeSmall, types.SizeMedium, types.SizeEnterprise}, record.CompanySize)
	assert.NotEmpty(t, record.Persona)

	assert.GreaterOrEqual(t, len(record.PainPoints), 2)
	assert.LessOrEqual(t, len(record.PainPoints), 3)
	assert.GreaterOrEqual(t, len(record.BuyingTriggers), 1)
	assert.LessOrEqual(t, len(record.BuyingTriggers), 2)

	assert.GreaterOrEqual(t, record.ConfidenceScore, 40)
	assert.LessOrEqual(t, record.ConfidenceScore, 95)
	assert.False(t, record.EnrichedAt.IsZero())
}

func TestEnrichLeadDeterministicOffline(t *testing.T) {
	engine := NewEngine(types.EnrichOffline)
	lead := sampleLead()

	a, err := engine.EnrichLead(context.Background(), lead)
	require.NoError(t, err)
	b, err := engine.EnrichLead(context.Background(), lead)
	require.NoError(t, err)

	assert.Equal(t, a.CompanySize, b.CompanySize)
	assert.Equal(t, a.Persona, b.Persona)
	assert.Equal(t, a.PainPoints, b.PainPoints)
	assert.Equal(t, a.BuyingTriggers, b.BuyingTriggers)
	assert.Equal(t, a.ConfidenceScore, b.ConfidenceScore)
}

func TestClassifyPersona(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"CFO", "Finance Leader"},
		{"VP of Finance", "Finance Leader"},
		{"CTO", "Tech Leader"},
		{"Director of Engineering", "Tech Leader"},
		{"COO", "Operations Leader"},
		{"Head of Supply Chain", "Supply Chain Leader"},
		{"CMO", "Marketing Leader"},
		{"VP of Product", "Senior Leader"},
		{"Head of Risk", "Senior Leader"},
		{"Account Manager", "Business Leader"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyPersona(tt.role), "role %q", tt.role)
	}
}

func TestPainPointsGroundedInIndustry(t *testing.T) {
	engine := NewEngine(types.EnrichOffline)
	lead := sampleLead()
	record, err := engine.EnrichLead(context.Background(), lead)
	require.NoError(t, err)

	valid := make(map[string]bool)
	for _, p := range industryPainPoints[lead.Industry] {
		valid[p] = true
	}
	for _, p := range personaPainPoints[record.Persona] {
		valid[p] = true
	}
	for _, p := range record.PainPoints {
		assert.True(t, valid[p], "pain point %q not in the %s/%s knowledge base", p, lead.Industry, record.Persona)
	}
}

func TestUnknownIndustryFallsBack(t *testing.T) {
	engine := NewEngine(types.EnrichOffline)
	lead := sampleLead()
	lead.Industry = "Aerospace"

	record, err := engine.EnrichLead(context.Background(), lead)
	require.NoError(t, err)
	assert.NotEmpty(t, record.PainPoints)
	assert.NotEmpty(t, record.BuyingTriggers)
}

// fakeLLM returns a canned document or error.
type fakeLLM struct {
	doc string
	err error
}

func (f *fakeLLM) GenerateJSON(context.Context, string) (string, error) { return f.doc, f.err }
func (f *fakeLLM) Close() error                                         { return nil }

func TestEnrichLeadAIMode(t *testing.T) {
	engine := NewAIEngine(&fakeLLM{
		doc: `{"pain_points": ["Fragmented reporting across regional entities"], "buying_triggers": ["New group CFO mandate"]}`,
	})

	record, err := engine.EnrichLead(context.Background(), sampleLead())
	require.NoError(t, err)

	assert.Equal(t, types.EnrichAI, record.Mode)
	assert.Contains(t, record.PainPoints, "Fragmented reporting across regional entities")
	assert.LessOrEqual(t, len(record.PainPoints), 3)
	assert.LessOrEqual(t, len(record.BuyingTriggers), 2)
	assert.LessOrEqual(t, record.ConfidenceScore, 95)
}

func TestEnrichLeadAIModeFallsBackOnModelError(t *testing.T) {
	engine := NewAIEngine(&fakeLLM{err: errors.New("model unavailable")})

	record, err := engine.EnrichLead(context.Background(), sampleLead())
	require.NoError(t, err)
	assert.NotEmpty(t, record.PainPoints, "offline heuristics should still produce insights")
}

func TestEnrichLeadAIModeRejectsInvalidDocument(t *testing.T) {
	// Document missing required fields fails schema validation; the engine
	// keeps the offline output.
	engine := NewAIEngine(&fakeLLM{doc: `{"pain_points": []}`})

	offline, err := NewEngine(types.EnrichOffline).EnrichLead(context.Background(), sampleLead())
	require.NoError(t, err)
	record, err := engine.EnrichLead(context.Background(), sampleLead())
	require.NoError(t, err)

	assert.Equal(t, offline.PainPoints, record.PainPoints)
}
