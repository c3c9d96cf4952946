package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

func draftInputs() (types.Lead, types.Enrichment) {
	lead := types.Lead{
		ID:          "7f8b4a9e-0d2c-4f7a-8a4e-1c9d2e3f4a5b",
		FullName:    "Ingrid Berg",
		CompanyName: "Berg Logistics",
		Role:        "VP of Logistics",
		Industry:    "Logistics",
		Website:     "https://www.berglogistics.com",
		Email:       "ingrid.berg@berglogistics.com",
		LinkedInURL: "https://www.linkedin.com/in/ingrid-berg-0193",
		Country:     "Germany",
		Status:      types.StatusEnriched,
	}
	enr := types.Enrichment{
		LeadID:          lead.ID,
		CompanySize:     types.SizeMedium,
		Persona:         "Supply Chain Leader",
		PainPoints:      []string{"Real-time visibility gaps", "Route optimization complexity"},
		BuyingTriggers:  []string{"Fleet expansion planned"},
		ConfidenceScore: 72,
		Mode:            types.EnrichOffline,
	}
	return lead, enr
}

func TestDraftEmail(t *testing.T) {
	lead, enr := draftInputs()
	g := NewGenerator()

	msg, err := g.Draft(lead, enr, types.ChannelEmail, types.VariantA)
	require.NoError(t, err)

	assert.Equal(t, lead.ID, msg.LeadID)
	assert.Equal(t, types.ChannelEmail, msg.Channel)
	assert.Equal(t, types.VariantA, msg.Variant)
	assert.NotEmpty(t, msg.Subject)
	assert.NotEmpty(t, msg.CTA)
	assert.LessOrEqual(t, msg.WordCount, 120)
	assert.Equal(t, len(strings.Fields(msg.Body)), msg.WordCount)

	// Personalization placeholders must all be resolved.
	assert.NotContains(t, msg.Body, "{")
	assert.NotContains(t, msg.Subject, "{")
	assert.Contains(t, msg.Body, "Ingrid")
	assert.Contains(t, msg.Body, "Berg Logistics")
	assert.Equal(t, "Real-time visibility gaps", msg.ReferencedInsight)
}

func TestDraftLinkedIn(t *testing.T) {
	lead, enr := draftInputs()
	g := NewGenerator()

	msg, err := g.Draft(lead, enr, types.ChannelLinkedIn, types.VariantB)
	require.NoError(t, err)

	assert.Empty(t, msg.Subject, "linkedin drafts have no subject")
	assert.LessOrEqual(t, msg.WordCount, 60)
	assert.NotContains(t, msg.Body, "{")
}

func TestDraftVariantsDiffer(t *testing.T) {
	lead, enr := draftInputs()
	g := NewGenerator()

	a, err := g.Draft(lead, enr, types.ChannelEmail, types.VariantA)
	require.NoError(t, err)
	b, err := g.Draft(lead, enr, types.ChannelEmail, types.VariantB)
	require.NoError(t, err)

	assert.NotEqual(t, a.Body, b.Body)
	assert.NotEqual(t, a.Subject, b.Subject)
}

func TestDraftDeterministic(t *testing.T) {
	lead, enr := draftInputs()
	g := NewGenerator()

	a, err := g.Draft(lead, enr, types.ChannelEmail, types.VariantA)
	require.NoError(t, err)
	b, err := g.Draft(lead, enr, types.ChannelEmail, types.VariantA)
	require.NoError(t, err)

	assert.Equal(t, a.Body, b.Body)
	assert.Equal(t, a.Subject, b.Subject)
	assert.NotEqual(t, a.ID, b.ID, "message IDs are always fresh")
}

func TestDraftRejectsMismatchedEnrichment(t *testing.T) {
	lead, enr := draftInputs()
	enr.LeadID = "someone-else"

	_, err := NewGenerator().Draft(lead, enr, types.ChannelEmail, types.VariantA)
	assert.Error(t, err)
}

func TestDraftRejectsEmptyInsights(t *testing.T) {
	lead, enr := draftInputs()
	enr.PainPoints = nil

	_, err := NewGenerator().Draft(lead, enr, types.ChannelEmail, types.VariantA)
	assert.Error(t, err)
}

func TestDraftAllMatrix(t *testing.T) {
	lead, enr := draftInputs()
	g := NewGenerator()

	msgs, err := g.DraftAll(lead, enr, nil, true)
	require.NoError(t, err)
	assert.Len(t, msgs, 4, "2 channels x 2 variants")

	msgs, err = g.DraftAll(lead, enr, []types.Channel{types.ChannelEmail}, false)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, types.VariantA, msgs[0].Variant)
}

func TestTruncateWords(t *testing.T) {
	long := strings.Repeat("word ", 100)
	out := truncateWords(long, 10)
	assert.Equal(t, 10, len(strings.Fields(out)))
	assert.True(t, strings.HasSuffix(out, "..."))

	short := "just a few words"
	assert.Equal(t, short, truncateWords(short, 10))
}
