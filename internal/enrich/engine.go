// Package enrich derives business context for leads: company size, persona,
// pain points, buying triggers, and a confidence score. It supports an
// offline rule-based mode and an AI mode backed by an LLM client; both
// produce the same record shape, and enrichment for a given lead is
// deterministic in offline mode.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/jonathan/outreach-pipeline/internal/llm"
	"github.com/jonathan/outreach-pipeline/internal/schemas"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

// insightSchema constrains AI-generated insight documents.
const insightSchema = `{
  "type": "object",
  "required": ["pain_points", "buying_triggers"],
  "properties": {
    "pain_points": {
      "type": "array",
      "items": {"type": "string", "minLength": 3},
      "minItems": 1,
      "maxItems": 3
    },
    "buying_triggers": {
      "type": "array",
      "items": {"type": "string", "minLength": 3},
      "minItems": 1,
      "maxItems": 2
    }
  },
  "additionalProperties": false
}`

type aiInsights struct {
	PainPoints     []string `json:"pain_points"`
	BuyingTriggers []string `json:"buying_triggers"`
}

// Engine enriches leads. In AI mode with a configured client, rule-based
// output is augmented with model-generated insights; without a client, or
// when the model fails, AI mode falls back to the offline heuristics.
type Engine struct {
	mode   types.EnrichMode
	client llm.Client
}

// NewEngine creates an enrichment engine for the given mode.
func NewEngine(mode types.EnrichMode) *Engine {
	return &Engine{mode: mode}
}

// NewAIEngine creates an engine in AI mode backed by the given client.
func NewAIEngine(client llm.Client) *Engine {
	return &Engine{mode: types.EnrichAI, client: client}
}

// EnrichLead derives an enrichment record for a lead. The lead must not
// have been enriched before; the caller enforces that via the store.
func (e *Engine) EnrichLead(ctx context.Context, lead types.Lead) (*types.Enrichment, error) {
	size := classifyCompanySize(lead)
	persona := classifyPersona(lead.Role)
	painPoints := selectPainPoints(lead, persona)
	triggers := selectBuyingTriggers(lead)
	confidence := calculateConfidence(lead, size, persona)

	if e.mode == types.EnrichAI {
		insights, err := e.aiInsights(ctx, lead, persona)
		if err == nil && insights != nil {
			if len(insights.PainPoints) > 0 {
				painPoints = append(painPoints[:min(2, len(painPoints))], insights.PainPoints[0])
			}
			if len(triggers) < 2 && len(insights.BuyingTriggers) > 0 {
				triggers = append(triggers, insights.BuyingTriggers[0])
			}
			confidence = min(95, confidence+10)
		}
	}

	if len(painPoints) > 3 {
		painPoints = painPoints[:3]
	}
	if len(triggers) > 2 {
		triggers = triggers[:2]
	}

	return &types.Enrichment{
		LeadID:          lead.ID,
		CompanySize:     size,
		Persona:         persona,
		PainPoints:      painPoints,
		BuyingTriggers:  triggers,
		ConfidenceScore: confidence,
		Mode:            e.mode,
		EnrichedAt:      time.Now().UTC(),
	}, nil
}

// aiInsights asks the model for additional insights and validates the JSON
// it returns. A nil client means offline fallback.
func (e *Engine) aiInsights(ctx context.Context, lead types.Lead, persona string) (*aiInsights, error) {
	if e.client == nil {
		return nil, nil
	}

	prompt := fmt.Sprintf(`Identify outreach insights for a B2B lead.

Lead: %s, %s at %s
Industry: %s
Persona: %s

Return JSON with "pain_points" (1-3 short strings) and "buying_triggers"
(1-2 short strings) grounded in the industry. Do not invent company facts.`,
		lead.FullName, lead.Role, lead.CompanyName, lead.Industry, persona)

	doc, err := e.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, &Error{Message: "model request failed", Cause: err}
	}
	if err := schemas.ValidateString(insightSchema, doc); err != nil {
		return nil, &Error{Message: "model output rejected", Cause: err}
	}

	var insights aiInsights
	if err := json.Unmarshal([]byte(doc), &insights); err != nil {
		return nil, &Error{Message: "failed to parse model output", Cause: err}
	}
	return &insights, nil
}

// classifyCompanySize estimates company size from role seniority, industry,
// and company-name hints.
func classifyCompanySize(lead types.Lead) types.CompanySize {
	role := strings.ToLower(lead.Role)
	company := strings.ToLower(lead.CompanyName)

	score := 0
	for _, kw := range []string{"chief", "vp", "vice president", "director", "head"} {
		if strings.Contains(role, kw) {
			score += 2
			break
		}
	}
	switch lead.Industry {
	case "Finance", "Healthcare", "Energy", "Telecommunications":
		score++
	}
	for _, kw := range []string{"global", "international", "holdings", "group", "corp"} {
		if strings.Contains(company, kw) {
			score++
			break
		}
	}

	// Deterministic jitter so same-scoring leads don't all classify alike.
	r := deterministic(lead.ID, "size")
	if r > 0.8 {
		score++
	} else if r < 0.2 {
		score--
	}

	switch {
	case score >= 3:
		return types.SizeEnterprise
	case score >= 1:
		return types.SizeMedium
	}
	return types.SizeSmall
}

// classifyPersona maps a role to a persona tag; first matching rule wins.
func classifyPersona(role string) string {
	role = strings.ToLower(role)
	for _, rule := range personaRules {
		for _, kw := range rule.keywords {
			if strings.Contains(role, kw) {
				return rule.persona
			}
		}
	}
	for _, kw := range []string{"vp", "vice president", "head", "director"} {
		if strings.Contains(role, kw) {
			return "Senior Leader"
		}
	}
	return "Business Leader"
}

// selectPainPoints picks 2-3 pain points from the industry list plus any
// persona overlay, deterministically per lead.
func selectPainPoints(lead types.Lead, persona string) []string {
	points := industryPainPoints[lead.Industry]
	if points == nil {
		points = industryPainPoints["Technology"]
	}
	points = append(append([]string{}, points...), personaPainPoints[persona]...)
	return sample(lead.ID, "pain", points, 3)
}

// selectBuyingTriggers picks 1-2 triggers from the industry list,
// deterministically per lead.
func selectBuyingTriggers(lead types.Lead) []string {
	triggers := industryBuyingTriggers[lead.Industry]
	if triggers == nil {
		triggers = industryBuyingTriggers["Technology"]
	}
	return sample(lead.ID, "triggers", triggers, 2)
}

// calculateConfidence scores enrichment confidence in [40, 95].
func calculateConfidence(lead types.Lead, size types.CompanySize, persona string) int {
	score := 60

	switch lead.Industry {
	case "Technology", "Finance", "Healthcare":
		score += 10
	}

	role := strings.ToLower(lead.Role)
	for _, kw := range []string{"chief", "cto", "cfo", "coo", "vp"} {
		if strings.Contains(role, kw) {
			score += 10
			break
		}
	}

	if size == types.SizeEnterprise {
		score += 5
	}
	if persona != "Senior Leader" && persona != "Business Leader" {
		score += 5
	}

	variance := int(deterministic(lead.ID, "confidence")*20) - 10
	score += variance

	if score < 40 {
		score = 40
	}
	if score > 95 {
		score = 95
	}
	return score
}

// deterministic maps (leadID, salt) to a stable value in [0, 1).
func deterministic(leadID, salt string) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(leadID))
	_, _ = h.Write([]byte(salt))
	return float64(h.Sum64()%1_000_000) / 1_000_000
}

// sample picks up to n distinct entries from options, stable per
// (leadID, salt).
func sample(leadID, salt string, options []string, n int) []string {
	if n > len(options) {
		n = len(options)
	}
	out := make([]string, 0, n)
	used := make(map[int]bool, n)
	for k := 0; len(out) < n; k++ {
		idx := int(indexHash(leadID, salt, k)) % len(options)
		for used[idx] {
			idx = (idx + 1) % len(options)
		}
		used[idx] = true
		out = append(out, options[idx])
	}
	return out
}

func indexHash(leadID, salt string, k int) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(leadID))
	_, _ = h.Write([]byte(salt))
	_, _ = h.Write([]byte{byte(k)})
	return h.Sum64()
}
