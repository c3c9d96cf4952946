// Package metrics aggregates pipeline state into a reporting snapshot.
package metrics

import (
	"time"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// Compute derives a metrics snapshot from the current leads, drafted
// messages, and delivery results. Rates report 0 when their denominator is
// zero rather than dividing by it.
func Compute(leads []types.Lead, messages []types.Message, results []types.DeliveryResult) *types.PipelineMetrics {
	m := &types.PipelineMetrics{
		TotalLeads:    len(leads),
		TotalMessages: len(messages),
		PerChannel:    make(map[types.Channel]int, 2),
		LastUpdated:   time.Now().UTC(),
	}

	for _, lead := range leads {
		switch lead.Status {
		case types.StatusNew:
			m.NewLeads++
		case types.StatusEnriched:
			m.EnrichedLeads++
		case types.StatusMessaged:
			m.MessagedLeads++
		case types.StatusSent:
			m.SentLeads++
		case types.StatusFailed:
			m.FailedLeads++
		}
	}

	for _, msg := range messages {
		m.PerChannel[msg.Channel]++
	}

	for _, r := range results {
		switch r.Outcome {
		case types.OutcomeSent:
			m.MessagesSent++
		case types.OutcomeFailed:
			m.MessagesFailed++
		}
	}

	if attempted := m.MessagesSent + m.MessagesFailed; attempted > 0 {
		m.SuccessRate = float64(m.MessagesSent) / float64(attempted)
	}

	return m
}
