// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintLeads outputs a human-readable summary of generated leads.
func (p *Printer) PrintLeads(leads []types.Lead) {
	if len(leads) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(leads), maxItemsToShow)
	for i := 0; i < count; i++ {
		lead := leads[i]
		sb.WriteString(fmt.Sprintf("%s — %s at %s\n", lead.FullName, lead.Role, lead.CompanyName))
		sb.WriteString(fmt.Sprintf("  %s | %s | %s\n", lead.Industry, lead.Country, lead.Status))
	}
	if len(leads) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(leads)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("LEADS (%d)", len(leads)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEnrichment outputs a single lead's enrichment record.
func (p *Printer) PrintEnrichment(e *types.Enrichment) {
	if e == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Persona:      %s\n", e.Persona))
	sb.WriteString(fmt.Sprintf("Company size: %s\n", e.CompanySize))
	sb.WriteString(fmt.Sprintf("Confidence:   %d\n", e.ConfidenceScore))
	if len(e.PainPoints) > 0 {
		sb.WriteString("Pain points:\n")
		for _, pt := range e.PainPoints {
			sb.WriteString(fmt.Sprintf("  • %s\n", pt))
		}
	}
	if len(e.BuyingTriggers) > 0 {
		sb.WriteString("Buying triggers:\n")
		for _, tr := range e.BuyingTriggers {
			sb.WriteString(fmt.Sprintf("  • %s\n", tr))
		}
	}

	p.printBox("ENRICHMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMessages outputs drafted messages, bodies truncated for readability.
func (p *Printer) PrintMessages(msgs []types.Message) {
	if len(msgs) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(msgs), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := msgs[i]
		sb.WriteString(fmt.Sprintf("[%s/%s] %d words\n", m.Channel, m.Variant, m.WordCount))
		if m.Subject != "" {
			sb.WriteString(fmt.Sprintf("  Subject: %s\n", m.Subject))
		}
		body := strings.ReplaceAll(m.Body, "\n", " ")
		if len(body) > boxWidth-10 {
			body = body[:boxWidth-13] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", body))
	}
	if len(msgs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(msgs)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("MESSAGES (%d)", len(msgs)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMetrics outputs the pipeline metrics snapshot.
func (p *Printer) PrintMetrics(m *types.PipelineMetrics) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total leads:   %d\n", m.TotalLeads))
	for _, s := range types.AllStatuses() {
		sb.WriteString(fmt.Sprintf("  %-9s %d\n", s, m.StatusCount(s)))
	}
	sb.WriteString(fmt.Sprintf("Messages:      %d\n", m.TotalMessages))
	sb.WriteString(fmt.Sprintf("Delivered:     %d sent, %d failed\n", m.MessagesSent, m.MessagesFailed))
	sb.WriteString(fmt.Sprintf("Success rate:  %.1f%%", m.SuccessRate*100))

	p.printBox("PIPELINE STATUS", sb.String())
}

// PrintDeliverySummary outputs per-lead delivery outcomes.
func (p *Printer) PrintDeliverySummary(results []types.DeliveryResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		id := r.LeadID
		if len(id) > 8 {
			id = id[:8]
		}
		sb.WriteString(fmt.Sprintf("%s [%s] %s after %d attempt(s)\n", id, r.Channel, r.Outcome, r.AttemptCount))
		if r.LastError != "" {
			errLine := r.LastError
			if len(errLine) > boxWidth-12 {
				errLine = errLine[:boxWidth-15] + "..."
			}
			sb.WriteString(fmt.Sprintf("  error: %s\n", errLine))
		}
	}
	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(results)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("DELIVERIES (%d)", len(results)), strings.TrimSuffix(sb.String(), "\n"))
}
