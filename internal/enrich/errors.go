package enrich

import "fmt"

// AlreadyEnrichedError reports an enrichment request for a lead that has
// already been enriched. Enrichment happens at most once per lead.
type AlreadyEnrichedError struct {
	LeadID string
}

func (e *AlreadyEnrichedError) Error() string {
	return fmt.Sprintf("lead already enriched: %s", e.LeadID)
}

// Error represents a general enrichment failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enrichment error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("enrichment error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
