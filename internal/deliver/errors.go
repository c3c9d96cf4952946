package deliver

import (
	"fmt"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// SendError indicates a single send attempt failed for a lead on a channel.
type SendError struct {
	LeadID  string
	Channel types.Channel
	Message string
	Cause   error
}

func (e *SendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("send to lead %s via %s failed: %s: %v", e.LeadID, e.Channel, e.Message, e.Cause)
	}
	return fmt.Sprintf("send to lead %s via %s failed: %s", e.LeadID, e.Channel, e.Message)
}

func (e *SendError) Unwrap() error { return e.Cause }

// Error wraps delivery-stage failures that are not attributable to a single
// send attempt.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("deliver: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("deliver: %s", e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }
