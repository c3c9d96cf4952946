package pipeline

import (
	"fmt"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// InvalidTransitionError reports a requested status change with no valid
// edge from the lead's current status. The lead is left unchanged.
type InvalidTransitionError struct {
	LeadID string
	From   types.Status
	To     types.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition for lead %s: %s -> %s", e.LeadID, e.From, e.To)
}

// PreconditionNotMetError reports a transition along a valid edge whose
// target-status precondition does not hold.
type PreconditionNotMetError struct {
	LeadID string
	Target types.Status
	Reason string
}

func (e *PreconditionNotMetError) Error() string {
	return fmt.Sprintf("precondition not met for lead %s -> %s: %s", e.LeadID, e.Target, e.Reason)
}

// StageFailureError reports which stage halted an orchestrated run.
type StageFailureError struct {
	Stage Stage
	Cause error
}

func (e *StageFailureError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Cause)
}

func (e *StageFailureError) Unwrap() error {
	return e.Cause
}
