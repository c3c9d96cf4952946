package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// Stage identifies a step of the orchestrated pipeline.
type Stage string

const (
	StageGenerate Stage = "generate"
	StageEnrich   Stage = "enrich"
	StageMessage  Stage = "message"
	StageSend     Stage = "send"
	StageDone     Stage = "done"
	StageError    Stage = "error"
)

// StageFunc executes one pipeline stage against the shared store.
type StageFunc func(ctx context.Context) error

// Stages binds the four stage implementations the agent sequences.
type Stages struct {
	Generate StageFunc
	Enrich   StageFunc
	Message  StageFunc
	Send     StageFunc
}

// RunReport summarizes an orchestrated run.
type RunReport struct {
	Stage        Stage                `json:"stage"`
	StagesRun    []Stage              `json:"stages_run"`
	Distribution map[types.Status]int `json:"distribution"`
	LastError    string               `json:"last_error,omitempty"`
}

// Agent sequences the pipeline stages. Which stage runs next is a pure
// function of the current status distribution plus which stages have
// already run this session, so a restarted agent picks up where the
// pipeline left off.
type Agent struct {
	sm     *StateMachine
	stages Stages
	ran    map[Stage]bool

	// MaxIterations bounds the decision loop.
	MaxIterations int
}

// NewAgent creates an agent over the given state machine and stages.
func NewAgent(sm *StateMachine, stages Stages) *Agent {
	return &Agent{
		sm:            sm,
		stages:        stages,
		ran:           make(map[Stage]bool),
		MaxIterations: 10,
	}
}

// NextStage decides the next stage from a status distribution. It never
// inspects anything but the distribution and the session's run history.
func (a *Agent) NextStage(dist map[types.Status]int) Stage {
	total := 0
	for _, n := range dist {
		total += n
	}

	switch {
	case total == 0 && !a.ran[StageGenerate]:
		return StageGenerate
	case dist[types.StatusNew] > 0:
		return StageEnrich
	case dist[types.StatusEnriched] > 0:
		return StageMessage
	case dist[types.StatusMessaged] > 0:
		return StageSend
	}
	return StageDone
}

// Run drives stages until the pipeline completes or a stage fails. A stage
// failure halts the run; remaining stages are not attempted.
func (a *Agent) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{Stage: StageDone}

	for i := 0; i < a.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			report.Stage = StageError
			report.LastError = err.Error()
			return report, err
		}

		dist, err := a.sm.Distribution(ctx)
		if err != nil {
			report.Stage = StageError
			report.LastError = err.Error()
			return report, fmt.Errorf("failed to read distribution: %w", err)
		}
		report.Distribution = dist

		next := a.NextStage(dist)
		if next == StageDone {
			report.Stage = StageDone
			return report, nil
		}

		fn := a.stageFunc(next)
		if fn == nil {
			err := fmt.Errorf("no implementation bound for stage %s", next)
			report.Stage = StageError
			report.LastError = err.Error()
			return report, err
		}

		fmt.Printf("Stage %d: %s\n", len(report.StagesRun)+1, next)
		if err := fn(ctx); err != nil {
			report.Stage = StageError
			report.StagesRun = append(report.StagesRun, next)
			report.LastError = err.Error()
			if dist, derr := a.sm.Distribution(ctx); derr == nil {
				report.Distribution = dist
			}
			return report, &StageFailureError{Stage: next, Cause: err}
		}

		a.ran[next] = true
		report.StagesRun = append(report.StagesRun, next)
	}

	dist, err := a.sm.Distribution(ctx)
	if err == nil {
		report.Distribution = dist
	}
	return report, fmt.Errorf("pipeline did not settle within %d iterations", a.MaxIterations)
}

func (a *Agent) stageFunc(s Stage) StageFunc {
	switch s {
	case StageGenerate:
		return a.stages.Generate
	case StageEnrich:
		return a.stages.Enrich
	case StageMessage:
		return a.stages.Message
	case StageSend:
		return a.stages.Send
	}
	return nil
}
