package harness

import (
	"encoding/json"
	"time"

	"haci/internal/gate"
	"haci/internal/llm"

	"github.com/google/uuid"
)

// Phase tags for investigation steps.
const (
	PhaseThink    = "think"
	PhaseAct      = "act"
	PhaseObserve  = "observe"
	PhaseEvaluate = "evaluate"
)

// Investigation statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusEscalated = "escalated"
)

// ToolInvocation records one executed tool call inside an ACT step.
type ToolInvocation struct {
	Tool    string          `json:"tool"`
	Params  map[string]any  `json:"params,omitempty"`
	Summary string          `json:"summary,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Step is one phase execution. Exactly one of the phase payloads is
// set, matching Phase. Steps are append-only: once recorded on an
// Investigation they are never mutated or removed.
type Step struct {
	Index       int       `json:"index"`
	Iteration   int       `json:"iteration"`
	Phase       string    `json:"phase"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	Think       *llm.ThinkResponse    `json:"think,omitempty"`
	Invocations []ToolInvocation      `json:"invocations,omitempty"`
	Observe     *llm.ObserveResponse  `json:"observe,omitempty"`
	Evaluate    *llm.EvaluateResponse `json:"evaluate,omitempty"`

	// Decision is set on EVALUATE steps only.
	Decision gate.Action `json:"decision,omitempty"`

	Error string `json:"error,omitempty"`
}

// Investigation is the full record of one harness run. Steps and
// Findings only ever grow; the summary fields are filled in when the
// run finishes.
type Investigation struct {
	ID       string `json:"id"`
	Ticket   string `json:"ticket"`
	Provider string `json:"provider"`
	Status   string `json:"status"`

	Steps      int    `json:"steps"`
	Iterations int    `json:"iterations"`
	History    []Step `json:"history"`

	Findings []llm.Finding `json:"findings,omitempty"`

	Confidence   float64           `json:"confidence"`
	Decision     gate.Action       `json:"decision,omitempty"`
	RootCause    string            `json:"root_cause,omitempty"`
	Resolution   *llm.Resolution   `json:"resolution,omitempty"`
	Alternatives []llm.Alternative `json:"alternatives,omitempty"`

	Error string `json:"error,omitempty"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

func newInvestigation(ticket, provider string) *Investigation {
	return &Investigation{
		ID:        uuid.NewString(),
		Ticket:    ticket,
		Provider:  provider,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}
}

// record appends a completed step and returns it.
func (inv *Investigation) record(step Step) Step {
	step.Index = len(inv.History)
	step.CompletedAt = time.Now().UTC()
	inv.History = append(inv.History, step)
	inv.Steps = len(inv.History)
	return step
}

// LastEvaluation returns the most recent EVALUATE step, or nil.
func (inv *Investigation) LastEvaluation() *Step {
	for i := len(inv.History) - 1; i >= 0; i-- {
		if inv.History[i].Phase == PhaseEvaluate {
			return &inv.History[i]
		}
	}
	return nil
}
