// Package harness drives the investigation loop: THINK forms
// hypotheses and plans tool calls, ACT executes them, OBSERVE turns
// raw output into findings, EVALUATE scores confidence and asks the
// gate what to do. The loop repeats until the gate stops asking for
// more evidence or the iteration budget runs out.
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"haci/internal/gate"
	"haci/internal/llm"
	"haci/internal/logging"
	"haci/internal/tools"
)

var (
	// ErrEmptyTicket rejects a run with nothing to investigate.
	ErrEmptyTicket = errors.New("harness: empty ticket")
	// ErrAdapter wraps model-side failures.
	ErrAdapter = errors.New("harness: adapter failure")
	// ErrIterationBudget marks an investigation that ran out of
	// iterations before the gate let it stop.
	ErrIterationBudget = errors.New("harness: iteration budget exhausted")
)

const (
	defaultMaxIterations = 5
	defaultCallTimeout   = 60 * time.Second
)

// Config assembles a Runner. Adapter and Registry are required; the
// rest default sensibly.
type Config struct {
	Adapter  llm.Adapter
	Registry tools.Registry

	// Gate maps confidence to an action. Defaults to gate.DefaultTable.
	Gate gate.Table

	// MaxIterations caps full loop passes. Defaults to 5.
	MaxIterations int
	// CallTimeout bounds each adapter and tool call. Defaults to 60s.
	CallTimeout time.Duration

	Observer StepObserver
	Logger   *slog.Logger
}

// Runner executes investigations. Safe for concurrent use; each Run
// builds its own Investigation.
type Runner struct {
	adapter  llm.Adapter
	registry tools.Registry
	gate     gate.Table
	maxIter  int
	timeout  time.Duration
	observer StepObserver
	log      *slog.Logger
}

// New validates cfg and builds a Runner.
func New(cfg Config) (*Runner, error) {
	if cfg.Adapter == nil {
		return nil, errors.New("harness: nil adapter")
	}
	if cfg.Registry == nil {
		return nil, errors.New("harness: nil registry")
	}
	g := cfg.Gate
	if len(g.Bands) == 0 {
		g = gate.DefaultTable()
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = logging.New("harness")
	}
	return &Runner{
		adapter:  cfg.Adapter,
		registry: cfg.Registry,
		gate:     g,
		maxIter:  maxIter,
		timeout:  timeout,
		observer: cfg.Observer,
		log:      log,
	}, nil
}

// Run investigates one ticket to completion. The returned
// Investigation is always non-nil once the ticket passes validation;
// on failure it carries the partial history alongside the error.
func (r *Runner) Run(ctx context.Context, ticket string) (*Investigation, error) {
	ticket = strings.TrimSpace(ticket)
	if ticket == "" {
		return nil, ErrEmptyTicket
	}

	inv := newInvestigation(ticket, r.adapter.Provider())
	r.log.Info("investigation started",
		"id", inv.ID, "provider", inv.Provider, "max_iterations", r.maxIter)

	for iter := 0; iter < r.maxIter; iter++ {
		inv.Iterations = iter + 1

		think, err := r.think(ctx, inv, iter)
		if err != nil {
			return r.fail(inv, err)
		}

		outcomes, err := r.act(ctx, inv, iter, think.ToolPlan)
		if err != nil {
			return r.fail(inv, err)
		}

		observe, err := r.observePhase(ctx, inv, iter, outcomes)
		if err != nil {
			return r.fail(inv, err)
		}
		inv.Findings = append(inv.Findings, observe.Findings...)

		eval, action, err := r.evaluate(ctx, inv, iter, think.Hypotheses)
		if err != nil {
			return r.fail(inv, err)
		}

		if action != gate.ContinueOrEscalate {
			r.complete(inv, eval, action)
			return inv, nil
		}
		r.log.Info("confidence below stop threshold, continuing",
			"id", inv.ID, "iteration", iter, "confidence", inv.Confidence)
	}

	inv.Status = StatusEscalated
	inv.Decision = gate.ContinueOrEscalate
	inv.Error = ErrIterationBudget.Error()
	inv.CompletedAt = time.Now().UTC()
	r.log.Warn("investigation escalated",
		"id", inv.ID, "iterations", inv.Iterations, "confidence", inv.Confidence)
	return inv, nil
}

func (r *Runner) think(ctx context.Context, inv *Investigation, iter int) (*llm.ThinkResponse, error) {
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	started := time.Now().UTC()
	resp, err := r.adapter.Think(cctx, llm.ThinkRequest{
		Ticket:        inv.Ticket,
		Iteration:     iter,
		Tools:         r.toolSpecs(),
		PriorFindings: inv.Findings,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: think: %v", ErrAdapter, err)
	}
	step := inv.record(Step{Iteration: iter, Phase: PhaseThink, StartedAt: started, Think: resp})
	r.emit(inv, step)
	return resp, nil
}

func (r *Runner) act(ctx context.Context, inv *Investigation, iter int, plan []llm.ToolCall) ([]llm.ToolOutcome, error) {
	started := time.Now().UTC()
	var invocations []ToolInvocation
	var outcomes []llm.ToolOutcome

	for _, call := range plan {
		cctx, cancel := context.WithTimeout(ctx, r.timeout)
		res, err := r.registry.Invoke(cctx, call.Tool, call.Params)
		cancel()
		if err != nil {
			invocations = append(invocations, ToolInvocation{
				Tool: call.Tool, Params: call.Params, Error: err.Error(),
			})
			step := inv.record(Step{
				Iteration: iter, Phase: PhaseAct, StartedAt: started,
				Invocations: invocations, Error: err.Error(),
			})
			r.emit(inv, step)
			return nil, fmt.Errorf("act: tool %q: %w", call.Tool, err)
		}
		invocations = append(invocations, ToolInvocation{
			Tool: res.Tool, Params: res.Params, Summary: res.Summary, Payload: res.Payload,
		})
		outcomes = append(outcomes, llm.ToolOutcome{
			Tool: res.Tool, Summary: res.Summary, Payload: string(res.Payload),
		})
	}

	step := inv.record(Step{Iteration: iter, Phase: PhaseAct, StartedAt: started, Invocations: invocations})
	r.emit(inv, step)
	return outcomes, nil
}

func (r *Runner) observePhase(ctx context.Context, inv *Investigation, iter int, outcomes []llm.ToolOutcome) (*llm.ObserveResponse, error) {
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	started := time.Now().UTC()
	resp, err := r.adapter.Observe(cctx, llm.ObserveRequest{
		Ticket:    inv.Ticket,
		Iteration: iter,
		Outcomes:  outcomes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: observe: %v", ErrAdapter, err)
	}
	step := inv.record(Step{Iteration: iter, Phase: PhaseObserve, StartedAt: started, Observe: resp})
	r.emit(inv, step)
	return resp, nil
}

func (r *Runner) evaluate(ctx context.Context, inv *Investigation, iter int, hypotheses []llm.Hypothesis) (*llm.EvaluateResponse, gate.Action, error) {
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	started := time.Now().UTC()
	resp, err := r.adapter.Evaluate(cctx, llm.EvaluateRequest{
		Ticket:     inv.Ticket,
		Iteration:  iter,
		Hypotheses: hypotheses,
		Findings:   inv.Findings,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: evaluate: %v", ErrAdapter, err)
	}

	confidence := aggregateConfidence(resp, inv.Findings)
	action, err := r.gate.Decide(confidence)
	if err != nil {
		return nil, "", fmt.Errorf("evaluate: %w", err)
	}
	inv.Confidence = confidence

	step := inv.record(Step{
		Iteration: iter, Phase: PhaseEvaluate, StartedAt: started,
		Evaluate: resp, Decision: action,
	})
	r.emit(inv, step)
	return resp, action, nil
}

func (r *Runner) complete(inv *Investigation, eval *llm.EvaluateResponse, action gate.Action) {
	inv.Status = StatusCompleted
	inv.Decision = action
	inv.RootCause = eval.RootCause
	inv.Resolution = eval.Resolution
	inv.Alternatives = eval.Alternatives
	inv.CompletedAt = time.Now().UTC()
	r.log.Info("investigation completed",
		"id", inv.ID, "iterations", inv.Iterations,
		"confidence", inv.Confidence, "decision", string(action))
}

func (r *Runner) fail(inv *Investigation, err error) (*Investigation, error) {
	inv.Status = StatusFailed
	inv.Error = err.Error()
	inv.CompletedAt = time.Now().UTC()
	r.log.Error("investigation failed", "id", inv.ID, "error", err)
	return inv, err
}

func (r *Runner) emit(inv *Investigation, step Step) {
	if r.observer != nil {
		r.observer.OnStep(inv, step)
	}
}

func (r *Runner) toolSpecs() []llm.ToolSpec {
	names := r.registry.Names()
	specs := make([]llm.ToolSpec, 0, len(names))
	for _, n := range names {
		desc, _ := r.registry.Describe(n)
		specs = append(specs, llm.ToolSpec{Name: n, Description: desc})
	}
	return specs
}

// aggregateConfidence prefers the evaluator's own confidence. A value
// outside [0,100] falls back to the strongest per-finding confidence,
// clamped to the scale.
func aggregateConfidence(eval *llm.EvaluateResponse, findings []llm.Finding) float64 {
	c := eval.Confidence
	if c >= 0 && c <= 100 {
		return c
	}
	var best float64
	for _, f := range findings {
		if f.Confidence > best {
			best = f.Confidence
		}
	}
	if best > 100 {
		best = 100
	}
	return best
}
