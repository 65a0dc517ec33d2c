package harness

import (
	"context"
	"errors"
	"testing"

	"haci/internal/gate"
	"haci/internal/llm"
	"haci/internal/tools"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// stubAdapter lets each test script the three phases directly.
type stubAdapter struct {
	think    func(req llm.ThinkRequest) (*llm.ThinkResponse, error)
	observe  func(req llm.ObserveRequest) (*llm.ObserveResponse, error)
	evaluate func(req llm.EvaluateRequest) (*llm.EvaluateResponse, error)
}

func (s *stubAdapter) Provider() string { return "canned" }

func (s *stubAdapter) Think(_ context.Context, req llm.ThinkRequest) (*llm.ThinkResponse, error) {
	return s.think(req)
}

func (s *stubAdapter) Observe(_ context.Context, req llm.ObserveRequest) (*llm.ObserveResponse, error) {
	return s.observe(req)
}

func (s *stubAdapter) Evaluate(_ context.Context, req llm.EvaluateRequest) (*llm.EvaluateResponse, error) {
	return s.evaluate(req)
}

func newCannedRunner(t *testing.T, obs StepObserver) *Runner {
	t.Helper()
	adapter, err := llm.NewCannedAdapter()
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(Config{
		Adapter:  adapter,
		Registry: tools.NewMockRegistry(),
		Observer: obs,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRun_GatewayIncident(t *testing.T) {
	r := newCannedRunner(t, nil)
	inv, err := r.Run(context.Background(), "HTTP 502 errors spiking on api-gateway since 14:21")
	if err != nil {
		t.Fatal(err)
	}

	if inv.Status != StatusCompleted {
		t.Errorf("status = %s, want completed", inv.Status)
	}
	if inv.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", inv.Iterations)
	}
	if inv.Confidence != 94 {
		t.Errorf("confidence = %v, want 94", inv.Confidence)
	}
	if inv.Decision != gate.ExecuteWithReview {
		t.Errorf("decision = %s, want execute_with_review", inv.Decision)
	}
	if inv.RootCause == "" || inv.Resolution == nil {
		t.Error("expected root cause and resolution on completion")
	}
	if len(inv.Findings) == 0 {
		t.Error("expected findings")
	}

	wantPhases := []string{PhaseThink, PhaseAct, PhaseObserve, PhaseEvaluate}
	if len(inv.History) != len(wantPhases) {
		t.Fatalf("history length = %d, want %d", len(inv.History), len(wantPhases))
	}
	for i, step := range inv.History {
		if step.Phase != wantPhases[i] {
			t.Errorf("step %d phase = %s, want %s", i, step.Phase, wantPhases[i])
		}
		if step.Index != i {
			t.Errorf("step %d index = %d", i, step.Index)
		}
	}

	think := inv.History[0]
	if think.Think == nil || len(think.Think.Hypotheses) == 0 {
		t.Error("think step should carry hypotheses")
	}
	act := inv.History[1]
	if len(act.Invocations) == 0 {
		t.Error("act step should carry tool invocations")
	}
	eval := inv.History[3]
	if eval.Decision != gate.ExecuteWithReview {
		t.Errorf("evaluate step decision = %s", eval.Decision)
	}
}

func TestRun_Deterministic(t *testing.T) {
	ticket := "HTTP 502 errors spiking on api-gateway"
	a, err := newCannedRunner(t, nil).Run(context.Background(), ticket)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newCannedRunner(t, nil).Run(context.Background(), ticket)
	if err != nil {
		t.Fatal(err)
	}
	ignore := cmpopts.IgnoreFields(Investigation{}, "ID", "StartedAt", "CompletedAt")
	ignoreStep := cmpopts.IgnoreFields(Step{}, "StartedAt", "CompletedAt")
	if diff := cmp.Diff(a, b, ignore, ignoreStep); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
}

func TestRun_EmptyTicket(t *testing.T) {
	r := newCannedRunner(t, nil)
	if _, err := r.Run(context.Background(), "   "); !errors.Is(err, ErrEmptyTicket) {
		t.Fatalf("error = %v, want ErrEmptyTicket", err)
	}
}

func TestRun_ObserverSeesEveryStep(t *testing.T) {
	var phases []string
	obs := StepObserverFunc(func(inv *Investigation, step Step) {
		phases = append(phases, step.Phase)
	})
	r := newCannedRunner(t, obs)
	if _, err := r.Run(context.Background(), "502s on api-gateway"); err != nil {
		t.Fatal(err)
	}
	want := []string{PhaseThink, PhaseAct, PhaseObserve, PhaseEvaluate}
	if diff := cmp.Diff(want, phases); diff != "" {
		t.Errorf("observed phases (-want +got):\n%s", diff)
	}
}

func TestRun_UnknownToolFailsBeforeEvaluate(t *testing.T) {
	adapter := &stubAdapter{
		think: func(req llm.ThinkRequest) (*llm.ThinkResponse, error) {
			return &llm.ThinkResponse{
				Hypotheses: []llm.Hypothesis{{Statement: "h", Confidence: 50}},
				ToolPlan:   []llm.ToolCall{{Tool: "slack_search"}},
			}, nil
		},
		observe: func(req llm.ObserveRequest) (*llm.ObserveResponse, error) {
			t.Error("observe should not run after a failed act")
			return nil, nil
		},
		evaluate: func(req llm.EvaluateRequest) (*llm.EvaluateResponse, error) {
			t.Error("evaluate should not run after a failed act")
			return nil, nil
		},
	}
	r, err := New(Config{Adapter: adapter, Registry: tools.NewMockRegistry()})
	if err != nil {
		t.Fatal(err)
	}

	inv, err := r.Run(context.Background(), "ticket")
	if !errors.Is(err, tools.ErrUnknownTool) {
		t.Fatalf("error = %v, want ErrUnknownTool", err)
	}
	if inv.Status != StatusFailed {
		t.Errorf("status = %s, want failed", inv.Status)
	}
	if inv.LastEvaluation() != nil {
		t.Error("failed run must not contain an evaluate step")
	}
	last := inv.History[len(inv.History)-1]
	if last.Phase != PhaseAct || last.Error == "" {
		t.Errorf("last step = %+v, want act step with error", last)
	}
}

func TestRun_IterationBudgetEscalates(t *testing.T) {
	adapter := &stubAdapter{
		think: func(req llm.ThinkRequest) (*llm.ThinkResponse, error) {
			return &llm.ThinkResponse{
				Hypotheses: []llm.Hypothesis{{Statement: "h", Confidence: 30}},
				ToolPlan:   []llm.ToolCall{{Tool: tools.PrometheusMetrics}},
			}, nil
		},
		observe: func(req llm.ObserveRequest) (*llm.ObserveResponse, error) {
			return &llm.ObserveResponse{
				Findings: []llm.Finding{{Statement: "inconclusive", Severity: "low", Confidence: 20}},
			}, nil
		},
		evaluate: func(req llm.EvaluateRequest) (*llm.EvaluateResponse, error) {
			return &llm.EvaluateResponse{RootCauseIdentified: false, Confidence: 40}, nil
		},
	}
	r, err := New(Config{
		Adapter:       adapter,
		Registry:      tools.NewMockRegistry(),
		MaxIterations: 3,
	})
	if err != nil {
		t.Fatal(err)
	}

	inv, err := r.Run(context.Background(), "mystery outage")
	if err != nil {
		t.Fatalf("budget exhaustion should not be an error: %v", err)
	}
	if inv.Status != StatusEscalated {
		t.Errorf("status = %s, want escalated", inv.Status)
	}
	if inv.Iterations != 3 {
		t.Errorf("iterations = %d, want 3", inv.Iterations)
	}
	if inv.Decision != gate.ContinueOrEscalate {
		t.Errorf("decision = %s", inv.Decision)
	}
	if inv.Error == "" {
		t.Error("escalated run should record the budget error")
	}
	if len(inv.History) != 3*4 {
		t.Errorf("history length = %d, want 12", len(inv.History))
	}
	if len(inv.Findings) != 3 {
		t.Errorf("findings accumulate per iteration, got %d", len(inv.Findings))
	}
}

func TestRun_AdapterFailure(t *testing.T) {
	adapter := &stubAdapter{
		think: func(req llm.ThinkRequest) (*llm.ThinkResponse, error) {
			return nil, errors.New("model unavailable")
		},
	}
	r, err := New(Config{Adapter: adapter, Registry: tools.NewMockRegistry()})
	if err != nil {
		t.Fatal(err)
	}
	inv, err := r.Run(context.Background(), "ticket")
	if !errors.Is(err, ErrAdapter) {
		t.Fatalf("error = %v, want ErrAdapter", err)
	}
	if inv.Status != StatusFailed || inv.Error == "" {
		t.Errorf("inv = %+v", inv)
	}
}

func TestNew_Validation(t *testing.T) {
	registry := tools.NewMockRegistry()
	adapter, err := llm.NewCannedAdapter()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(Config{Registry: registry}); err == nil {
		t.Error("nil adapter should be rejected")
	}
	if _, err := New(Config{Adapter: adapter}); err == nil {
		t.Error("nil registry should be rejected")
	}
	bad := gate.Table{Bands: []gate.Band{{Low: 10, High: 100, Action: gate.AutoExecute}}}
	if _, err := New(Config{Adapter: adapter, Registry: registry, Gate: bad}); err == nil {
		t.Error("invalid gate table should be rejected")
	}
}

func TestAggregateConfidence(t *testing.T) {
	findings := []llm.Finding{{Confidence: 60}, {Confidence: 85}}
	if got := aggregateConfidence(&llm.EvaluateResponse{Confidence: 94}, findings); got != 94 {
		t.Errorf("in-range evaluator confidence wins, got %v", got)
	}
	if got := aggregateConfidence(&llm.EvaluateResponse{Confidence: -5}, findings); got != 85 {
		t.Errorf("fallback to strongest finding, got %v", got)
	}
	if got := aggregateConfidence(&llm.EvaluateResponse{Confidence: 120}, []llm.Finding{{Confidence: 150}}); got != 100 {
		t.Errorf("fallback clamps to 100, got %v", got)
	}
}
