// Package trace renders an investigation to a terminal as it runs.
// It implements harness.StepObserver so the runner stays unaware of
// presentation.
package trace

import (
	"fmt"
	"io"
	"strings"

	"haci/internal/display"
	"haci/internal/format"
	"haci/internal/gate"
	"haci/internal/harness"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithVerbose includes tool payload summaries and reasoning lines.
func WithVerbose(v bool) Option {
	return func(r *Renderer) { r.verbose = v }
}

// WithGate renders the decision ladder from the given table instead of
// the default one.
func WithGate(t gate.Table) Option {
	return func(r *Renderer) { r.gate = t }
}

// Renderer writes a live narration of each step. Not safe for
// concurrent investigations; give each run its own Renderer.
type Renderer struct {
	w       io.Writer
	verbose bool
	gate    gate.Table
}

var _ harness.StepObserver = (*Renderer)(nil)

// New builds a Renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, gate: gate.DefaultTable()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Banner prints the run header before the first step.
func (r *Renderer) Banner(ticket, provider string) {
	line := strings.Repeat("=", 64)
	fmt.Fprintln(r.w, line)
	fmt.Fprintln(r.w, "  Incident Investigation")
	fmt.Fprintf(r.w, "  Model: %s\n", display.Provider(provider))
	fmt.Fprintln(r.w, line)
	fmt.Fprintf(r.w, "Ticket: %s\n", ticket)
}

// OnStep implements harness.StepObserver.
func (r *Renderer) OnStep(inv *harness.Investigation, step harness.Step) {
	fmt.Fprintf(r.w, "\n[iteration %d] %s\n", step.Iteration+1, display.PhaseTagline(step.Phase))
	switch step.Phase {
	case harness.PhaseThink:
		r.renderThink(step)
	case harness.PhaseAct:
		r.renderAct(step)
	case harness.PhaseObserve:
		r.renderObserve(step)
	case harness.PhaseEvaluate:
		r.renderEvaluate(inv, step)
	}
}

func (r *Renderer) renderThink(step harness.Step) {
	if step.Think == nil {
		return
	}
	for i, h := range step.Think.Hypotheses {
		fmt.Fprintf(r.w, "  %d. %s (prior %.0f)\n", i+1, h.Statement, h.Confidence)
	}
	if r.verbose && step.Think.Reasoning != "" {
		fmt.Fprintf(r.w, "  reasoning: %s\n", step.Think.Reasoning)
	}
	if len(step.Think.ToolPlan) > 0 {
		calls := make([]string, len(step.Think.ToolPlan))
		for i, c := range step.Think.ToolPlan {
			calls[i] = c.Tool
		}
		fmt.Fprintf(r.w, "  next: %s\n", strings.Join(calls, ", "))
	}
}

func (r *Renderer) renderAct(step harness.Step) {
	for _, ti := range step.Invocations {
		if ti.Error != "" {
			fmt.Fprintf(r.w, "  %s FAILED: %s\n", ti.Tool, ti.Error)
			continue
		}
		fmt.Fprintf(r.w, "  %s: %s\n", ti.Tool, ti.Summary)
	}
}

func (r *Renderer) renderObserve(step harness.Step) {
	if step.Observe == nil {
		return
	}
	for _, f := range step.Observe.Findings {
		fmt.Fprintf(r.w, "  %s %s (%.0f)\n", display.SeverityMarker(f.Severity), f.Statement, f.Confidence)
	}
	if r.verbose {
		for _, p := range step.Observe.Patterns {
			fmt.Fprintf(r.w, "  pattern: %s\n", p)
		}
		for _, c := range step.Observe.Correlations {
			fmt.Fprintf(r.w, "  correlation: %s\n", c)
		}
	}
}

func (r *Renderer) renderEvaluate(inv *harness.Investigation, step harness.Step) {
	if step.Evaluate == nil {
		return
	}
	fmt.Fprintf(r.w, "  confidence: %s %.0f/100\n", confidenceBar(inv.Confidence), inv.Confidence)
	r.renderLadder(inv.Confidence)
	fmt.Fprintf(r.w, "  decision: %s (%s)\n",
		display.ActionName(string(step.Decision)),
		display.ActionDescription(string(step.Decision)))
}

// renderLadder prints the gate bands, marking the one the confidence
// landed in.
func (r *Renderer) renderLadder(confidence float64) {
	bands := append([]gate.Band(nil), r.gate.Bands...)
	for i := len(bands) - 1; i >= 0; i-- {
		b := bands[i]
		marker := "   "
		if confidence >= b.Low && (confidence < b.High || b.High == 100 && confidence == 100) {
			marker = ">> "
		}
		fmt.Fprintf(r.w, "  %s%3.0f-%3.0f  %s\n", marker, b.Low, b.High, display.ActionName(string(b.Action)))
	}
}

// Summary prints the final report after the run ends.
func (r *Renderer) Summary(inv *harness.Investigation) {
	fmt.Fprintf(r.w, "\n%s\n", strings.Repeat("=", 64))
	pairs := [][2]string{
		{"Status", display.Status(inv.Status)},
		{"Iterations", fmt.Sprintf("%d", inv.Iterations)},
		{"Steps", fmt.Sprintf("%d", inv.Steps)},
		{"Confidence", fmt.Sprintf("%.0f/100", inv.Confidence)},
	}
	if inv.Decision != "" {
		pairs = append(pairs, [2]string{"Decision", display.ActionName(string(inv.Decision))})
	}
	if inv.RootCause != "" {
		pairs = append(pairs, [2]string{"Root cause", inv.RootCause})
	}
	if inv.Error != "" {
		pairs = append(pairs, [2]string{"Error", inv.Error})
	}
	fmt.Fprintln(r.w, format.KeyValue(format.ASCII, pairs...))

	if inv.Resolution != nil {
		fmt.Fprintf(r.w, "\nRecommended action: %s\n", inv.Resolution.ImmediateAction)
		if inv.Resolution.Command != "" {
			fmt.Fprintf(r.w, "  $ %s\n", inv.Resolution.Command)
		}
		if inv.Resolution.ExpectedRecoveryTime != "" {
			fmt.Fprintf(r.w, "  recovery: %s (risk: %s)\n",
				inv.Resolution.ExpectedRecoveryTime, inv.Resolution.RiskLevel)
		}
		for _, alt := range inv.Alternatives {
			fmt.Fprintf(r.w, "  alternative: %s (risk: %s)\n", alt.Action, alt.RiskLevel)
		}
	}
}

// confidenceBar renders a ten-cell bar for a [0,100] confidence.
func confidenceBar(c float64) string {
	if c < 0 {
		c = 0
	}
	if c > 100 {
		c = 100
	}
	filled := int(c) / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}
