package llm

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed script.yaml
var defaultScript []byte

// Script is a full scripted investigation: fixed THINK, OBSERVE, and
// EVALUATE responses, with tool plans indexed by iteration.
type Script struct {
	Think struct {
		Reasoning  string       `yaml:"reasoning"`
		Hypotheses []Hypothesis `yaml:"hypotheses"`
		Plans      []struct {
			Calls []ToolCall `yaml:"calls"`
		} `yaml:"plans"`
		FallbackCalls []ToolCall `yaml:"fallback_calls"`
	} `yaml:"think"`
	Observe  ObserveResponse  `yaml:"observe"`
	Evaluate EvaluateResponse `yaml:"evaluate"`
}

// CannedAdapter replays a Script. It never touches the network, makes
// no randomness, and returns byte-identical answers for identical
// requests, which keeps the no-API-key demo reproducible.
type CannedAdapter struct {
	script Script
}

var _ Adapter = (*CannedAdapter)(nil)

// NewCannedAdapter returns the adapter with the embedded demo script.
func NewCannedAdapter() (*CannedAdapter, error) {
	return newCanned(defaultScript)
}

// NewCannedAdapterFromFile loads an alternate script, e.g. a
// never-converging arc for exercising the iteration cap.
func NewCannedAdapterFromFile(path string) (*CannedAdapter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("llm: read canned script: %w", err)
	}
	return newCanned(raw)
}

func newCanned(raw []byte) (*CannedAdapter, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("llm: parse canned script: %w", err)
	}
	if len(s.Think.Hypotheses) == 0 {
		return nil, fmt.Errorf("llm: canned script has no hypotheses")
	}
	return &CannedAdapter{script: s}, nil
}

// Provider implements Adapter.
func (a *CannedAdapter) Provider() string { return ProviderCanned }

// Think implements Adapter. The tool plan is chosen by iteration:
// scripted plans first, then the fallback plan for every iteration
// past the end of the script.
func (a *CannedAdapter) Think(ctx context.Context, req ThinkRequest) (*ThinkResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan := a.script.Think.FallbackCalls
	if req.Iteration >= 0 && req.Iteration < len(a.script.Think.Plans) {
		plan = a.script.Think.Plans[req.Iteration].Calls
	}
	return &ThinkResponse{
		Hypotheses: a.script.Think.Hypotheses,
		ToolPlan:   plan,
		Reasoning:  a.script.Think.Reasoning,
	}, nil
}

// Observe implements Adapter.
func (a *CannedAdapter) Observe(ctx context.Context, req ObserveRequest) (*ObserveResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp := a.script.Observe
	return &resp, nil
}

// Evaluate implements Adapter.
func (a *CannedAdapter) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp := a.script.Evaluate
	return &resp, nil
}
