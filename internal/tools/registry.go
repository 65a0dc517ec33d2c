// Package tools provides the monitoring-tool catalog the ACT phase draws on.
//
// In demo mode every tool answers with a canned payload; real integrations
// are deliberately out of scope. The registry contract stays the same either
// way, so the harness never knows which mode it is running in.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTool is returned when a requested tool is not in the catalog.
// It is fatal to the investigation that requested it.
var ErrUnknownTool = errors.New("tools: unknown tool")

// Result is one tool invocation's outcome. Payload is recorded verbatim;
// Summary is a one-line human digest for trace output.
type Result struct {
	Tool    string          `json:"tool"`
	Params  map[string]any  `json:"params,omitempty"`
	Payload json.RawMessage `json:"payload"`
	Summary string          `json:"summary"`
}

// Registry resolves tool names and executes invocations.
type Registry interface {
	// Invoke runs the named tool with the given parameters.
	// Unknown names fail with ErrUnknownTool.
	Invoke(ctx context.Context, name string, params map[string]any) (*Result, error)
	// Describe returns the tool's description, or false if not registered.
	Describe(name string) (string, bool)
	// Names returns the registered tool names in sorted order.
	Names() []string
}

// entry is one catalog row: a description plus its canned payload.
type entry struct {
	description string
	payload     json.RawMessage
	summary     string
}

// MockRegistry is the fixed demo catalog. Safe for concurrent use:
// the catalog is immutable after construction.
type MockRegistry struct {
	catalog map[string]entry
}

var _ Registry = (*MockRegistry)(nil)

// NewMockRegistry returns the registry with the four demo monitoring tools.
func NewMockRegistry() *MockRegistry {
	return &MockRegistry{catalog: demoCatalog()}
}

// Invoke implements Registry. The canned payload is returned as-is;
// params are echoed back so the ACT step can record them verbatim.
func (r *MockRegistry) Invoke(ctx context.Context, name string, params map[string]any) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := r.catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return &Result{
		Tool:    name,
		Params:  params,
		Payload: e.payload,
		Summary: e.summary,
	}, nil
}

// Describe implements Registry.
func (r *MockRegistry) Describe(name string) (string, bool) {
	e, ok := r.catalog[name]
	if !ok {
		return "", false
	}
	return e.description, true
}

// Names implements Registry.
func (r *MockRegistry) Names() []string {
	names := make([]string, 0, len(r.catalog))
	for n := range r.catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
