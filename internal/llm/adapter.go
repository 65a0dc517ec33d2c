// Package llm adapts the investigation phases to a language model.
//
// Three adapters share one contract: Anthropic, OpenAI, and a canned
// adapter that replays a scripted investigation. The canned adapter is
// a first-class mode, not a test double; the demo runs on it whenever
// no API key is configured.
package llm

import (
	"context"
	"errors"
	"strings"
)

// Provider codes reported by Provider(). The display package maps them
// to human-readable names.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderCanned    = "canned"
)

// ErrMalformedResponse is returned when a model reply cannot be parsed
// into the expected phase structure.
var ErrMalformedResponse = errors.New("llm: malformed model response")

// Adapter produces the three model-driven phases of an investigation.
// Implementations must be safe for concurrent use.
type Adapter interface {
	Think(ctx context.Context, req ThinkRequest) (*ThinkResponse, error)
	Observe(ctx context.Context, req ObserveRequest) (*ObserveResponse, error)
	Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error)

	// Provider returns the adapter's provider code.
	Provider() string
}

// Select picks the adapter for the given credentials. Anthropic wins
// when both keys are set; with neither, the canned adapter is used.
// scriptPath overrides the embedded canned script when non-empty.
func Select(anthropicKey, openaiKey, scriptPath string) (Adapter, error) {
	switch {
	case anthropicKey != "":
		return NewAnthropicAdapter(anthropicKey, ""), nil
	case openaiKey != "":
		return NewOpenAIAdapter(openaiKey, ""), nil
	case scriptPath != "":
		return NewCannedAdapterFromFile(scriptPath)
	default:
		return NewCannedAdapter()
	}
}

// extractJSON pulls the JSON object out of a model reply, tolerating
// markdown code fences and surrounding prose.
func extractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", ErrMalformedResponse
	}
	return s[start : end+1], nil
}
