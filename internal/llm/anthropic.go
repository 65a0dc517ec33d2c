package llm

import (
	"context"
	"encoding/json"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicAdapter runs the phases against the Anthropic Messages API.
type AnthropicAdapter struct {
	client anthropic.Client
	model  anthropic.Model
}

var _ Adapter = (*AnthropicAdapter)(nil)

// NewAnthropicAdapter builds the adapter. An empty model selects the
// default.
func NewAnthropicAdapter(apiKey, model string) *AnthropicAdapter {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicAdapter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

// Provider implements Adapter.
func (a *AnthropicAdapter) Provider() string { return ProviderAnthropic }

// Think implements Adapter.
func (a *AnthropicAdapter) Think(ctx context.Context, req ThinkRequest) (*ThinkResponse, error) {
	var out ThinkResponse
	if err := a.complete(ctx, thinkPrompt(req), &out); err != nil {
		return nil, err
	}
	if len(out.Hypotheses) == 0 {
		return nil, fmt.Errorf("%w: no hypotheses", ErrMalformedResponse)
	}
	return &out, nil
}

// Observe implements Adapter.
func (a *AnthropicAdapter) Observe(ctx context.Context, req ObserveRequest) (*ObserveResponse, error) {
	var out ObserveResponse
	if err := a.complete(ctx, observePrompt(req), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Evaluate implements Adapter.
func (a *AnthropicAdapter) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error) {
	var out EvaluateResponse
	if err := a.complete(ctx, evaluatePrompt(req), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AnthropicAdapter) complete(ctx context.Context, prompt string, out any) error {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 2048,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return fmt.Errorf("llm: anthropic call: %w", err)
	}
	var text string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text = tb.Text
			break
		}
	}
	return decodeReply(text, out)
}

// decodeReply parses a model reply into the phase structure, shared by
// both API adapters.
func decodeReply(text string, out any) error {
	raw, err := extractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
