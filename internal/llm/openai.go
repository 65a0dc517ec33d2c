package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIAdapter runs the phases against the OpenAI chat completions API.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

var _ Adapter = (*OpenAIAdapter)(nil)

// NewOpenAIAdapter builds the adapter. An empty model selects the
// default.
func NewOpenAIAdapter(apiKey, model string) *OpenAIAdapter {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIAdapter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Provider implements Adapter.
func (a *OpenAIAdapter) Provider() string { return ProviderOpenAI }

// Think implements Adapter.
func (a *OpenAIAdapter) Think(ctx context.Context, req ThinkRequest) (*ThinkResponse, error) {
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
func (a *OpenAIAdapter) Observe(ctx context.Context, req ObserveRequest) (*ObserveResponse, error) {
	var out ObserveResponse
	if err := a.complete(ctx, observePrompt(req), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Evaluate implements Adapter.
func (a *OpenAIAdapter) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error) {
	var out EvaluateResponse
	if err := a.complete(ctx, evaluatePrompt(req), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *OpenAIAdapter) complete(ctx context.Context, prompt string, out any) error {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return fmt.Errorf("llm: openai call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("%w: empty choices", ErrMalformedResponse)
	}
	return decodeReply(resp.Choices[0].Message.Content, out)
}
