package responder

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider routes the personalized path through a hosted model
// behind the same contract as the heuristic engine: same inputs, same
// fixed confidence, same escalation semantics. Generic turns (partial
// knowledge) still use the deterministic templates so degraded behavior
// stays predictable.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	fallback  *HeuristicProvider
	maxTokens int
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		client:    openai.NewClient(apiKey),
		model:     openai.GPT4oMini,
		fallback:  NewHeuristicProvider(),
		maxTokens: 300,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	if req.Debtor == nil || req.Corporate == nil {
		return p.fallback.Generate(ctx, req)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildPersonalizedPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Message},
		},
		Temperature: 0.4,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("openai error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("openai returned empty completion")
	}

	return &Response{
		Content:              resp.Choices[0].Message.Content,
		Confidence:           fixedConfidence(TypePersonalized),
		Keywords:             req.Analysis.Keywords,
		Type:                 TypePersonalized,
		PersonalizationLevel: LevelUltraHigh,
	}, nil
}
