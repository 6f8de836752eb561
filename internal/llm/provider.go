package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface needed by core logic to ask a model for a
// single text completion. It is deliberately provider-neutral so tests can
// substitute a fake and so Gemini and OpenAI-compatible backends interchange.
type Client interface {
	Generate(ctx context.Context, model string, prompt string) (string, error)
}

// ErrEmptyCompletion indicates the backend answered without usable text.
var ErrEmptyCompletion = errors.New("model returned no text")

// OpenAIProvider adapts an OpenAI-compatible chat backend to Client. The base
// URL override allows pointing at local or alternative servers.
type OpenAIProvider struct {
	Inner *openai.Client
}

// NewOpenAI builds a provider for the given key and optional base URL.
func NewOpenAI(apiKey, baseURL string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	resp, err := p.Inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		N:           1,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
