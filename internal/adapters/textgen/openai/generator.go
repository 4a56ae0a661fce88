// Package openai renders replies through the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/sparky/internal/adapters/textgen"
	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
	goopenai "github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4o-mini"

type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
}

type Generator struct {
	client      *goopenai.Client
	model       string
	temperature float32
	maxTokens   int
}

var _ ports.TextGenerator = (*Generator)(nil)

func NewGenerator(opts Options) (*Generator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	cfg := goopenai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &Generator{
		client:      goopenai.NewClientWithConfig(cfg),
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    chatMessages(textgen.Conversation(prompt)),
		Temperature: g.temperature,
	}
	if g.maxTokens > 0 {
		req.MaxCompletionTokens = g.maxTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func chatMessages(messages []textgen.Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, message := range messages {
		role := goopenai.ChatMessageRoleUser
		switch message.Role {
		case textgen.RoleSystem:
			role = goopenai.ChatMessageRoleSystem
		case textgen.RoleTutor:
			role = goopenai.ChatMessageRoleAssistant
		}
		out = append(out, goopenai.ChatCompletionMessage{Role: role, Content: message.Content})
	}
	return out
}
