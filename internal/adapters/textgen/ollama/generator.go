// Package ollama renders replies with a local Ollama model through langchaingo.
package ollama

import (
	"context"
	"fmt"

	"github.com/bnema/sparky/internal/adapters/textgen"
	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	DefaultModel     = "qwen2.5:3b"
	DefaultServerURL = "http://localhost:11434"
)

type Options struct {
	Model       string
	ServerURL   string
	Temperature float64
}

type Generator struct {
	llm         llms.Model
	temperature float64
}

var _ ports.TextGenerator = (*Generator)(nil)

func NewGenerator(opts Options) (*Generator, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.ServerURL == "" {
		opts.ServerURL = DefaultServerURL
	}

	llm, err := ollama.New(ollama.WithModel(opts.Model), ollama.WithServerURL(opts.ServerURL))
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	return &Generator{llm: llm, temperature: opts.Temperature}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	var options []llms.CallOption
	if g.temperature > 0 {
		options = append(options, llms.WithTemperature(g.temperature))
	}

	resp, err := g.llm.GenerateContent(ctx, messageContents(textgen.Conversation(prompt)), options...)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ollama returned no choices")
	}

	return resp.Choices[0].Content, nil
}

func messageContents(messages []textgen.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, message := range messages {
		role := llms.ChatMessageTypeHuman
		switch message.Role {
		case textgen.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case textgen.RoleTutor:
			role = llms.ChatMessageTypeAI
		}
		out = append(out, llms.TextParts(role, message.Content))
	}
	return out
}
