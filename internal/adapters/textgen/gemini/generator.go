// Package gemini renders replies through the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/sparky/internal/adapters/textgen"
	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

type Generator struct {
	client      *genai.Client
	model       string
	temperature float32
}

var _ ports.TextGenerator = (*Generator)(nil)

func NewGenerator(ctx context.Context, opts Options) (*Generator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Generator{client: client, model: opts.Model, temperature: opts.Temperature}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	system, contents := geminiContents(textgen.Conversation(prompt))

	config := &genai.GenerateContentConfig{SystemInstruction: system}
	if g.temperature > 0 {
		config.Temperature = genai.Ptr(g.temperature)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	return resp.Text(), nil
}

func geminiContents(messages []textgen.Message) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	contents := make([]*genai.Content, 0, len(messages))
	for _, message := range messages {
		switch message.Role {
		case textgen.RoleSystem:
			system = genai.NewContentFromText(message.Content, genai.RoleUser)
		case textgen.RoleTutor:
			contents = append(contents, genai.NewContentFromText(message.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(message.Content, genai.RoleUser))
		}
	}
	return system, contents
}
