// Package openai classifies learner emotion with a JSON-mode chat completion.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
	goopenai "github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4o-mini"

type Options struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Classifier struct {
	client *goopenai.Client
	model  string
	system string
}

var _ ports.EmotionClassifier = (*Classifier)(nil)

func NewClassifier(opts Options) (*Classifier, error) {
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

	return &Classifier{
		client: goopenai.NewClientWithConfig(cfg),
		model:  opts.Model,
		system: systemPrompt(),
	}, nil
}

func systemPrompt() string {
	labels := make([]string, 0, len(domain.EmotionLabels))
	for _, label := range domain.EmotionLabels {
		labels = append(labels, string(label))
	}
	return fmt.Sprintf(`You read short messages from young children learning Mandarin.
Classify the child's emotion as exactly one of: %s.
Answer with a JSON object {"label": "<label>", "confidence": <number between 0 and 1>} and nothing else.`,
		strings.Join(labels, ", "))
}

type verdict struct {
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence"`
}

func (c *Classifier) Classify(ctx context.Context, utterance string) (domain.EmotionReading, error) {
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: c.system},
			{Role: goopenai.ChatMessageRoleUser, Content: utterance},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return domain.EmotionReading{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.EmotionReading{}, errors.New("openai returned no choices")
	}

	var v verdict
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &v); err != nil {
		return domain.EmotionReading{}, fmt.Errorf("decode emotion verdict: %w", err)
	}
	if v.Confidence == nil {
		return domain.EmotionReading{}, errors.New("emotion verdict has no confidence")
	}

	return domain.EmotionReading{Label: domain.EmotionLabel(v.Label), Confidence: *v.Confidence}, nil
}
