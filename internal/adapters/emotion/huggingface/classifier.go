// Package huggingface classifies learner emotion with a text-classification
// model served by the Hugging Face Inference API.
package huggingface

import (
	"context"
	"errors"
	"fmt"
	"strings"

	hf "github.com/hupe1980/go-huggingface"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
)

const DefaultModel = "j-hartmann/emotion-english-distilroberta-base"

// modelLabels maps the model's Ekman labels onto ours.
var modelLabels = map[string]domain.EmotionLabel{
	"joy":      domain.EmotionHappy,
	"love":     domain.EmotionHappy,
	"surprise": domain.EmotionExcited,
	"sadness":  domain.EmotionSad,
	"anger":    domain.EmotionFrustrated,
	"disgust":  domain.EmotionFrustrated,
	"fear":     domain.EmotionConfused,
	"neutral":  domain.EmotionNeutral,
}

type Options struct {
	Token string
	Model string
	// BaseURL overrides the inference endpoint, e.g. a dedicated deployment.
	BaseURL string
}

type Classifier struct {
	client *hf.InferenceClient
	model  string
}

var _ ports.EmotionClassifier = (*Classifier)(nil)

func NewClassifier(opts Options) *Classifier {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	client := hf.NewInferenceClient(opts.Token, func(o *hf.InferenceClientOptions) {
		if opts.BaseURL != "" {
			o.Endpoint = strings.TrimRight(opts.BaseURL, "/")
		}
	})

	return &Classifier{client: client, model: opts.Model}
}

type score struct {
	Label string
	Score float64
}

func (c *Classifier) Classify(ctx context.Context, utterance string) (domain.EmotionReading, error) {
	resp, err := c.client.TextClassification(ctx, &hf.TextClassificationRequest{
		Inputs: utterance,
		Model:  c.model,
	})
	if err != nil {
		return domain.EmotionReading{}, fmt.Errorf("call inference api: %w", err)
	}
	if len(resp) == 0 {
		return domain.EmotionReading{}, errors.New("inference api returned no scores")
	}

	scores := make([]score, 0, len(resp[0]))
	for _, s := range resp[0] {
		scores = append(scores, score{Label: s.Label, Score: float64(s.Score)})
	}
	return pick(scores)
}

func pick(scores []score) (domain.EmotionReading, error) {
	best := score{Score: -1}
	var bestLabel domain.EmotionLabel
	for _, s := range scores {
		label, ok := modelLabels[strings.ToLower(s.Label)]
		if !ok {
			continue
		}
		if s.Score > best.Score {
			best = s
			bestLabel = label
		}
	}
	if bestLabel == "" {
		return domain.EmotionReading{}, errors.New("inference api returned no known labels")
	}

	return domain.EmotionReading{Label: bestLabel, Confidence: best.Score}, nil
}
