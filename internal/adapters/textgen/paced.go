package textgen

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
	"golang.org/x/time/rate"
)

// Paced limits how often the wrapped generator is called.
type Paced struct {
	next    ports.TextGenerator
	limiter *rate.Limiter
}

var _ ports.TextGenerator = (*Paced)(nil)

// NewPaced allows one request per interval with the given burst. A zero
// interval disables pacing.
func NewPaced(next ports.TextGenerator, interval time.Duration, burst int) *Paced {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if burst < 1 {
		burst = 1
	}
	return &Paced{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (p *Paced) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for generation slot: %w", err)
	}
	return p.next.Generate(ctx, prompt)
}
