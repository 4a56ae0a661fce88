package ports

import (
	"context"

	"github.com/bnema/sparky/internal/domain"
)

// TextGenerator renders a prompt into free text. No structure is guaranteed
// on the output.
type TextGenerator interface {
	Generate(ctx context.Context, prompt domain.Prompt) (string, error)
}
