package ports

import (
	"context"

	"github.com/bnema/sparky/internal/domain"
)

type TrajectorySink interface {
	Append(ctx context.Context, step domain.TrajectoryStep) error
	Flush(ctx context.Context) error
	Close() error
}
