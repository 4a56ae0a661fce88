package ports

import (
	"time"

	"github.com/bnema/sparky/internal/domain"
)

type TurnObserver interface {
	ObserveTurn(step domain.TrajectoryStep, elapsed time.Duration)
	ObserveEnd(summary domain.Summary)
}

// NopObserver discards all observations.
type NopObserver struct{}

func (NopObserver) ObserveTurn(domain.TrajectoryStep, time.Duration) {}

func (NopObserver) ObserveEnd(domain.Summary) {}
