package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
)

// Recorder is the append-only trajectory of one session. Steps are kept in
// memory and forwarded to an optional sink.
type Recorder struct {
	mu    sync.RWMutex
	steps []domain.TrajectoryStep
	sink  ports.TrajectorySink
}

func NewRecorder(sink ports.TrajectorySink) *Recorder {
	return &Recorder{sink: sink}
}

// Append stores step and forwards it to the sink. A turn out of sequence is a
// programming error and panics. The step is kept even when the sink fails.
func (r *Recorder) Append(ctx context.Context, step domain.TrajectoryStep) error {
	r.mu.Lock()
	if step.Turn != len(r.steps) {
		r.mu.Unlock()
		panic(fmt.Sprintf("trajectory turn %d appended after %d steps", step.Turn, len(r.steps)))
	}
	r.steps = append(r.steps, step)
	r.mu.Unlock()

	if r.sink == nil {
		return nil
	}
	if err := r.sink.Append(context.WithoutCancel(ctx), step); err != nil {
		return fmt.Errorf("append step %d to sink: %w", step.Turn, err)
	}
	return nil
}

func (r *Recorder) Steps() []domain.TrajectoryStep {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TrajectoryStep, len(r.steps))
	copy(out, r.steps)
	return out
}

func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.steps)
}

// Close flushes and closes the sink. The flush runs even when ctx is already
// cancelled so the steps recorded so far reach the sink.
func (r *Recorder) Close(ctx context.Context) error {
	if r.sink == nil {
		return nil
	}
	ctx = context.WithoutCancel(ctx)
	if err := r.sink.Flush(ctx); err != nil {
		if closeErr := r.sink.Close(); closeErr != nil {
			return fmt.Errorf("flush trajectory: %w", errors.Join(err, closeErr))
		}
		return fmt.Errorf("flush trajectory: %w", err)
	}
	if err := r.sink.Close(); err != nil {
		return fmt.Errorf("close trajectory: %w", err)
	}
	return nil
}
