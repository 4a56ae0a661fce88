package application

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errCallTimedOut = errors.New("timed out")

// callBounded runs fn once under timeout. It returns as soon as the deadline
// passes, even if fn ignores its context; the abandoned call finishes in the
// background and its result is dropped.
func callBounded[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		value, err := fn(callCtx)
		done <- result{value: value, err: err}
	}()

	var zero T
	select {
	case res := <-done:
		return res.value, res.err
	case <-callCtx.Done():
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return zero, fmt.Errorf("%w after %s", errCallTimedOut, timeout)
		}
		return zero, callCtx.Err()
	}
}
