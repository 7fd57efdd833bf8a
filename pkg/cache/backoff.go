package cache

import (
	"context"
	"errors"
	"time"
)

// Backoff retries an operation with exponentially growing pauses.
type Backoff struct {
	Attempts int           // total calls, at least 1
	Initial  time.Duration // pause after the first failure
	Max      time.Duration // upper bound for a single pause; 0 means none
}

// ConnectBackoff is used when dialling remote backends.
var ConnectBackoff = Backoff{Attempts: 4, Initial: 250 * time.Millisecond, Max: 2 * time.Second}

// Retry calls fn until it succeeds, fails permanently, runs out of attempts
// or ctx is done. Context errors and errors marked with [Permanent] are
// returned without retrying.
func (b Backoff) Retry(ctx context.Context, fn func(context.Context) error) error {
	delay := b.Initial
	var err error
	for attempt := 1; ; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		var p *permanentError
		if errors.As(err, &p) {
			return p.err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || attempt >= b.Attempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
}

// Permanent marks err so [Backoff.Retry] returns it immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }
