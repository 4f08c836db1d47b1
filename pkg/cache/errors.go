package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNetwork marks backend connectivity failures (timeouts, refused
// connections). The pipeline treats them as misses.
var ErrNetwork = errors.New("network error")

// backendError reports a failed backend operation as an [ErrNetwork]. A
// nil err stays nil.
func backendError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrNetwork, op, err)
}

// transientError marks an error worth retrying.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying under a [Backoff]. It returns nil
// for a nil err.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was marked with [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Backoff is a retry schedule: up to Attempts calls, waiting Delay after the
// first failure and twice as long after each further one.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is used when a [RedisConfig] names none.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Retry calls fn until it succeeds, returns an error not marked
// [Transient], or the attempts run out. Cancelling ctx stops the wait.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
