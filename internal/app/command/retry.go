package command

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryConfig bounds the retries of a write that lost an optimistic concurrency race.
type RetryConfig struct {
	MaxTries        int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig returns default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxTries:        5,
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     200 * time.Millisecond,
	}
}

// Validate checks that the policy makes at least one attempt and has positive intervals.
func (c RetryConfig) Validate() error {
	switch {
	case c.MaxTries < 1:
		return errors.New("retry max tries must be at least 1")
	case c.InitialInterval <= 0:
		return errors.New("retry initial interval must be positive")
	case c.MaxInterval < c.InitialInterval:
		return errors.New("retry max interval must not be below the initial interval")
	}
	return nil
}

func (c RetryConfig) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.InitialInterval
	b.MaxInterval = c.MaxInterval
	return b
}
