/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package executor

import (
	"context"
	"time"

	"github.com/suparena/tablescope/store"
)

const (
	// DefaultProgressThrottle bounds progress-event pressure during fast
	// pagination; unsent items are always flushed in the final event.
	DefaultProgressThrottle = 150 * time.Millisecond

	// maxBatchSize is the store's hard per-call bulk-write limit.
	maxBatchSize = 25

	defaultBackoffBase      = 100 * time.Millisecond
	defaultMaxWriteAttempts = 5
)

// CancelRegistry is the cancellation surface the executor polls once per
// page fetch. *registry.CancelRegistry satisfies it; tests may supply their
// own.
type CancelRegistry interface {
	RequestCancel(id string)
	IsCancelled(id string) bool
	Clear(id string)
}

// Executor drives paginated reads and bulk writes against a store client.
// Each call owns its accumulation state exclusively; concurrent calls share
// only the cancel registry.
type Executor struct {
	store   store.Client
	cancels CancelRegistry

	throttle         time.Duration
	backoffBase      time.Duration
	maxWriteAttempts int

	// sleep is the delay primitive used between bulk-write retries. It
	// blocks only the calling task.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures an Executor.
type Option func(*Executor)

// WithProgressThrottle overrides the minimum interval between progress
// events. Zero emits an event per page.
func WithProgressThrottle(d time.Duration) Option {
	return func(e *Executor) {
		e.throttle = d
	}
}

// WithBackoffBase overrides the base delay of the bulk-write retry schedule.
func WithBackoffBase(d time.Duration) Option {
	return func(e *Executor) {
		e.backoffBase = d
	}
}

// WithMaxWriteAttempts overrides how many times a bulk-write batch is
// attempted before its remainder is recorded as failed.
func WithMaxWriteAttempts(n int) Option {
	return func(e *Executor) {
		e.maxWriteAttempts = n
	}
}

// New creates an Executor over the given store client and cancel registry.
func New(client store.Client, cancels CancelRegistry, opts ...Option) *Executor {
	e := &Executor{
		store:            client,
		cancels:          cancels,
		throttle:         DefaultProgressThrottle,
		backoffBase:      defaultBackoffBase,
		maxWriteAttempts: defaultMaxWriteAttempts,
		sleep:            sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
