/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import "sync"

// CancelRegistry is a process-wide set of read executions that have been
// asked to stop. It is the only cross-call mutable state in the execution
// core; executions poll it once per page fetch and remove their entry on
// every exit path so stale ids never accumulate.
type CancelRegistry struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// New creates an empty CancelRegistry. Tests supply an isolated instance
// per case; the application shares one across all executions.
func New() *CancelRegistry {
	return &CancelRegistry{
		ids: make(map[string]struct{}),
	}
}

// RequestCancel asks the execution with the given id to stop. It is
// idempotent and always succeeds, even for unknown or already-finished
// ids: a cancellation racing against natural completion must never error.
func (r *CancelRegistry) RequestCancel(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[id] = struct{}{}
}

// IsCancelled reports whether cancellation has been requested for id.
func (r *CancelRegistry) IsCancelled(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[id]
	return ok
}

// Clear removes id from the registry.
func (r *CancelRegistry) Clear(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ids, id)
}
