/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablescope

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/tablescope/executor"
	"github.com/suparena/tablescope/profile"
	"github.com/suparena/tablescope/registry"
	"github.com/suparena/tablescope/store"
	"github.com/suparena/tablescope/store/ddb"
)

// Session bundles everything one open connection needs: the store client,
// the cancellation registry its queries share, and the executor driving
// reads and writes.
type Session struct {
	Name    string
	Store   store.Client
	Cancels *registry.CancelRegistry
	Exec    *executor.Executor
}

// Sessions is a higher-level interface that manages a collection of named
// Session instances, one per open connection profile.
type Sessions interface {
	// Register wraps a store client into a Session under the given name.
	Register(name string, client store.Client) (*Session, error)
	// Open builds a store client from a connection profile and registers it
	// under the profile's name.
	Open(ctx context.Context, p *profile.Profile) (*Session, error)
	// Get retrieves the registered Session for a given name.
	Get(name string) (*Session, error)
	// Remove drops the Session registered under the given name.
	Remove(name string)
}

// sessionManager is a thread-safe implementation of the Sessions interface.
type sessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates and returns a new Sessions implementation.
func NewSessionManager() Sessions {
	return &sessionManager{
		sessions: make(map[string]*Session),
	}
}

// Register stores the provided client under the given name. Each session
// gets its own cancellation registry so queries in one connection cannot
// cancel another's.
func (sm *sessionManager) Register(name string, client store.Client) (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[name]; exists {
		return nil, fmt.Errorf("session with name %q already registered", name)
	}

	cancels := registry.New()
	session := &Session{
		Name:    name,
		Store:   client,
		Cancels: cancels,
		Exec:    executor.New(client, cancels),
	}
	sm.sessions[name] = session
	return session, nil
}

// Open builds an AWS configuration from the profile and registers the
// resulting client under the profile's name.
func (sm *sessionManager) Open(ctx context.Context, p *profile.Profile) (*Session, error) {
	cfg, err := p.AWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	var client *ddb.Client
	if p.Endpoint != "" {
		client = ddb.NewFromConfig(cfg, ddb.WithBaseEndpoint(p.Endpoint))
	} else {
		client = ddb.NewFromConfig(cfg)
	}
	return sm.Register(p.Name, client)
}

// Get retrieves the Session associated with the given name.
func (sm *sessionManager) Get(name string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[name]
	if !exists {
		return nil, fmt.Errorf("session with name %q not found", name)
	}
	return session, nil
}

// Remove drops the Session registered under the given name. Removing an
// unknown name is a no-op.
func (sm *sessionManager) Remove(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, name)
}
