// Package repository is the program-fact repository facade: it owns the
// global scope graph, drives the ingest/update pipeline (C5), persists and
// restores snapshots (C6), and exposes the query surface (C7), all behind a
// single shared-exclusive lock.
package repository

import (
	"log/slog"
	"sync"
	"time"

	"github.com/viant/afs"

	"github.com/viant/scopegraph/config"
	"github.com/viant/scopegraph/graph"
	"github.com/viant/scopegraph/parse"
)

// Repository is safe for concurrent use. Reads (queries) take the lock
// shared; mutations (ingest, Load) take it exclusive. The query logic in
// package graph takes no lock, so a query can call another query's logic
// within the same critical section without deadlocking (§5's "recursion is
// permitted"); the lock itself is a sync.RWMutex and is not reentrant.
type Repository struct {
	cfg      config.Config
	registry *parse.Registry
	fs       afs.Service
	logger   *slog.Logger

	mu   sync.RWMutex
	root *graph.Scope

	readyMu sync.Mutex
	ready   bool
	readyCh chan struct{}

	events chan Event
}

// New constructs an empty, not-ready Repository. Call BulkInit to populate
// it from a snapshot or a full reparse before issuing queries.
func New(cfg config.Config, registry *parse.Registry, fs afs.Service, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		cfg:      cfg,
		registry: registry,
		fs:       fs,
		logger:   logger,
		root:     &graph.Scope{Kind: graph.KindProgram},
		readyCh:  make(chan struct{}),
		events:   make(chan Event, 256),
	}
}

// Events returns the channel Repository emits FileProcessed, ErrorRaised,
// and IsReadyChanged notifications on.
func (r *Repository) Events() <-chan Event { return r.events }

func (r *Repository) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
		r.logger.Warn("event channel full, dropping event", "kind", ev.Kind, "file", ev.FilePath)
	}
}

// IsReady reports the readiness flag (§4.5). It is false from New until
// BulkInit completes, during BulkInit's full reparse, and after Clear or a
// FatalInternalError; a single Ingest call does not change it.
func (r *Repository) IsReady() bool {
	r.readyMu.Lock()
	defer r.readyMu.Unlock()
	return r.ready
}

// IsReadyChanged returns a channel that closes the next time readiness
// transitions (edge-triggered; the classic Go broadcast-once idiom). Callers
// that want to keep observing call it again after it fires.
func (r *Repository) IsReadyChanged() <-chan struct{} {
	r.readyMu.Lock()
	defer r.readyMu.Unlock()
	return r.readyCh
}

func (r *Repository) setReady(ready bool) {
	r.readyMu.Lock()
	if r.ready == ready {
		r.readyMu.Unlock()
		return
	}
	r.ready = ready
	closing := r.readyCh
	r.readyCh = make(chan struct{})
	r.readyMu.Unlock()
	close(closing)
	r.emit(Event{Kind: EventIsReadyChanged, Ready: ready})
}

// TryLockGlobalScope attempts to acquire the exclusive lock within timeout,
// returning an unlock function and true on success, or a no-op function and
// false on timeout (§5's bounded-wait acquisition). A zero timeout tries
// once, non-blocking.
func (r *Repository) TryLockGlobalScope(timeout time.Duration) (unlock func(), ok bool) {
	deadline := time.Now().Add(timeout)
	for {
		if r.mu.TryLock() {
			return r.mu.Unlock, true
		}
		if timeout <= 0 || time.Now().After(deadline) {
			return func() {}, false
		}
		time.Sleep(time.Millisecond)
	}
}

// Clear resets the repository to an empty, not-ready state, discarding the
// global scope graph outright. It is the mandated recovery step after a
// FatalInternalError surfaces from Ingest or BulkInit (§7): callers must
// Clear and then reinitialize (BulkInit) before issuing queries again.
func (r *Repository) Clear() {
	r.mu.Lock()
	r.root = &graph.Scope{Kind: graph.KindProgram}
	r.mu.Unlock()
	r.setReady(false)
}

// lockTimeout resolves config.LockTimeoutMillis into a time.Duration, 0
// meaning no bound is configured.
func (r *Repository) lockTimeout() time.Duration {
	if r.cfg.LockTimeoutMillis <= 0 {
		return 0
	}
	return time.Duration(r.cfg.LockTimeoutMillis) * time.Millisecond
}
