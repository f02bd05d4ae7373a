package repository

import (
	"context"

	"github.com/viant/scopegraph/snapshot"
)

// Save persists the current global scope graph to cfg.SnapshotPath (or the
// override path, if non-empty), holding the shared read lock for the
// duration of serialization (§4.6). Not atomic against crashes: callers
// wanting that guarantee should write to a temp path and rename.
func (r *Repository) Save(ctx context.Context, path string) error {
	if path == "" {
		path = r.cfg.SnapshotPath
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshot.Save(ctx, r.fs, path, r.root)
}

// Load replaces the global scope graph with the contents of path, holding
// the exclusive write lock for the duration (§4.6).
func (r *Repository) Load(ctx context.Context, path string) error {
	loaded, err := snapshot.Load(ctx, r.fs, path)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.root = loaded
	r.mu.Unlock()
	return nil
}
