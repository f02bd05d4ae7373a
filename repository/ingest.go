package repository

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/viant/scopegraph/errs"
	"github.com/viant/scopegraph/graph"
	"github.com/viant/scopegraph/merge"
	"github.com/viant/scopegraph/snapshot"
)

// Ingest applies a single FileEvent per the handling table in §4.5:
// Added parses and merges; Changed removes then re-adds; Deleted removes;
// Renamed removes the old path then adds the new one.
func (r *Repository) Ingest(ctx context.Context, ev FileEvent) error {
	switch ev.Kind {
	case FileAdded:
		return r.parseAndMergeOne(ctx, ev.Path, ev.Kind)
	case FileChanged:
		r.removeFile(ev.Path)
		return r.parseAndMergeOne(ctx, ev.Path, ev.Kind)
	case FileDeleted:
		r.removeFile(ev.Path)
		return nil
	case FileRenamed:
		r.removeFile(ev.OldPath)
		return r.parseAndMergeOne(ctx, ev.Path, ev.Kind)
	default:
		return &errs.ArgumentError{Argument: "ev.Kind", Message: "unrecognized file event kind"}
	}
}

func (r *Repository) removeFile(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	merge.RemoveFile(r.root, path)
}

func (r *Repository) parseAndMergeOne(ctx context.Context, path string, kind FileEventKind) error {
	tree, err := r.parseOne(ctx, path)
	if err != nil {
		if unknownErr := asUnknownLanguage(err); unknownErr != nil && !r.cfg.StrictUnknownLanguage {
			return nil
		}
		return err
	}

	r.mu.Lock()
	merged, err := merge.Merge(r.root, tree)
	if err == nil {
		r.root = merged
	}
	r.mu.Unlock()
	if err != nil {
		r.emit(Event{Kind: EventErrorRaised, FilePath: path, Err: err})
		if asFatalInternal(err) != nil {
			r.setReady(false)
		}
		return err
	}
	r.emit(Event{Kind: EventFileProcessed, FilePath: path, FileEventKind: kind})
	return nil
}

// parseOne reads and lowers a single file, emitting ErrorRaised and
// returning the error for every recovered or surfaced failure.
func (r *Repository) parseOne(ctx context.Context, path string) (*graph.Scope, error) {
	reader, err := r.fs.OpenURL(ctx, path)
	if err != nil {
		parseErr := &errs.ParseError{FilePath: path, Message: "open file", Err: err}
		r.emit(Event{Kind: EventErrorRaised, FilePath: path, Err: parseErr})
		return nil, parseErr
	}
	defer reader.Close()

	tree, err := r.registry.ParseReader(path, reader)
	if err != nil {
		r.emit(Event{Kind: EventErrorRaised, FilePath: path, Err: err})
		return nil, err
	}
	return tree, nil
}

func asUnknownLanguage(err error) *errs.UnknownLanguageError {
	var unknown *errs.UnknownLanguageError
	if errors.As(err, &unknown) {
		return unknown
	}
	return nil
}

func asFatalInternal(err error) *errs.FatalInternalError {
	var fatal *errs.FatalInternalError
	if errors.As(err, &fatal) {
		return fatal
	}
	return nil
}

// BulkInit performs startup initialization (§4.5): if a snapshot is
// configured and loads successfully, it replaces the graph outright;
// otherwise (no snapshot, or a failed load) it runs the full-reparse
// pipeline over paths — a producer pool of up to cfg.Parallelism workers
// parsing concurrently, feeding a bounded merge queue that a single merge
// goroutine drains, serializing every write.
func (r *Repository) BulkInit(ctx context.Context, paths []string) error {
	if r.cfg.SnapshotPath != "" {
		loaded, err := snapshot.Load(ctx, r.fs, r.cfg.SnapshotPath)
		if err == nil {
			r.mu.Lock()
			r.root = loaded
			r.mu.Unlock()
			r.setReady(true)
			return nil
		}
		r.logger.Warn("snapshot load failed, falling back to full reparse", "path", r.cfg.SnapshotPath, "error", err)
		r.emit(Event{Kind: EventErrorRaised, FilePath: r.cfg.SnapshotPath, Err: err})
	}
	return r.fullReparse(ctx, paths)
}

func (r *Repository) fullReparse(ctx context.Context, paths []string) error {
	r.setReady(false)

	queue := make(chan parsedUnit, r.cfg.MergeQueueSize)
	mergeDone := make(chan error, 1)

	go r.mergeLoop(queue, mergeDone)

	limit := r.cfg.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for _, path := range paths {
		path := path
		group.Go(func() error {
			r.produceOne(gctx, path, queue)
			return nil
		})
	}
	groupErr := group.Wait()
	close(queue)
	mergeErr := <-mergeDone

	// mergeLoop already flips readiness false itself on a FatalInternalError;
	// anything else (including success) means the repository is usable again.
	if asFatalInternal(mergeErr) == nil {
		r.setReady(true)
	}

	if groupErr != nil {
		return groupErr
	}
	return mergeErr
}

type parsedUnit struct {
	path string
	kind FileEventKind
	tree *graph.Scope
}

func (r *Repository) produceOne(ctx context.Context, path string, queue chan<- parsedUnit) {
	tree, err := r.parseOne(ctx, path)
	if err != nil {
		return
	}
	// BulkInit's full reparse has no originating FileEvent; every file it
	// contributes is, from the repository's point of view, being added.
	select {
	case queue <- parsedUnit{path: path, kind: FileAdded, tree: tree}:
	case <-ctx.Done():
	}
}

// mergeLoop drains queue sequentially. Once a FatalInternalError surfaces it
// keeps draining (so produceOne's sends never block) but stops merging and
// reports the error back through done, the signal fullReparse needs to leave
// the repository unready instead of flipping it back on completion.
func (r *Repository) mergeLoop(queue <-chan parsedUnit, done chan<- error) {
	var fatal error
	for unit := range queue {
		if fatal != nil {
			continue
		}
		r.mu.Lock()
		merged, err := merge.Merge(r.root, unit.tree)
		if err == nil {
			r.root = merged
		}
		r.mu.Unlock()
		if err != nil {
			r.emit(Event{Kind: EventErrorRaised, FilePath: unit.path, Err: err})
			if asFatalInternal(err) != nil {
				r.setReady(false)
				fatal = err
			}
			continue
		}
		r.emit(Event{Kind: EventFileProcessed, FilePath: unit.path, FileEventKind: unit.kind})
	}
	done <- fatal
}
