// Package snapshot persists the whole global scope graph to a single
// versioned binary blob and restores it, the mechanism C5's bulk
// initialization uses to skip a full reparse when a prior snapshot exists.
package snapshot

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/viant/afs"

	"github.com/viant/scopegraph/errs"
	"github.com/viant/scopegraph/graph"
)

// CurrentVersion is written into every snapshot's header. Bumped whenever
// the wire schema changes incompatibly.
const CurrentVersion uint32 = 1

type header struct {
	Version  uint32
	Checksum uint64
}

// Save serializes root to path through fs. Callers are responsible for
// holding the global scope's shared (read) lock for the duration of the
// call (§4.6: writers must serialize a consistent snapshot) and for making
// the write atomic against crashes (temp file + rename) if that matters to
// them; Save itself performs a single, non-atomic write.
func Save(ctx context.Context, fs afs.Service, path string, root *graph.Scope) error {
	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(toWireScope(root)); err != nil {
		return &errs.SerializationError{Path: path, Message: "encode scope graph", Err: err}
	}
	sum, err := graph.Hash(body.Bytes())
	if err != nil {
		return &errs.SerializationError{Path: path, Message: "checksum scope graph", Err: err}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(header{Version: CurrentVersion, Checksum: sum}); err != nil {
		return &errs.SerializationError{Path: path, Message: "encode header", Err: err}
	}
	buf.Write(body.Bytes())

	if err := fs.Upload(ctx, path, os.FileMode(0644), bytes.NewReader(buf.Bytes())); err != nil {
		return &errs.SerializationError{Path: path, Message: "upload snapshot", Err: err}
	}
	return nil
}

// Load reads and deserializes the global scope graph from path through fs.
// A version mismatch, checksum mismatch, or decode failure is returned as a
// SerializationError; per §4.6/§4.5, the caller is expected to treat that as
// recovered (fall back to a full reparse) on initial load.
func Load(ctx context.Context, fs afs.Service, path string) (*graph.Scope, error) {
	data, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, &errs.SerializationError{Path: path, Message: "read snapshot", Err: err}
	}

	r := bytes.NewReader(data)
	dec := gob.NewDecoder(r)
	var h header
	if err := dec.Decode(&h); err != nil {
		return nil, &errs.SerializationError{Path: path, Message: "decode header", Err: err}
	}
	if h.Version != CurrentVersion {
		return nil, &errs.SerializationError{Path: path, Message: fmt.Sprintf("version mismatch: got %d, want %d", h.Version, CurrentVersion)}
	}

	body := data[len(data)-r.Len():]
	sum, err := graph.Hash(body)
	if err != nil {
		return nil, &errs.SerializationError{Path: path, Message: "checksum scope graph", Err: err}
	}
	if sum != h.Checksum {
		return nil, &errs.SerializationError{Path: path, Message: "checksum mismatch: snapshot is corrupt"}
	}

	var w wireScope
	if err := dec.Decode(&w); err != nil {
		return nil, &errs.SerializationError{Path: path, Message: "decode scope graph", Err: err}
	}
	return fromWireScope(&w), nil
}
