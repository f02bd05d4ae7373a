package repository

import (
	"sort"

	"github.com/viant/scopegraph/errs"
	"github.com/viant/scopegraph/graph"
)

// FindScope returns the innermost scope whose location spans loc, or nil if
// none does. Acquires the shared read lock for its duration (§4.7).
func (r *Repository) FindScope(loc graph.Location) (*graph.Scope, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return graph.GetScopeForLocation(r.root, loc), nil
}

// FindScopeOfKind returns the nearest enclosing scope of kind starting from
// the innermost scope containing loc, walking ancestors outward. This is
// the runtime-kind-parameterized form of §4.7's FindScope<K>.
func (r *Repository) FindScopeOfKind(loc graph.Location, kind graph.ScopeKind) (*graph.Scope, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	innermost := graph.GetScopeForLocation(r.root, loc)
	if innermost == nil {
		return nil, nil
	}
	for s := range innermost.GetAncestorsAndSelf(kind) {
		return s, nil
	}
	return nil, nil
}

// FindMethodCalls returns every MethodCall whose location falls within loc,
// ordered nearest-first (descending by starting line, then column) — §4.7.
func (r *Repository) FindMethodCalls(loc graph.Location) ([]*graph.MethodCall, error) {
	if loc.FilePath == "" {
		return nil, &errs.ArgumentError{Argument: "loc", Message: "empty file path"}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var calls []*graph.MethodCall
	var collect func(s *graph.Scope)
	collect = func(s *graph.Scope) {
		for _, c := range s.MethodCalls {
			if loc.Contains(c.Location) {
				calls = append(calls, c)
			}
		}
		for _, c := range s.Children {
			collect(c)
		}
	}
	collect(r.root)

	sort.SliceStable(calls, func(i, j int) bool {
		a, b := calls[i].Location, calls[j].Location
		if a.StartLine != b.StartLine {
			return a.StartLine > b.StartLine
		}
		return a.StartColumn > b.StartColumn
	})
	return calls, nil
}

// Root returns the global scope graph's Program root. Callers must hold (or
// acquire) the shared lock themselves before walking it directly; prefer
// FindScope/FindScopeOfKind/FindMethodCalls for locked, single-call queries.
func (r *Repository) Root() *graph.Scope {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root
}
