// Package merge implements the algebra combining per-file scope trees into
// the global scope graph: commutative and associative on NamedScope
// identity, left-biased (by file path then source order) on the
// collections that cannot be de-duplicated.
package merge

import (
	"sort"

	"github.com/viant/scopegraph/errs"
	"github.com/viant/scopegraph/graph"
)

// key identifies a NamedScope for coalescing: (kind, qualified name,
// signature).
type key struct {
	kind ScopeKindAlias
	qn   string
	sig  string
}

// ScopeKindAlias avoids importing graph.ScopeKind under a different name in
// two places; it is exactly graph.ScopeKind.
type ScopeKindAlias = graph.ScopeKind

func keyOf(s *graph.Scope) key {
	return key{kind: s.Kind, qn: s.QualifiedName, sig: s.Signature}
}

// Merge produces a single scope tree equivalent to the union of a and b. Both
// must be tree roots representing the same conceptual node (typically both
// are the Program root: the existing global graph and a freshly parsed
// file's tree). Merge is commutative and associative: Merge(a, b) and
// Merge(b, a) produce structurally equivalent trees, and repeated pairwise
// merges of a file set converge to the same result regardless of order.
func Merge(a, b *graph.Scope) (*graph.Scope, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	return coalesce(a, b)
}

// coalesce implements rule 1: a and b are assumed to share (kind,
// qualified-name, signature) — the caller (Merge, or mergeChildren below)
// only invokes it on matched pairs. A mismatch here means keyOf desynced from
// the pairing that selected a and b, a broken merge invariant rather than a
// recoverable per-file error.
func coalesce(a, b *graph.Scope) (*graph.Scope, error) {
	if a.Kind != b.Kind || a.QualifiedName != b.QualifiedName || a.Signature != b.Signature {
		return nil, &errs.FatalInternalError{Message: "coalesce called on scopes with differing (kind, qualified name, signature)"}
	}

	result := &graph.Scope{
		Kind:          a.Kind,
		Name:          a.Name,
		QualifiedName: a.QualifiedName,
		Signature:     a.Signature,
		Language:      a.Language,
		Locations:     graph.UnionLocations(a.Locations, b.Locations),
		BaseTypes:     unionBaseTypes(a.BaseTypes, b.BaseTypes),
	}

	result.Declarations = mergeDeclarations(result, a.Declarations, b.Declarations)
	result.MethodCalls = mergeMethodCalls(result, a.MethodCalls, b.MethodCalls)
	result.Statements = mergeStatements(result, a.Statements, b.Statements)
	children, err := mergeChildren(a.Children, b.Children)
	if err != nil {
		return nil, err
	}
	result.ReplaceChildren(children)

	return result, nil
}

// mergeChildren pairs up a's and b's children by key (rule 1, applied
// recursively), keeping every node that did not find a match from either
// side (rule 2); the combined slice is later reordered by ReplaceChildren.
func mergeChildren(aChildren, bChildren []*graph.Scope) ([]*graph.Scope, error) {
	bUsed := make([]bool, len(bChildren))
	bByKey := make(map[key][]int)
	for i, c := range bChildren {
		k := keyOf(c)
		bByKey[k] = append(bByKey[k], i)
	}

	result := make([]*graph.Scope, 0, len(aChildren)+len(bChildren))
	for _, ac := range aChildren {
		k := keyOf(ac)
		matched := -1
		for _, idx := range bByKey[k] {
			if !bUsed[idx] {
				matched = idx
				break
			}
		}
		if matched >= 0 {
			bUsed[matched] = true
			coalesced, err := coalesce(ac, bChildren[matched])
			if err != nil {
				return nil, err
			}
			result = append(result, coalesced)
		} else {
			result = append(result, ac)
		}
	}
	for i, used := range bUsed {
		if !used {
			result = append(result, bChildren[i])
		}
	}
	return result, nil
}

// unionBaseTypes keeps a's declared order (the header a contributing file
// actually wrote) and appends any names from b not already present.
func unionBaseTypes(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	result := make([]string, len(a), len(a)+len(b))
	copy(result, a)
	for _, name := range b {
		found := false
		for _, existing := range a {
			if existing == name {
				found = true
				break
			}
		}
		if !found {
			result = append(result, name)
		}
	}
	return result
}

// mergeDeclarations concatenates without coalescing (rule 3: forward
// declarations across translation units are distinct facts), reparented and
// left-biased ordered.
func mergeDeclarations(parent *graph.Scope, a, b []*graph.VariableDeclaration) []*graph.VariableDeclaration {
	combined := make([]*graph.VariableDeclaration, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	sortLeftBiased(combined, func(d *graph.VariableDeclaration) graph.Location { return d.Location })
	for i, d := range combined {
		d.ParentScope = parent
		d.Index = i
	}
	return combined
}

// mergeMethodCalls concatenates without coalescing (rule 4).
func mergeMethodCalls(parent *graph.Scope, a, b []*graph.MethodCall) []*graph.MethodCall {
	combined := make([]*graph.MethodCall, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	sortLeftBiased(combined, func(c *graph.MethodCall) graph.Location { return c.Location })
	for _, c := range combined {
		c.ParentScope = parent
	}
	return combined
}

// mergeStatements concatenates statements, including ExternStatements, which
// stay as ordinary statements on the enclosing node for round-tripping even
// though their declarations were already lowered as direct children of that
// node (rule 5: extern linkage is transparent for name matching, not for
// the statement list).
func mergeStatements(parent *graph.Scope, a, b []*graph.Statement) []*graph.Statement {
	combined := make([]*graph.Statement, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	sortLeftBiased(combined, func(st *graph.Statement) graph.Location { return st.Location })
	for i, st := range combined {
		st.ParentScope = parent
		st.Index = i
	}
	return combined
}

// sortLeftBiased orders a collection of per-file facts so that files are
// ordered lexically by path and, within a file, original relative order is
// preserved (a stable sort keyed only on file path achieves this because the
// inputs are already each individually in source order).
func sortLeftBiased[T any](items []T, locOf func(T) graph.Location) {
	sort.SliceStable(items, func(i, j int) bool {
		return locOf(items[i]).FilePath < locOf(items[j]).FilePath
	})
}

// RemoveFile strips path from every node's location set in a depth-first
// visit; a node whose location set becomes empty is deleted and its
// surviving children promoted into its parent at the position it occupied.
func RemoveFile(root *graph.Scope, path string) {
	if root == nil {
		return
	}
	removeFileFrom(root, path)
}

func removeFileFrom(n *graph.Scope, path string) {
	for i := 0; i < len(n.Children); i++ {
		removeFileFrom(n.Children[i], path)
	}

	n.Locations = filterLocations(n.Locations, path)
	n.Declarations = filterByFile(n.Declarations, path, func(d *graph.VariableDeclaration) string { return d.Location.FilePath })
	n.MethodCalls = filterByFile(n.MethodCalls, path, func(c *graph.MethodCall) string { return c.Location.FilePath })
	n.Statements = filterByFile(n.Statements, path, func(st *graph.Statement) string { return st.Location.FilePath })

	i := 0
	for i < len(n.Children) {
		c := n.Children[i]
		if len(c.Locations) == 0 {
			n.RemoveChildAt(i)
			continue
		}
		i++
	}
}

func filterLocations(locs []graph.Location, path string) []graph.Location {
	result := locs[:0:0]
	for _, l := range locs {
		if l.FilePath != path {
			result = append(result, l)
		}
	}
	return result
}

func filterByFile[T any](items []T, path string, fileOf func(T) string) []T {
	result := items[:0:0]
	for _, it := range items {
		if fileOf(it) != path {
			result = append(result, it)
		}
	}
	return result
}
