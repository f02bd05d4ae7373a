package graph

import (
	"iter"
	"sort"
)

// Language tags the source language a scope (or name use) was lowered from,
// carried on every node because §4.3's keyword short-circuit (this/base/super)
// is language-specific and the repository is multi-language.
type Language string

const (
	LanguageC      Language = "C"
	LanguageCPP    Language = "C++"
	LanguageJava   Language = "Java"
	LanguageCSharp Language = "C#"
)

// ScopeKind is the closed tagged variant for scope nodes (§3, §9: additions
// are deliberately a breaking change, the set is stable and small).
type ScopeKind int

const (
	KindProgram ScopeKind = iota
	KindNamespace
	KindType
	KindMethod
	KindProperty
	KindBlock
)

func (k ScopeKind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindNamespace:
		return "NamespaceDefinition"
	case KindType:
		return "TypeDefinition"
	case KindMethod:
		return "MethodDefinition"
	case KindProperty:
		return "PropertyDefinition"
	case KindBlock:
		return "BlockScope"
	default:
		return "Unknown"
	}
}

// IsNamed reports whether the kind introduces a qualified name (NamedScope
// in spec terms) as opposed to a bare lexical BlockScope or the Program root.
func (k ScopeKind) IsNamed() bool {
	switch k {
	case KindNamespace, KindType, KindMethod, KindProperty:
		return true
	default:
		return false
	}
}

// NamedEntity is anything GetNamedChildren/FindMatches can return: a
// NamedScope or a VariableDeclaration (§9 Open Question 2 resolves the
// qualified-lookup target to this wider interface rather than TypeDefinition
// alone).
type NamedEntity interface {
	EntityName() string
}

// Scope is the universal scope-tree node (Program, NamedScope variants, and
// BlockScope all share this representation, tagged by Kind, matching §3's
// "Scope — abstract node with children ... primary location ... secondary
// locations"). The child-lookup map is kept in sync with the slices the same
// way linager's Type kept fieldMap/methodMap in sync with Fields/Methods.
type Scope struct {
	Kind          ScopeKind
	Name          string // simple name; empty for Program and BlockScope
	QualifiedName string // dotted/namespaced full name; empty for Program and BlockScope
	Signature     string // disambiguates MethodDefinition overloads
	Language      Language

	Locations []Location // one per contributing file after merge (invariant 3)

	// BaseTypes holds the declared supertype names (extends/implements/C++
	// base-clause), in declaration order, as written in the header — used by
	// name resolution's "base"/"super" keyword rule. Only meaningful when
	// Kind == KindType.
	BaseTypes []string

	Children     []*Scope
	Declarations []*VariableDeclaration
	MethodCalls  []*MethodCall
	Statements   []*Statement

	Parent *Scope // back-reference, non-owning, always re-derivable (§9)

	childIndex map[string][]int // simple name -> indices into Children, any kind
}

// EntityName implements NamedEntity.
func (s *Scope) EntityName() string { return s.Name }

// PrimaryLocation is the lexically smallest of the scope's locations
// (invariant 2).
func (s *Scope) PrimaryLocation() Location {
	if len(s.Locations) == 0 {
		return Location{}
	}
	return MinLocation(s.Locations)
}

// AddChild appends a child scope and updates the name index. Callers that
// build a single file's tree append in source order and never need
// repositioning; Merge reorders cross-file children with ReplaceChildren
// (invariant 4).
func (s *Scope) AddChild(child *Scope) {
	child.Parent = s
	s.Children = append(s.Children, child)
	s.indexChild(child, len(s.Children)-1)
}

// InsertChild inserts a child at the position that keeps Children ordered by
// primary location (file path, then line, then column).
func (s *Scope) InsertChild(child *Scope) {
	child.Parent = s
	loc := child.PrimaryLocation()
	idx := len(s.Children)
	for i, c := range s.Children {
		if loc.Less(c.PrimaryLocation()) {
			idx = i
			break
		}
	}
	s.Children = append(s.Children, nil)
	copy(s.Children[idx+1:], s.Children[idx:])
	s.Children[idx] = child
	s.reindexChildren()
}

// RemoveChildAt deletes the child at idx, promoting its own children into
// its place (used by RemoveFile when a node's location set goes empty).
func (s *Scope) RemoveChildAt(idx int) {
	child := s.Children[idx]
	replacement := child.Children
	for _, gc := range replacement {
		gc.Parent = s
	}
	next := make([]*Scope, 0, len(s.Children)-1+len(replacement))
	next = append(next, s.Children[:idx]...)
	next = append(next, replacement...)
	next = append(next, s.Children[idx+1:]...)
	s.ReplaceChildren(next)
}

// ReplaceChildren installs children as s's full child set, ordered by
// primary location (ties broken by simple name, then kind) to satisfy
// invariant 4 after a merge interleaves children contributed by different
// files. Used by the merge package, which has no other way to rebuild the
// unexported child index.
func (s *Scope) ReplaceChildren(children []*Scope) {
	sort.SliceStable(children, func(i, j int) bool {
		li, lj := children[i].PrimaryLocation(), children[j].PrimaryLocation()
		if li.Less(lj) {
			return true
		}
		if lj.Less(li) {
			return false
		}
		if children[i].Name != children[j].Name {
			return children[i].Name < children[j].Name
		}
		return children[i].Kind < children[j].Kind
	})
	for _, c := range children {
		c.Parent = s
	}
	s.Children = children
	s.reindexChildren()
}

func (s *Scope) indexChild(child *Scope, idx int) {
	if child.Name == "" {
		return
	}
	if s.childIndex == nil {
		s.childIndex = make(map[string][]int)
	}
	s.childIndex[child.Name] = append(s.childIndex[child.Name], idx)
}

func (s *Scope) reindexChildren() {
	s.childIndex = nil
	for i, c := range s.Children {
		s.indexChild(c, i)
	}
}

// GetNamedChildren returns a restartable, non-mutating sequence of this
// scope's direct children matching kind and simple name (§4.1). Lookups that
// accept any kind use GetNamedChildrenAnyKind instead (the
// qualified-name/dotted-chain rules in §4.3 look up INamedEntity, not one
// specific kind).
func (s *Scope) GetNamedChildren(kind ScopeKind, name string) iter.Seq[*Scope] {
	return func(yield func(*Scope) bool) {
		if s == nil {
			return
		}
		for _, idx := range s.childIndex[name] {
			c := s.Children[idx]
			if c.Kind == kind {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// GetNamedChildrenAnyKind returns direct named children (any ScopeKind) plus
// matching VariableDeclarations, satisfying the NamedEntity lookup used by
// qualified and dotted-chain resolution (§4.3 steps 2-3).
func (s *Scope) GetNamedChildrenAnyKind(name string) iter.Seq[NamedEntity] {
	return func(yield func(NamedEntity) bool) {
		if s == nil {
			return
		}
		for _, idx := range s.childIndex[name] {
			c := s.Children[idx]
			if !yield(c) {
				return
			}
		}
		for _, d := range s.Declarations {
			if d.Name == name {
				if !yield(d) {
					return
				}
			}
		}
	}
}

// GetAncestorsAndSelf returns a restartable sequence of ancestor scopes
// matching kind, inclusive of s itself (§4.1).
func (s *Scope) GetAncestorsAndSelf(kind ScopeKind) iter.Seq[*Scope] {
	return func(yield func(*Scope) bool) {
		for cur := s; cur != nil; cur = cur.Parent {
			if cur.Kind == kind {
				if !yield(cur) {
					return
				}
			}
		}
	}
}

// AncestorsAndSelf returns every ancestor scope inclusive of s, innermost
// first, regardless of kind — the walk the lexical resolution step (§4.3.4)
// needs.
func (s *Scope) AncestorsAndSelf() iter.Seq[*Scope] {
	return func(yield func(*Scope) bool) {
		for cur := s; cur != nil; cur = cur.Parent {
			if !yield(cur) {
				return
			}
		}
	}
}

// GetScopeForLocation returns the innermost scope (rooted at s) whose
// location spans loc, ties broken by deepest tree depth (§4.1).
func GetScopeForLocation(root *Scope, loc Location) *Scope {
	var best *Scope
	var bestDepth int
	var walk func(n *Scope, depth int)
	walk = func(n *Scope, depth int) {
		spans := false
		for _, l := range n.Locations {
			if l.Contains(loc) {
				spans = true
				break
			}
		}
		if n.Kind == KindProgram {
			spans = true // Program is the universal container
		}
		if spans && (best == nil || depth > bestDepth) {
			best = n
			bestDepth = depth
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return best
}
