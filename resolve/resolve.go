// Package resolve implements name-use resolution: mapping a NameUse
// expression to the set of declarations it could refer to, following the
// priority order keyword short-circuit, qualified, dotted-chain, lexical,
// then alias/import substitution.
package resolve

import (
	"iter"

	"github.com/viant/scopegraph/errs"
	"github.com/viant/scopegraph/graph"
)

// FindMatches returns a lazy, ordered sequence of candidate declarations for
// nameUse: nearer lexical scopes first, then imports, then aliases. Callers
// typically take the first result.
func FindMatches(nameUse *graph.Expression) (iter.Seq[graph.NamedEntity], error) {
	if nameUse.ParentStmt == nil {
		return nil, &errs.ResolutionError{Name: nameUse.Name, Message: "name use has no parent statement"}
	}
	if err := checkNoAncestorCycle(nameUse.ParentStmt.ParentScope); err != nil {
		return nil, err
	}

	if entity, ok := resolveKeyword(nameUse); ok {
		return single(entity), nil
	}

	if prefix := nameUse.Prefix(); prefix != nil {
		return resolveQualified(nameUse, prefix), nil
	}

	if receiver := nameUse.Receiver(); receiver != nil {
		return resolveDottedChain(nameUse, receiver), nil
	}

	return resolveLexicalThenAliasImport(nameUse), nil
}

// checkNoAncestorCycle walks scope's Parent chain, raising FatalInternalError
// if scope ever reappears as its own ancestor. The invariant that no scope is
// its own ancestor is what keeps the lexical ancestor walks below (and
// AncestorsAndSelf) from looping forever.
func checkNoAncestorCycle(scope *graph.Scope) error {
	visited := make(map[*graph.Scope]bool)
	for s := scope; s != nil; s = s.Parent {
		if visited[s] {
			return &errs.FatalInternalError{Message: "scope graph contains a cycle: a scope is its own ancestor"}
		}
		visited[s] = true
	}
	return nil
}

func single(e graph.NamedEntity) iter.Seq[graph.NamedEntity] {
	return func(yield func(graph.NamedEntity) bool) {
		if e != nil {
			yield(e)
		}
	}
}

// resolveKeyword implements §4.3 step 1.
func resolveKeyword(nameUse *graph.Expression) (graph.NamedEntity, bool) {
	scope := nameUse.ParentStmt.ParentScope
	lang := enclosingLanguage(scope)
	if !nameUse.IsKeyword(lang) {
		return nil, false
	}
	enclosingType := firstOf(scope.GetAncestorsAndSelf(graph.KindType))
	if enclosingType == nil {
		return nil, true // "this"/"base"/"super" outside a type: no match, but the keyword still short-circuits
	}
	if nameUse.Name == "this" {
		return enclosingType, true
	}
	// base (C#) / super (Java): the first declared supertype of the
	// enclosing type, itself resolved by ordinary name lookup from that
	// type's scope.
	if len(enclosingType.BaseTypes) == 0 {
		return nil, true
	}
	return firstEntity(resolveSimpleNameFrom(enclosingType, enclosingType.BaseTypes[0])), true
}

// resolveQualified implements §4.3 step 2: resolve the prefix to a set of
// containers, then union GetNamedChildren<TypeDefinition>(name) — widened to
// NamedEntity per the resolved Open Question (namespace- and
// type-qualified method names also resolve).
func resolveQualified(nameUse, prefix *graph.Expression) iter.Seq[graph.NamedEntity] {
	containers := resolvePrefixChain(prefix)
	return func(yield func(graph.NamedEntity) bool) {
		for _, container := range containers {
			for entity := range container.GetNamedChildrenAnyKind(nameUse.Name) {
				if !yield(entity) {
					return
				}
			}
		}
	}
}

// resolvePrefixChain resolves a NamePrefix's own leaf NameUses, left to
// right, each anchored at the scopes resolved for the previous leaf.
func resolvePrefixChain(prefix *graph.Expression) []*graph.Scope {
	var containers []*graph.Scope
	for _, leaf := range prefixLeaves(prefix) {
		if containers == nil {
			containers = resolveNameFromScope(enclosingScope(leaf), leaf.Name)
			continue
		}
		var next []*graph.Scope
		for _, c := range containers {
			for child := range c.GetNamedChildren(graph.KindType, leaf.Name) {
				next = append(next, child)
			}
			for child := range c.GetNamedChildren(graph.KindNamespace, leaf.Name) {
				next = append(next, child)
			}
		}
		containers = next
	}
	return containers
}

func prefixLeaves(e *graph.Expression) []*graph.Expression {
	if e.Kind == graph.ExprNameUse && len(e.Children) == 0 {
		return []*graph.Expression{e}
	}
	var leaves []*graph.Expression
	for _, c := range e.Children {
		leaves = append(leaves, prefixLeaves(c)...)
	}
	if len(leaves) == 0 {
		leaves = append(leaves, e)
	}
	return leaves
}

// resolveDottedChain implements §4.3 step 3: the receiver NameUse resolves
// via ordinary lookup, then the chained name looks up on the result set as a
// NamedEntity (any kind), not just TypeDefinition.
func resolveDottedChain(nameUse, receiver *graph.Expression) iter.Seq[graph.NamedEntity] {
	var bases []*graph.Scope
	for entity := range resolveLexicalThenAliasImport(receiver) {
		if sc, ok := entity.(*graph.Scope); ok {
			bases = append(bases, sc)
		}
	}
	return func(yield func(graph.NamedEntity) bool) {
		for _, base := range bases {
			for entity := range base.GetNamedChildrenAnyKind(nameUse.Name) {
				if !yield(entity) {
					return
				}
			}
		}
	}
}

// resolveLexicalThenAliasImport implements §4.3 steps 4-5: lexical ancestor
// walk (nearest first) followed by alias/import substitution.
func resolveLexicalThenAliasImport(nameUse *graph.Expression) iter.Seq[graph.NamedEntity] {
	scope := enclosingScope(nameUse)
	return func(yield func(graph.NamedEntity) bool) {
		for _, entity := range lexicalCandidates(scope, nameUse.Name) {
			if !yield(entity) {
				return
			}
		}
		for _, entity := range aliasImportCandidates(nameUse) {
			if !yield(entity) {
				return
			}
		}
	}
}

func lexicalCandidates(scope *graph.Scope, name string) []graph.NamedEntity {
	var result []graph.NamedEntity
	for ancestor := range scope.AncestorsAndSelf() {
		for entity := range ancestor.GetNamedChildrenAnyKind(name) {
			result = append(result, entity)
		}
	}
	return result
}

// aliasImportCandidates walks ancestor statements starting at nameUse's
// parent statement, collecting ImportStatements and AliasStatements that are
// earlier siblings at each level, substituting alias targets and expanding
// matching imports. Import matches come before alias matches.
func aliasImportCandidates(nameUse *graph.Expression) []graph.NamedEntity {
	var result, aliased []graph.NamedEntity
	stmt := enclosingStatement(nameUse)
	if stmt == nil {
		return result
	}
	scope := stmt.ParentScope
	for scope != nil {
		for _, sibling := range siblingsBefore(scope, stmt) {
			switch sibling.Kind {
			case graph.StmtAlias:
				if sibling.AliasName == nameUse.Name {
					aliased = append(aliased, resolveSimpleNameFrom(scope, sibling.AliasTarget)...)
				}
			case graph.StmtImport:
				for _, ns := range resolveSimpleNameFrom(scope, sibling.ImportPath) {
					if nsScope, ok := ns.(*graph.Scope); ok {
						for entity := range nsScope.GetNamedChildrenAnyKind(nameUse.Name) {
							result = append(result, entity)
						}
					}
				}
			}
		}
		stmt = ancestorStatement(scope)
		if stmt == nil {
			break
		}
		scope = stmt.ParentScope
	}
	return append(result, aliased...)
}

// siblingsBefore returns scope's direct Statements occurring earlier in
// source order than stmt (GetSiblingsBeforeSelf, §4.1).
func siblingsBefore(scope *graph.Scope, stmt *graph.Statement) []*graph.Statement {
	var before []*graph.Statement
	for _, s := range scope.Statements {
		if s == stmt {
			break
		}
		before = append(before, s)
	}
	return before
}

// ancestorStatement finds the Statement (if any) that introduced scope, by
// scanning scope's parent's Statements for one whose Location matches
// scope's primary location — scopes that are also statement-bearing
// (methods, blocks) are reachable this way for the upward alias/import walk.
func ancestorStatement(scope *graph.Scope) *graph.Statement {
	parent := scope.Parent
	if parent == nil {
		return nil
	}
	loc := scope.PrimaryLocation()
	for _, s := range parent.Statements {
		if s.Location.Equal(loc) {
			return s
		}
	}
	return nil
}

// resolveSimpleNameFrom resolves a (possibly dotted) qualified name string
// to the NamedEntity(s) it denotes, anchored at scope, by walking one
// segment at a time through GetNamedChildren the same way resolvePrefixChain
// does for an already-lowered NamePrefix tree.
func resolveSimpleNameFrom(scope *graph.Scope, qualifiedName string) []graph.NamedEntity {
	segments := splitQualified(qualifiedName)
	if len(segments) == 0 {
		return nil
	}
	candidates := resolveNameFromScope(scope, segments[0])
	for _, seg := range segments[1:] {
		var next []*graph.Scope
		for _, c := range candidates {
			for child := range c.GetNamedChildren(graph.KindType, seg) {
				next = append(next, child)
			}
			for child := range c.GetNamedChildren(graph.KindNamespace, seg) {
				next = append(next, child)
			}
		}
		candidates = next
	}
	result := make([]graph.NamedEntity, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c)
	}
	return result
}

// resolveNameFromScope performs the lexical ancestor walk for a bare name,
// returning only the NamedScope results (used when building containers for
// subsequent qualified-chain segments).
func resolveNameFromScope(scope *graph.Scope, name string) []*graph.Scope {
	var result []*graph.Scope
	for ancestor := range scope.AncestorsAndSelf() {
		for child := range ancestor.GetNamedChildrenAnyKind(name) {
			if sc, ok := child.(*graph.Scope); ok {
				result = append(result, sc)
			}
		}
	}
	return result
}

func splitQualified(name string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			segments = append(segments, name[start:i])
			start = i + 1
		}
	}
	segments = append(segments, name[start:])
	return segments
}

func enclosingScope(e *graph.Expression) *graph.Scope {
	stmt := enclosingStatement(e)
	if stmt == nil {
		return nil
	}
	return stmt.ParentScope
}

// enclosingStatement walks up through ParentExpr (for a deeply nested
// expression) to the statement that owns the whole expression tree.
func enclosingStatement(e *graph.Expression) *graph.Statement {
	for e != nil {
		if e.ParentStmt != nil {
			return e.ParentStmt
		}
		e = e.ParentExpr
	}
	return nil
}

func enclosingLanguage(scope *graph.Scope) graph.Language {
	for ancestor := range scope.AncestorsAndSelf() {
		if ancestor.Language != "" {
			return ancestor.Language
		}
	}
	return ""
}

func firstOf(seq iter.Seq[*graph.Scope]) *graph.Scope {
	for s := range seq {
		return s
	}
	return nil
}

func firstEntity(entities []graph.NamedEntity) graph.NamedEntity {
	if len(entities) == 0 {
		return nil
	}
	return entities[0]
}
