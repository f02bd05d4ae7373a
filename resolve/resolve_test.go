package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scopegraph/graph"
	"github.com/viant/scopegraph/resolve"
)

// buildFixture constructs:
//
//	Program
//	  TypeDefinition Widget (Java)
//	    MethodDefinition helper
//	    MethodDefinition render
//	      Statement (expr_stmt) -> NameUse("helper")
func buildFixture() (*graph.Scope, *graph.Expression) {
	root := &graph.Scope{Kind: graph.KindProgram, Language: graph.LanguageJava}
	widget := &graph.Scope{Kind: graph.KindType, Name: "Widget", QualifiedName: "Widget", Language: graph.LanguageJava}
	root.AddChild(widget)

	helper := &graph.Scope{Kind: graph.KindMethod, Name: "helper", QualifiedName: "Widget.helper", Language: graph.LanguageJava}
	widget.AddChild(helper)

	render := &graph.Scope{Kind: graph.KindMethod, Name: "render", QualifiedName: "Widget.render", Language: graph.LanguageJava}
	widget.AddChild(render)

	stmt := &graph.Statement{Kind: graph.StmtOther, ParentScope: render}
	nameUse := &graph.Expression{Kind: graph.ExprNameUse, Name: "helper", ParentStmt: stmt}
	stmt.Expressions = append(stmt.Expressions, nameUse)
	render.Statements = append(render.Statements, stmt)

	return root, nameUse
}

func TestFindMatches_LexicalWalkFindsSiblingMethod(t *testing.T) {
	_, nameUse := buildFixture()

	seq, err := resolve.FindMatches(nameUse)
	require.NoError(t, err)

	var found []graph.NamedEntity
	for e := range seq {
		found = append(found, e)
	}
	require.Len(t, found, 1)
	assert.Equal(t, "helper", found[0].EntityName())
}

func TestFindMatches_ThisResolvesToEnclosingType(t *testing.T) {
	root, _ := buildFixture()
	widget := root.Children[0]
	render := widget.Children[1]

	stmt := &graph.Statement{Kind: graph.StmtOther, ParentScope: render}
	thisUse := &graph.Expression{Kind: graph.ExprNameUse, Name: "this", ParentStmt: stmt}
	stmt.Expressions = append(stmt.Expressions, thisUse)

	seq, err := resolve.FindMatches(thisUse)
	require.NoError(t, err)

	var found []graph.NamedEntity
	for e := range seq {
		found = append(found, e)
	}
	require.Len(t, found, 1)
	assert.Equal(t, "Widget", found[0].EntityName())
}

func TestFindMatches_NoParentStatementFails(t *testing.T) {
	detached := &graph.Expression{Kind: graph.ExprNameUse, Name: "x"}
	_, err := resolve.FindMatches(detached)
	assert.Error(t, err)
}

func TestFindMatches_QualifiedResolvesThroughPrefix(t *testing.T) {
	root := &graph.Scope{Kind: graph.KindProgram, Language: graph.LanguageCSharp}
	ns := &graph.Scope{Kind: graph.KindNamespace, Name: "N", QualifiedName: "N", Language: graph.LanguageCSharp}
	root.AddChild(ns)
	widget := &graph.Scope{Kind: graph.KindType, Name: "Widget", QualifiedName: "N.Widget", Language: graph.LanguageCSharp}
	ns.AddChild(widget)

	stmt := &graph.Statement{Kind: graph.StmtOther, ParentScope: root}
	use := &graph.Expression{Kind: graph.ExprNameUse, Name: "Widget", ParentStmt: stmt}
	prefix := &graph.Expression{Kind: graph.ExprNamePrefix, ParentStmt: stmt, ParentExpr: use}
	prefix.Children = append(prefix.Children, &graph.Expression{Kind: graph.ExprNameUse, Name: "N", ParentStmt: stmt, ParentExpr: prefix})
	use.Children = append(use.Children, prefix)
	stmt.Expressions = append(stmt.Expressions, use)

	seq, err := resolve.FindMatches(use)
	require.NoError(t, err)
	var found []graph.NamedEntity
	for e := range seq {
		found = append(found, e)
	}
	require.Len(t, found, 1)
	assert.Equal(t, "Widget", found[0].EntityName())
}
