package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scopegraph/errs"
	"github.com/viant/scopegraph/graph"
	"github.com/viant/scopegraph/merge"
)

func programWith(children ...*graph.Scope) *graph.Scope {
	root := &graph.Scope{Kind: graph.KindProgram}
	for _, c := range children {
		root.AddChild(c)
	}
	return root
}

func typeScope(file, name string, line int) *graph.Scope {
	return &graph.Scope{
		Kind:          graph.KindType,
		Name:          name,
		QualifiedName: name,
		Locations:     []graph.Location{{FilePath: file, StartLine: line}},
	}
}

func TestMerge_MismatchedIdentityRaisesFatalInternalError(t *testing.T) {
	a := &graph.Scope{Kind: graph.KindType, QualifiedName: "Widget"}
	b := &graph.Scope{Kind: graph.KindMethod, QualifiedName: "Widget"}

	_, err := merge.Merge(a, b)
	require.Error(t, err)
	var fatal *errs.FatalInternalError
	assert.ErrorAs(t, err, &fatal)
}

func TestMerge_CoalescesMatchingNamedScopes(t *testing.T) {
	a := programWith(typeScope("a.cpp", "Widget", 1))
	b := programWith(typeScope("b.cpp", "Widget", 5))

	result, err := merge.Merge(a, b)
	require.NoError(t, err)
	require.Len(t, result.Children, 1)

	widget := result.Children[0]
	assert.Equal(t, "Widget", widget.QualifiedName)
	assert.Len(t, widget.Locations, 2)
}

func TestMerge_KeepsDistinctNamedScopesAsSiblings(t *testing.T) {
	a := programWith(typeScope("a.cpp", "Widget", 1))
	b := programWith(typeScope("b.cpp", "Gadget", 1))

	result, err := merge.Merge(a, b)
	require.NoError(t, err)
	require.Len(t, result.Children, 2)
	names := []string{result.Children[0].Name, result.Children[1].Name}
	assert.ElementsMatch(t, []string{"Widget", "Gadget"}, names)
}

func TestMerge_DoesNotCoalesceVariableDeclarations(t *testing.T) {
	a := &graph.Scope{Kind: graph.KindProgram}
	a.Declarations = append(a.Declarations, &graph.VariableDeclaration{
		Name: "count", Location: graph.Location{FilePath: "a.cpp", StartLine: 1},
	})
	b := &graph.Scope{Kind: graph.KindProgram}
	b.Declarations = append(b.Declarations, &graph.VariableDeclaration{
		Name: "count", Location: graph.Location{FilePath: "b.cpp", StartLine: 2},
	})

	result, err := merge.Merge(a, b)
	require.NoError(t, err)
	assert.Len(t, result.Declarations, 2)
}

func TestMerge_DoesNotCoalesceMethodCalls(t *testing.T) {
	a := &graph.Scope{Kind: graph.KindProgram}
	a.MethodCalls = append(a.MethodCalls, &graph.MethodCall{
		CalleeName: "log", Location: graph.Location{FilePath: "a.cpp", StartLine: 1},
	})
	b := &graph.Scope{Kind: graph.KindProgram}
	b.MethodCalls = append(b.MethodCalls, &graph.MethodCall{
		CalleeName: "log", Location: graph.Location{FilePath: "b.cpp", StartLine: 1},
	})

	result, err := merge.Merge(a, b)
	require.NoError(t, err)
	assert.Len(t, result.MethodCalls, 2)
}

func TestMerge_LeftBiasedOrdersByFilePath(t *testing.T) {
	a := &graph.Scope{Kind: graph.KindProgram}
	a.Statements = append(a.Statements,
		&graph.Statement{Kind: graph.StmtImport, Location: graph.Location{FilePath: "z.cpp", StartLine: 1}},
		&graph.Statement{Kind: graph.StmtImport, Location: graph.Location{FilePath: "z.cpp", StartLine: 2}},
	)
	b := &graph.Scope{Kind: graph.KindProgram}
	b.Statements = append(b.Statements,
		&graph.Statement{Kind: graph.StmtImport, Location: graph.Location{FilePath: "a.cpp", StartLine: 1}},
	)

	result, err := merge.Merge(a, b)
	require.NoError(t, err)
	require.Len(t, result.Statements, 3)
	assert.Equal(t, "a.cpp", result.Statements[0].Location.FilePath)
	assert.Equal(t, "z.cpp", result.Statements[1].Location.FilePath)
	assert.Equal(t, "z.cpp", result.Statements[2].Location.FilePath)
	assert.Equal(t, 1, result.Statements[1].Location.StartLine)
	assert.Equal(t, 2, result.Statements[2].Location.StartLine)
}

func TestMerge_IsCommutative(t *testing.T) {
	a := programWith(typeScope("a.cpp", "Widget", 1))
	b := programWith(typeScope("b.cpp", "Widget", 5))

	ab, err := merge.Merge(a, b)
	require.NoError(t, err)

	a2 := programWith(typeScope("a.cpp", "Widget", 1))
	b2 := programWith(typeScope("b.cpp", "Widget", 5))
	ba, err := merge.Merge(b2, a2)
	require.NoError(t, err)

	assert.Equal(t, len(ab.Children), len(ba.Children))
	assert.Equal(t, ab.Children[0].QualifiedName, ba.Children[0].QualifiedName)
	assert.Len(t, ba.Children[0].Locations, 2)
}

func TestRemoveFile_DeletesNodesLeftWithoutLocations(t *testing.T) {
	outer := typeScope("a.cpp", "Outer", 1)
	inner := typeScope("a.cpp", "Inner", 2)
	outer.AddChild(inner)
	root := programWith(outer)

	merge.RemoveFile(root, "a.cpp")

	require.Len(t, root.Children, 0)
}

func TestRemoveFile_KeepsOtherFilesContributions(t *testing.T) {
	a := typeScope("a.cpp", "Widget", 1)
	root := programWith(a)
	b := typeScope("b.cpp", "Widget", 5)
	merged, err := merge.Merge(root, programWith(b))
	require.NoError(t, err)

	merge.RemoveFile(merged, "a.cpp")

	require.Len(t, merged.Children, 1)
	assert.Len(t, merged.Children[0].Locations, 1)
	assert.Equal(t, "b.cpp", merged.Children[0].Locations[0].FilePath)
}
