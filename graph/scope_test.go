package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scopegraph/graph"
)

func TestScope_GetNamedChildren_FiltersByKindAndName(t *testing.T) {
	parent := &graph.Scope{Kind: graph.KindProgram}
	typeChild := &graph.Scope{Kind: graph.KindType, Name: "Widget"}
	methodChild := &graph.Scope{Kind: graph.KindMethod, Name: "Widget"} // same name, different kind
	parent.AddChild(typeChild)
	parent.AddChild(methodChild)

	var found []*graph.Scope
	for s := range parent.GetNamedChildren(graph.KindType, "Widget") {
		found = append(found, s)
	}
	require.Len(t, found, 1)
	assert.Same(t, typeChild, found[0])
}

func TestScope_GetAncestorsAndSelf_IsRestartable(t *testing.T) {
	root := &graph.Scope{Kind: graph.KindProgram}
	typeScope := &graph.Scope{Kind: graph.KindType, Name: "Widget"}
	method := &graph.Scope{Kind: graph.KindMethod, Name: "render"}
	root.AddChild(typeScope)
	typeScope.AddChild(method)

	seq := method.GetAncestorsAndSelf(graph.KindType)
	var first, second []string
	for s := range seq {
		first = append(first, s.Name)
	}
	for s := range seq {
		second = append(second, s.Name)
	}
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Widget"}, first)
}

func TestGetScopeForLocation_PicksInnermost(t *testing.T) {
	root := &graph.Scope{Kind: graph.KindProgram, Locations: []graph.Location{{FilePath: "a.cpp", XPath: "/unit"}}}
	outer := &graph.Scope{Kind: graph.KindType, Name: "Widget", Locations: []graph.Location{{FilePath: "a.cpp", XPath: "/unit/class[1]"}}}
	inner := &graph.Scope{Kind: graph.KindMethod, Name: "render", Locations: []graph.Location{{FilePath: "a.cpp", XPath: "/unit/class[1]/function[1]"}}}
	root.AddChild(outer)
	outer.AddChild(inner)

	loc := graph.Location{FilePath: "a.cpp", XPath: "/unit/class[1]/function[1]/block[1]"}
	found := graph.GetScopeForLocation(root, loc)
	require.NotNil(t, found)
	assert.Equal(t, "render", found.Name)
}

func TestScope_ReplaceChildren_OrdersByPrimaryLocation(t *testing.T) {
	parent := &graph.Scope{Kind: graph.KindProgram}
	b := &graph.Scope{Kind: graph.KindType, Name: "B", Locations: []graph.Location{{FilePath: "b.cpp", StartLine: 1}}}
	a := &graph.Scope{Kind: graph.KindType, Name: "A", Locations: []graph.Location{{FilePath: "a.cpp", StartLine: 1}}}
	parent.ReplaceChildren([]*graph.Scope{b, a})

	require.Len(t, parent.Children, 2)
	assert.Equal(t, "A", parent.Children[0].Name)
	assert.Equal(t, "B", parent.Children[1].Name)

	var viaIndex []*graph.Scope
	for s := range parent.GetNamedChildren(graph.KindType, "A") {
		viaIndex = append(viaIndex, s)
	}
	require.Len(t, viaIndex, 1)
}
