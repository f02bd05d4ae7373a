package parse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/scopegraph/graph"
	"github.com/viant/scopegraph/parse"
)

const cppFixture = `<unit language="C++">
<class><name>Widget</name><block>
<function><type><name>void</name></type><name>render</name><parameter_list></parameter_list><block>
<expr_stmt><expr><call><name>draw</name><argument_list></argument_list></call></expr></expr_stmt>
</block></function>
</block></class>
</unit>`

func TestDecodeFileUnit_ComputesXPath(t *testing.T) {
	el, err := parse.DecodeFileUnit(strings.NewReader(cppFixture))
	require.NoError(t, err)
	assert.Equal(t, "unit", el.Name)
	assert.Equal(t, "C++", el.Attr("language"))
	assert.Equal(t, "/unit", el.XPath)
}

func TestCPPParser_LowersClassMethodAndCall(t *testing.T) {
	el, err := parse.DecodeFileUnit(strings.NewReader(cppFixture))
	require.NoError(t, err)

	p := parse.NewCPPParser()
	root, err := p.ParseFileUnit("widget.cpp", el)
	require.NoError(t, err)
	require.Equal(t, graph.KindProgram, root.Kind)
	require.Len(t, root.Children, 1)

	widget := root.Children[0]
	assert.Equal(t, graph.KindType, widget.Kind)
	assert.Equal(t, "Widget", widget.Name)
	require.Len(t, widget.Children, 1)

	render := widget.Children[0]
	assert.Equal(t, graph.KindMethod, render.Kind)
	assert.Equal(t, "render", render.Name)
	require.Len(t, render.MethodCalls, 1)
	assert.Equal(t, "draw", render.MethodCalls[0].CalleeName)
}

const declFixture = `<unit language="C++">
<class><name>Widget</name><block>
<decl_stmt><decl><type><name>int</name></type><name>count</name><init>=<expr><literal type="number">0</literal></expr></init></decl>;</decl_stmt>
</block></class>
</unit>`

func TestCPPParser_LowersDeclarationTypeAndInitializer(t *testing.T) {
	el, err := parse.DecodeFileUnit(strings.NewReader(declFixture))
	require.NoError(t, err)

	p := parse.NewCPPParser()
	root, err := p.ParseFileUnit("widget.cpp", el)
	require.NoError(t, err)

	widget := root.Children[0]
	require.Len(t, widget.Declarations, 1)
	decl := widget.Declarations[0]
	assert.Equal(t, "count", decl.Name)
	assert.Equal(t, "int", decl.TypeText)
	require.NotNil(t, decl.DeclaredType)
	assert.Equal(t, graph.ExprType, decl.DeclaredType.Kind)
	require.NotNil(t, decl.Initializer)
	assert.Equal(t, graph.ExprLiteral, decl.Initializer.Kind)
	assert.Equal(t, "0", decl.Initializer.Text)
}

func TestRegistry_DispatchesByLanguageAttribute(t *testing.T) {
	r := parse.NewRegistry()
	root, err := r.ParseReader("widget.cpp", strings.NewReader(cppFixture))
	require.NoError(t, err)
	assert.Equal(t, graph.KindProgram, root.Kind)
}

func TestRegistry_UnknownLanguage(t *testing.T) {
	r := parse.NewRegistry()
	_, err := r.ParseReader("widget.rs", strings.NewReader(`<unit language="Rust"></unit>`))
	require.Error(t, err)
}
