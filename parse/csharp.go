package parse

import (
	"strings"

	"github.com/viant/scopegraph/graph"
)

// CSharpParser lowers C# file units: class/struct/interface/enum types,
// namespace blocks, and using directives (both plain imports and
// "using X = Y;" aliases).
type CSharpParser struct{ spec langSpec }

// NewCSharpParser returns the reference C# parser.
func NewCSharpParser() *CSharpParser {
	return &CSharpParser{spec: langSpec{
		lang:          graph.LanguageCSharp,
		typeTags:      tagSet("class", "struct", "interface", "enum"),
		namespaceTags: tagSet("namespace"),
		importTag:     "using_directive",
	}}
}

// ParseFileUnit implements Parser. "using Foo = Bar.Baz;" alias directives
// are recognized separately from plain "using Bar.Baz;" imports because the
// shared lowering walk's import handling has no notion of an assignment
// target; after the shared walk, rewriteUsingAliases turns any import whose
// path contains "=" into an AliasStatement.
func (p *CSharpParser) ParseFileUnit(filePath string, unit *Element) (*graph.Scope, error) {
	root := lowerFileUnit(filePath, unit, p.spec)
	rewriteUsingAliases(root, filePath)
	return root, nil
}

// rewriteUsingAliases finds StmtImport statements whose ImportPath contains
// "=" (the lowering walk's TextContent for "using Foo = Bar.Baz;" includes
// the alias name before the '=') and splits them into a proper
// AliasStatement.
func rewriteUsingAliases(scope *graph.Scope, filePath string) {
	for i, st := range scope.Statements {
		if st.Kind != graph.StmtImport {
			continue
		}
		if name, target, ok := splitAlias(st.ImportPath); ok {
			scope.Statements[i] = &graph.Statement{
				Kind: graph.StmtAlias, Location: st.Location,
				AliasName: name, AliasTarget: target,
				ParentScope: scope, Index: st.Index,
			}
		}
	}
	for _, c := range scope.Children {
		rewriteUsingAliases(c, filePath)
	}
}

func splitAlias(importPath string) (name, target string, ok bool) {
	idx := strings.IndexByte(importPath, '=')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(importPath[:idx]), strings.TrimSpace(importPath[idx+1:]), true
}
