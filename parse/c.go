package parse

import "github.com/viant/scopegraph/graph"

// CParser lowers C file units: struct/union/enum types (no classes) and
// extern "C" linkage. C has no namespace construct.
type CParser struct{ spec langSpec }

// NewCParser returns the reference C parser.
func NewCParser() *CParser {
	return &CParser{spec: langSpec{
		lang:      graph.LanguageC,
		typeTags:  tagSet("struct", "union", "enum"),
		importTag: "cpp:include",
		hasExtern: true,
	}}
}

// ParseFileUnit implements Parser.
func (p *CParser) ParseFileUnit(filePath string, unit *Element) (*graph.Scope, error) {
	return lowerFileUnit(filePath, unit, p.spec), nil
}
