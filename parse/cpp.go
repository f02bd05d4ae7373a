package parse

import "github.com/viant/scopegraph/graph"

// CPPParser lowers C++ file units: class/struct/union/enum types, namespace
// blocks, and extern "C" linkage.
type CPPParser struct{ spec langSpec }

// NewCPPParser returns the reference C++ parser.
func NewCPPParser() *CPPParser {
	return &CPPParser{spec: langSpec{
		lang:          graph.LanguageCPP,
		typeTags:      tagSet("class", "struct", "union", "enum"),
		namespaceTags: tagSet("namespace"),
		importTag:     "cpp:include",
		hasExtern:     true,
	}}
}

// ParseFileUnit implements Parser.
func (p *CPPParser) ParseFileUnit(filePath string, unit *Element) (*graph.Scope, error) {
	return lowerFileUnit(filePath, unit, p.spec), nil
}

func tagSet(tags ...string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}
