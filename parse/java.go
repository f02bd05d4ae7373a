package parse

import "github.com/viant/scopegraph/graph"

// JavaParser lowers Java file units: class/interface/enum types, package
// declarations folded into namespace scopes, and wildcard imports.
type JavaParser struct{ spec langSpec }

// NewJavaParser returns the reference Java parser.
func NewJavaParser() *JavaParser {
	return &JavaParser{spec: langSpec{
		lang:           graph.LanguageJava,
		typeTags:       tagSet("class", "interface", "enum"),
		namespaceTags:  tagSet("package"),
		importTag:      "import",
		wildcardSuffix: ".*",
	}}
}

// ParseFileUnit implements Parser.
func (p *JavaParser) ParseFileUnit(filePath string, unit *Element) (*graph.Scope, error) {
	return lowerFileUnit(filePath, unit, p.spec), nil
}
