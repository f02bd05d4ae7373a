package graph

// StmtKind tags the statement variants §3 calls out by name; anything not
// import/alias/extern-linkage is recorded as StmtOther so control-flow and
// ordinary statements still occupy a position for sibling-ordering purposes
// (§4.3's alias walk needs "siblings before the NameUse's parent statement").
type StmtKind int

const (
	StmtOther StmtKind = iota
	StmtImport
	StmtAlias
	StmtExtern
)

// Statement is a direct child of a Scope's executable body. Only Import,
// Alias, and Extern carry language-resolution meaning; the rest exist so
// GetSiblingsBeforeSelf walks real source order.
type Statement struct {
	Kind     StmtKind
	Location Location

	ParentScope *Scope
	Index       int // position among ParentScope.Statements, source order

	// Import: the imported namespace/package path, e.g. "java.util.List" or
	// "std::vector". Wildcard imports (import java.util.*) store the path
	// without the trailing ".*" and set Wildcard.
	ImportPath string
	Wildcard   bool

	// Alias: "using Foo = Bar.Baz;" / "namespace N = M;" — AliasName binds to
	// AliasTarget (a dotted qualified name, resolved like a qualified NameUse).
	AliasName   string
	AliasTarget string

	// Extern: "extern "C" { ... }" linkage blocks; the linkage tag only. The
	// block's contents are lowered into the enclosing scope, which keeps them
	// transparent during resolution (§4.2 rule 5).
	ExternLanguage string

	// Expressions directly owned by this statement (e.g. the condition of an
	// if, the initializer of a declaration) in source order.
	Expressions []*Expression
}
