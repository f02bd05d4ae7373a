package parse

import (
	"strings"

	"github.com/viant/scopegraph/graph"
)

// langSpec parameterizes the shared lowering walk with the handful of
// per-language element-name differences srcML's otherwise-shared schema
// still carries: what a using/import/include directive is called, whether
// extern-linkage blocks exist, and which tags introduce a type.
type langSpec struct {
	lang           graph.Language
	typeTags       map[string]bool // class/struct/interface/enum, per language
	namespaceTags  map[string]bool
	importTag      string // "import" (Java), "using_directive" (C#), "cpp:include" (C/C++)
	hasExtern      bool   // extern "C" { ... } — C/C++ only
	wildcardSuffix string // ".*" (Java wildcard import)
}

// lowerFileUnit walks a decoded <unit> element into a Program-surrogate
// scope tree, tagging every node with lang. It is the body every reference
// parser's ParseFileUnit delegates to.
func lowerFileUnit(filePath string, unit *Element, spec langSpec) *graph.Scope {
	root := &graph.Scope{Kind: graph.KindProgram, Language: spec.lang}
	root.Locations = []graph.Location{locOf(filePath, unit)}
	l := &lowerer{filePath: filePath, spec: spec}
	for _, child := range unit.Children {
		l.lowerMember(root, child)
	}
	return root
}

type lowerer struct {
	filePath string
	spec     langSpec
}

func locOf(filePath string, el *Element) graph.Location {
	raw := el.TextContent()
	return graph.Location{
		FilePath: filePath, XPath: el.XPath, StartLine: el.Line, StartColumn: el.Column,
		Length: len(raw), Raw: raw,
	}
}

// lowerMember dispatches one direct child of a scope body: a nested type, a
// method, a declaration, an import/alias/extern statement, or an ordinary
// statement.
func (l *lowerer) lowerMember(parent *graph.Scope, el *Element) {
	switch {
	case l.spec.namespaceTags[el.Name]:
		l.lowerNamespace(parent, el)
	case l.spec.typeTags[el.Name]:
		l.lowerType(parent, el)
	case el.Name == "function" || el.Name == "constructor" || el.Name == "destructor" || el.Name == "method":
		l.lowerMethod(parent, el)
	case el.Name == "decl_stmt":
		l.lowerDeclStmt(parent, el)
	case el.Name == "decl" && isFieldLevel(parent):
		l.lowerDecl(parent, el)
	case el.Name == l.spec.importTag:
		l.lowerImport(parent, el)
	case el.Name == "extern" && l.spec.hasExtern:
		l.lowerExtern(parent, el)
	case el.Name == "block":
		for _, c := range el.Children {
			l.lowerMember(parent, c)
		}
	case el.Name == "expr_stmt":
		l.lowerExprStmt(parent, el)
	case el.Name == "if" || el.Name == "for" || el.Name == "while" || el.Name == "switch" || el.Name == "try" || el.Name == "catch" || el.Name == "do":
		l.lowerControlFlow(parent, el)
	case el.Name == "comment":
		// not part of the scope graph.
	default:
		// Unrecognized element: still walk its children so a wrapper tag
		// (e.g. srcML's <block_content>) does not hide what it contains.
		for _, c := range el.Children {
			l.lowerMember(parent, c)
		}
	}
}

func isFieldLevel(parent *graph.Scope) bool {
	return parent.Kind == graph.KindType
}

func (l *lowerer) lowerNamespace(parent *graph.Scope, el *Element) {
	name := nameOf(el)
	scope := &graph.Scope{
		Kind:          graph.KindNamespace,
		Name:          name,
		QualifiedName: qualify(parent, name),
		Language:      l.spec.lang,
		Locations:     []graph.Location{locOf(l.filePath, el)},
	}
	parent.AddChild(scope)
	if body := el.FirstChildNamed("block"); body != nil {
		for _, c := range body.Children {
			l.lowerMember(scope, c)
		}
	}
}

func (l *lowerer) lowerType(parent *graph.Scope, el *Element) {
	name := nameOf(el)
	scope := &graph.Scope{
		Kind:          graph.KindType,
		Name:          name,
		QualifiedName: qualify(parent, name),
		Language:      l.spec.lang,
		Locations:     []graph.Location{locOf(l.filePath, el)},
		BaseTypes:     superNames(el),
	}
	parent.AddChild(scope)
	if body := el.FirstChildNamed("block"); body != nil {
		for _, c := range body.Children {
			l.lowerMember(scope, c)
		}
	}
}

func (l *lowerer) lowerMethod(parent *graph.Scope, el *Element) {
	name := nameOf(el)
	sig := signatureOf(el)
	scope := &graph.Scope{
		Kind:          graph.KindMethod,
		Name:          name,
		QualifiedName: qualify(parent, name),
		Signature:     sig,
		Language:      l.spec.lang,
		Locations:     []graph.Location{locOf(l.filePath, el)},
	}
	for _, p := range paramNames(el) {
		scope.Declarations = append(scope.Declarations, &graph.VariableDeclaration{
			Name: p.name, TypeText: p.typ, Location: locOf(l.filePath, el), ParentScope: scope,
		})
	}
	parent.AddChild(scope)
	if body := el.FirstChildNamed("block"); body != nil {
		for _, c := range body.Children {
			l.lowerMember(scope, c)
		}
	}
}

func (l *lowerer) lowerDeclStmt(parent *graph.Scope, el *Element) {
	for _, d := range el.ChildrenNamed("decl") {
		l.lowerDecl(parent, d)
	}
}

func (l *lowerer) lowerDecl(parent *graph.Scope, el *Element) {
	name := nameOf(el)
	// A declaration isn't itself wrapped in a Statement, but Expression.ParentStmt
	// is always set (§ lowerExpr), so DeclaredType/Initializer share a surrogate
	// statement anchored at this decl's own location, the same device collectCalls
	// uses for a bare <call> outside any statement it walked into.
	stmt := &graph.Statement{Kind: graph.StmtOther, Location: locOf(l.filePath, el), ParentScope: parent}

	typ := ""
	var declaredType *graph.Expression
	if t := el.FirstChildNamed("type"); t != nil {
		typ = strings.TrimSpace(t.TextContent())
		declaredType = l.lowerExpr(stmt, nil, t)
	}

	decl := &graph.VariableDeclaration{
		Name: name, TypeText: typ, DeclaredType: declaredType,
		Location: locOf(l.filePath, el), ParentScope: parent,
	}
	if init := el.FirstChildNamed("init"); init != nil {
		if expr := init.FirstChildNamed("expr"); expr != nil {
			decl.Initializer = l.lowerExpr(stmt, nil, expr)
			l.collectCalls(parent, expr)
		}
	}
	parent.Declarations = append(parent.Declarations, decl)
}

func (l *lowerer) lowerImport(parent *graph.Scope, el *Element) {
	path := strings.TrimSpace(el.TextContent())
	path = strings.TrimPrefix(path, "import")
	path = strings.TrimPrefix(path, "using")
	path = strings.TrimSuffix(strings.TrimSpace(path), ";")
	path = strings.TrimSpace(path)
	wildcard := l.spec.wildcardSuffix != "" && strings.HasSuffix(path, l.spec.wildcardSuffix)
	if wildcard {
		path = strings.TrimSuffix(path, l.spec.wildcardSuffix)
	}
	parent.Statements = append(parent.Statements, &graph.Statement{
		Kind: graph.StmtImport, Location: locOf(l.filePath, el),
		ImportPath: path, Wildcard: wildcard, ParentScope: parent, Index: len(parent.Statements),
	})
}

func (l *lowerer) lowerExtern(parent *graph.Scope, el *Element) {
	linkage := strings.Trim(strings.TrimSpace(el.FirstChildNamed("literal").TextContentOrEmpty()), `"`)
	parent.Statements = append(parent.Statements, &graph.Statement{
		Kind: graph.StmtExtern, Location: locOf(l.filePath, el),
		ExternLanguage: linkage, ParentScope: parent, Index: len(parent.Statements),
	})
	// Extern linkage is transparent for name matching: nested declarations
	// become direct children of the enclosing scope (rule 5), the statement
	// above only records the linkage tag for round-tripping.
	if body := el.FirstChildNamed("block"); body != nil {
		for _, c := range body.Children {
			l.lowerMember(parent, c)
		}
	}
}

func (l *lowerer) lowerExprStmt(parent *graph.Scope, el *Element) {
	stmt := &graph.Statement{Kind: graph.StmtOther, Location: locOf(l.filePath, el), ParentScope: parent, Index: len(parent.Statements)}
	if expr := el.FirstChildNamed("expr"); expr != nil {
		stmt.Expressions = append(stmt.Expressions, l.lowerExpr(stmt, nil, expr))
	}
	parent.Statements = append(parent.Statements, stmt)
	l.collectCalls(parent, el)
}

func (l *lowerer) lowerControlFlow(parent *graph.Scope, el *Element) {
	stmt := &graph.Statement{Kind: graph.StmtOther, Location: locOf(l.filePath, el), ParentScope: parent, Index: len(parent.Statements)}
	if cond := el.FirstChildNamed("condition"); cond != nil {
		if expr := cond.FirstChildNamed("expr"); expr != nil {
			stmt.Expressions = append(stmt.Expressions, l.lowerExpr(stmt, nil, expr))
		}
	}
	parent.Statements = append(parent.Statements, stmt)
	l.collectCalls(parent, el)

	block := &graph.Scope{Kind: graph.KindBlock, Language: l.spec.lang, Locations: []graph.Location{locOf(l.filePath, el)}}
	parent.AddChild(block)
	for _, body := range el.ChildrenNamed("block") {
		for _, c := range body.Children {
			l.lowerMember(block, c)
		}
	}
}

// lowerExpr lowers an <expr>/<name>/<operator>/<call>/<literal>/<type> tree
// into graph.Expression nodes, linking ParentStmt on every node regardless
// of nesting depth.
func (l *lowerer) lowerExpr(stmt *graph.Statement, parentExpr *graph.Expression, el *Element) *graph.Expression {
	switch el.Name {
	case "call":
		call := &graph.Expression{Kind: graph.ExprCall, Location: locOf(l.filePath, el), ParentStmt: stmt, ParentExpr: parentExpr}
		if n := el.FirstChildNamed("name"); n != nil {
			call.Children = append(call.Children, l.lowerName(stmt, call, n))
		}
		if args := el.FirstChildNamed("argument_list"); args != nil {
			for _, a := range args.ChildrenNamed("argument") {
				if e := a.FirstChildNamed("expr"); e != nil {
					call.Children = append(call.Children, l.lowerExpr(stmt, call, e))
				}
			}
		}
		return call
	case "name":
		return l.lowerName(stmt, parentExpr, el)
	case "operator":
		return &graph.Expression{Kind: graph.ExprOperator, Operator: strings.TrimSpace(el.TextContent()), Location: locOf(l.filePath, el), ParentStmt: stmt, ParentExpr: parentExpr}
	case "literal":
		return &graph.Expression{Kind: graph.ExprLiteral, Text: strings.TrimSpace(el.TextContent()), Location: locOf(l.filePath, el), ParentStmt: stmt, ParentExpr: parentExpr}
	case "type":
		return &graph.Expression{Kind: graph.ExprType, Text: strings.TrimSpace(el.TextContent()), Location: locOf(l.filePath, el), ParentStmt: stmt, ParentExpr: parentExpr}
	case "expr":
		// An <expr> wrapper with a single meaningful child (common in
		// srcML); flatten by lowering the children directly under a
		// synthetic grouping node only when there is more than one.
		if len(el.Children) == 1 {
			return l.lowerExpr(stmt, parentExpr, el.Children[0])
		}
		group := &graph.Expression{Kind: graph.ExprOperator, Location: locOf(l.filePath, el), ParentStmt: stmt, ParentExpr: parentExpr}
		for _, c := range el.Children {
			group.Children = append(group.Children, l.lowerExpr(stmt, group, c))
		}
		return group
	default:
		leaf := &graph.Expression{Kind: graph.ExprLiteral, Text: strings.TrimSpace(el.TextContent()), Location: locOf(l.filePath, el), ParentStmt: stmt, ParentExpr: parentExpr}
		return leaf
	}
}

// lowerName lowers a (possibly dotted-chain) <name> element. srcML nests a
// qualified name as <name><name>A</name><operator>.</operator><name>B</name></name>;
// the outermost <name> becomes the NameUse for the last segment, with every
// earlier segment folded into a NamePrefix child.
func (l *lowerer) lowerName(stmt *graph.Statement, parentExpr *graph.Expression, el *Element) *graph.Expression {
	nested := el.ChildrenNamed("name")
	if len(nested) == 0 {
		return &graph.Expression{Kind: graph.ExprNameUse, Name: strings.TrimSpace(el.TextContent()), Location: locOf(l.filePath, el), ParentStmt: stmt, ParentExpr: parentExpr}
	}
	use := &graph.Expression{Kind: graph.ExprNameUse, Name: strings.TrimSpace(nested[len(nested)-1].TextContent()), Location: locOf(l.filePath, el), ParentStmt: stmt, ParentExpr: parentExpr}
	prefix := &graph.Expression{Kind: graph.ExprNamePrefix, Location: locOf(l.filePath, el), ParentStmt: stmt, ParentExpr: use}
	for _, n := range nested[:len(nested)-1] {
		prefix.Children = append(prefix.Children, &graph.Expression{Kind: graph.ExprNameUse, Name: strings.TrimSpace(n.TextContent()), Location: locOf(l.filePath, n), ParentStmt: stmt, ParentExpr: prefix})
	}
	use.Children = append(use.Children, prefix)
	return use
}

// collectCalls walks an element subtree for <call> nodes and records a
// MethodCall fact on scope, the query surface's raw material (§4.7).
func (l *lowerer) collectCalls(scope *graph.Scope, el *Element) {
	if el.Name == "call" {
		name := ""
		if n := el.FirstChildNamed("name"); n != nil {
			name = lastSegment(n)
		}
		stmt := &graph.Statement{Kind: graph.StmtOther, Location: locOf(l.filePath, el), ParentScope: scope}
		expr := l.lowerExpr(stmt, nil, el)
		scope.MethodCalls = append(scope.MethodCalls, &graph.MethodCall{
			CalleeName: name, Location: locOf(l.filePath, el), ParentScope: scope, Expression: expr,
		})
	}
	for _, c := range el.Children {
		l.collectCalls(scope, c)
	}
}

func lastSegment(nameEl *Element) string {
	nested := nameEl.ChildrenNamed("name")
	if len(nested) == 0 {
		return strings.TrimSpace(nameEl.TextContent())
	}
	return strings.TrimSpace(nested[len(nested)-1].TextContent())
}

func nameOf(el *Element) string {
	if n := el.FirstChildNamed("name"); n != nil {
		return lastSegment(n)
	}
	return ""
}

func qualify(parent *graph.Scope, name string) string {
	if parent == nil || parent.QualifiedName == "" {
		return name
	}
	return parent.QualifiedName + "." + name
}

func superNames(el *Element) []string {
	list := el.FirstChildNamed("super_list", "super")
	if list == nil {
		return nil
	}
	var names []string
	for _, n := range list.ChildrenNamed("name") {
		names = append(names, lastSegment(n))
	}
	if len(names) == 0 {
		for _, n := range list.Children {
			if n.Name == "name" {
				names = append(names, lastSegment(n))
			}
		}
	}
	return names
}

type param struct{ name, typ string }

func paramNames(el *Element) []param {
	list := el.FirstChildNamed("parameter_list")
	if list == nil {
		return nil
	}
	var params []param
	for _, p := range list.ChildrenNamed("parameter") {
		decl := p.FirstChildNamed("decl")
		if decl == nil {
			continue
		}
		typ := ""
		if t := decl.FirstChildNamed("type"); t != nil {
			typ = strings.TrimSpace(t.TextContent())
		}
		params = append(params, param{name: nameOf(decl), typ: typ})
	}
	return params
}

// signatureOf derives a MethodDefinition's merge-identity signature from its
// parameter type list, e.g. "(int,string)" — stable across files and good
// enough to disambiguate overloads without full type resolution (Non-goal:
// no type inference).
func signatureOf(el *Element) string {
	params := paramNames(el)
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = p.typ
	}
	return "(" + strings.Join(types, ",") + ")"
}

func (e *Element) TextContentOrEmpty() string {
	if e == nil {
		return ""
	}
	return e.TextContent()
}
