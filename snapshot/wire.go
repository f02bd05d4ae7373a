package snapshot

import "github.com/viant/scopegraph/graph"

// The wire* types mirror the graph package's node types but omit every
// back-reference (Parent, ParentScope, ParentStmt, ParentExpr). gob cannot
// encode the cyclic pointer graph those back-references create (a Scope's
// Declarations point back at the Scope that owns them); the wire tree is a
// strict DAG, and toWire/fromWire reconstruct the back-references on load
// by passing the parent down explicitly instead of storing it.

type wireScope struct {
	Kind          graph.ScopeKind
	Name          string
	QualifiedName string
	Signature     string
	Language      graph.Language
	Locations     []graph.Location
	BaseTypes     []string
	Children      []*wireScope
	Declarations  []*wireDeclaration
	MethodCalls   []*wireMethodCall
	Statements    []*wireStatement
}

type wireStatement struct {
	Kind           graph.StmtKind
	Location       graph.Location
	Index          int
	ImportPath     string
	Wildcard       bool
	AliasName      string
	AliasTarget    string
	ExternLanguage string
	Expressions    []*wireExpression
}

type wireExpression struct {
	Kind     graph.ExprKind
	Location graph.Location
	Name     string
	Operator string
	Text     string
	Index    int
	Children []*wireExpression
}

type wireDeclaration struct {
	Name         string
	TypeText     string
	Location     graph.Location
	Index        int
	DeclaredType *wireExpression
	Initializer  *wireExpression
}

type wireMethodCall struct {
	CalleeName string
	Location   graph.Location
	Expression *wireExpression
}

func toWireScope(s *graph.Scope) *wireScope {
	if s == nil {
		return nil
	}
	w := &wireScope{
		Kind: s.Kind, Name: s.Name, QualifiedName: s.QualifiedName, Signature: s.Signature,
		Language: s.Language, Locations: s.Locations, BaseTypes: s.BaseTypes,
	}
	for _, c := range s.Children {
		w.Children = append(w.Children, toWireScope(c))
	}
	for _, d := range s.Declarations {
		w.Declarations = append(w.Declarations, toWireDeclaration(d))
	}
	for _, m := range s.MethodCalls {
		w.MethodCalls = append(w.MethodCalls, toWireMethodCall(m))
	}
	for _, st := range s.Statements {
		w.Statements = append(w.Statements, toWireStatement(st))
	}
	return w
}

func toWireStatement(st *graph.Statement) *wireStatement {
	w := &wireStatement{
		Kind: st.Kind, Location: st.Location, Index: st.Index,
		ImportPath: st.ImportPath, Wildcard: st.Wildcard,
		AliasName: st.AliasName, AliasTarget: st.AliasTarget,
		ExternLanguage: st.ExternLanguage,
	}
	for _, e := range st.Expressions {
		w.Expressions = append(w.Expressions, toWireExpression(e))
	}
	return w
}

func toWireExpression(e *graph.Expression) *wireExpression {
	if e == nil {
		return nil
	}
	w := &wireExpression{Kind: e.Kind, Location: e.Location, Name: e.Name, Operator: e.Operator, Text: e.Text, Index: e.Index}
	for _, c := range e.Children {
		w.Children = append(w.Children, toWireExpression(c))
	}
	return w
}

func toWireDeclaration(d *graph.VariableDeclaration) *wireDeclaration {
	return &wireDeclaration{
		Name: d.Name, TypeText: d.TypeText, Location: d.Location, Index: d.Index,
		DeclaredType: toWireExpression(d.DeclaredType), Initializer: toWireExpression(d.Initializer),
	}
}

func toWireMethodCall(m *graph.MethodCall) *wireMethodCall {
	return &wireMethodCall{CalleeName: m.CalleeName, Location: m.Location, Expression: toWireExpression(m.Expression)}
}

// fromWireScope reconstructs a graph.Scope tree, wiring Parent/ParentScope/
// ParentStmt/ParentExpr and the childIndex map (via ReplaceChildren) as it
// descends.
func fromWireScope(w *wireScope) *graph.Scope {
	if w == nil {
		return nil
	}
	s := &graph.Scope{
		Kind: w.Kind, Name: w.Name, QualifiedName: w.QualifiedName, Signature: w.Signature,
		Language: w.Language, Locations: w.Locations, BaseTypes: w.BaseTypes,
	}
	// Declaration and call expressions hang off a surrogate statement anchored
	// at the owner's location, as the parser's lowering does.
	for _, wd := range w.Declarations {
		anchor := &graph.Statement{Kind: graph.StmtOther, Location: wd.Location, ParentScope: s}
		d := &graph.VariableDeclaration{
			Name: wd.Name, TypeText: wd.TypeText, Location: wd.Location, Index: wd.Index, ParentScope: s,
			DeclaredType: fromWireExpression(wd.DeclaredType, anchor, nil),
			Initializer:  fromWireExpression(wd.Initializer, anchor, nil),
		}
		s.Declarations = append(s.Declarations, d)
	}
	for _, wm := range w.MethodCalls {
		anchor := &graph.Statement{Kind: graph.StmtOther, Location: wm.Location, ParentScope: s}
		m := &graph.MethodCall{CalleeName: wm.CalleeName, Location: wm.Location, ParentScope: s, Expression: fromWireExpression(wm.Expression, anchor, nil)}
		s.MethodCalls = append(s.MethodCalls, m)
	}
	for _, wst := range w.Statements {
		st := &graph.Statement{
			Kind: wst.Kind, Location: wst.Location, Index: wst.Index, ParentScope: s,
			ImportPath: wst.ImportPath, Wildcard: wst.Wildcard,
			AliasName: wst.AliasName, AliasTarget: wst.AliasTarget,
			ExternLanguage: wst.ExternLanguage,
		}
		for _, we := range wst.Expressions {
			st.Expressions = append(st.Expressions, fromWireExpression(we, st, nil))
		}
		s.Statements = append(s.Statements, st)
	}
	children := make([]*graph.Scope, 0, len(w.Children))
	for _, wc := range w.Children {
		children = append(children, fromWireScope(wc))
	}
	s.ReplaceChildren(children)
	return s
}

func fromWireExpression(w *wireExpression, stmt *graph.Statement, parentExpr *graph.Expression) *graph.Expression {
	if w == nil {
		return nil
	}
	e := &graph.Expression{
		Kind: w.Kind, Location: w.Location, Name: w.Name, Operator: w.Operator, Text: w.Text,
		Index: w.Index, ParentStmt: stmt, ParentExpr: parentExpr,
	}
	for _, wc := range w.Children {
		e.Children = append(e.Children, fromWireExpression(wc, stmt, e))
	}
	return e
}
