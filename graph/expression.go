package graph

// ExprKind tags the expression variants named in §3/§4.3: NameUse (with an
// optional NamePrefix child for qualified/dotted-chain forms), OperatorUse,
// MethodCall (as an expression, distinct from the MethodCall fact in
// declaration.go),
// LiteralUse, and TypeUse.
type ExprKind int

const (
	ExprNameUse ExprKind = iota
	ExprNamePrefix
	ExprOperator
	ExprCall
	ExprLiteral
	ExprType
)

// Expression is a node inside a statement's expression tree. NameUse is the
// only variant name resolution cares about; the others exist so a NameUse's
// siblings (operator, prefix) can be inspected to decide which resolution
// rule in §4.3 applies.
type Expression struct {
	Kind     ExprKind
	Location Location

	// NameUse / NamePrefix: the identifier text, e.g. "foo" or "Bar".
	Name string

	// OperatorUse: the operator token, e.g. ".", "->", "::".
	Operator string

	// LiteralUse / TypeUse: the literal or type text as written.
	Text string

	Children []*Expression

	ParentExpr *Expression // nil if this expression is statement-level
	ParentStmt *Statement  // always set, even when ParentExpr != nil
	Index      int         // position among siblings, source order
}

// IsKeyword reports whether a NameUse spells a language-specific
// self/base-reference keyword resolved without a lookup (§4.3 step 1).
func (e *Expression) IsKeyword(lang Language) bool {
	if e.Kind != ExprNameUse {
		return false
	}
	switch e.Name {
	case "this":
		return true
	case "base":
		return lang == LanguageCSharp
	case "super":
		return lang == LanguageJava
	default:
		return false
	}
}

// Prefix returns the NamePrefix child that precedes a qualified NameUse, if
// any (e.g. the "Foo" in "Foo.Bar" when the whole chain lowers to one
// NameUse with a NamePrefix rather than two chained NameUses).
func (e *Expression) Prefix() *Expression {
	for _, c := range e.Children {
		if c.Kind == ExprNamePrefix {
			return c
		}
	}
	return nil
}

// PrecedingOperator returns the OperatorUse sibling immediately before e, if
// e is the right-hand side of a dotted-chain access ("a.b", "a->b", "a::b")
// — §4.3 step 3's dotted-chain detection.
func (e *Expression) PrecedingOperator() *Expression {
	siblings := e.siblingSlice()
	if siblings == nil {
		return nil
	}
	for i, s := range siblings {
		if s == e && i > 0 {
			prev := siblings[i-1]
			if prev.Kind == ExprOperator && (prev.Operator == "." || prev.Operator == "->" || prev.Operator == "::") {
				return prev
			}
		}
	}
	return nil
}

// Receiver returns the expression immediately before e's preceding operator,
// i.e. the "a" in "a.b" / "a->b" / "a::b".
func (e *Expression) Receiver() *Expression {
	siblings := e.siblingSlice()
	op := e.PrecedingOperator()
	if op == nil || siblings == nil {
		return nil
	}
	for i, s := range siblings {
		if s == op && i > 0 {
			return siblings[i-1]
		}
	}
	return nil
}

func (e *Expression) siblingSlice() []*Expression {
	if e.ParentExpr != nil {
		return e.ParentExpr.Children
	}
	if e.ParentStmt != nil {
		return e.ParentStmt.Expressions
	}
	return nil
}
