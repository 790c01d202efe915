package checker

import (
	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/diag"
	"github.com/roach88/pgqlcheck/internal/types"
)

// Each Visit method is the rule for one expression kind. Children are typed
// first, then the rule's constraints run, then the result type is returned.
// A rule always returns a type, also when it reports a diagnostic.

func (c *checker) VisitVarRef(n *ast.VarRef) types.Type {
	t := c.mustLookup(n.Name, c.scope(), n)
	if types.IsUnknown(t) {
		// Aliases are defined without a type; they take the type of the
		// aliased expression.
		if ev := c.alias(n.Name); ev != nil {
			t = c.expAsVar(ev)
		}
	}
	if t == types.Path {
		c.errorf(n, diag.KindUnsupportedVariableKind, msgPathVariable)
	}
	return t
}

func (c *checker) VisitPropRef(n *ast.PropRef) types.Type {
	if n.Var != nil {
		c.expr(n.Var)
	}
	return types.Unknown
}

func (c *checker) VisitBindVariable(*ast.BindVariable) types.Type {
	return types.Unknown
}

func (c *checker) VisitLiteral(n *ast.Literal) types.Type {
	switch n.Kind {
	case ast.LitBoolean:
		return types.Boolean
	case ast.LitInteger, ast.LitDecimal:
		return types.Numeric
	case ast.LitString:
		return types.String
	case ast.LitDate:
		return types.Date
	case ast.LitTime:
		return types.Time
	case ast.LitTimestamp:
		return types.Timestamp
	default:
		return types.Unknown
	}
}

func (c *checker) VisitNot(n *ast.Not) types.Type {
	t := c.expr(n.Expr)
	c.checkOperand(n.Expr, t, msgBooleanExpected)
	return types.Boolean
}

func (c *checker) VisitAnd(n *ast.And) types.Type {
	lt, rt := c.expr(n.Left), c.expr(n.Right)
	c.checkOperand(n.Left, lt, msgBooleanExpected)
	c.checkOperand(n.Right, rt, msgBooleanExpected)
	return types.Boolean
}

func (c *checker) VisitOr(n *ast.Or) types.Type {
	lt, rt := c.expr(n.Left), c.expr(n.Right)
	c.checkOperand(n.Left, lt, msgBooleanExpected)
	c.checkOperand(n.Right, rt, msgBooleanExpected)
	return types.Boolean
}

func (c *checker) VisitUnaryMinus(n *ast.UnaryMinus) types.Type {
	t := c.expr(n.Expr)
	c.checkOperand(n.Expr, t, msgNumericExpected)
	return c.policy.NumericResult
}

func (c *checker) VisitArithmetic(n *ast.Arithmetic) types.Type {
	lt, rt := c.expr(n.Left), c.expr(n.Right)
	c.checkOperand(n.Left, lt, msgNumericExpected)
	c.checkOperand(n.Right, rt, msgNumericExpected)
	return c.policy.NumericResult
}

// checkOperand is the version-gated Vertex/Edge check shared by the logical
// and arithmetic operators.
func (c *checker) checkOperand(e ast.Expr, t types.Type, msg string) {
	if !c.policy.EnforceOperandTypes {
		return
	}
	if types.IsVertexOrEdge(t) {
		c.errorf(e, diag.KindTypeMismatch, msg)
	}
}

func (c *checker) VisitEquality(n *ast.Equality) types.Type {
	c.expr(n.Left)
	c.expr(n.Right)
	return types.Boolean
}

func (c *checker) VisitComparison(n *ast.Comparison) types.Type {
	lt, rt := c.expr(n.Left), c.expr(n.Right)
	c.checkComparable(n.Left, lt)
	c.checkComparable(n.Right, rt)
	return types.Boolean
}

// checkComparable runs three independent checks; each may report.
func (c *checker) checkComparable(e ast.Expr, t types.Type) {
	if types.Forbidden(t, types.Vertex) {
		c.errorf(e, diag.KindTypeMismatch, msgCompareVertex)
	}
	if types.Forbidden(t, types.Edge) {
		c.errorf(e, diag.KindTypeMismatch, msgCompareEdge)
	}
	if types.IsArray(t) {
		c.errorf(e, diag.KindTypeMismatch, msgCompareArray)
	}
}

func (c *checker) VisitAggregate(n *ast.Aggregate) types.Type {
	t := c.expr(n.Arg)
	switch n.Func {
	case ast.Count:
		return types.Numeric
	case ast.ArrayAgg:
		c.checkAggregateInput(n.Arg, t)
		return types.Array
	default:
		c.checkAggregateInput(n.Arg, t)
		return t
	}
}

func (c *checker) checkAggregateInput(e ast.Expr, t types.Type) {
	if e == nil {
		return
	}
	if types.IsVertexOrEdge(t) {
		c.errorf(e, diag.KindTypeMismatch, msgAggregateVertexEdge)
	}
	if types.IsArray(t) {
		c.errorf(e, diag.KindTypeMismatch, msgAggregateArray)
	}
}

func (c *checker) VisitExists(n *ast.Exists) types.Type {
	c.subquery(n.Query)
	return types.Boolean
}

func (c *checker) VisitInPredicate(n *ast.InPredicate) types.Type {
	c.exprs(ast.Children(n))
	return types.Boolean
}

func (c *checker) VisitIsNull(n *ast.IsNull) types.Type {
	c.expr(n.Expr)
	return types.Boolean
}

func (c *checker) VisitCast(n *ast.Cast) types.Type {
	c.expr(n.Expr)
	return types.Unknown
}

func (c *checker) VisitFunctionCall(n *ast.FunctionCall) types.Type {
	c.exprs(n.Args)
	return types.Unknown
}

func (c *checker) VisitStar(*ast.Star) types.Type {
	return types.Unknown
}

func (c *checker) VisitCharacterSubstring(n *ast.CharacterSubstring) types.Type {
	c.exprs(ast.Children(n))
	return types.String
}

func (c *checker) VisitExtract(n *ast.Extract) types.Type {
	c.expr(n.Expr)
	return types.Numeric
}

func (c *checker) VisitIfElse(n *ast.IfElse) types.Type {
	condT, thenT, elseT := c.expr(n.Cond), c.expr(n.Then), c.expr(n.Else)
	if n.Cond != nil && !types.IsBooleanCompatible(condT) {
		c.errorf(n.Cond, diag.KindTypeMismatch, msgBooleanExpected)
	}
	if n.Then != nil && types.IsVertexOrEdge(thenT) {
		c.errorf(n.Then, diag.KindTypeMismatch, msgCaseOutput)
	}
	if n.Else != nil && types.IsVertexOrEdge(elseT) {
		c.errorf(n.Else, diag.KindTypeMismatch, msgCaseOutput)
	}
	return thenT
}

func (c *checker) VisitSimpleCase(n *ast.SimpleCase) types.Type {
	if n.IfElse == nil {
		// No WHEN clauses: nothing to desugar, but the operand and ELSE
		// are still expressions of the query.
		c.expr(n.Operand)
		return c.expr(n.Else)
	}
	return c.expr(n.IfElse)
}

// VisitScalarSubquery types a subquery used as a value. Only the first
// projection is inspected; later projections are checked as ordinary
// expressions of the inner query but not against the scalar rule.
func (c *checker) VisitScalarSubquery(n *ast.ScalarSubquery) types.Type {
	q := n.Query
	c.subquery(q)
	if q == nil {
		return types.Unknown
	}
	if q.IsModify() {
		return types.None
	}
	if q.Select == nil || len(q.Select.Projections) == 0 {
		return types.Unknown
	}
	t := c.types[q.Select.Projections[0]]
	if types.IsVertexOrEdge(t) {
		c.errorf(n, diag.KindInvalidSubqueryProjection, msgScalarSubquery)
	}
	return t
}

// builtinDomain is the kind of graph element a built-in accepts.
type builtinDomain int

const (
	vertexOnly builtinDomain = iota
	edgeOnly
	vertexOrEdge
)

func builtinSignature(f ast.BuiltinFunc, numeric types.Type) (builtinDomain, types.Type) {
	switch f {
	case ast.InDegree, ast.OutDegree:
		return vertexOnly, numeric
	case ast.Labels:
		return vertexOnly, types.StringSet
	case ast.Label:
		return edgeOnly, types.String
	case ast.Has, ast.HasLabel:
		return vertexOrEdge, types.Boolean
	case ast.ID:
		return vertexOrEdge, numeric
	default:
		return vertexOrEdge, types.Unknown
	}
}

func (c *checker) VisitBuiltinCall(n *ast.BuiltinCall) types.Type {
	t := c.expr(n.Target)
	c.exprs(n.Args)

	domain, result := builtinSignature(n.Func, c.policy.NumericResult)
	if n.Target == nil {
		return result
	}
	switch domain {
	case vertexOnly:
		if !types.Is(t, types.Vertex) {
			c.errorf(n.Target, diag.KindFunctionDomainError, msgExpectsVertex, n.Func)
		}
	case edgeOnly:
		if !types.Is(t, types.Edge) {
			c.errorf(n.Target, diag.KindFunctionDomainError, msgExpectsEdge, n.Func)
		}
	case vertexOrEdge:
		if !types.IsAny(t, types.Vertex, types.Edge) {
			c.errorf(n.Target, diag.KindFunctionDomainError, msgExpectsVertexOrEdge, n.Func)
		}
	}
	return result
}

func (c *checker) exprs(es []ast.Expr) {
	for _, e := range es {
		c.expr(e)
	}
}
