package ast

import "fmt"

// Children returns the direct sub-expressions of e, left to right. Nested
// queries are not expressions and are not included; see Subquery.
//
// A SimpleCase's only child is its desugared IfElse, which already contains
// the operand and every arm.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *VarRef, *BindVariable, *Literal, *Star, *Exists, *ScalarSubquery:
		return nil
	case *PropRef:
		if n.Var == nil {
			return nil
		}
		return []Expr{n.Var}
	case *Not:
		return []Expr{n.Expr}
	case *UnaryMinus:
		return []Expr{n.Expr}
	case *And:
		return []Expr{n.Left, n.Right}
	case *Or:
		return []Expr{n.Left, n.Right}
	case *Arithmetic:
		return []Expr{n.Left, n.Right}
	case *Equality:
		return []Expr{n.Left, n.Right}
	case *Comparison:
		return []Expr{n.Left, n.Right}
	case *Aggregate:
		return nonNil(n.Arg)
	case *InPredicate:
		return append(nonNil(n.Expr), n.Values...)
	case *IsNull:
		return nonNil(n.Expr)
	case *Cast:
		return nonNil(n.Expr)
	case *FunctionCall:
		return n.Args
	case *CharacterSubstring:
		return nonNil(n.Expr, n.Start, n.Length)
	case *Extract:
		return nonNil(n.Expr)
	case *IfElse:
		return nonNil(n.Cond, n.Then, n.Else)
	case *SimpleCase:
		if n.IfElse == nil {
			return nil
		}
		return []Expr{n.IfElse}
	case *BuiltinCall:
		return append(nonNil(n.Target), n.Args...)
	default:
		panic(fmt.Sprintf("ast: unexpected expression type %T", e))
	}
}

// Subquery returns the query nested directly in e, or nil.
func Subquery(e Expr) *Query {
	switch n := e.(type) {
	case *Exists:
		return n.Query
	case *ScalarSubquery:
		return n.Query
	default:
		return nil
	}
}

// Inspect traverses e depth-first in pre-order, calling fn for each
// expression. If fn returns false, Inspect skips that node's children.
// Inspect does not enter nested queries.
func Inspect(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range Children(e) {
		Inspect(c, fn)
	}
}

// Roots returns the top-level expressions of q in clause order. Expressions
// of path macros are not included; they belong to the macro's own block.
func Roots(q *Query) []Expr {
	var roots []Expr
	if q.Select != nil {
		for _, p := range q.Select.Projections {
			roots = append(roots, p.Expr)
		}
	}
	if q.Modify != nil {
		for _, s := range q.Modify.Sets {
			if s.Target != nil {
				roots = append(roots, s.Target)
			}
			roots = append(roots, s.Value)
		}
		for _, d := range q.Modify.Deletes {
			roots = append(roots, d)
		}
	}
	roots = append(roots, nonNil(q.Where)...)
	for _, g := range q.GroupBy {
		roots = append(roots, g.Expr)
	}
	roots = append(roots, nonNil(q.Having)...)
	for _, o := range q.OrderBy {
		roots = append(roots, o.Expr)
	}
	return append(roots, nonNil(q.Limit, q.Offset)...)
}

func nonNil(exprs ...Expr) []Expr {
	out := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
