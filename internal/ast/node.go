package ast

import (
	"fmt"

	"github.com/roach88/pgqlcheck/internal/types"
)

// Pos is a source location. The zero value means "no position".
type Pos struct {
	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// Position returns p. Embedding Pos gives every node its Position method.
func (p Pos) Position() Pos { return p }

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ScopeID names a query block. Every Query and PathMacro opens one.
type ScopeID string

// Node is any element of the tree: expressions, clauses and pattern elements.
// Node values are compared by identity; all node types are used as pointers.
type Node interface {
	Position() Pos
}

// Expr is an expression node.
//
// This is a sealed interface - only types in this package implement it.
// Accept dispatches to the Visitor method for the concrete kind.
type Expr interface {
	Node
	Accept(v Visitor) types.Type
	exprNode() // Marker method - seals interface to this package
}

// Visitor has exactly one method per expression kind. Adding a kind to this
// package means adding a method here, which breaks every Visitor that does
// not yet handle it.
type Visitor interface {
	VisitVarRef(*VarRef) types.Type
	VisitPropRef(*PropRef) types.Type
	VisitBindVariable(*BindVariable) types.Type
	VisitLiteral(*Literal) types.Type
	VisitNot(*Not) types.Type
	VisitAnd(*And) types.Type
	VisitOr(*Or) types.Type
	VisitUnaryMinus(*UnaryMinus) types.Type
	VisitArithmetic(*Arithmetic) types.Type
	VisitEquality(*Equality) types.Type
	VisitComparison(*Comparison) types.Type
	VisitAggregate(*Aggregate) types.Type
	VisitExists(*Exists) types.Type
	VisitInPredicate(*InPredicate) types.Type
	VisitIsNull(*IsNull) types.Type
	VisitCast(*Cast) types.Type
	VisitFunctionCall(*FunctionCall) types.Type
	VisitStar(*Star) types.Type
	VisitCharacterSubstring(*CharacterSubstring) types.Type
	VisitExtract(*Extract) types.Type
	VisitIfElse(*IfElse) types.Type
	VisitSimpleCase(*SimpleCase) types.Type
	VisitScalarSubquery(*ScalarSubquery) types.Type
	VisitBuiltinCall(*BuiltinCall) types.Type
}
