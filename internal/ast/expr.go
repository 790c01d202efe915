package ast

import "github.com/roach88/pgqlcheck/internal/types"

// VarRef references a variable by name. Its type is the type of the
// variable's definition.
type VarRef struct {
	Pos
	Name string
}

// PropRef is a property access such as n.age.
type PropRef struct {
	Pos
	Var      *VarRef
	Property string
}

// BindVariable is a positional "?" parameter.
type BindVariable struct {
	Pos
	Index int
}

// LiteralKind selects the literal's syntax.
type LiteralKind int

const (
	LitNull LiteralKind = iota
	LitBoolean
	LitInteger
	LitDecimal
	LitString
	LitDate
	LitTime
	LitTimestamp
)

var literalKindNames = [...]string{
	LitNull:      "null",
	LitBoolean:   "boolean",
	LitInteger:   "integer",
	LitDecimal:   "decimal",
	LitString:    "string",
	LitDate:      "date",
	LitTime:      "time",
	LitTimestamp: "timestamp",
}

func (k LiteralKind) String() string {
	if k < 0 || int(k) >= len(literalKindNames) {
		return "literal"
	}
	return literalKindNames[k]
}

// Literal is a constant. Value holds the source text and is not interpreted.
type Literal struct {
	Pos
	Kind  LiteralKind
	Value string
}

// Not is logical negation.
type Not struct {
	Pos
	Expr Expr
}

// And is logical conjunction.
type And struct {
	Pos
	Left, Right Expr
}

// Or is logical disjunction.
type Or struct {
	Pos
	Left, Right Expr
}

// UnaryMinus negates a numeric expression.
type UnaryMinus struct {
	Pos
	Expr Expr
}

// ArithOp is a binary arithmetic operator.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	default:
		return "?"
	}
}

// Arithmetic is a binary arithmetic expression.
type Arithmetic struct {
	Pos
	Op          ArithOp
	Left, Right Expr
}

// Equality is = or, when Negated, <>.
type Equality struct {
	Pos
	Negated     bool
	Left, Right Expr
}

// CompareOp is an ordering comparison operator.
type CompareOp int

const (
	Greater CompareOp = iota
	GreaterEqual
	Less
	LessEqual
)

func (op CompareOp) String() string {
	switch op {
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	default:
		return "?"
	}
}

// Comparison is an ordering comparison.
type Comparison struct {
	Pos
	Op          CompareOp
	Left, Right Expr
}

// AggFunc identifies an aggregate.
type AggFunc int

const (
	Count AggFunc = iota
	Min
	Max
	Sum
	Avg
	ListAgg
	ArrayAgg
)

var aggFuncNames = [...]string{
	Count:    "COUNT",
	Min:      "MIN",
	Max:      "MAX",
	Sum:      "SUM",
	Avg:      "AVG",
	ListAgg:  "LISTAGG",
	ArrayAgg: "ARRAY_AGG",
}

func (f AggFunc) String() string {
	if f < 0 || int(f) >= len(aggFuncNames) {
		return "AGGREGATE"
	}
	return aggFuncNames[f]
}

// Aggregate is an aggregate call. Arg is nil for COUNT(*). Separator is only
// used by LISTAGG.
type Aggregate struct {
	Pos
	Func      AggFunc
	Distinct  bool
	Arg       Expr
	Separator string
}

// Exists is EXISTS (subquery).
type Exists struct {
	Pos
	Query *Query
}

// InPredicate is expr [NOT] IN (values...).
type InPredicate struct {
	Pos
	Expr    Expr
	Values  []Expr
	Negated bool
}

// IsNull is expr IS [NOT] NULL.
type IsNull struct {
	Pos
	Expr    Expr
	Negated bool
}

// Cast is CAST(expr AS target).
type Cast struct {
	Pos
	Expr   Expr
	Target string
}

// FunctionCall is a call to a function outside the built-in catalog.
type FunctionCall struct {
	Pos
	Package string
	Name    string
	Args    []Expr
}

// Star is the * in SELECT * or COUNT(*).
type Star struct {
	Pos
}

// CharacterSubstring is SUBSTRING(expr FROM start [FOR length]). Length may be nil.
type CharacterSubstring struct {
	Pos
	Expr   Expr
	Start  Expr
	Length Expr
}

// Extract is EXTRACT(field FROM expr).
type Extract struct {
	Pos
	Field string
	Expr  Expr
}

// IfElse is the searched CASE form: CASE WHEN cond THEN then ELSE else END.
type IfElse struct {
	Pos
	Cond, Then, Else Expr
}

// WhenThen is one arm of a simple CASE.
type WhenThen struct {
	When, Then Expr
}

// SimpleCase is CASE operand WHEN ... THEN ... END. Its type is the type of
// the desugared IfElse chain, built by NewSimpleCase.
type SimpleCase struct {
	Pos
	Operand Expr
	Whens   []WhenThen
	Else    Expr
	IfElse  *IfElse
}

// ScalarSubquery is a subquery used as a single value.
type ScalarSubquery struct {
	Pos
	Query *Query
}

// BuiltinFunc identifies a vertex/edge function from the built-in catalog.
type BuiltinFunc int

const (
	InDegree BuiltinFunc = iota
	OutDegree
	Labels
	Label
	Has
	HasLabel
	ID
)

var builtinNames = [...]string{
	InDegree:  "IN_DEGREE",
	OutDegree: "OUT_DEGREE",
	Labels:    "LABELS",
	Label:     "LABEL",
	Has:       "HAS",
	HasLabel:  "HAS_LABEL",
	ID:        "ID",
}

func (f BuiltinFunc) String() string {
	if f < 0 || int(f) >= len(builtinNames) {
		return "BUILTIN"
	}
	return builtinNames[f]
}

// BuiltinCall applies a built-in function to a vertex or edge Target.
type BuiltinCall struct {
	Pos
	Func   BuiltinFunc
	Target Expr
	Args   []Expr
}

func (*VarRef) exprNode()             {}
func (*PropRef) exprNode()            {}
func (*BindVariable) exprNode()       {}
func (*Literal) exprNode()            {}
func (*Not) exprNode()                {}
func (*And) exprNode()                {}
func (*Or) exprNode()                 {}
func (*UnaryMinus) exprNode()         {}
func (*Arithmetic) exprNode()         {}
func (*Equality) exprNode()           {}
func (*Comparison) exprNode()         {}
func (*Aggregate) exprNode()          {}
func (*Exists) exprNode()             {}
func (*InPredicate) exprNode()        {}
func (*IsNull) exprNode()             {}
func (*Cast) exprNode()               {}
func (*FunctionCall) exprNode()       {}
func (*Star) exprNode()               {}
func (*CharacterSubstring) exprNode() {}
func (*Extract) exprNode()            {}
func (*IfElse) exprNode()             {}
func (*SimpleCase) exprNode()         {}
func (*ScalarSubquery) exprNode()     {}
func (*BuiltinCall) exprNode()        {}

func (n *VarRef) Accept(v Visitor) types.Type             { return v.VisitVarRef(n) }
func (n *PropRef) Accept(v Visitor) types.Type            { return v.VisitPropRef(n) }
func (n *BindVariable) Accept(v Visitor) types.Type       { return v.VisitBindVariable(n) }
func (n *Literal) Accept(v Visitor) types.Type            { return v.VisitLiteral(n) }
func (n *Not) Accept(v Visitor) types.Type                { return v.VisitNot(n) }
func (n *And) Accept(v Visitor) types.Type                { return v.VisitAnd(n) }
func (n *Or) Accept(v Visitor) types.Type                 { return v.VisitOr(n) }
func (n *UnaryMinus) Accept(v Visitor) types.Type         { return v.VisitUnaryMinus(n) }
func (n *Arithmetic) Accept(v Visitor) types.Type         { return v.VisitArithmetic(n) }
func (n *Equality) Accept(v Visitor) types.Type           { return v.VisitEquality(n) }
func (n *Comparison) Accept(v Visitor) types.Type         { return v.VisitComparison(n) }
func (n *Aggregate) Accept(v Visitor) types.Type          { return v.VisitAggregate(n) }
func (n *Exists) Accept(v Visitor) types.Type             { return v.VisitExists(n) }
func (n *InPredicate) Accept(v Visitor) types.Type        { return v.VisitInPredicate(n) }
func (n *IsNull) Accept(v Visitor) types.Type             { return v.VisitIsNull(n) }
func (n *Cast) Accept(v Visitor) types.Type               { return v.VisitCast(n) }
func (n *FunctionCall) Accept(v Visitor) types.Type       { return v.VisitFunctionCall(n) }
func (n *Star) Accept(v Visitor) types.Type               { return v.VisitStar(n) }
func (n *CharacterSubstring) Accept(v Visitor) types.Type { return v.VisitCharacterSubstring(n) }
func (n *Extract) Accept(v Visitor) types.Type            { return v.VisitExtract(n) }
func (n *IfElse) Accept(v Visitor) types.Type             { return v.VisitIfElse(n) }
func (n *SimpleCase) Accept(v Visitor) types.Type         { return v.VisitSimpleCase(n) }
func (n *ScalarSubquery) Accept(v Visitor) types.Type     { return v.VisitScalarSubquery(n) }
func (n *BuiltinCall) Accept(v Visitor) types.Type        { return v.VisitBuiltinCall(n) }
