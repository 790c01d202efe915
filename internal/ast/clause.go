package ast

// Query is one query block. Nested blocks appear inside Exists and
// ScalarSubquery expressions and as PathMacro bodies.
//
// Exactly one of Select and Modify is set: a Select query retrieves data, a
// Modify query only performs data-modifying actions and projects nothing.
type Query struct {
	Pos
	Scope ScopeID

	Select *SelectClause
	Modify *ModifyClause

	PathMacros []*PathMacro
	Match      []*PathPattern
	Where      Expr
	GroupBy    []*ExpAsVar
	Having     Expr
	OrderBy    []*OrderByElem
	Limit      Expr
	Offset     Expr
}

// IsModify reports whether q is a data-modifying query.
func (q *Query) IsModify() bool { return q.Modify != nil }

// SelectClause is SELECT [DISTINCT] projections. Star is SELECT *, in which
// case Projections is empty.
type SelectClause struct {
	Pos
	Distinct    bool
	Star        bool
	Projections []*ExpAsVar
}

// ExpAsVar is "expr AS name". Anonymous marks a generated name.
type ExpAsVar struct {
	Pos
	Expr      Expr
	Name      string
	Anonymous bool
}

// ModifyClause holds the data-modifying actions of a query.
type ModifyClause struct {
	Pos
	Sets    []*SetProperty
	Deletes []*VarRef
}

// SetProperty is SET target = value.
type SetProperty struct {
	Pos
	Target *PropRef
	Value  Expr
}

// OrderByElem is one ORDER BY key. Version is the language version tag the
// grammar attached to this clause, or empty.
type OrderByElem struct {
	Pos
	Expr       Expr
	Descending bool
	Version    string
}

// PathPattern is a chain of vertex and edge patterns, optionally bound to a
// path variable.
type PathPattern struct {
	Pos
	Name     string
	Elements []PatternElement
}

// PatternElement is a VertexPattern or an EdgePattern.
//
// This is a sealed interface - only types in this package implement it.
type PatternElement interface {
	Node
	VarName() string
	IsAnonymous() bool
	Correlated() *Correlation
	patternElement()
}

// Correlation marks a pattern variable as the same variable as Outer, which
// is declared in the enclosing query block.
type Correlation struct {
	Pos
	Outer string
}

// VertexPattern is (name).
type VertexPattern struct {
	Pos
	Name        string
	Anonymous   bool
	Correlation *Correlation
}

// Direction is an edge pattern's direction.
type Direction int

const (
	Outgoing Direction = iota
	Incoming
	AnyDirection
)

// EdgePattern is -[name]->, <-[name]- or -[name]-.
type EdgePattern struct {
	Pos
	Name        string
	Anonymous   bool
	Direction   Direction
	Correlation *Correlation
}

func (v *VertexPattern) VarName() string          { return v.Name }
func (v *VertexPattern) IsAnonymous() bool        { return v.Anonymous }
func (v *VertexPattern) Correlated() *Correlation { return v.Correlation }
func (*VertexPattern) patternElement()            {}

func (e *EdgePattern) VarName() string          { return e.Name }
func (e *EdgePattern) IsAnonymous() bool        { return e.Anonymous }
func (e *EdgePattern) Correlated() *Correlation { return e.Correlation }
func (*EdgePattern) patternElement()            {}

// PathMacro is PATH name AS pattern [WHERE cond]. It opens its own scope
// whose parent is the query that declares it.
type PathMacro struct {
	Pos
	Name    string
	Scope   ScopeID
	Pattern *PathPattern
	Where   Expr
}
