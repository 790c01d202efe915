package checker

import (
	"fmt"

	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/diag"
	"github.com/roach88/pgqlcheck/internal/symbols"
	"github.com/roach88/pgqlcheck/internal/types"
	"github.com/roach88/pgqlcheck/internal/version"
)

// Result is the outcome of one analysis.
type Result struct {
	// Policy is the rule set the analysis ran under.
	Policy version.Policy

	// Types maps every expression node, ExpAsVar and SetProperty to its type.
	Types map[ast.Node]types.Type

	// Diagnostics in traversal order: children before parents, left to right.
	Diagnostics []diag.Diagnostic
}

// TypeOf returns the type assigned to n.
func (r *Result) TypeOf(n ast.Node) (types.Type, bool) {
	t, ok := r.Types[n]
	return t, ok
}

// HasErrors reports whether the analysis produced an error diagnostic.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.Error {
			return true
		}
	}
	return false
}

// Check type-checks q against env under policy.
//
// Every ill-typed construct is reported; the traversal never stops at the
// first diagnostic. The returned error is non-nil only when a variable has no
// definition in env (it wraps symbols.ErrUnboundVariable), which means name
// resolution did not run or produced an inconsistent environment.
//
// Check is a pure function of its arguments. It does not modify q or env.
func Check(q *ast.Query, env symbols.Environment, policy version.Policy) (*Result, error) {
	c := newChecker(env, policy)
	c.query(q)
	return c.result()
}

// CheckExpr type-checks a single expression as if it appeared in the query
// block identified by scope.
func CheckExpr(e ast.Expr, scope ast.ScopeID, env symbols.Environment, policy version.Policy) (*Result, error) {
	c := newChecker(env, policy)
	c.blocks = append(c.blocks, scope)
	c.expr(e)
	return c.result()
}

// checker holds the state of one analysis.
type checker struct {
	env    symbols.Environment
	policy version.Policy
	diags  *diag.Collector
	types  map[ast.Node]types.Type

	// blocks is the stack of enclosing query blocks, innermost last.
	blocks []ast.ScopeID

	// resolved caches variable lookups per block. A variable resolves once
	// and keeps that type for the rest of the block.
	resolved map[binding]types.Type

	// aliases maps the SELECT and GROUP BY aliases of each open block to
	// their expression. GROUP BY wins over SELECT for the same name.
	aliases map[binding]*ast.ExpAsVar

	// typing holds the aliases whose expression is being typed, so that an
	// alias referring to itself resolves to Unknown.
	typing map[*ast.ExpAsVar]bool

	// err is the first broken-precondition error.
	err error
}

type binding struct {
	scope ast.ScopeID
	name  string
}

var _ ast.Visitor = (*checker)(nil)

func newChecker(env symbols.Environment, policy version.Policy) *checker {
	return &checker{
		env:      env,
		policy:   policy,
		diags:    diag.NewCollector(),
		types:    make(map[ast.Node]types.Type),
		resolved: make(map[binding]types.Type),
		aliases:  make(map[binding]*ast.ExpAsVar),
		typing:   make(map[*ast.ExpAsVar]bool),
	}
}

func (c *checker) result() (*Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &Result{
		Policy:      c.policy,
		Types:       c.types,
		Diagnostics: c.diags.All(),
	}, nil
}

// expr types e once. A node reachable from several parents keeps the type
// and diagnostics of its first visit.
func (c *checker) expr(e ast.Expr) types.Type {
	if e == nil {
		return types.Unknown
	}
	if t, ok := c.types[e]; ok {
		return t
	}
	t := e.Accept(c)
	c.types[e] = t
	return t
}

func (c *checker) errorf(node ast.Node, kind diag.Kind, template string, args ...any) {
	c.diags.Errorf(node, kind, template, args...)
}

// scope returns the innermost block.
func (c *checker) scope() ast.ScopeID {
	if len(c.blocks) == 0 {
		return ""
	}
	return c.blocks[len(c.blocks)-1]
}

// outer returns the block enclosing the innermost one.
func (c *checker) outer() (ast.ScopeID, bool) {
	if len(c.blocks) < 2 {
		return "", false
	}
	return c.blocks[len(c.blocks)-2], true
}

func (c *checker) push(id ast.ScopeID) { c.blocks = append(c.blocks, id) }
func (c *checker) pop()                { c.blocks = c.blocks[:len(c.blocks)-1] }

// lookup resolves name from scope, caching the result.
func (c *checker) lookup(name string, scope ast.ScopeID) (types.Type, error) {
	key := binding{scope: scope, name: name}
	if t, ok := c.resolved[key]; ok {
		return t, nil
	}
	t, err := c.env.DefinitionType(name, scope)
	if err != nil {
		return types.Unknown, err
	}
	c.resolved[key] = t
	return t, nil
}

// alias returns the ExpAsVar that name refers to, searching the open blocks
// innermost first.
func (c *checker) alias(name string) *ast.ExpAsVar {
	for i := len(c.blocks) - 1; i >= 0; i-- {
		if ev, ok := c.aliases[binding{scope: c.blocks[i], name: name}]; ok {
			return ev
		}
	}
	return nil
}

// mustLookup is lookup for names that name resolution guarantees to exist.
func (c *checker) mustLookup(name string, scope ast.ScopeID, at ast.Node) types.Type {
	t, err := c.lookup(name, scope)
	if err != nil {
		if c.err == nil {
			c.err = fmt.Errorf("%s: %w", ast.Describe(at), err)
		}
		return types.Unknown
	}
	return t
}
