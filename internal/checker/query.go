package checker

import (
	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/diag"
	"github.com/roach88/pgqlcheck/internal/types"
)

// query checks one query block in clause order. The block is pushed for the
// duration of the call so that nested blocks see it as their outer block.
func (c *checker) query(q *ast.Query) {
	if q == nil {
		return
	}
	c.push(q.Scope)
	defer c.pop()
	c.declareAliases(q)

	if q.Select != nil {
		for _, p := range q.Select.Projections {
			c.expAsVar(p)
		}
	}
	if q.Modify != nil {
		for _, s := range q.Modify.Sets {
			c.setProperty(s)
		}
		for _, d := range q.Modify.Deletes {
			c.expr(d)
		}
	}
	for _, m := range q.PathMacros {
		c.pathMacro(m)
	}
	for _, p := range q.Match {
		c.pattern(p)
	}
	c.expr(q.Where)
	for _, g := range q.GroupBy {
		c.expAsVar(g)
	}
	c.expr(q.Having)
	for _, o := range q.OrderBy {
		c.orderBy(o)
	}
	c.expr(q.Limit)
	c.expr(q.Offset)
}

func (c *checker) subquery(q *ast.Query) {
	c.query(q)
}

func (c *checker) pathMacro(m *ast.PathMacro) {
	if m == nil {
		return
	}
	c.push(m.Scope)
	defer c.pop()

	if m.Pattern != nil {
		c.pattern(m.Pattern)
	}
	c.expr(m.Where)
}

func (c *checker) declareAliases(q *ast.Query) {
	declare := func(ev *ast.ExpAsVar) {
		if ev == nil || ev.Name == "" {
			return
		}
		key := binding{scope: q.Scope, name: ev.Name}
		if _, ok := c.aliases[key]; !ok {
			c.aliases[key] = ev
		}
	}
	for _, g := range q.GroupBy {
		declare(g)
	}
	if q.Select != nil {
		for _, p := range q.Select.Projections {
			declare(p)
		}
	}
}

// expAsVar types e once. It is reached either in clause order or from the
// first reference to its alias, whichever comes first.
func (c *checker) expAsVar(e *ast.ExpAsVar) types.Type {
	if e == nil {
		return types.Unknown
	}
	if t, ok := c.types[e]; ok {
		return t
	}
	if c.typing[e] {
		return types.Unknown
	}
	c.typing[e] = true
	t := c.expr(e.Expr)
	delete(c.typing, e)
	c.types[e] = t
	return t
}

func (c *checker) setProperty(s *ast.SetProperty) {
	if s == nil {
		return
	}
	if s.Target != nil {
		c.expr(s.Target)
	}
	t := c.expr(s.Value)
	if types.IsVertexOrEdge(t) {
		c.errorf(s.Value, diag.KindTypeMismatch, msgSetProperty)
	}
	c.types[s] = t
}

// orderBy validates one ORDER BY key. The element itself gets no type.
func (c *checker) orderBy(o *ast.OrderByElem) {
	if o == nil {
		return
	}
	p := c.policy.ForNode(o.Version)
	t := c.expr(o.Expr)
	if !p.OrderByGraphElements {
		if types.Forbidden(t, types.Vertex) {
			c.errorf(o.Expr, diag.KindInvalidOrderKey, msgOrderByVertex)
		}
		if types.Forbidden(t, types.Edge) {
			c.errorf(o.Expr, diag.KindInvalidOrderKey, msgOrderByEdge)
		}
	}
	if types.IsArray(t) {
		c.errorf(o.Expr, diag.KindInvalidOrderKey, msgOrderByArray)
	}
}
