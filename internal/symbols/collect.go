package symbols

import (
	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/types"
)

// Collect derives a Builder from the structure of q the way name resolution
// would for pattern variables:
//
//   - every Query and PathMacro declares its scope, nested under the block
//     that contains it
//   - vertex pattern variables are Vertex, edge pattern variables are Edge,
//     named path patterns are Path
//   - SELECT and GROUP BY aliases not already defined in the block are
//     Unknown; the checker gives them the type of the aliased expression
//
// Anonymous pattern variables are skipped. Callers add or override
// definitions on the returned Builder before calling Build.
func Collect(q *ast.Query) *Builder {
	b := NewBuilder()
	b.Root(q.Scope)
	collectQuery(b, q)
	return b
}

func collectQuery(b *Builder, q *ast.Query) {
	for _, pm := range q.PathMacros {
		b.Nested(pm.Scope, q.Scope)
		collectPattern(b, pm.Scope, pm.Pattern)
		collectNested(b, pm.Scope, pm.Where)
	}
	for _, p := range q.Match {
		collectPattern(b, q.Scope, p)
	}
	for _, g := range q.GroupBy {
		defineAlias(b, q.Scope, g)
	}
	if q.Select != nil {
		for _, p := range q.Select.Projections {
			defineAlias(b, q.Scope, p)
		}
	}
	for _, root := range ast.Roots(q) {
		collectNested(b, q.Scope, root)
	}
}

func collectPattern(b *Builder, id ast.ScopeID, p *ast.PathPattern) {
	if p == nil {
		return
	}
	if p.Name != "" {
		b.Define(id, p.Name, types.Path)
	}
	for _, el := range p.Elements {
		if el.IsAnonymous() || el.VarName() == "" {
			continue
		}
		switch el.(type) {
		case *ast.VertexPattern:
			b.Define(id, el.VarName(), types.Vertex)
		case *ast.EdgePattern:
			b.Define(id, el.VarName(), types.Edge)
		}
	}
}

func defineAlias(b *Builder, id ast.ScopeID, ev *ast.ExpAsVar) {
	if ev.Name == "" || b.Defined(id, ev.Name) {
		return
	}
	b.Define(id, ev.Name, types.Unknown)
}

// collectNested finds subqueries inside e and collects them as children of id.
func collectNested(b *Builder, id ast.ScopeID, e ast.Expr) {
	ast.Inspect(e, func(n ast.Expr) bool {
		if sub := ast.Subquery(n); sub != nil {
			b.Nested(sub.Scope, id)
			collectQuery(b, sub)
		}
		return true
	})
}
