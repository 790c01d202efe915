package checker

import (
	"errors"

	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/diag"
	"github.com/roach88/pgqlcheck/internal/symbols"
	"github.com/roach88/pgqlcheck/internal/types"
)

// pattern runs the scope checks for the elements of one MATCH pattern. Only
// blocks nested in another block are checked; a top-level pattern has no
// outer variables to conflict with.
func (c *checker) pattern(p *ast.PathPattern) {
	outer, ok := c.outer()
	if !ok {
		return
	}
	for _, el := range p.Elements {
		if corr := el.Correlated(); corr != nil {
			c.correlation(el, corr, outer)
			continue
		}
		if el.IsAnonymous() || el.VarName() == "" {
			continue
		}
		c.crossReference(el, outer)
	}
}

// correlation checks an explicitly correlated element against the outer
// variable it names. The outer variable must exist.
func (c *checker) correlation(el ast.PatternElement, corr *ast.Correlation, outer ast.ScopeID) {
	t := c.mustLookup(corr.Outer, outer, corr)

	var ok bool
	switch el.(type) {
	case *ast.VertexPattern:
		ok = types.Is(t, types.Vertex)
	case *ast.EdgePattern:
		ok = !c.policy.BanEdgeCorrelation && types.Is(t, types.Edge)
	}
	if !ok {
		c.errorf(el, diag.KindDuplicateCorrelatedVariable, msgDuplicateVariable)
	}
}

// crossReference checks an inner element that reuses the name of a variable
// visible in the outer block. A name the outer block does not know is a
// fresh variable.
func (c *checker) crossReference(el ast.PatternElement, outer ast.ScopeID) {
	name := el.VarName()
	t, err := c.lookup(name, outer)
	if errors.Is(err, symbols.ErrUnboundVariable) {
		return
	}
	if err != nil {
		c.mustLookup(name, outer, el)
		return
	}

	switch el.(type) {
	case *ast.VertexPattern:
		if types.Is(t, types.Vertex) {
			return
		}
		c.roleMismatch(el, msgOuterNotVertex, name)
	case *ast.EdgePattern:
		switch t {
		case types.Unknown:
			return
		case types.Edge:
			c.errorf(el, diag.KindDuplicateCorrelatedVariable, msgDuplicateVariable)
		default:
			c.roleMismatch(el, msgOuterNotEdge, name)
		}
	}
}

func (c *checker) roleMismatch(el ast.PatternElement, template, name string) {
	if c.policy.SplitScopeMessages {
		c.errorf(el, diag.KindDuplicateCorrelatedVariable, template, name)
		return
	}
	c.errorf(el, diag.KindDuplicateCorrelatedVariable, msgDuplicateVariable)
}
