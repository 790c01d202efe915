package diag

import "github.com/roach88/pgqlcheck/internal/ast"

// Collector accumulates diagnostics in the order they are reported. One
// Collector belongs to one analysis; it is not safe for concurrent use.
type Collector struct {
	items []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Errorf records an error on node. template is a fmt format string.
func (c *Collector) Errorf(node ast.Node, kind Kind, template string, args ...any) {
	var pos ast.Pos
	if node != nil {
		pos = node.Position()
	}
	c.items = append(c.items, Diagnostic{
		Node:     node,
		Pos:      pos,
		Severity: Error,
		Kind:     kind,
		Template: template,
		Args:     args,
	})
}

// All returns the diagnostics in report order.
func (c *Collector) All() []Diagnostic {
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}
