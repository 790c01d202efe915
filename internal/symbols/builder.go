package symbols

import (
	"fmt"

	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/types"
)

// Builder assembles a Table. It is not safe for concurrent use; build one
// Table per analysis or share the built Table.
type Builder struct {
	scopes map[ast.ScopeID]*scope
	order  []ast.ScopeID
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{scopes: make(map[ast.ScopeID]*scope)}
}

// Root declares id as a scope without a parent.
func (b *Builder) Root(id ast.ScopeID) *Builder {
	b.get(id)
	return b
}

// Nested declares id as a scope enclosed by parent.
func (b *Builder) Nested(id, parent ast.ScopeID) *Builder {
	s := b.get(id)
	s.parent = parent
	s.hasParent = true
	return b
}

// Define records name in scope id with the given type. A later Define of the
// same name in the same scope replaces the earlier one. Undeclared scopes
// are created as roots.
func (b *Builder) Define(id ast.ScopeID, name string, typ types.Type) *Builder {
	b.get(id).defs[normalize(name)] = typ
	return b
}

// Defined reports whether name is defined directly in scope id.
func (b *Builder) Defined(id ast.ScopeID, name string) bool {
	s, ok := b.scopes[id]
	if !ok {
		return false
	}
	_, found := s.defs[normalize(name)]
	return found
}

// Build validates the scope tree and returns an immutable Table. Every parent
// must be declared and the parent chain must not loop.
func (b *Builder) Build() (*Table, error) {
	scopes := make(map[ast.ScopeID]*scope, len(b.scopes))
	for _, id := range b.order {
		s := b.scopes[id]
		if s.hasParent {
			if _, ok := b.scopes[s.parent]; !ok {
				return nil, fmt.Errorf("scope %q: parent scope %q is not declared", id, s.parent)
			}
		}
		defs := make(map[string]types.Type, len(s.defs))
		for k, v := range s.defs {
			defs[k] = v
		}
		scopes[id] = &scope{parent: s.parent, hasParent: s.hasParent, defs: defs}
	}

	for _, id := range b.order {
		seen := map[ast.ScopeID]bool{id: true}
		cur := scopes[id]
		for cur.hasParent {
			if seen[cur.parent] {
				return nil, fmt.Errorf("scope %q: parent chain loops through %q", id, cur.parent)
			}
			seen[cur.parent] = true
			cur = scopes[cur.parent]
		}
	}

	return &Table{scopes: scopes}, nil
}

func (b *Builder) get(id ast.ScopeID) *scope {
	if s, ok := b.scopes[id]; ok {
		return s
	}
	s := &scope{defs: make(map[string]types.Type)}
	b.scopes[id] = s
	b.order = append(b.order, id)
	return s
}
