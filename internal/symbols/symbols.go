package symbols

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/types"
)

// ErrUnboundVariable is returned when a name has no definition visible from
// the requested scope. For a name-resolved tree this is a broken
// precondition, not a user error.
var ErrUnboundVariable = errors.New("unbound variable")

// Environment is the read-only view of variable definitions produced by name
// resolution.
type Environment interface {
	// DefinitionType returns the type of the definition that name resolves to
	// when referenced from scope. The error wraps ErrUnboundVariable when no
	// definition is visible.
	DefinitionType(name string, scope ast.ScopeID) (types.Type, error)
}

type scope struct {
	parent    ast.ScopeID
	hasParent bool
	defs      map[string]types.Type
}

// Table is an immutable Environment. Lookups walk from the requested scope
// to the root; the innermost definition wins. Identifiers are compared in
// Unicode NFC form.
//
// Thread-safety: a built Table is never mutated and is safe for concurrent use.
type Table struct {
	scopes map[ast.ScopeID]*scope
}

var _ Environment = (*Table)(nil)

// DefinitionType implements Environment.
func (t *Table) DefinitionType(name string, id ast.ScopeID) (types.Type, error) {
	key := normalize(name)
	cur, ok := t.scopes[id]
	if !ok {
		return types.Unknown, fmt.Errorf("%w: %q (scope %q is not declared)", ErrUnboundVariable, name, id)
	}
	for {
		if typ, found := cur.defs[key]; found {
			return typ, nil
		}
		if !cur.hasParent {
			return types.Unknown, fmt.Errorf("%w: %q in scope %q", ErrUnboundVariable, name, id)
		}
		cur = t.scopes[cur.parent]
	}
}

func normalize(name string) string {
	return norm.NFC.String(name)
}
