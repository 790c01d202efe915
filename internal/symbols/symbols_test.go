package symbols

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/types"
)

func TestTable_LookupWalksToRoot(t *testing.T) {
	table, err := NewBuilder().
		Root("outer").
		Nested("inner", "outer").
		Define("outer", "n", types.Vertex).
		Define("inner", "m", types.Edge).
		Build()
	require.NoError(t, err)

	typ, err := table.DefinitionType("n", "inner")
	require.NoError(t, err)
	assert.Equal(t, types.Vertex, typ)

	typ, err = table.DefinitionType("m", "inner")
	require.NoError(t, err)
	assert.Equal(t, types.Edge, typ)

	_, err = table.DefinitionType("m", "outer")
	assert.True(t, errors.Is(err, ErrUnboundVariable), "inner definitions are not visible outside")
}

func TestTable_InnermostDefinitionWins(t *testing.T) {
	table, err := NewBuilder().
		Define("outer", "x", types.Edge).
		Nested("inner", "outer").
		Define("inner", "x", types.Vertex).
		Build()
	require.NoError(t, err)

	typ, err := table.DefinitionType("x", "inner")
	require.NoError(t, err)
	assert.Equal(t, types.Vertex, typ)

	typ, err = table.DefinitionType("x", "outer")
	require.NoError(t, err)
	assert.Equal(t, types.Edge, typ)
}

func TestTable_UndeclaredScope(t *testing.T) {
	table, err := NewBuilder().Root("q").Build()
	require.NoError(t, err)

	_, err = table.DefinitionType("n", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnboundVariable)
	assert.Contains(t, err.Error(), "nope")
}

func TestTable_NFCNormalization(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	table, err := NewBuilder().Define("q", decomposed, types.Vertex).Build()
	require.NoError(t, err)

	typ, err := table.DefinitionType(composed, "q")
	require.NoError(t, err)
	assert.Equal(t, types.Vertex, typ)
}

func TestBuilder_MissingParent(t *testing.T) {
	_, err := NewBuilder().Nested("inner", "ghost").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestBuilder_ParentLoop(t *testing.T) {
	_, err := NewBuilder().Nested("a", "b").Nested("b", "a").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loops")
}

func TestBuilder_TableIsIsolatedFromLaterDefines(t *testing.T) {
	b := NewBuilder().Define("q", "n", types.Vertex)
	table, err := b.Build()
	require.NoError(t, err)

	b.Define("q", "n", types.Edge)

	typ, err := table.DefinitionType("n", "q")
	require.NoError(t, err)
	assert.Equal(t, types.Vertex, typ)
}

func TestTable_NestedScopeSeesParent(t *testing.T) {
	table, err := NewBuilder().
		Define("b", "y", types.String).
		Nested("a", "b").
		Define("a", "x", types.Numeric).
		Build()
	require.NoError(t, err)

	typ, err := table.DefinitionType("y", "a")
	require.NoError(t, err)
	assert.Equal(t, types.String, typ)

	_, err = table.DefinitionType("x", "b")
	assert.ErrorIs(t, err, ErrUnboundVariable, "parent does not see child definitions")

	_, err = table.DefinitionType("y", "zzz")
	assert.ErrorIs(t, err, ErrUnboundVariable)
}

func TestCollect_PatternVariables(t *testing.T) {
	inner := &ast.Query{
		Scope:  "q1",
		Select: &ast.SelectClause{Star: true},
		Match: []*ast.PathPattern{{
			Elements: []ast.PatternElement{
				&ast.VertexPattern{Name: "n", Correlation: &ast.Correlation{Outer: "n"}},
				&ast.EdgePattern{Name: "e2"},
				&ast.VertexPattern{Name: "anon", Anonymous: true},
			},
		}},
	}
	q := &ast.Query{
		Scope: "q0",
		Select: &ast.SelectClause{Projections: []*ast.ExpAsVar{
			{Expr: &ast.VarRef{Name: "n"}, Name: "n"},
			{Expr: &ast.PropRef{Var: &ast.VarRef{Name: "n"}, Property: "age"}, Name: "age"},
		}},
		Match: []*ast.PathPattern{{
			Name: "p",
			Elements: []ast.PatternElement{
				&ast.VertexPattern{Name: "n"},
				&ast.EdgePattern{Name: "e"},
				&ast.VertexPattern{Name: "m"},
			},
		}},
		Where: &ast.Exists{Query: inner},
	}

	table, err := Collect(q).Build()
	require.NoError(t, err)

	want := map[string]types.Type{"n": types.Vertex, "e": types.Edge, "m": types.Vertex, "p": types.Path, "age": types.Unknown}
	for name, typ := range want {
		got, err := table.DefinitionType(name, "q0")
		require.NoError(t, err, name)
		assert.Equal(t, typ, got, name)
	}

	got, err := table.DefinitionType("e2", "q1")
	require.NoError(t, err)
	assert.Equal(t, types.Edge, got)

	_, err = table.DefinitionType("anon", "q1")
	assert.ErrorIs(t, err, ErrUnboundVariable)

	got, err = table.DefinitionType("m", "q1")
	require.NoError(t, err, "q1 is nested in q0")
	assert.Equal(t, types.Vertex, got)
}

func TestCollect_PathMacroScope(t *testing.T) {
	q := &ast.Query{
		Scope: "q0",
		PathMacros: []*ast.PathMacro{{
			Name:  "knows_path",
			Scope: "macro",
			Pattern: &ast.PathPattern{Elements: []ast.PatternElement{
				&ast.VertexPattern{Name: "a"},
				&ast.EdgePattern{Name: "k"},
				&ast.VertexPattern{Name: "b"},
			}},
		}},
	}

	table, err := Collect(q).Build()
	require.NoError(t, err)

	typ, err := table.DefinitionType("k", "macro")
	require.NoError(t, err)
	assert.Equal(t, types.Edge, typ)

	_, err = table.DefinitionType("k", "q0")
	assert.ErrorIs(t, err, ErrUnboundVariable)
}
