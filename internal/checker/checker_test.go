package checker

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/diag"
	"github.com/roach88/pgqlcheck/internal/symbols"
	"github.com/roach88/pgqlcheck/internal/types"
	"github.com/roach88/pgqlcheck/internal/version"
)

const scopeQ ast.ScopeID = "q"

// testEnv defines one variable per interesting type in scope q.
func testEnv(t *testing.T) *symbols.Table {
	t.Helper()
	tbl, err := symbols.NewBuilder().
		Root(scopeQ).
		Define(scopeQ, "v", types.Vertex).
		Define(scopeQ, "e", types.Edge).
		Define(scopeQ, "p", types.Path).
		Define(scopeQ, "arr", types.Array).
		Define(scopeQ, "num", types.Numeric).
		Define(scopeQ, "str", types.String).
		Define(scopeQ, "b", types.Boolean).
		Define(scopeQ, "u", types.Unknown).
		Build()
	require.NoError(t, err)
	return tbl
}

func ref(name string) *ast.VarRef { return &ast.VarRef{Name: name} }

func num(v string) *ast.Literal { return &ast.Literal{Kind: ast.LitInteger, Value: v} }

// findings renders diagnostics as "KIND: message" for diffing.
func findings(ds []diag.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, fmt.Sprintf("%s: %s", d.Kind, d.Message()))
	}
	return out
}

func checkExpr(t *testing.T, e ast.Expr, policy version.Policy) *Result {
	t.Helper()
	res, err := CheckExpr(e, scopeQ, testEnv(t), policy)
	require.NoError(t, err)
	return res
}

func assertFindings(t *testing.T, want []string, res *Result) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, findings(res.Diagnostics)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestRules(t *testing.T) {
	tests := []struct {
		name   string
		expr   ast.Expr
		policy version.Policy
		want   types.Type
		diags  []string
	}{
		{
			name: "vertex variable",
			expr: ref("v"), policy: version.Default,
			want: types.Vertex,
		},
		{
			name: "path variable",
			expr: ref("p"), policy: version.Default,
			want:  types.Path,
			diags: []string{"UNSUPPORTED_VARIABLE_KIND: Path variables not supported"},
		},
		{
			name: "property of path variable",
			expr: &ast.PropRef{Var: ref("p"), Property: "length"}, policy: version.Default,
			want:  types.Unknown,
			diags: []string{"UNSUPPORTED_VARIABLE_KIND: Path variables not supported"},
		},
		{
			name: "property",
			expr: &ast.PropRef{Var: ref("v"), Property: "age"}, policy: version.Default,
			want: types.Unknown,
		},
		{
			name: "bind variable",
			expr: &ast.BindVariable{Index: 0}, policy: version.Default,
			want: types.Unknown,
		},
		{
			name: "not vertex",
			expr: &ast.Not{Expr: ref("v")}, policy: version.Default,
			want:  types.Boolean,
			diags: []string{"TYPE_MISMATCH: Boolean expected here"},
		},
		{
			name: "not vertex legacy",
			expr: &ast.Not{Expr: ref("v")}, policy: version.Legacy,
			want: types.Boolean,
		},
		{
			name: "and with both sides bad",
			expr: &ast.And{Left: ref("v"), Right: ref("e")}, policy: version.Default,
			want: types.Boolean,
			diags: []string{
				"TYPE_MISMATCH: Boolean expected here",
				"TYPE_MISMATCH: Boolean expected here",
			},
		},
		{
			name: "or with edge",
			expr: &ast.Or{Left: ref("b"), Right: ref("e")}, policy: version.Default,
			want:  types.Boolean,
			diags: []string{"TYPE_MISMATCH: Boolean expected here"},
		},
		{
			name: "unary minus of edge",
			expr: &ast.UnaryMinus{Expr: ref("e")}, policy: version.Default,
			want:  types.Numeric,
			diags: []string{"TYPE_MISMATCH: Numeric expected here"},
		},
		{
			name: "arithmetic legacy is integer and permissive",
			expr: &ast.Arithmetic{Op: ast.Add, Left: ref("v"), Right: num("1")}, policy: version.Legacy,
			want: types.Integer,
		},
		{
			name: "arithmetic current",
			expr: &ast.Arithmetic{Op: ast.Mod, Left: ref("v"), Right: num("1")}, policy: version.Default,
			want:  types.Numeric,
			diags: []string{"TYPE_MISMATCH: Numeric expected here"},
		},
		{
			name: "equality of vertices",
			expr: &ast.Equality{Left: ref("v"), Right: ref("v")}, policy: version.Default,
			want: types.Boolean,
		},
		{
			name: "comparison of vertex and array",
			expr: &ast.Comparison{Op: ast.Less, Left: ref("v"), Right: ref("arr")}, policy: version.Default,
			want: types.Boolean,
			diags: []string{
				"TYPE_MISMATCH: Cannot compare vertices",
				"TYPE_MISMATCH: Cannot compare arrays",
			},
		},
		{
			name: "comparison of edges",
			expr: &ast.Comparison{Op: ast.GreaterEqual, Left: ref("e"), Right: ref("e")}, policy: version.Legacy,
			want: types.Boolean,
			diags: []string{
				"TYPE_MISMATCH: Cannot compare edges",
				"TYPE_MISMATCH: Cannot compare edges",
			},
		},
		{
			name: "min of edge",
			expr: &ast.Aggregate{Func: ast.Min, Arg: ref("e")}, policy: version.Default,
			want:  types.Edge,
			diags: []string{"TYPE_MISMATCH: Aggregate does not allow vertex or edge input"},
		},
		{
			name: "sum of array",
			expr: &ast.Aggregate{Func: ast.Sum, Arg: ref("arr")}, policy: version.Default,
			want:  types.Array,
			diags: []string{"TYPE_MISMATCH: Aggregate does not allow array input"},
		},
		{
			name: "avg of numeric",
			expr: &ast.Aggregate{Func: ast.Avg, Arg: ref("num")}, policy: version.Default,
			want: types.Numeric,
		},
		{
			name: "listagg of string",
			expr: &ast.Aggregate{Func: ast.ListAgg, Arg: ref("str"), Separator: ";"}, policy: version.Default,
			want: types.String,
		},
		{
			name: "array_agg of vertex",
			expr: &ast.Aggregate{Func: ast.ArrayAgg, Arg: ref("v")}, policy: version.Default,
			want:  types.Array,
			diags: []string{"TYPE_MISMATCH: Aggregate does not allow vertex or edge input"},
		},
		{
			name: "count of vertex",
			expr: &ast.Aggregate{Func: ast.Count, Arg: ref("v")}, policy: version.Default,
			want: types.Numeric,
		},
		{
			name: "count star",
			expr: &ast.Aggregate{Func: ast.Count}, policy: version.Default,
			want: types.Numeric,
		},
		{
			name: "in predicate",
			expr: &ast.InPredicate{Expr: ref("num"), Values: []ast.Expr{num("1"), num("2")}}, policy: version.Default,
			want: types.Boolean,
		},
		{
			name: "is null of path still reports the path",
			expr: &ast.IsNull{Expr: ref("p")}, policy: version.Default,
			want:  types.Boolean,
			diags: []string{"UNSUPPORTED_VARIABLE_KIND: Path variables not supported"},
		},
		{
			name: "cast",
			expr: &ast.Cast{Expr: ref("str"), Target: "INTEGER"}, policy: version.Default,
			want: types.Unknown,
		},
		{
			name: "function call",
			expr: &ast.FunctionCall{Name: "upper", Args: []ast.Expr{ref("str")}}, policy: version.Default,
			want: types.Unknown,
		},
		{
			name: "star",
			expr: &ast.Star{}, policy: version.Default,
			want: types.Unknown,
		},
		{
			name: "substring",
			expr: &ast.CharacterSubstring{Expr: ref("str"), Start: num("1"), Length: num("2")}, policy: version.Default,
			want: types.String,
		},
		{
			name: "extract",
			expr: &ast.Extract{Field: "YEAR", Expr: &ast.Literal{Kind: ast.LitDate, Value: "2020-01-01"}}, policy: version.Default,
			want: types.Numeric,
		},
		{
			name: "if else with vertex branches",
			expr: &ast.IfElse{Cond: ref("num"), Then: ref("v"), Else: ref("e")}, policy: version.Legacy,
			want: types.Vertex,
			diags: []string{
				"TYPE_MISMATCH: Boolean expected here",
				"TYPE_MISMATCH: CASE does not allow vertex or edge output",
				"TYPE_MISMATCH: CASE does not allow vertex or edge output",
			},
		},
		{
			name: "if else with unknown condition",
			expr: &ast.IfElse{Cond: ref("u"), Then: ref("str"), Else: ref("num")}, policy: version.Default,
			want: types.String,
		},
		{
			name: "in_degree of edge",
			expr: &ast.BuiltinCall{Func: ast.InDegree, Target: ref("e")}, policy: version.Default,
			want:  types.Numeric,
			diags: []string{"FUNCTION_DOMAIN_ERROR: IN_DEGREE expects a vertex"},
		},
		{
			name: "out_degree legacy",
			expr: &ast.BuiltinCall{Func: ast.OutDegree, Target: ref("v")}, policy: version.Legacy,
			want: types.Integer,
		},
		{
			name: "labels of vertex",
			expr: &ast.BuiltinCall{Func: ast.Labels, Target: ref("v")}, policy: version.Default,
			want: types.StringSet,
		},
		{
			name: "label of vertex",
			expr: &ast.BuiltinCall{Func: ast.Label, Target: ref("v")}, policy: version.Default,
			want:  types.String,
			diags: []string{"FUNCTION_DOMAIN_ERROR: LABEL expects an edge"},
		},
		{
			name: "has_label of string",
			expr: &ast.BuiltinCall{Func: ast.HasLabel, Target: ref("str"), Args: []ast.Expr{&ast.Literal{Kind: ast.LitString, Value: "Person"}}}, policy: version.Default,
			want:  types.Boolean,
			diags: []string{"FUNCTION_DOMAIN_ERROR: HAS_LABEL expects a vertex or an edge"},
		},
		{
			name: "id of edge",
			expr: &ast.BuiltinCall{Func: ast.ID, Target: ref("e")}, policy: version.Default,
			want: types.Numeric,
		},
		{
			name: "builtin on unknown",
			expr: &ast.BuiltinCall{Func: ast.Label, Target: ref("u")}, policy: version.Default,
			want: types.String,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := checkExpr(t, tt.expr, tt.policy)
			got, ok := res.TypeOf(tt.expr)
			require.True(t, ok, "expression has no type")
			assert.Equal(t, tt.want, got)
			assertFindings(t, tt.diags, res)
		})
	}
}

func TestLiterals(t *testing.T) {
	want := map[ast.LiteralKind]types.Type{
		ast.LitNull:      types.Unknown,
		ast.LitBoolean:   types.Boolean,
		ast.LitInteger:   types.Numeric,
		ast.LitDecimal:   types.Numeric,
		ast.LitString:    types.String,
		ast.LitDate:      types.Date,
		ast.LitTime:      types.Time,
		ast.LitTimestamp: types.Timestamp,
	}
	for kind, typ := range want {
		lit := &ast.Literal{Kind: kind}
		res := checkExpr(t, lit, version.Default)
		got, _ := res.TypeOf(lit)
		assert.Equal(t, typ, got, kind.String())
		assert.Empty(t, res.Diagnostics)
	}
}

func TestDiagnosticsAttachToOffendingNode(t *testing.T) {
	e := ref("e")
	cmpExpr := &ast.Comparison{Op: ast.Greater, Left: num("1"), Right: e}

	res := checkExpr(t, cmpExpr, version.Default)

	require.Len(t, res.Diagnostics, 1)
	assert.Same(t, e, res.Diagnostics[0].Node)
	assert.Equal(t, diag.Error, res.Diagnostics[0].Severity)
}

func TestUnknownAbsorption(t *testing.T) {
	u := func() ast.Expr { return ref("u") }
	exprs := []ast.Expr{
		&ast.Not{Expr: u()},
		&ast.And{Left: u(), Right: u()},
		&ast.Or{Left: u(), Right: u()},
		&ast.UnaryMinus{Expr: u()},
		&ast.Arithmetic{Op: ast.Sub, Left: u(), Right: u()},
		&ast.Comparison{Op: ast.Greater, Left: u(), Right: &ast.Cast{Expr: ref("v"), Target: "STRING"}},
		&ast.Aggregate{Func: ast.Max, Arg: u()},
		&ast.Aggregate{Func: ast.ArrayAgg, Arg: &ast.BindVariable{}},
		&ast.IfElse{Cond: u(), Then: u(), Else: &ast.Literal{Kind: ast.LitNull}},
		&ast.BuiltinCall{Func: ast.InDegree, Target: u()},
		&ast.BuiltinCall{Func: ast.Has, Target: &ast.FunctionCall{Name: "f"}},
	}
	for _, e := range exprs {
		res := checkExpr(t, e, version.Default)
		assert.Empty(t, res.Diagnostics, ast.Describe(e))
	}
}

func TestLogicalResultIndependentOfOperands(t *testing.T) {
	for _, e := range []ast.Expr{
		&ast.And{Left: ref("v"), Right: ref("arr")},
		&ast.Or{Left: ref("e"), Right: ref("p")},
		&ast.Not{Expr: ref("e")},
	} {
		res := checkExpr(t, e, version.Default)
		got, _ := res.TypeOf(e)
		assert.Equal(t, types.Boolean, got, ast.Describe(e))
		assert.NotEmpty(t, res.Diagnostics)
	}
}

func TestMultipleIndependentErrors(t *testing.T) {
	// (v > 1) AND (-e) AND MIN(v)
	e := &ast.And{
		Left: &ast.And{
			Left:  &ast.Comparison{Op: ast.Greater, Left: ref("v"), Right: num("1")},
			Right: &ast.UnaryMinus{Expr: ref("e")},
		},
		Right: &ast.Aggregate{Func: ast.Min, Arg: ref("v")},
	}

	res := checkExpr(t, e, version.Default)

	assertFindings(t, []string{
		"TYPE_MISMATCH: Cannot compare vertices",
		"TYPE_MISMATCH: Numeric expected here",
		"TYPE_MISMATCH: Aggregate does not allow vertex or edge input",
		"TYPE_MISMATCH: Boolean expected here",
	}, res)
	assert.True(t, res.HasErrors())
}

func TestResult_HasErrorsOnCleanExpression(t *testing.T) {
	res := checkExpr(t, &ast.Comparison{Op: ast.Less, Left: ref("num"), Right: num("1")}, version.Default)
	assert.False(t, res.HasErrors())
}

func TestSimpleCase_WithoutWhenTypesOperandAndElse(t *testing.T) {
	operand := ref("p")
	sc := ast.NewSimpleCase(ast.Pos{}, operand, nil, ref("str"))

	res := checkExpr(t, sc, version.Default)

	assertFindings(t, []string{"UNSUPPORTED_VARIABLE_KIND: Path variables not supported"}, res)
	got, ok := res.TypeOf(operand)
	require.True(t, ok)
	assert.Equal(t, types.Path, got)
	got, _ = res.TypeOf(sc)
	assert.Equal(t, types.String, got)
}

func TestSimpleCase_SharedOperandCheckedOnce(t *testing.T) {
	sc := ast.NewSimpleCase(ast.Pos{}, ref("p"), []ast.WhenThen{
		{When: num("1"), Then: ref("str")},
		{When: num("2"), Then: ref("str")},
	}, nil)

	res := checkExpr(t, sc, version.Default)

	got, _ := res.TypeOf(sc)
	assert.Equal(t, types.String, got)
	assertFindings(t, []string{"UNSUPPORTED_VARIABLE_KIND: Path variables not supported"}, res)
}

func TestSimpleCase_DelegatesToIfElse(t *testing.T) {
	sc := ast.NewSimpleCase(ast.Pos{}, ref("num"), []ast.WhenThen{
		{When: num("1"), Then: ref("v")},
	}, ref("str"))

	res := checkExpr(t, sc, version.Default)

	got, _ := res.TypeOf(sc)
	assert.Equal(t, types.Vertex, got)
	assertFindings(t, []string{"TYPE_MISMATCH: CASE does not allow vertex or edge output"}, res)
}

func TestTotality(t *testing.T) {
	sub := &ast.Query{Scope: scopeQ, Select: &ast.SelectClause{Projections: []*ast.ExpAsVar{{Expr: ref("u")}}}}
	exprs := []ast.Expr{
		ref("u"), &ast.PropRef{Var: ref("u")}, &ast.BindVariable{}, &ast.Literal{},
		&ast.Not{}, &ast.And{}, &ast.Or{}, &ast.UnaryMinus{}, &ast.Arithmetic{},
		&ast.Equality{}, &ast.Comparison{}, &ast.Aggregate{Func: ast.Sum},
		&ast.Exists{}, &ast.InPredicate{}, &ast.IsNull{}, &ast.Cast{},
		&ast.FunctionCall{}, &ast.Star{}, &ast.CharacterSubstring{}, &ast.Extract{},
		&ast.IfElse{}, &ast.SimpleCase{}, &ast.ScalarSubquery{}, &ast.ScalarSubquery{Query: sub},
		&ast.BuiltinCall{Func: ast.Labels},
	}
	for _, e := range exprs {
		res := checkExpr(t, e, version.Default)
		_, ok := res.TypeOf(e)
		assert.True(t, ok, ast.Describe(e))
		assert.Empty(t, res.Diagnostics, ast.Describe(e))
	}
}

func TestUnboundVariable(t *testing.T) {
	res, err := CheckExpr(&ast.Not{Expr: ref("missing")}, scopeQ, testEnv(t), version.Default)

	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, symbols.ErrUnboundVariable))
	assert.Contains(t, err.Error(), "VarRef(missing)")
}

func TestCheck_DoesNotDependOnTraversalState(t *testing.T) {
	env := testEnv(t)
	e := &ast.Comparison{Op: ast.Less, Left: ref("v"), Right: ref("e")}

	first, err := CheckExpr(e, scopeQ, env, version.Default)
	require.NoError(t, err)
	second, err := CheckExpr(e, scopeQ, env, version.Default)
	require.NoError(t, err)

	assert.Equal(t, findings(first.Diagnostics), findings(second.Diagnostics))
}
