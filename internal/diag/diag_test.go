package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pgqlcheck/internal/ast"
)

func TestCollector_PreservesOrder(t *testing.T) {
	c := NewCollector()
	first := &ast.VarRef{Name: "a"}
	second := &ast.VarRef{Name: "b"}

	c.Errorf(first, KindTypeMismatch, "Boolean expected here")
	c.Errorf(second, KindInvalidOrderKey, "Cannot order by vertex")

	all := c.All()
	require.Len(t, all, 2)
	assert.Same(t, first, all[0].Node)
	assert.Same(t, second, all[1].Node)
}

func TestCollector_AllReturnsCopy(t *testing.T) {
	c := NewCollector()
	c.Errorf(nil, KindTypeMismatch, "x")

	all := c.All()
	all[0].Template = "changed"

	assert.Equal(t, "x", c.All()[0].Template)
}

func TestCollector_Empty(t *testing.T) {
	c := NewCollector()
	assert.Empty(t, c.All())
}

func TestDiagnostic_MessageAndPosition(t *testing.T) {
	c := NewCollector()
	node := &ast.BuiltinCall{Pos: ast.Pos{Line: 4, Column: 9}, Func: ast.InDegree}
	c.Errorf(node, KindFunctionDomainError, "%s expects a vertex", "IN_DEGREE")

	d := c.All()[0]
	assert.Equal(t, "IN_DEGREE expects a vertex", d.Message())
	assert.Equal(t, ast.Pos{Line: 4, Column: 9}, d.Pos)
	assert.Equal(t, Error, d.Severity)
	assert.Equal(t, "E206", d.Code())
	assert.Equal(t, "[E206] 4:9: IN_DEGREE expects a vertex", d.Error())
}

func TestDiagnostic_ErrorWithoutPosition(t *testing.T) {
	d := Diagnostic{Node: &ast.VarRef{Name: "p"}, Kind: KindUnsupportedVariableKind, Template: "Path variables not supported"}
	assert.Equal(t, "[E201] VarRef(p): Path variables not supported", d.Error())
}

func TestKindCodes(t *testing.T) {
	codes := map[Kind]string{
		KindUnsupportedVariableKind:     "E201",
		KindTypeMismatch:                "E202",
		KindDuplicateCorrelatedVariable: "E203",
		KindInvalidSubqueryProjection:   "E204",
		KindInvalidOrderKey:             "E205",
		KindFunctionDomainError:         "E206",
		Kind("OTHER"):                   "E200",
	}
	for kind, code := range codes {
		assert.Equal(t, code, kind.Code(), string(kind))
	}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", Severity(7).String())
}
