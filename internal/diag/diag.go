package diag

import (
	"fmt"

	"github.com/roach88/pgqlcheck/internal/ast"
)

// Kind categorizes a diagnostic. Kinds are stable and safe to match on.
type Kind string

const (
	// KindUnsupportedVariableKind: a path variable used as a value.
	KindUnsupportedVariableKind Kind = "UNSUPPORTED_VARIABLE_KIND"

	// KindTypeMismatch: an operand type forbidden for an operator or function.
	KindTypeMismatch Kind = "TYPE_MISMATCH"

	// KindDuplicateCorrelatedVariable: an inner variable conflicts with a
	// variable of the same name in an outer query block.
	KindDuplicateCorrelatedVariable Kind = "DUPLICATE_CORRELATED_VARIABLE"

	// KindInvalidSubqueryProjection: a scalar subquery projects a vertex or edge.
	KindInvalidSubqueryProjection Kind = "INVALID_SUBQUERY_PROJECTION"

	// KindInvalidOrderKey: an ORDER BY key of a forbidden type.
	KindInvalidOrderKey Kind = "INVALID_ORDER_KEY"

	// KindFunctionDomainError: a vertex-only or edge-only built-in applied to
	// the wrong kind of element.
	KindFunctionDomainError Kind = "FUNCTION_DOMAIN_ERROR"
)

// Type check error codes (E200-E299)
const (
	CodeUnsupportedVariableKind     = "E201"
	CodeTypeMismatch                = "E202"
	CodeDuplicateCorrelatedVariable = "E203"
	CodeInvalidSubqueryProjection   = "E204"
	CodeInvalidOrderKey             = "E205"
	CodeFunctionDomainError         = "E206"
)

// Code returns the stable error code of k.
func (k Kind) Code() string {
	switch k {
	case KindUnsupportedVariableKind:
		return CodeUnsupportedVariableKind
	case KindTypeMismatch:
		return CodeTypeMismatch
	case KindDuplicateCorrelatedVariable:
		return CodeDuplicateCorrelatedVariable
	case KindInvalidSubqueryProjection:
		return CodeInvalidSubqueryProjection
	case KindInvalidOrderKey:
		return CodeInvalidOrderKey
	case KindFunctionDomainError:
		return CodeFunctionDomainError
	default:
		return "E200"
	}
}

// Severity of a diagnostic. The type checker only produces errors.
type Severity int

const (
	Error Severity = iota
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one located finding. It is never mutated after creation.
type Diagnostic struct {
	Node     ast.Node `json:"-"`
	Pos      ast.Pos  `json:"pos"`
	Severity Severity `json:"-"`
	Kind     Kind     `json:"kind"`
	Template string   `json:"-"`
	Args     []any    `json:"-"`
}

// Code returns the diagnostic's error code.
func (d Diagnostic) Code() string { return d.Kind.Code() }

// Message renders the template with its arguments.
func (d Diagnostic) Message() string {
	if len(d.Args) == 0 {
		return d.Template
	}
	return fmt.Sprintf(d.Template, d.Args...)
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("[%s] %s: %s", d.Code(), d.Pos, d.Message())
	}
	return fmt.Sprintf("[%s] %s: %s", d.Code(), ast.Describe(d.Node), d.Message())
}
