package ast

import "fmt"

// Describe returns a short label for n, used to locate diagnostics when no
// source position is available.
func Describe(n Node) string {
	switch n := n.(type) {
	case nil:
		return "<nil>"
	case *VarRef:
		return fmt.Sprintf("VarRef(%s)", n.Name)
	case *PropRef:
		if n.Var == nil {
			return fmt.Sprintf("PropRef(%s)", n.Property)
		}
		return fmt.Sprintf("PropRef(%s.%s)", n.Var.Name, n.Property)
	case *BindVariable:
		return fmt.Sprintf("BindVariable(%d)", n.Index)
	case *Literal:
		return fmt.Sprintf("Literal(%s)", n.Kind)
	case *Not:
		return "Not"
	case *And:
		return "And"
	case *Or:
		return "Or"
	case *UnaryMinus:
		return "UnaryMinus"
	case *Arithmetic:
		return fmt.Sprintf("Arithmetic(%s)", n.Op)
	case *Equality:
		if n.Negated {
			return "Equality(<>)"
		}
		return "Equality(=)"
	case *Comparison:
		return fmt.Sprintf("Comparison(%s)", n.Op)
	case *Aggregate:
		return fmt.Sprintf("Aggregate(%s)", n.Func)
	case *Exists:
		return "Exists"
	case *InPredicate:
		return "InPredicate"
	case *IsNull:
		return "IsNull"
	case *Cast:
		return fmt.Sprintf("Cast(%s)", n.Target)
	case *FunctionCall:
		if n.Package != "" {
			return fmt.Sprintf("FunctionCall(%s.%s)", n.Package, n.Name)
		}
		return fmt.Sprintf("FunctionCall(%s)", n.Name)
	case *Star:
		return "Star"
	case *CharacterSubstring:
		return "CharacterSubstring"
	case *Extract:
		return fmt.Sprintf("Extract(%s)", n.Field)
	case *IfElse:
		return "IfElse"
	case *SimpleCase:
		return "SimpleCase"
	case *ScalarSubquery:
		return "ScalarSubquery"
	case *BuiltinCall:
		return fmt.Sprintf("BuiltinCall(%s)", n.Func)
	case *Query:
		return fmt.Sprintf("Query(%s)", n.Scope)
	case *ExpAsVar:
		return fmt.Sprintf("ExpAsVar(%s)", n.Name)
	case *SetProperty:
		return "SetProperty"
	case *OrderByElem:
		return "OrderByElem"
	case *VertexPattern:
		return fmt.Sprintf("Vertex(%s)", n.Name)
	case *EdgePattern:
		return fmt.Sprintf("Edge(%s)", n.Name)
	case *PathPattern:
		return fmt.Sprintf("Path(%s)", n.Name)
	case *PathMacro:
		return fmt.Sprintf("PathMacro(%s)", n.Name)
	case *Correlation:
		return fmt.Sprintf("Correlation(%s)", n.Outer)
	default:
		return fmt.Sprintf("%T", n)
	}
}
