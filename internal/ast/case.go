package ast

// NewSimpleCase builds a simple CASE together with its desugared form
//
//	CASE op WHEN w1 THEN t1 WHEN w2 THEN t2 ELSE e END
//	=> IfElse(op = w1, t1, IfElse(op = w2, t2, e))
//
// The operand node is shared by every generated equality. A missing ELSE
// becomes a NULL literal.
func NewSimpleCase(pos Pos, operand Expr, whens []WhenThen, els Expr) *SimpleCase {
	desugared := els
	if desugared == nil {
		desugared = &Literal{Pos: pos, Kind: LitNull}
	}
	var chain *IfElse
	for i := len(whens) - 1; i >= 0; i-- {
		w := whens[i]
		chain = &IfElse{
			Pos:  pos,
			Cond: &Equality{Pos: pos, Left: operand, Right: w.When},
			Then: w.Then,
			Else: desugared,
		}
		desugared = chain
	}
	return &SimpleCase{
		Pos:     pos,
		Operand: operand,
		Whens:   whens,
		Else:    els,
		IfElse:  chain,
	}
}
