package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/symbols"
	"github.com/roach88/pgqlcheck/internal/types"
	"github.com/roach88/pgqlcheck/internal/version"
)

// Fixture is a decoded document ready to be checked.
type Fixture struct {
	Name string
	File string

	// Version is the document's language version tag, empty if unset.
	Version string

	Query *ast.Query
	Env   *symbols.Table
}

// Policy returns the policy for the fixture's own version tag, or fallback
// when the document does not name one.
func (f *Fixture) Policy(fallback version.Policy) (version.Policy, error) {
	if f.Version == "" {
		return fallback, nil
	}
	return version.ForTag(f.Version)
}

// Decode turns a document into a query tree and its symbol table. Scopes
// without an explicit name are numbered q0, q1, ... in document order; path
// macros without one are named after their macro.
func Decode(doc *Document) (*Fixture, error) {
	if doc.Name == "" {
		return nil, &LoadError{Code: ErrCodeInvalidDocument, Message: "name is required"}
	}
	if doc.Query == nil {
		return nil, &LoadError{Code: ErrCodeInvalidDocument, Message: "query is required", Doc: doc.Name}
	}
	if doc.Version != "" {
		if _, err := version.Parse(doc.Version); err != nil {
			return nil, &LoadError{Code: ErrCodeInvalidVersion, Message: err.Error(), Doc: doc.Name}
		}
	}

	d := &decoder{}
	q := d.query(doc.Query, "query")
	if d.err != nil {
		d.err.Doc = doc.Name
		return nil, d.err
	}

	b := symbols.Collect(q)
	for scope, defs := range doc.Symbols {
		for name, typeName := range defs {
			typ, err := types.Parse(typeName)
			if err != nil {
				return nil, &LoadError{
					Code:    ErrCodeInvalidSymbol,
					Message: fmt.Sprintf("symbols.%s.%s: %v", scope, name, err),
					Doc:     doc.Name,
				}
			}
			b.Define(ast.ScopeID(scope), name, typ)
		}
	}
	env, err := b.Build()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidSymbol, Message: err.Error(), Doc: doc.Name}
	}

	return &Fixture{Name: doc.Name, Version: doc.Version, Query: q, Env: env}, nil
}

// decoder keeps the first error and the scope counter. Decoding continues
// after an error but its result is discarded.
type decoder struct {
	next int
	err  *LoadError
}

func (d *decoder) fail(path, format string, args ...any) {
	if d.err != nil {
		return
	}
	d.err = &LoadError{Code: ErrCodeInvalidNode, Message: path + ": " + fmt.Sprintf(format, args...)}
}

func (d *decoder) pos(s, path string) ast.Pos {
	if s == "" {
		return ast.Pos{}
	}
	line, col, ok := strings.Cut(s, ":")
	l, err1 := strconv.Atoi(line)
	c, err2 := strconv.Atoi(col)
	if !ok || err1 != nil || err2 != nil {
		d.fail(path, "invalid position %q, want line:column", s)
		return ast.Pos{}
	}
	return ast.Pos{Line: l, Column: c}
}

func (d *decoder) scope(explicit string) ast.ScopeID {
	if explicit != "" {
		return ast.ScopeID(explicit)
	}
	id := ast.ScopeID(fmt.Sprintf("q%d", d.next))
	d.next++
	return id
}

func (d *decoder) query(in *Query, path string) *ast.Query {
	q := &ast.Query{Pos: d.pos(in.Pos, path), Scope: d.scope(in.Scope)}

	if in.Modify != nil {
		if len(in.Select) > 0 || in.SelectStar {
			d.fail(path, "select and modify are exclusive")
		}
		q.Modify = d.modify(in.Modify, path+".modify")
	} else {
		q.Select = &ast.SelectClause{Pos: q.Pos, Distinct: in.Distinct, Star: in.SelectStar}
		for i := range in.Select {
			q.Select.Projections = append(q.Select.Projections, d.expAsVar(&in.Select[i], fmt.Sprintf("%s.select[%d]", path, i)))
		}
	}

	for i := range in.PathMacros {
		q.PathMacros = append(q.PathMacros, d.pathMacro(&in.PathMacros[i], fmt.Sprintf("%s.path_macros[%d]", path, i)))
	}
	for i := range in.Match {
		q.Match = append(q.Match, d.pattern(&in.Match[i], fmt.Sprintf("%s.match[%d]", path, i)))
	}
	q.Where = d.optExpr(in.Where, path+".where")
	for i := range in.GroupBy {
		q.GroupBy = append(q.GroupBy, d.expAsVar(&in.GroupBy[i], fmt.Sprintf("%s.group_by[%d]", path, i)))
	}
	q.Having = d.optExpr(in.Having, path+".having")
	for i := range in.OrderBy {
		k := &in.OrderBy[i]
		p := fmt.Sprintf("%s.order_by[%d]", path, i)
		if k.Version != "" {
			if _, err := version.Parse(k.Version); err != nil {
				d.fail(p, "%v", err)
			}
		}
		q.OrderBy = append(q.OrderBy, &ast.OrderByElem{
			Pos:        d.pos(k.Pos, p),
			Expr:       d.expr(&k.Expr, p+".expr"),
			Descending: k.Desc,
			Version:    k.Version,
		})
	}
	q.Limit = d.optExpr(in.Limit, path+".limit")
	q.Offset = d.optExpr(in.Offset, path+".offset")
	return q
}

func (d *decoder) expAsVar(in *ExpAsVar, path string) *ast.ExpAsVar {
	return &ast.ExpAsVar{
		Pos:       d.pos(in.Pos, path),
		Expr:      d.expr(&in.Expr, path+".expr"),
		Name:      in.As,
		Anonymous: in.As == "",
	}
}

func (d *decoder) modify(in *Modify, path string) *ast.ModifyClause {
	m := &ast.ModifyClause{}
	for i := range in.Set {
		s := &in.Set[i]
		p := fmt.Sprintf("%s.set[%d]", path, i)
		m.Sets = append(m.Sets, &ast.SetProperty{
			Pos:    d.pos(s.Pos, p),
			Target: d.propRef(s.Target, ast.Pos{}, p+".target"),
			Value:  d.expr(&s.Value, p+".value"),
		})
	}
	for _, name := range in.Delete {
		m.Deletes = append(m.Deletes, &ast.VarRef{Name: name})
	}
	return m
}

func (d *decoder) pathMacro(in *PathMacro, path string) *ast.PathMacro {
	scope := ast.ScopeID(in.Scope)
	if scope == "" {
		scope = ast.ScopeID("path:" + in.Name)
	}
	if in.Name == "" {
		d.fail(path, "path macro name is required")
	}
	return &ast.PathMacro{
		Pos:     d.pos(in.Pos, path),
		Name:    in.Name,
		Scope:   scope,
		Pattern: d.pattern(&in.Pattern, path+".pattern"),
		Where:   d.optExpr(in.Where, path+".where"),
	}
}

func (d *decoder) pattern(in *Pattern, path string) *ast.PathPattern {
	p := &ast.PathPattern{Pos: d.pos(in.Pos, path), Name: in.Path}
	for i := range in.Elements {
		if el := d.element(&in.Elements[i], fmt.Sprintf("%s.elements[%d]", path, i)); el != nil {
			p.Elements = append(p.Elements, el)
		}
	}
	return p
}

func (d *decoder) element(in *Element, path string) ast.PatternElement {
	pos := d.pos(in.Pos, path)
	var corr *ast.Correlation
	if in.Correlate != "" {
		corr = &ast.Correlation{Pos: pos, Outer: in.Correlate}
	}
	switch {
	case in.Vertex != nil && in.Edge != nil:
		d.fail(path, "element is both a vertex and an edge")
		return nil
	case in.Vertex != nil:
		name, anon := elementName(*in.Vertex)
		return &ast.VertexPattern{Pos: pos, Name: name, Anonymous: anon, Correlation: corr}
	case in.Edge != nil:
		name, anon := elementName(*in.Edge)
		dir, ok := directions[strings.ToLower(in.Direction)]
		if !ok {
			d.fail(path, "unknown direction %q", in.Direction)
		}
		return &ast.EdgePattern{Pos: pos, Name: name, Anonymous: anon, Direction: dir, Correlation: corr}
	default:
		d.fail(path, "element needs vertex or edge")
		return nil
	}
}

func elementName(s string) (string, bool) {
	if s == "" || s == "_" {
		return "", true
	}
	return s, false
}

var directions = map[string]ast.Direction{
	"":         ast.Outgoing,
	"outgoing": ast.Outgoing,
	"out":      ast.Outgoing,
	"incoming": ast.Incoming,
	"in":       ast.Incoming,
	"any":      ast.AnyDirection,
}

func (d *decoder) optExpr(in *Expr, path string) ast.Expr {
	if in == nil {
		return nil
	}
	return d.expr(in, path)
}

func (d *decoder) propRef(s string, pos ast.Pos, path string) *ast.PropRef {
	v, prop, ok := strings.Cut(s, ".")
	if !ok || v == "" || prop == "" {
		d.fail(path, "invalid property reference %q, want var.property", s)
	}
	return &ast.PropRef{Pos: pos, Var: &ast.VarRef{Pos: pos, Name: v}, Property: prop}
}

// operators counts the operator fields set on e.
func operators(e *Expr) int {
	n := 0
	for _, set := range []bool{
		e.Var != "", e.Prop != "", e.Bind != nil, e.Lit != nil, e.Star,
		e.Not != nil, e.Neg != nil, e.And != nil, e.Or != nil, e.Bin != nil,
		e.Agg != nil, e.Exists != nil, e.Subquery != nil, e.In != nil,
		e.IsNull != nil, e.Cast != nil, e.Call != nil, e.Substring != nil,
		e.Extract != nil, e.If != nil, e.Case != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (d *decoder) expr(in *Expr, path string) ast.Expr {
	pos := d.pos(in.Pos, path)
	if n := operators(in); n != 1 {
		d.fail(path, "expression must set exactly one operator, found %d", n)
		return &ast.Literal{Pos: pos, Kind: ast.LitNull}
	}

	switch {
	case in.Var != "":
		return &ast.VarRef{Pos: pos, Name: in.Var}
	case in.Prop != "":
		return d.propRef(in.Prop, pos, path+".prop")
	case in.Bind != nil:
		return &ast.BindVariable{Pos: pos, Index: *in.Bind}
	case in.Lit != nil:
		kind, ok := literalKind(in.Lit.Kind)
		if !ok {
			d.fail(path+".lit", "unknown literal kind %q", in.Lit.Kind)
		}
		return &ast.Literal{Pos: pos, Kind: kind, Value: in.Lit.Value}
	case in.Star:
		return &ast.Star{Pos: pos}
	case in.Not != nil:
		return &ast.Not{Pos: pos, Expr: d.expr(in.Not, path+".not")}
	case in.Neg != nil:
		return &ast.UnaryMinus{Pos: pos, Expr: d.expr(in.Neg, path+".neg")}
	case in.And != nil:
		l, r := d.pair(in.And, path+".and")
		return &ast.And{Pos: pos, Left: l, Right: r}
	case in.Or != nil:
		l, r := d.pair(in.Or, path+".or")
		return &ast.Or{Pos: pos, Left: l, Right: r}
	case in.Bin != nil:
		return d.binary(in.Bin, pos, path+".bin")
	case in.Agg != nil:
		return d.aggregate(in.Agg, pos, path+".agg")
	case in.Exists != nil:
		return &ast.Exists{Pos: pos, Query: d.query(in.Exists, path+".exists")}
	case in.Subquery != nil:
		return &ast.ScalarSubquery{Pos: pos, Query: d.query(in.Subquery, path+".subquery")}
	case in.In != nil:
		out := &ast.InPredicate{Pos: pos, Expr: d.expr(&in.In.Expr, path+".in.expr"), Negated: in.In.Negated}
		for i := range in.In.Values {
			out.Values = append(out.Values, d.expr(&in.In.Values[i], fmt.Sprintf("%s.in.values[%d]", path, i)))
		}
		return out
	case in.IsNull != nil:
		return &ast.IsNull{Pos: pos, Expr: d.expr(&in.IsNull.Expr, path+".is_null.expr"), Negated: in.IsNull.Negated}
	case in.Cast != nil:
		return &ast.Cast{Pos: pos, Expr: d.expr(&in.Cast.Expr, path+".cast.expr"), Target: in.Cast.Type}
	case in.Call != nil:
		return d.call(in.Call, pos, path+".call")
	case in.Substring != nil:
		return &ast.CharacterSubstring{
			Pos:    pos,
			Expr:   d.expr(&in.Substring.Expr, path+".substring.expr"),
			Start:  d.optExpr(in.Substring.Start, path+".substring.start"),
			Length: d.optExpr(in.Substring.Length, path+".substring.length"),
		}
	case in.Extract != nil:
		return &ast.Extract{Pos: pos, Field: in.Extract.Field, Expr: d.expr(&in.Extract.Expr, path+".extract.expr")}
	case in.If != nil:
		return &ast.IfElse{
			Pos:  pos,
			Cond: d.expr(&in.If.Cond, path+".if.cond"),
			Then: d.expr(&in.If.Then, path+".if.then"),
			Else: d.optExpr(in.If.Else, path+".if.else"),
		}
	default:
		c := in.Case
		if len(c.When) == 0 {
			d.fail(path+".case", "simple CASE needs at least one WHEN")
		}
		whens := make([]ast.WhenThen, 0, len(c.When))
		for i := range c.When {
			p := fmt.Sprintf("%s.case.when[%d]", path, i)
			whens = append(whens, ast.WhenThen{
				When: d.expr(&c.When[i].When, p+".when"),
				Then: d.expr(&c.When[i].Then, p+".then"),
			})
		}
		return ast.NewSimpleCase(pos, d.expr(&c.Operand, path+".case.operand"), whens, d.optExpr(c.Else, path+".case.else"))
	}
}

func (d *decoder) pair(in []Expr, path string) (ast.Expr, ast.Expr) {
	if len(in) != 2 {
		d.fail(path, "want 2 operands, found %d", len(in))
		return nil, nil
	}
	return d.expr(&in[0], path+"[0]"), d.expr(&in[1], path+"[1]")
}

var arithOps = map[string]ast.ArithOp{
	"+": ast.Add, "-": ast.Sub, "*": ast.Mul, "/": ast.Div, "%": ast.Mod,
}

var compareOps = map[string]ast.CompareOp{
	">": ast.Greater, ">=": ast.GreaterEqual, "<": ast.Less, "<=": ast.LessEqual,
}

func (d *decoder) binary(in *Binary, pos ast.Pos, path string) ast.Expr {
	l := d.expr(&in.Left, path+".left")
	r := d.expr(&in.Right, path+".right")
	if op, ok := arithOps[in.Op]; ok {
		return &ast.Arithmetic{Pos: pos, Op: op, Left: l, Right: r}
	}
	if op, ok := compareOps[in.Op]; ok {
		return &ast.Comparison{Pos: pos, Op: op, Left: l, Right: r}
	}
	switch in.Op {
	case "=":
		return &ast.Equality{Pos: pos, Left: l, Right: r}
	case "<>", "!=":
		return &ast.Equality{Pos: pos, Negated: true, Left: l, Right: r}
	}
	d.fail(path, "unknown operator %q", in.Op)
	return &ast.Equality{Pos: pos, Left: l, Right: r}
}

func (d *decoder) aggregate(in *Aggregate, pos ast.Pos, path string) ast.Expr {
	fn, ok := aggregateFunc(in.Func)
	if !ok {
		d.fail(path, "unknown aggregate %q", in.Func)
	}
	if in.Arg == nil && fn != ast.Count {
		d.fail(path, "%s needs an argument", fn)
	}
	return &ast.Aggregate{
		Pos:       pos,
		Func:      fn,
		Distinct:  in.Distinct,
		Arg:       d.optExpr(in.Arg, path+".arg"),
		Separator: in.Separator,
	}
}

func (d *decoder) call(in *Call, pos ast.Pos, path string) ast.Expr {
	args := make([]ast.Expr, 0, len(in.Args))
	for i := range in.Args {
		args = append(args, d.expr(&in.Args[i], fmt.Sprintf("%s.args[%d]", path, i)))
	}
	if in.Package == "" {
		if fn, ok := builtinFunc(in.Name); ok {
			if len(args) == 0 {
				d.fail(path, "%s needs a target", fn)
				return &ast.BuiltinCall{Pos: pos, Func: fn}
			}
			return &ast.BuiltinCall{Pos: pos, Func: fn, Target: args[0], Args: args[1:]}
		}
	}
	return &ast.FunctionCall{Pos: pos, Package: in.Package, Name: in.Name, Args: args}
}

func literalKind(name string) (ast.LiteralKind, bool) {
	for k := ast.LitNull; k <= ast.LitTimestamp; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return ast.LitNull, false
}

func aggregateFunc(name string) (ast.AggFunc, bool) {
	for f := ast.Count; f <= ast.ArrayAgg; f++ {
		if strings.EqualFold(f.String(), name) {
			return f, true
		}
	}
	return ast.Count, false
}

func builtinFunc(name string) (ast.BuiltinFunc, bool) {
	for f := ast.InDegree; f <= ast.ID; f++ {
		if strings.EqualFold(f.String(), name) {
			return f, true
		}
	}
	return 0, false
}
