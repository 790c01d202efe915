package fixture

// The document types mirror the query tree in a form that decodes from both
// YAML (yaml tags) and CUE (json tags). Every node may carry a "line:col"
// position. An Expr sets exactly one of its operator fields.

// Document is one fixture: a query, optionally with a language version and
// explicit variable definitions that override the ones derived from the
// query's patterns.
type Document struct {
	Name    string                       `yaml:"name" json:"name"`
	Version string                       `yaml:"version,omitempty" json:"version,omitempty"`
	Symbols map[string]map[string]string `yaml:"symbols,omitempty" json:"symbols,omitempty"`
	Query   *Query                       `yaml:"query" json:"query"`
}

// Query is one query block.
type Query struct {
	Pos        string       `yaml:"pos,omitempty" json:"pos,omitempty"`
	Scope      string       `yaml:"scope,omitempty" json:"scope,omitempty"`
	Distinct   bool         `yaml:"distinct,omitempty" json:"distinct,omitempty"`
	SelectStar bool         `yaml:"select_star,omitempty" json:"select_star,omitempty"`
	Select     []ExpAsVar   `yaml:"select,omitempty" json:"select,omitempty"`
	Modify     *Modify      `yaml:"modify,omitempty" json:"modify,omitempty"`
	PathMacros []PathMacro  `yaml:"path_macros,omitempty" json:"path_macros,omitempty"`
	Match      []Pattern    `yaml:"match,omitempty" json:"match,omitempty"`
	Where      *Expr        `yaml:"where,omitempty" json:"where,omitempty"`
	GroupBy    []ExpAsVar   `yaml:"group_by,omitempty" json:"group_by,omitempty"`
	Having     *Expr        `yaml:"having,omitempty" json:"having,omitempty"`
	OrderBy    []OrderByKey `yaml:"order_by,omitempty" json:"order_by,omitempty"`
	Limit      *Expr        `yaml:"limit,omitempty" json:"limit,omitempty"`
	Offset     *Expr        `yaml:"offset,omitempty" json:"offset,omitempty"`
}

type ExpAsVar struct {
	Pos  string `yaml:"pos,omitempty" json:"pos,omitempty"`
	Expr Expr   `yaml:"expr" json:"expr"`
	As   string `yaml:"as,omitempty" json:"as,omitempty"`
}

type Modify struct {
	Set    []SetProperty `yaml:"set,omitempty" json:"set,omitempty"`
	Delete []string      `yaml:"delete,omitempty" json:"delete,omitempty"`
}

type SetProperty struct {
	Pos    string `yaml:"pos,omitempty" json:"pos,omitempty"`
	Target string `yaml:"target" json:"target"` // "var.property"
	Value  Expr   `yaml:"value" json:"value"`
}

type OrderByKey struct {
	Pos     string `yaml:"pos,omitempty" json:"pos,omitempty"`
	Expr    Expr   `yaml:"expr" json:"expr"`
	Desc    bool   `yaml:"desc,omitempty" json:"desc,omitempty"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

type PathMacro struct {
	Pos     string  `yaml:"pos,omitempty" json:"pos,omitempty"`
	Name    string  `yaml:"name" json:"name"`
	Scope   string  `yaml:"scope,omitempty" json:"scope,omitempty"`
	Pattern Pattern `yaml:"pattern" json:"pattern"`
	Where   *Expr   `yaml:"where,omitempty" json:"where,omitempty"`
}

// Pattern is a path pattern. Path names the pattern as a path variable.
type Pattern struct {
	Pos      string    `yaml:"pos,omitempty" json:"pos,omitempty"`
	Path     string    `yaml:"path,omitempty" json:"path,omitempty"`
	Elements []Element `yaml:"elements" json:"elements"`
}

// Element is a vertex or an edge pattern. Exactly one of Vertex and Edge is
// set; "_" or an empty name with Anonymous makes it anonymous.
type Element struct {
	Pos       string  `yaml:"pos,omitempty" json:"pos,omitempty"`
	Vertex    *string `yaml:"vertex,omitempty" json:"vertex,omitempty"`
	Edge      *string `yaml:"edge,omitempty" json:"edge,omitempty"`
	Direction string  `yaml:"direction,omitempty" json:"direction,omitempty"`
	Correlate string  `yaml:"correlate,omitempty" json:"correlate,omitempty"`
}

// Expr is one expression node.
type Expr struct {
	Pos string `yaml:"pos,omitempty" json:"pos,omitempty"`

	Var  string   `yaml:"var,omitempty" json:"var,omitempty"`
	Prop string   `yaml:"prop,omitempty" json:"prop,omitempty"` // "var.property"
	Bind *int     `yaml:"bind,omitempty" json:"bind,omitempty"`
	Lit  *Literal `yaml:"lit,omitempty" json:"lit,omitempty"`
	Star bool     `yaml:"star,omitempty" json:"star,omitempty"`

	Not *Expr   `yaml:"not,omitempty" json:"not,omitempty"`
	Neg *Expr   `yaml:"neg,omitempty" json:"neg,omitempty"`
	And []Expr  `yaml:"and,omitempty" json:"and,omitempty"`
	Or  []Expr  `yaml:"or,omitempty" json:"or,omitempty"`
	Bin *Binary `yaml:"bin,omitempty" json:"bin,omitempty"`

	Agg       *Aggregate `yaml:"agg,omitempty" json:"agg,omitempty"`
	Exists    *Query     `yaml:"exists,omitempty" json:"exists,omitempty"`
	Subquery  *Query     `yaml:"subquery,omitempty" json:"subquery,omitempty"`
	In        *In        `yaml:"in,omitempty" json:"in,omitempty"`
	IsNull    *IsNull    `yaml:"is_null,omitempty" json:"is_null,omitempty"`
	Cast      *Cast      `yaml:"cast,omitempty" json:"cast,omitempty"`
	Call      *Call      `yaml:"call,omitempty" json:"call,omitempty"`
	Substring *Substring `yaml:"substring,omitempty" json:"substring,omitempty"`
	Extract   *Extract   `yaml:"extract,omitempty" json:"extract,omitempty"`
	If        *IfElse    `yaml:"if,omitempty" json:"if,omitempty"`
	Case      *Case      `yaml:"case,omitempty" json:"case,omitempty"`
}

// Literal kinds are the lower-case literal kind names: null, boolean,
// integer, decimal, string, date, time, timestamp.
type Literal struct {
	Kind  string `yaml:"kind" json:"kind"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Binary covers arithmetic (+ - * / %), equality (= <>) and ordering
// comparison (> >= < <=).
type Binary struct {
	Op    string `yaml:"op" json:"op"`
	Left  Expr   `yaml:"left" json:"left"`
	Right Expr   `yaml:"right" json:"right"`
}

type Aggregate struct {
	Func      string `yaml:"func" json:"func"`
	Distinct  bool   `yaml:"distinct,omitempty" json:"distinct,omitempty"`
	Arg       *Expr  `yaml:"arg,omitempty" json:"arg,omitempty"`
	Separator string `yaml:"separator,omitempty" json:"separator,omitempty"`
}

type In struct {
	Expr    Expr   `yaml:"expr" json:"expr"`
	Values  []Expr `yaml:"values" json:"values"`
	Negated bool   `yaml:"negated,omitempty" json:"negated,omitempty"`
}

type IsNull struct {
	Expr    Expr `yaml:"expr" json:"expr"`
	Negated bool `yaml:"negated,omitempty" json:"negated,omitempty"`
}

type Cast struct {
	Expr Expr   `yaml:"expr" json:"expr"`
	Type string `yaml:"type" json:"type"`
}

// Call is a function call. A call without a package whose name is one of
// the graph built-ins (in_degree, out_degree, labels, label, has, has_label,
// id) becomes a built-in call on its first argument.
type Call struct {
	Package string `yaml:"package,omitempty" json:"package,omitempty"`
	Name    string `yaml:"name" json:"name"`
	Args    []Expr `yaml:"args,omitempty" json:"args,omitempty"`
}

type Substring struct {
	Expr   Expr  `yaml:"expr" json:"expr"`
	Start  *Expr `yaml:"start,omitempty" json:"start,omitempty"`
	Length *Expr `yaml:"length,omitempty" json:"length,omitempty"`
}

type Extract struct {
	Field string `yaml:"field" json:"field"`
	Expr  Expr   `yaml:"expr" json:"expr"`
}

type IfElse struct {
	Cond Expr  `yaml:"cond" json:"cond"`
	Then Expr  `yaml:"then" json:"then"`
	Else *Expr `yaml:"else,omitempty" json:"else,omitempty"`
}

// Case is a simple CASE: CASE operand WHEN w THEN t ... ELSE e END.
type Case struct {
	Operand Expr       `yaml:"operand" json:"operand"`
	When    []WhenThen `yaml:"when" json:"when"`
	Else    *Expr      `yaml:"else,omitempty" json:"else,omitempty"`
}

type WhenThen struct {
	When Expr `yaml:"when" json:"when"`
	Then Expr `yaml:"then" json:"then"`
}
