package checker

// Diagnostic message templates.
const (
	msgPathVariable = "Path variables not supported"

	msgBooleanExpected = "Boolean expected here"
	msgNumericExpected = "Numeric expected here"

	msgCompareVertex = "Cannot compare vertices"
	msgCompareEdge   = "Cannot compare edges"
	msgCompareArray  = "Cannot compare arrays"

	msgAggregateVertexEdge = "Aggregate does not allow vertex or edge input"
	msgAggregateArray      = "Aggregate does not allow array input"

	msgCaseOutput = "CASE does not allow vertex or edge output"

	msgOrderByVertex = "Cannot order by vertex"
	msgOrderByEdge   = "Cannot order by edge"
	msgOrderByArray  = "Cannot order by array"

	msgSetProperty = "Cannot set the value of a property to a vertex or an edge"

	msgScalarSubquery = "Scalar subquery not allowed to return a vertex or an edge"

	msgExpectsVertex       = "%s expects a vertex"
	msgExpectsEdge         = "%s expects an edge"
	msgExpectsVertexOrEdge = "%s expects a vertex or an edge"

	msgDuplicateVariable = "Duplicate variable (variable with same name is passed from an outer query)"
	msgOuterNotVertex    = "Vertex expected here, but %s is not a vertex in the outer query"
	msgOuterNotEdge      = "Edge expected here, but %s is not an edge in the outer query"
)
