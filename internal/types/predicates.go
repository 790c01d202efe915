package types

// IsUnknown reports whether t is the Unknown type.
func IsUnknown(t Type) bool { return t == Unknown }

// IsVertexOrEdge reports whether t is Vertex or Edge.
func IsVertexOrEdge(t Type) bool { return t == Vertex || t == Edge }

// IsArray reports whether t is Array.
func IsArray(t Type) bool { return t == Array }

// IsBooleanCompatible reports whether t may stand where a boolean is expected.
func IsBooleanCompatible(t Type) bool { return t == Boolean || t == Unknown }

// Is reports whether t satisfies a positive "must be want" constraint.
// Unknown satisfies every such constraint.
func Is(t, want Type) bool { return t == want || t == Unknown }

// IsAny is Is for a set of accepted types.
func IsAny(t Type, accepted ...Type) bool {
	if t == Unknown {
		return true
	}
	for _, a := range accepted {
		if t == a {
			return true
		}
	}
	return false
}

// Forbidden reports whether t is a member of the forbidden set. Unknown is
// never forbidden, so callers emit a diagnostic only when Forbidden is true.
func Forbidden(t Type, set ...Type) bool {
	if t == Unknown {
		return false
	}
	for _, f := range set {
		if t == f {
			return true
		}
	}
	return false
}
