package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/pgqlcheck/internal/types"
)

// ErrUnknownVersion is returned by Parse for tags outside the known set.
var ErrUnknownVersion = errors.New("unknown language version")

// Version is a language version.
type Version int

const (
	V1_0 Version = iota
	V1_1
	V1_2
	V1_3
)

// Current is the version used when none is given.
const Current = V1_3

var versionTags = [...]string{
	V1_0: "v1.0",
	V1_1: "v1.1",
	V1_2: "v1.2",
	V1_3: "v1.3",
}

// String returns the version tag, e.g. "v1.1".
func (v Version) String() string {
	if v < 0 || int(v) >= len(versionTags) {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return versionTags[v]
}

// Parse accepts "v1.0" through "v1.3", with or without the leading "v".
func Parse(tag string) (Version, error) {
	t := strings.TrimSpace(strings.ToLower(tag))
	if !strings.HasPrefix(t, "v") {
		t = "v" + t
	}
	for i, known := range versionTags {
		if t == known {
			return Version(i), nil
		}
	}
	return Current, fmt.Errorf("%w: %q", ErrUnknownVersion, tag)
}

// Policy is the set of version-dependent rule variants. A Policy is a plain
// value and is never mutated during an analysis.
type Policy struct {
	// Version is the language version this policy was resolved for.
	Version Version

	// OrderByGraphElements permits ORDER BY on vertex and edge keys.
	OrderByGraphElements bool

	// EnforceOperandTypes enables the Vertex/Edge operand checks of Not, And,
	// Or, UnaryMinus and Arithmetic. When false those rules still assign
	// their result type but report nothing.
	EnforceOperandTypes bool

	// NumericResult is the result type of arithmetic, unary minus, degree
	// and id functions.
	NumericResult types.Type

	// BanEdgeCorrelation makes every edge correlation fail regardless of the
	// outer definition's type.
	BanEdgeCorrelation bool

	// SplitScopeMessages reports role mismatches across scopes with their own
	// message instead of the shared duplicate-variable message.
	SplitScopeMessages bool
}

// Legacy is the v1.0 rule set.
var Legacy = Policy{
	Version:              V1_0,
	OrderByGraphElements: true,
	EnforceOperandTypes:  false,
	NumericResult:        types.Integer,
	BanEdgeCorrelation:   false,
	SplitScopeMessages:   false,
}

// Default is the rule set for Current.
var Default = For(Current)

// For resolves the policy of a version.
func For(v Version) Policy {
	if v == V1_0 {
		return Legacy
	}
	return Policy{
		Version:              v,
		OrderByGraphElements: false,
		EnforceOperandTypes:  true,
		NumericResult:        types.Numeric,
		BanEdgeCorrelation:   true,
		SplitScopeMessages:   true,
	}
}

// ForTag parses tag and resolves its policy.
func ForTag(tag string) (Policy, error) {
	v, err := Parse(tag)
	if err != nil {
		return Policy{}, err
	}
	return For(v), nil
}

// ForNode returns the policy for a node carrying its own version tag. An
// empty or unrecognised tag leaves p in effect.
func (p Policy) ForNode(tag string) Policy {
	if tag == "" {
		return p
	}
	v, err := Parse(tag)
	if err != nil {
		return p
	}
	return For(v)
}
