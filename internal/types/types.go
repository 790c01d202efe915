package types

import (
	"fmt"
	"strings"
)

// Type is the semantic type assigned to an expression.
//
// The zero value is Unknown, the "not statically known" type. Unknown never
// fails a constraint: every forbidden-set test treats it as passing.
type Type int

const (
	Unknown Type = iota
	None
	Boolean
	Numeric
	Integer
	Decimal
	String
	Date
	Time
	Timestamp
	Vertex
	Edge
	Path
	Array
	StringSet
)

var typeNames = [...]string{
	Unknown:   "Unknown",
	None:      "None",
	Boolean:   "Boolean",
	Numeric:   "Numeric",
	Integer:   "Integer",
	Decimal:   "Decimal",
	String:    "String",
	Date:      "Date",
	Time:      "Time",
	Timestamp: "Timestamp",
	Vertex:    "Vertex",
	Edge:      "Edge",
	Path:      "Path",
	Array:     "Array",
	StringSet: "StringSet",
}

// String returns the type name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// All returns every type in declaration order.
func All() []Type {
	all := make([]Type, len(typeNames))
	for i := range typeNames {
		all[i] = Type(i)
	}
	return all
}

// Parse returns the type with the given name. Matching is case-insensitive.
func Parse(name string) (Type, error) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown type name %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
