package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTripsEveryName(t *testing.T) {
	for _, typ := range All() {
		parsed, err := Parse(typ.String())
		require.NoError(t, err, typ.String())
		assert.Equal(t, typ, parsed)
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	parsed, err := Parse("vertex")
	require.NoError(t, err)
	assert.Equal(t, Vertex, parsed)
}

func TestParse_UnknownName(t *testing.T) {
	_, err := Parse("float")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "float")
}

func TestZeroValueIsUnknown(t *testing.T) {
	var typ Type
	assert.Equal(t, Unknown, typ)
}

func TestString_OutOfRange(t *testing.T) {
	assert.Equal(t, "Type(99)", Type(99).String())
}

func TestUnmarshalText(t *testing.T) {
	var typ Type
	require.NoError(t, typ.UnmarshalText([]byte("StringSet")))
	assert.Equal(t, StringSet, typ)
	assert.Error(t, typ.UnmarshalText([]byte("nope")))
}

func TestForbidden_UnknownNeverForbidden(t *testing.T) {
	for _, typ := range All() {
		assert.False(t, Forbidden(Unknown, typ), "Unknown in set containing %s", typ)
	}
	assert.False(t, Forbidden(Unknown, Unknown))
}

func TestForbidden(t *testing.T) {
	tests := []struct {
		typ  Type
		set  []Type
		want bool
	}{
		{Vertex, []Type{Vertex, Edge}, true},
		{Edge, []Type{Vertex, Edge}, true},
		{Array, []Type{Vertex, Edge}, false},
		{Array, []Type{Array}, true},
		{Numeric, []Type{Vertex, Edge, Array}, false},
		{Vertex, nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Forbidden(tt.typ, tt.set...), "%s in %v", tt.typ, tt.set)
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsVertexOrEdge(Vertex))
	assert.True(t, IsVertexOrEdge(Edge))
	assert.False(t, IsVertexOrEdge(Path))
	assert.True(t, IsArray(Array))
	assert.False(t, IsArray(StringSet))
	assert.True(t, IsUnknown(Unknown))
	assert.True(t, IsBooleanCompatible(Boolean))
	assert.True(t, IsBooleanCompatible(Unknown))
	assert.False(t, IsBooleanCompatible(Numeric))
}

func TestIs_UnknownAlwaysPasses(t *testing.T) {
	assert.True(t, Is(Unknown, Vertex))
	assert.True(t, Is(Vertex, Vertex))
	assert.False(t, Is(Edge, Vertex))
	assert.True(t, IsAny(Edge, Vertex, Edge))
	assert.False(t, IsAny(Path, Vertex, Edge))
	assert.True(t, IsAny(Unknown))
}
