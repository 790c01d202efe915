package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pgqlcheck/internal/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		tag  string
		want Version
	}{
		{"v1.0", V1_0},
		{"v1.1", V1_1},
		{"1.2", V1_2},
		{" V1.3 ", V1_3},
	}
	for _, tt := range tests {
		got, err := Parse(tt.tag)
		require.NoError(t, err, tt.tag)
		assert.Equal(t, tt.want, got, tt.tag)
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("v2.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestString(t *testing.T) {
	assert.Equal(t, "v1.0", V1_0.String())
	assert.Equal(t, "v1.3", Current.String())
	assert.Equal(t, "Version(9)", Version(9).String())
}

func TestFor_LegacyAndCurrent(t *testing.T) {
	legacy := For(V1_0)
	assert.Equal(t, Legacy, legacy)
	assert.True(t, legacy.OrderByGraphElements)
	assert.False(t, legacy.EnforceOperandTypes)
	assert.Equal(t, types.Integer, legacy.NumericResult)
	assert.False(t, legacy.BanEdgeCorrelation)
	assert.False(t, legacy.SplitScopeMessages)

	for _, v := range []Version{V1_1, V1_2, V1_3} {
		p := For(v)
		assert.Equal(t, v, p.Version)
		assert.False(t, p.OrderByGraphElements)
		assert.True(t, p.EnforceOperandTypes)
		assert.Equal(t, types.Numeric, p.NumericResult)
		assert.True(t, p.BanEdgeCorrelation)
		assert.True(t, p.SplitScopeMessages)
	}
}

func TestDefaultIsCurrent(t *testing.T) {
	assert.Equal(t, Current, Default.Version)
}

func TestForTag(t *testing.T) {
	p, err := ForTag("v1.0")
	require.NoError(t, err)
	assert.Equal(t, Legacy, p)

	_, err = ForTag("bogus")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestForNode_OverridesOnlyWithTag(t *testing.T) {
	run := For(V1_1)

	assert.Equal(t, run, run.ForNode(""))
	assert.Equal(t, run, run.ForNode("not-a-version"))
	assert.Equal(t, Legacy, run.ForNode("v1.0"))
	assert.Equal(t, For(V1_2), Legacy.ForNode("v1.2"))
}
