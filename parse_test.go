package pego

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := Parse("<test>", "ab", Char('a'))
	require.NotNil(t, err)
	assert.Equal(t, KindExpect, err.Kind)
}

func TestParseBytesSucceeds(t *testing.T) {
	v, err := ParseBytes("<test>", []byte("abc"), String("abc"))
	require.Nil(t, err)
	assert.Equal(t, "abc", v)
}

func TestParseStreamSucceeds(t *testing.T) {
	v, err := ParseStream("<test>", strings.NewReader("abc"), String("abc"))
	require.Nil(t, err)
	assert.Equal(t, "abc", v)
}

func TestParseRecoversUsagePanicIntoUsageError(t *testing.T) {
	r := NewRef("undefined")
	v, err := Parse("<test>", "x", r)
	require.Nil(t, v)
	require.NotNil(t, err)
	assert.Equal(t, KindUsage, err.Kind)
}

func TestParseClearsCommittedOnReturnedError(t *testing.T) {
	p := Predictive(And(SliceFold, Char('a'), Char('x')))
	_, err := Parse("<test>", "ay", p)
	require.NotNil(t, err)
	assert.False(t, err.committed)
}
