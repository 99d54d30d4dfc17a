package pego

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiftAndLiftVal(t *testing.T) {
	v, err := Parse("<test>", "", Lift(func() Value { return 42 }))
	require.Nil(t, err)
	assert.Equal(t, 42, v)

	v, err = Parse("<test>", "", LiftVal("const"))
	require.Nil(t, err)
	assert.Equal(t, "const", v)
}

func TestPassAndFail(t *testing.T) {
	v, err := Parse("<test>", "", Pass())
	require.Nil(t, err)
	assert.Nil(t, v)

	_, err = Parse("<test>", "x", Fail("nope"))
	require.NotNil(t, err)
	assert.Equal(t, KindFail, err.Kind)
}

func TestExpectOverridesLabel(t *testing.T) {
	p := Expect("an identifier", Char('a'))
	_, err := Parse("<test>", "x", p)
	require.NotNil(t, err)
	assert.Equal(t, []string{"an identifier"}, err.Expected)
}

func TestMapCannotFail(t *testing.T) {
	p := Map(Char('a'), func(v Value) Value { return string(v.(byte)) + "!" })
	v, err := Parse("<test>", "a", p)
	require.Nil(t, err)
	assert.Equal(t, "a!", v)
}

func TestAnchorCustomPredicate(t *testing.T) {
	afterSpace := Anchor("after space", func(last, next byte, hasNext bool) bool {
		return last == ' '
	})
	p := And(SliceFold, Char(' '), afterSpace)
	_, err := Parse("<test>", " ", p)
	require.Nil(t, err)
}

func TestCaptureOverStreamSurvivesInnerRepetitionCommits(t *testing.T) {
	// A streamed Input's buffer is trimmed once no mark is left open; if
	// Capture didn't hold its own mark across the whole inner.eval call,
	// the inner Many's per-iteration commits would trim away the bytes
	// Capture still needs to read back with Since.
	r := strings.NewReader("aaaaab")
	p := Capture(And(SliceFold, Many1(Char('a'), SliceFold), Char('b')))
	v, err := ParseStream("<test>", r, p)
	require.Nil(t, err)
	assert.Equal(t, "aaaaab", v)
}

func TestSliceFoldPreservesOrder(t *testing.T) {
	out := SliceFold([]Value{1, "two", byte('3')})
	assert.Equal(t, []Value{1, "two", byte('3')}, out)
}

func TestConcatFoldMixesBytesAndStrings(t *testing.T) {
	out := ConcatFold([]Value{byte('a'), "bc", byte('d')})
	assert.Equal(t, "abcd", out)
}
