package pego

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapRuleSingleChildChainsTag(t *testing.T) {
	leaf := NewLeaf("literal", "a", NewRange(0, 1))
	n := wrapRule("digit", []*Node{leaf}, NewRange(0, 1))
	assert.Equal(t, "digit|literal", n.Tag)
	assert.Equal(t, "a", n.Text)
	assert.True(t, n.IsLeaf())
}

func TestWrapRuleChainsThroughMultipleLevels(t *testing.T) {
	leaf := NewLeaf("literal", "a", NewRange(0, 1))
	once := wrapRule("digit", []*Node{leaf}, NewRange(0, 1))
	twice := wrapRule("atom", []*Node{once}, NewRange(0, 1))
	assert.Equal(t, "atom|digit|literal", twice.Tag)
}

func TestWrapRuleMultiChildWrapsFresh(t *testing.T) {
	a := NewLeaf("literal", "a", NewRange(0, 1))
	b := NewLeaf("literal", "b", NewRange(1, 2))
	n := wrapRule("pair", []*Node{a, b}, NewRange(0, 2))
	assert.Equal(t, "pair", n.Tag)
	assert.Len(t, n.Children, 2)
	assert.False(t, n.IsLeaf())
}

func TestWrapRuleZeroChildren(t *testing.T) {
	n := wrapRule("empty", nil, NewRange(0, 0))
	assert.Equal(t, "empty", n.Tag)
	assert.True(t, n.IsLeaf())
}

func TestTextConcatenatesLeaves(t *testing.T) {
	a := NewLeaf("literal", "foo", NewRange(0, 3))
	b := NewLeaf("literal", "bar", NewRange(3, 6))
	n := NewInterior("seq", []*Node{a, b}, NewRange(0, 6))
	assert.Equal(t, "foobar", Text(n))
}

func TestDumpIndentsChildren(t *testing.T) {
	a := NewLeaf("literal", "a", NewRange(0, 1))
	n := NewInterior("seq", []*Node{a}, NewRange(0, 1))
	out := Dump(n)
	assert.True(t, strings.Contains(out, "seq"))
	assert.True(t, strings.Contains(out, "literal"))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "└──") || strings.Contains(out, "└──"))
}
