package pego

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrammarSourceSingleRule(t *testing.T) {
	g, err := ParseGrammarSource("<grammar>", `digit: [0-9];`)
	require.NoError(t, err)
	require.Len(t, g.rules, 1)
	assert.Equal(t, "digit", g.rules[0].Name)
}

func TestParseGrammarSourceRejectsEmpty(t *testing.T) {
	_, err := ParseGrammarSource("<grammar>", ``)
	require.Error(t, err)
}

func TestGrammarCompilesSingleCharClassRule(t *testing.T) {
	p, err := Grammar(DEFAULT, `digit: [0-9];`)
	require.NoError(t, err)

	v, perr := Parse("<test>", "7", p)
	require.Nil(t, perr)

	got := v.(*Node)
	want := &Node{Tag: "digit|class", Text: "7", Pos: NewRange(0, 1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGrammarCompilesLiteralRule(t *testing.T) {
	p, err := Grammar(DEFAULT, `kw: 'if';`)
	require.NoError(t, err)

	v, perr := Parse("<test>", "if", p)
	require.Nil(t, perr)

	got := v.(*Node)
	assert.Equal(t, "kw|literal", got.Tag)
	assert.Equal(t, "if", got.Text)
}

func TestGrammarAlternation(t *testing.T) {
	p, err := Grammar(DEFAULT, `bool: 'true' | 'false';`)
	require.NoError(t, err)

	v, err2 := Parse("<test>", "false", p)
	require.Nil(t, err2)
	assert.Equal(t, "false", v.(*Node).Text)
}

func TestGrammarSequenceWithWhitespace(t *testing.T) {
	p, err := Grammar(DEFAULT, `pair: 'a' 'b';`)
	require.NoError(t, err)

	v, perr := Parse("<test>", "a   b", p)
	require.Nil(t, perr)
	n := v.(*Node)
	assert.Equal(t, "pair", n.Tag)
	require.Len(t, n.Children, 2)
	assert.Equal(t, "a", n.Children[0].Text)
	assert.Equal(t, "b", n.Children[1].Text)
}

func TestGrammarWhitespaceSensitiveRejectsGap(t *testing.T) {
	p, err := Grammar(WHITESPACE_SENSITIVE, `pair: 'a' 'b';`)
	require.NoError(t, err)

	_, perr := Parse("<test>", "a   b", p)
	require.NotNil(t, perr)
}

func TestGrammarStarAndPlus(t *testing.T) {
	p, err := Grammar(DEFAULT, `digits: [0-9]+;`)
	require.NoError(t, err)

	v, perr := Parse("<test>", "123", p)
	require.Nil(t, perr)
	n := v.(*Node)
	assert.Equal(t, "digits|+", n.Tag)
	require.Len(t, n.Children, 3)
	assert.Equal(t, "1", n.Children[0].Text)
	assert.Equal(t, "3", n.Children[2].Text)
}

func TestGrammarOptional(t *testing.T) {
	p, err := Grammar(DEFAULT, `sign: '-'?;`)
	require.NoError(t, err)

	v, perr := Parse("<test>", "", p)
	require.Nil(t, perr)
	n := v.(*Node)
	assert.Equal(t, "sign", n.Tag)
	assert.True(t, n.IsLeaf())

	v, perr = Parse("<test>", "-", p)
	require.Nil(t, perr)
	assert.Equal(t, "sign|literal", v.(*Node).Tag)
}

func TestGrammarNotLookahead(t *testing.T) {
	p, err := Grammar(DEFAULT, `notDigit: ![0-9] .;`)
	require.NoError(t, err)

	_, perr := Parse("<test>", "a", p)
	require.Nil(t, perr)

	_, perr = Parse("<test>", "5", p)
	require.NotNil(t, perr)
}

func TestGrammarBuiltinRuleAvailableWhenUndefined(t *testing.T) {
	p, err := Grammar(DEFAULT, `num: digit+;`)
	require.NoError(t, err)

	v, perr := Parse("<test>", "42", p)
	require.Nil(t, perr)
	n := v.(*Node)
	assert.Equal(t, "num|+", n.Tag)
	require.Len(t, n.Children, 2)
}

func TestGrammarUserDefinedRuleWinsOverBuiltin(t *testing.T) {
	p, err := Grammar(DEFAULT, `
digit: 'x';
num: digit+;
`)
	require.NoError(t, err)

	_, perr := Parse("<test>", "1", p)
	require.NotNil(t, perr)

	v, perr := Parse("<test>", "x", p)
	require.Nil(t, perr)
	_ = v
}

func TestGrammarMultipleRulesMutualRecursion(t *testing.T) {
	src := `
list: '(' item* ')';
item: [a-z] | list;
`
	entry := NewRef("list")
	_, err := Grammar(DEFAULT, src, entry)
	require.NoError(t, err)

	v, perr := Parse("<test>", "(a(bc)d)", entry)
	require.Nil(t, perr)
	assert.Equal(t, "list", v.(*Node).Tag)
}

func TestGrammarGroupingAndQuantifierRange(t *testing.T) {
	p, err := Grammar(DEFAULT, `code: ([0-9]){2,4};`)
	require.NoError(t, err)

	_, perr := Parse("<test>", "1", p)
	require.NotNil(t, perr)

	v, perr := Parse("<test>", "123", p)
	require.Nil(t, perr)
	assert.Equal(t, "code|{}", v.(*Node).Tag)
}

func TestGrammarLiteralOverStreamKeepsFullText(t *testing.T) {
	// stringParser commits its own mark as soon as a long literal matches;
	// over a streamed Input that commit must not trim away bytes the
	// enclosing leaf node still needs to read back.
	p, err := Grammar(DEFAULT, `kw: 'helloworld';`)
	require.NoError(t, err)

	r := strings.NewReader("helloworld")
	v, perr := ParseStream("<test>", r, p)
	require.Nil(t, perr)
	n := v.(*Node)
	assert.Equal(t, "helloworld", n.Text)
}

func TestGrammarPredictiveCommitsAcrossRuleBoundary(t *testing.T) {
	// kw consumes "if" before failing, so under PREDICTIVE start must not
	// fall back to other (which would match "ify" with backtracking).
	p, err := Grammar(PREDICTIVE, `
start: kw | other;
kw: 'if' 'x';
other: 'ify';
`)
	require.NoError(t, err)

	_, perr := Parse("<test>", "ify", p)
	require.NotNil(t, perr)
	assert.Equal(t, KindExpect, perr.Kind)
}

func TestLanguageBindsExternalRefs(t *testing.T) {
	expr := NewRef("expr")
	err := Language(DEFAULT, `expr: [0-9]+;`, expr)
	require.NoError(t, err)

	v, perr := Parse("<test>", "9", expr)
	require.Nil(t, perr)
	assert.Equal(t, "expr|+", v.(*Node).Tag)
}

func TestDumpOnCompiledGrammarOutput(t *testing.T) {
	p, err := Grammar(DEFAULT, `pair: 'a' 'b';`)
	require.NoError(t, err)
	v, perr := Parse("<test>", "ab", p)
	require.Nil(t, perr)
	out := Dump(v.(*Node))
	assert.Contains(t, out, "pair")
}
