package pego

// gExpr is a node in the grammar-source AST: the intermediate form the
// grammar parser builds and the grammar compiler consumes. It is distinct
// from Node, the public AST a compiled grammar *produces* when run
// against some input.
type gExpr interface {
	compile(gc *grammarCompiler) Parser
}

// gGrammar is a whole grammar definition: an ordered list of rules (order
// matters only for picking the default start rule).
type gGrammar struct {
	rules []*gRule
}

type gRule struct {
	Name  string
	Label string // optional human-facing override for error messages
	Body  gExpr
}

type gLiteral struct{ text string }

func (n gLiteral) compile(gc *grammarCompiler) Parser {
	return leafWrap{tag: "literal", inner: String(n.text)}
}

type gAny struct{}

func (gAny) compile(gc *grammarCompiler) Parser {
	if gc.dotAll {
		return leafWrap{tag: "any", inner: Any()}
	}
	return leafWrap{tag: "any", inner: Satisfy("any byte except newline", func(b byte) bool {
		return b != '\n'
	})}
}

// gCharClass is a `[...]` character class: a union of single bytes and
// byte ranges, optionally negated.
type gCharClass struct {
	singles []byte
	ranges  []byteRange
	negate  bool
	label   string
}

type byteRange struct{ lo, hi byte }

func (n gCharClass) compile(gc *grammarCompiler) Parser {
	var set [256]bool
	for _, b := range n.singles {
		set[b] = true
	}
	for _, r := range n.ranges {
		for b := int(r.lo); b <= int(r.hi); b++ {
			set[byte(b)] = true
		}
	}
	return leafWrap{tag: "class", inner: setParser{set: set, negate: n.negate, label: n.label}}
}

// gIdent references another rule by name; evaluating it defers straight
// to that rule's own compiled Ref, which already yields a *Node.
type gIdent struct{ name string }

func (n gIdent) compile(gc *grammarCompiler) Parser { return gc.ref(n.name) }

// gSeq is a sequence of sub-expressions. A single-item sequence collapses
// to that item's own parser (so it contributes one *Node, not a list);
// longer sequences produce a []*Node of their non-nil children, with an
// implicit whitespace-skipping parser spliced between elements unless the
// grammar was compiled whitespace-sensitive.
type gSeq struct{ items []gExpr }

func (n gSeq) compile(gc *grammarCompiler) Parser {
	if len(n.items) == 1 {
		return n.items[0].compile(gc)
	}
	parts := make([]Parser, 0, len(n.items)*2-1)
	for i, it := range n.items {
		if i > 0 && gc.injectWhitespace {
			parts = append(parts, whitespaceParser())
		}
		parts = append(parts, it.compile(gc))
	}
	return And(nodeListFold, parts...)
}

type gAlt struct{ items []gExpr }

func (n gAlt) compile(gc *grammarCompiler) Parser {
	alts := make([]Parser, len(n.items))
	for i, it := range n.items {
		alts[i] = it.compile(gc)
	}
	return Or(alts...)
}

type gStar struct{ inner gExpr }

func (n gStar) compile(gc *grammarCompiler) Parser {
	return listWrap{tag: "*", inner: Many(n.inner.compile(gc), nodeListFold)}
}

type gPlus struct{ inner gExpr }

func (n gPlus) compile(gc *grammarCompiler) Parser {
	return listWrap{tag: "+", inner: Many1(n.inner.compile(gc), nodeListFold)}
}

type gOpt struct{ inner gExpr }

func (n gOpt) compile(gc *grammarCompiler) Parser {
	return Maybe(n.inner.compile(gc), nil)
}

// gRepeat implements the bounded `{m,n}` / `{m,}` / `{m}` quantifier
// shared by the grammar and regex front ends.
type gRepeat struct {
	inner gExpr
	min   int
	max   int // -1 means unbounded
}

func (n gRepeat) compile(gc *grammarCompiler) Parser {
	p := n.inner.compile(gc)
	required := countNodes(n.min, p)
	if n.max < 0 {
		return listWrap{tag: "{}", inner: And(nodeListFold, required, Many(p, nodeListFold))}
	}
	optionalCount := n.max - n.min
	if optionalCount <= 0 {
		return listWrap{tag: "{}", inner: required}
	}
	opts := make([]Parser, optionalCount)
	for i := range opts {
		opts[i] = Maybe(p, nil)
	}
	return listWrap{tag: "{}", inner: And(nodeListFold, required, And(nodeListFold, opts...))}
}

func countNodes(n int, p Parser) Parser { return Count(n, p, nodeListFold) }

// gNot is a negative lookahead: succeeds without consuming input only if
// inner fails, contributing no node to its enclosing sequence.
type gNot struct{ inner gExpr }

func (n gNot) compile(gc *grammarCompiler) Parser { return Not(n.inner.compile(gc), nil) }

// gAnd is a positive lookahead, expressed as a double negation.
type gAnd struct{ inner gExpr }

func (n gAnd) compile(gc *grammarCompiler) Parser {
	return Not(notParser{inner: n.inner.compile(gc)}, nil)
}

// nodeListFold flattens a sequence/repetition's per-child values (each a
// *Node, a []*Node, or nil from a lookahead) into one []*Node.
func nodeListFold(children []Value) Value {
	var out []*Node
	for _, c := range children {
		switch v := c.(type) {
		case nil:
			continue
		case *Node:
			out = append(out, v)
		case []*Node:
			out = append(out, v...)
		}
	}
	return out
}

// leafWrap runs inner and, on success, replaces its value with a leaf Node
// carrying the exact bytes inner consumed.
type leafWrap struct {
	tag   string
	inner Parser
}

func (w leafWrap) eval(in *Input) (Value, *Error) {
	start := in.Pos()
	mark := in.Mark()
	_, err := w.inner.eval(in)
	if err != nil {
		if !err.committed {
			in.Rewind(mark)
		}
		return nil, err
	}
	end := in.Pos()
	text := string(in.Since(start))
	in.Commit(mark)
	return NewLeaf(w.tag, text, NewRange(start, end)), nil
}

// listWrap runs inner (expected to yield a []*Node, possibly empty or
// nil) and wraps it in a single interior Node tagged with tag.
type listWrap struct {
	tag   string
	inner Parser
}

func (w listWrap) eval(in *Input) (Value, *Error) {
	start := in.Pos()
	v, err := w.inner.eval(in)
	if err != nil {
		return nil, err
	}
	end := in.Pos()
	children, _ := v.([]*Node)
	return NewInterior(w.tag, children, NewRange(start, end)), nil
}
