package pego

import (
	"fmt"
)

// ParseGrammarSource parses an EBNF-style grammar definition into its
// intermediate gGrammar AST. The grammar itself is parsed by a network of
// pego Parser values (the same primitives Grammar/Language compile user
// grammars' rule bodies into) — the front end is built from the engine
// it feeds.
func ParseGrammarSource(file, src string) (*gGrammar, error) {
	in := OpenString(file, src)
	p := grammarSourceParser()
	v, err := p.eval(in)
	if err == nil && !in.EOF() {
		err = in.failExpect("end of grammar")
	}
	if err != nil {
		err.Kind = KindGrammar
		return nil, err
	}
	g, ok := v.(*gGrammar)
	if !ok {
		return nil, fmt.Errorf("pego: internal error: grammar parser produced %T", v)
	}
	if len(g.rules) == 0 {
		err = in.failFail("grammar defines no rules")
		err.Kind = KindGrammar
		return nil, err
	}
	return g, nil
}

func identParser() Parser {
	head := Satisfy("identifier", func(b byte) bool {
		return isAlpha(b) || b == '_'
	})
	tail := Many(Satisfy("identifier", func(b byte) bool {
		return isAlpha(b) || isDigit(b) || b == '_'
	}), ConcatFold)
	return Apply(And(ConcatFold, head, tail), func(v Value) (Value, error) {
		return v.(string), nil
	})
}

func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func numberParser() Parser {
	digits := Many1(Satisfy("digit", isDigit), ConcatFold)
	return Apply(digits, func(v Value) (Value, error) {
		n := 0
		for i := 0; i < len(v.(string)); i++ {
			n = n*10 + int(v.(string)[i]-'0')
		}
		return n, nil
	})
}

func quotedLiteralParser() Parser {
	quoted := func(q byte) Parser {
		body := Many(Or(
			Apply(And(SliceFold, Char('\\'), Any()), func(v Value) (Value, error) {
				parts := v.([]Value)
				b := parts[1].(byte)
				if dec, ok := decodeEscape(b); ok {
					return dec, nil
				}
				return b, nil
			}),
			Satisfy("literal byte", func(b byte) bool { return b != q && b != '\\' }),
		), ConcatFold)
		return And(func(children []Value) Value { return children[1] }, Char(q), body, Char(q))
	}
	return Or(quoted('\''), quoted('"'))
}

func classItemParser() Parser {
	escapedByte := Apply(And(SliceFold, Char('\\'), Any()), func(v Value) (Value, error) {
		return v.([]Value)[1].(byte), nil
	})
	plainByte := Satisfy("class byte", func(b byte) bool { return b != ']' && b != '\\' })
	single := Or(escapedByte, plainByte)
	rangeItem := Apply(And(SliceFold, single, Char('-'), single), func(v Value) (Value, error) {
		parts := v.([]Value)
		return byteRange{lo: parts[0].(byte), hi: parts[2].(byte)}, nil
	})
	return Or(rangeItem, single)
}

func charClassParser() Parser {
	body := And(SliceFold, Char('['), Maybe(Char('^'), nil),
		Many(classItemParser(), SliceFold), Char(']'))
	return Apply(body, func(v Value) (Value, error) {
		parts := v.([]Value)
		negate := parts[1] != nil
		items := parts[2].([]Value)
		cc := gCharClass{negate: negate, label: "character class"}
		for _, it := range items {
			switch x := it.(type) {
			case byte:
				cc.singles = append(cc.singles, x)
			case byteRange:
				cc.ranges = append(cc.ranges, x)
			}
		}
		return &cc, nil
	})
}

func quantifierRange() Parser {
	body := And(SliceFold, Char('{'), numberParser(),
		Maybe(And(func(c []Value) Value { return c[1] }, Char(','), Maybe(numberParser(), -1)), -2),
		Char('}'))
	return Apply(body, func(v Value) (Value, error) {
		parts := v.([]Value)
		min := parts[1].(int)
		switch hi := parts[2].(int); hi {
		case -2: // no comma: exact count {m}
			return [2]int{min, min}, nil
		case -1: // trailing comma, no upper bound: {m,}
			return [2]int{min, -1}, nil
		default:
			return [2]int{min, hi}, nil
		}
	})
}

// grammarSourceParser builds the grammar-of-grammars. primary and
// alternation are Refs because primary, term and alternation are mutually
// recursive (grouping references alternation).
func grammarSourceParser() Parser {
	alt := NewRef("alternation")

	primary := NewRef("primary")
	primary.Define(Or(
		Apply(quotedLiteralParser(), func(v Value) (Value, error) { return gLiteral{text: v.(string)}, nil }),
		Apply(charClassParser(), func(v Value) (Value, error) { return *v.(*gCharClass), nil }),
		Apply(Char('.'), func(Value) (Value, error) { return gAny{}, nil }),
		And(func(c []Value) Value { return c[1] }, Char('('), alt, Char(')')),
		Apply(identParser(), func(v Value) (Value, error) { return gIdent{name: v.(string)}, nil }),
	))

	prefixed := Apply(And(SliceFold, Maybe(OneOf("!&"), byte(0)), skipFormatting(), primary),
		func(v Value) (Value, error) {
			parts := v.([]Value)
			prefix := parts[0]
			expr := parts[2].(gExpr)
			switch prefix {
			case byte('!'):
				return gNot{inner: expr}, nil
			case byte('&'):
				return gAnd{inner: expr}, nil
			default:
				return expr, nil
			}
		})

	term := Apply(And(SliceFold, prefixed, skipFormatting(),
		Maybe(Or(OneOf("?*+"), quantifierRange()), nil)),
		func(v Value) (Value, error) {
			parts := v.([]Value)
			expr := parts[0].(gExpr)
			switch q := parts[2].(type) {
			case nil:
				return expr, nil
			case byte:
				switch q {
				case '?':
					return gOpt{inner: expr}, nil
				case '*':
					return gStar{inner: expr}, nil
				case '+':
					return gPlus{inner: expr}, nil
				}
			case [2]int:
				return gRepeat{inner: expr, min: q[0], max: q[1]}, nil
			}
			return expr, nil
		})

	seq := Apply(Many1(And(func(c []Value) Value { return c[1] }, skipFormatting(), term), SliceFold),
		func(v Value) (Value, error) {
			items := v.([]Value)
			exprs := make([]gExpr, len(items))
			for i, it := range items {
				exprs[i] = it.(gExpr)
			}
			return gSeq{items: exprs}, nil
		})

	alt.Define(Apply(
		And(SliceFold, seq, Many(And(func(c []Value) Value { return c[3] },
			skipFormatting(), Char('|'), skipFormatting(), seq), SliceFold)),
		func(v Value) (Value, error) {
			parts := v.([]Value)
			first := parts[0].(gExpr)
			rest := parts[1].([]Value)
			if len(rest) == 0 {
				return first, nil
			}
			items := []gExpr{first}
			for _, r := range rest {
				items = append(items, r.(gExpr))
			}
			return gAlt{items: items}, nil
		}))

	label := Maybe(And(func(c []Value) Value { return c[1] },
		skipFormatting(), quotedLiteralParser()), "")

	rule := Apply(And(SliceFold, skipFormatting(), identParser(), label,
		skipFormatting(), Char(':'), skipFormatting(), alt, skipFormatting(), Char(';')),
		func(v Value) (Value, error) {
			parts := v.([]Value)
			return &gRule{Name: parts[1].(string), Label: parts[2].(string), Body: parts[6].(gExpr)}, nil
		})

	grammar := Apply(And(SliceFold, Many1(rule, SliceFold), skipFormatting()), func(v Value) (Value, error) {
		parts := v.([]Value)
		rules := parts[0].([]Value)
		g := &gGrammar{}
		for _, r := range rules {
			g.rules = append(g.rules, r.(*gRule))
		}
		return g, nil
	})

	return grammar
}
