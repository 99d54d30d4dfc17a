package pego

// Regex compiles a POSIX-extended-subset regular expression into a
// Parser, by parsing the pattern with a grammar built from the
// combinator core itself (the same dogfooding approach the EBNF grammar
// front end uses) and then translating the resulting small AST into a
// tree of Or/And/Many/character-class primitives.
//
// Supported syntax: literal bytes; `.` (any byte); `^`/`$` anchors;
// character classes `[...]`/`[^...]` with ranges and escapes; grouping
// `(...)`; alternation `a|b`; the named classes `\d \D \w \W \s \S`;
// the escapes `\n \r \t \\ \. \* \+ \? \| \( \) \[ \] \^ \$`; and the
// quantifiers `? * +` plus bounded `{m,n}` / `{m,}` / `{m}`.
//
// flags tunes `.`/`^`/`$`: MULTILINE makes `^`/`$` match at line
// boundaries (just after/before a `\n`) as well as start/end of input,
// and DOTALL makes `.` match `\n` too. REGEX_DEFAULT (the zero value)
// excludes `\n` from `.` and anchors `^`/`$` to the whole input only.
func Regex(pattern string, flags RegexFlags) (Parser, error) {
	e, err := parseRegexSource(pattern)
	if err != nil {
		return nil, err
	}
	gc := &grammarCompiler{
		refs:      map[string]*Ref{},
		multiline: flags.has(MULTILINE),
		dotAll:    flags.has(DOTALL),
	}
	return ruleWrap{name: "regex", inner: e.compile(gc)}, nil
}

const regexMeta = `.^$*+?()[]{}|\`

func isRegexMeta(b byte) bool {
	for i := 0; i < len(regexMeta); i++ {
		if regexMeta[i] == b {
			return true
		}
	}
	return false
}

func parseRegexSource(src string) (gExpr, error) {
	in := OpenString("<regex>", src)
	p := regexAltParser()
	v, err := p.eval(in)
	if err == nil && !in.EOF() {
		err = in.failExpect("end of pattern")
	}
	if err != nil {
		err.Kind = KindGrammar
		return nil, err
	}
	return v.(gExpr), nil
}

func regexLiteralByte() Parser {
	plain := Satisfy("pattern byte", func(b byte) bool { return !isRegexMeta(b) })
	escaped := Apply(And(SliceFold, Char('\\'), Any()), func(v Value) (Value, error) {
		b := v.([]Value)[1].(byte)
		if dec, ok := decodeEscape(b); ok {
			return dec, nil
		}
		return b, nil
	})
	return Or(escaped, plain)
}

func regexClassParser() Parser {
	namedEsc := Apply(And(SliceFold, Char('\\'), Satisfy("class escape", func(b byte) bool {
		_, ok := namedClass(b)
		return ok
	})), func(v Value) (Value, error) {
		cc, _ := namedClass(v.([]Value)[1].(byte))
		return cc, nil
	})
	rangeItem := Apply(And(SliceFold, regexLiteralByte(), Char('-'), regexLiteralByte()),
		func(v Value) (Value, error) {
			parts := v.([]Value)
			return byteRange{lo: parts[0].(byte), hi: parts[2].(byte)}, nil
		})
	item := Or(rangeItem, regexClassByteParser())
	bracketed := And(SliceFold, Char('['), Maybe(Char('^'), nil),
		Many(item, SliceFold), Char(']'))
	bracketedClass := Apply(bracketed, func(v Value) (Value, error) {
		parts := v.([]Value)
		negate := parts[1] != nil
		cc := gCharClass{negate: negate, label: "character class"}
		for _, it := range parts[2].([]Value) {
			switch x := it.(type) {
			case byte:
				cc.singles = append(cc.singles, x)
			case byteRange:
				cc.ranges = append(cc.ranges, x)
			}
		}
		return cc, nil
	})
	return Or(namedEsc, bracketedClass)
}

func regexClassByteParser() Parser {
	escaped := Apply(And(SliceFold, Char('\\'), Any()), func(v Value) (Value, error) {
		b := v.([]Value)[1].(byte)
		if dec, ok := decodeEscape(b); ok {
			return dec, nil
		}
		return b, nil
	})
	plain := Satisfy("class byte", func(b byte) bool { return b != ']' && b != '\\' })
	return Or(escaped, plain)
}

func regexQuantifier() Parser {
	return Or(OneOf("?*+"), quantifierRange())
}

func regexAtomParser() Parser {
	alt := NewRef("regexAlt")

	charClass := Apply(regexClassParser(), func(v Value) (Value, error) { return v.(gCharClass), nil })

	anchor := Or(
		Apply(Char('^'), func(Value) (Value, error) { return "soi", nil }),
		Apply(Char('$'), func(Value) (Value, error) { return "eoi", nil }),
	)

	atom := Or(
		Apply(anchor, func(v Value) (Value, error) {
			if v.(string) == "soi" {
				return gIdentAnchor{soi: true}, nil
			}
			return gIdentAnchor{soi: false}, nil
		}),
		Apply(Char('.'), func(Value) (Value, error) { return gAny{}, nil }),
		charClass,
		Apply(And(func(c []Value) Value { return c[1] }, Char('('), alt, Char(')')),
			func(v Value) (Value, error) { return v, nil }),
		Apply(regexLiteralByte(), func(v Value) (Value, error) {
			return gLiteral{text: string(v.(byte))}, nil
		}),
	)

	quantified := Apply(And(SliceFold, atom, Maybe(regexQuantifier(), nil)),
		func(v Value) (Value, error) {
			parts := v.([]Value)
			expr := parts[0].(gExpr)
			switch q := parts[1].(type) {
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

	seq := Apply(Many1(quantified, SliceFold), func(v Value) (Value, error) {
		items := v.([]Value)
		exprs := make([]gExpr, len(items))
		for i, it := range items {
			exprs[i] = it.(gExpr)
		}
		if len(exprs) == 1 {
			return exprs[0], nil
		}
		return gSeq{items: exprs}, nil
	})

	alt.Define(Apply(And(SliceFold, seq, Many(And(func(c []Value) Value { return c[1] },
		Char('|'), seq), SliceFold)),
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

	return alt
}

func regexAltParser() Parser { return regexAtomParser() }

// gIdentAnchor represents `^`/`$` inside a pattern: a zero-width
// assertion at the start or end of input.
type gIdentAnchor struct{ soi bool }

func (n gIdentAnchor) compile(gc *grammarCompiler) Parser {
	if n.soi {
		if gc.multiline {
			return leafWrap{tag: "anchor", inner: Anchor("start of line", func(last, next byte, hasNext bool) bool {
				return last == 0 || last == '\n'
			})}
		}
		return leafWrap{tag: "anchor", inner: Soi()}
	}
	if gc.multiline {
		return leafWrap{tag: "anchor", inner: Anchor("end of line", func(last, next byte, hasNext bool) bool {
			return !hasNext || next == '\n'
		})}
	}
	return leafWrap{tag: "anchor", inner: Eoi()}
}
