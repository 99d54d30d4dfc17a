package pego

// This file is the public constructor surface: every exported function
// returns a Parser value built from one of the tagged structs in parser.go.
// Constructors never touch an Input; they only assemble an immutable tree.

// Pass always succeeds without consuming input and yields nil.
func Pass() Parser { return passParser{} }

// Fail always fails with the given message, without consuming input.
func Fail(msg string) Parser { return failParser{msg: msg} }

// Lift always succeeds without consuming input, yielding f()'s result.
// Useful for injecting computed constants into a sequence's fold.
func Lift(f func() Value) Parser { return liftParser{f: f} }

// LiftVal is Lift for a fixed value.
func LiftVal(v Value) Parser { return liftParser{f: func() Value { return v }} }

// Char matches a single specific byte.
func Char(c byte) Parser { return charParser{c: c} }

// Any matches any single byte, failing only at EOF.
func Any() Parser { return satisfyParser{pred: func(byte) bool { return true }, label: "any byte"} }

// ByteRange matches a single byte in [lo, hi] inclusive.
func ByteRange(lo, hi byte) Parser { return rangeParser{lo: lo, hi: hi} }

// OneOf matches a single byte that appears in chars.
func OneOf(chars string) Parser {
	return newSetParser(chars, false, quoteStr(chars))
}

// NoneOf matches a single byte that does not appear in chars.
func NoneOf(chars string) Parser {
	return newSetParser(chars, true, "none of "+quoteStr(chars))
}

func newSetParser(chars string, negate bool, label string) Parser {
	var set [256]bool
	for i := 0; i < len(chars); i++ {
		set[chars[i]] = true
	}
	return setParser{set: set, negate: negate, label: label}
}

// Satisfy matches a single byte accepted by pred.
func Satisfy(label string, pred func(byte) bool) Parser {
	return satisfyParser{pred: pred, label: label}
}

// String matches a literal byte sequence atomically.
func String(lit string) Parser { return stringParser{lit: lit} }

// Soi succeeds only at the start of input (no bytes consumed yet).
func Soi() Parser {
	return anchorParser{
		pred:  func(last byte, next byte, hasNext bool) bool { return last == 0 },
		label: "start of input",
	}
}

// Eoi succeeds only at the end of input.
func Eoi() Parser {
	return anchorParser{
		pred:  func(last byte, next byte, hasNext bool) bool { return !hasNext },
		label: "end of input",
	}
}

// Anchor builds a custom zero-width assertion over the last consumed byte
// and the next byte to be consumed.
func Anchor(label string, pred func(last byte, next byte, hasNext bool) bool) Parser {
	return anchorParser{pred: pred, label: label}
}

// Expect overrides p's expectation label on failure, discarding any inner
// expectation set built up by nested combinators.
func Expect(label string, p Parser) Parser { return expectParser{inner: p, label: label} }

// Apply runs p, then transforms its value through f. Returning a non-nil
// error from f turns the result into a Fail-style parse failure.
func Apply(p Parser, f func(Value) (Value, error)) Parser {
	return applyParser{inner: p, f: f}
}

// Map is Apply for transforms that cannot fail.
func Map(p Parser, f func(Value) Value) Parser {
	return applyParser{inner: p, f: func(v Value) (Value, error) { return f(v), nil }}
}

// Check runs p, then rejects its value (with msg) unless pred accepts it.
func Check(p Parser, msg string, pred func(Value) bool) Parser {
	return checkParser{inner: p, pred: pred, msg: msg}
}

// Predictive disables backtracking into p: once p consumes any input, a
// subsequent failure is committed and will not be rewound by an enclosing
// Or or Many.
func Predictive(p Parser) Parser { return predictParser{inner: p} }

// Not succeeds (yielding def, consuming nothing) only if p fails; if p
// succeeds, Not fails without consuming input.
func Not(p Parser, def Value) Parser { return notParser{inner: p, def: def} }

// Maybe runs p; if p fails without consuming input, Maybe succeeds with
// def instead. A failure that did consume input still propagates.
func Maybe(p Parser, def Value) Parser { return maybeParser{inner: p, def: def} }

// ConcatFold joins string-valued children into a single string, the default
// fold for String-producing sequences and repetitions.
func ConcatFold(children []Value) Value {
	var out []byte
	for _, c := range children {
		switch v := c.(type) {
		case byte:
			out = append(out, v)
		case string:
			out = append(out, v...)
		}
	}
	return string(out)
}

// SliceFold returns the children as a []Value, the default fold for
// combinators with no special value-shaping rule.
func SliceFold(children []Value) Value {
	out := make([]Value, len(children))
	copy(out, children)
	return out
}

// Many matches p zero or more times, stopping as soon as an iteration
// fails or consumes no bytes, and folds the results with fold.
func Many(p Parser, fold Fold) Parser { return manyParser{inner: p, min: 0, fold: fold} }

// Many1 is Many with at least one required match.
func Many1(p Parser, fold Fold) Parser { return manyParser{inner: p, min: 1, fold: fold} }

// Count matches p exactly n times, failing if any iteration fails.
func Count(n int, p Parser, fold Fold) Parser { return countParser{n: n, inner: p, fold: fold} }

// Or tries each alternative in order, committing to the first success and
// merging the errors of all non-consuming failures it passed over. A
// committed failure (see Predictive) short-circuits the remaining
// alternatives.
func Or(alts ...Parser) Parser { return orParser{alts: alts} }

// And runs every child in sequence, failing as soon as one fails, and
// folds their values with fold.
func And(fold Fold, children ...Parser) Parser { return andParser{children: children, fold: fold} }

// Capture runs p and replaces its value with the raw bytes it consumed.
func Capture(p Parser) Parser { return captureWrap{inner: p} }

// captureWrap is a tiny adapter tag: it runs inner, then replaces the
// result with the exact slice of bytes inner consumed.
type captureWrap struct{ inner Parser }

func (c captureWrap) eval(in *Input) (Value, *Error) {
	start := in.Pos()
	mark := in.Mark()
	_, err := c.inner.eval(in)
	if err != nil {
		if !err.committed {
			in.Rewind(mark)
		}
		return nil, err
	}
	text := string(in.Since(start))
	in.Commit(mark)
	return text, nil
}
