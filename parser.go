package pego

import "fmt"

// Value is the opaque payload a Parser produces on success. Go's garbage
// collector reclaims abandoned intermediate values on every failure path,
// so there is no destructor to call on backtrack.
type Value = any

// Fold combines the ordered values produced by a sequence/repetition
// combinator's children into the combinator's own Value.
type Fold func(children []Value) Value

// Parser is a first-class, immutable description of how to recognize
// input, dispatched on its concrete type — one small struct per tag
// implementing a single unexported eval method rather than a literal
// switch statement.
type Parser interface {
	eval(in *Input) (Value, *Error)
}

// usagePanic signals a programming error (an undefined Ref reached at
// evaluation time) rather than a parse failure. It is recovered at the
// Parse/ParseStream boundary and turned into a regular *Error with
// Kind == KindUsage, so a library caller never observes a raw panic.
type usagePanic struct{ msg string }

func usagef(format string, args ...any) {
	panic(usagePanic{msg: fmt.Sprintf(format, args...)})
}

// ---- error construction helpers, bound to an Input for its file/position ----

func (in *Input) failExpect(label string) *Error {
	b, ok := in.Peek()
	return newExpect(in.Position(), in.name, describeByte(b, ok), label)
}

func (in *Input) failFail(msg string) *Error {
	b, ok := in.Peek()
	return newFail(in.Position(), in.name, describeByte(b, ok), msg)
}

func (in *Input) failUnexpected(msg string) *Error {
	b, ok := in.Peek()
	return newUnexpected(in.Position(), in.name, describeByte(b, ok), msg)
}

// ---- tag: Pass ----

type passParser struct{}

func (passParser) eval(in *Input) (Value, *Error) { return nil, nil }

// ---- tag: Fail ----

type failParser struct{ msg string }

func (p failParser) eval(in *Input) (Value, *Error) { return nil, in.failFail(p.msg) }

// ---- tag: Lift ----

type liftParser struct{ f func() Value }

func (p liftParser) eval(in *Input) (Value, *Error) { return p.f(), nil }

// ---- tag: Expect ----

type expectParser struct {
	inner Parser
	label string
}

func (p expectParser) eval(in *Input) (Value, *Error) {
	v, err := p.inner.eval(in)
	if err != nil {
		return nil, relabel(err, p.label)
	}
	return v, nil
}

// ---- tag: Anchor ----

type anchorParser struct {
	pred  func(last byte, next byte, hasNext bool) bool
	label string
}

func (p anchorParser) eval(in *Input) (Value, *Error) {
	next, ok := in.Peek()
	if p.pred(in.LastByte(), next, ok) {
		return nil, nil
	}
	return nil, in.failExpect(p.label)
}

// ---- tag: Single (Char) ----

type charParser struct{ c byte }

func (p charParser) eval(in *Input) (Value, *Error) {
	b, ok := in.Peek()
	if ok && b == p.c {
		in.Next()
		return b, nil
	}
	return nil, in.failExpect(quoteByte(p.c))
}

// ---- tag: Range ----

type rangeParser struct{ lo, hi byte }

func (p rangeParser) eval(in *Input) (Value, *Error) {
	b, ok := in.Peek()
	if ok && b >= p.lo && b <= p.hi {
		in.Next()
		return b, nil
	}
	return nil, in.failExpect(fmt.Sprintf("%s-%s", quoteByte(p.lo), quoteByte(p.hi)))
}

// ---- tag: OneOf / NoneOf ----

type setParser struct {
	set    [256]bool
	negate bool
	label  string
}

func (p setParser) eval(in *Input) (Value, *Error) {
	b, ok := in.Peek()
	if ok && p.set[b] != p.negate {
		in.Next()
		return b, nil
	}
	return nil, in.failExpect(p.label)
}

// ---- tag: Satisfy ----

type satisfyParser struct {
	pred  func(byte) bool
	label string
}

func (p satisfyParser) eval(in *Input) (Value, *Error) {
	b, ok := in.Peek()
	if ok && p.pred(b) {
		in.Next()
		return b, nil
	}
	return nil, in.failExpect(p.label)
}

// ---- tag: String ----

// stringParser is atomic: on a partial mismatch it rewinds so that, from
// the caller's perspective, String either consumes len(lit) bytes (success)
// or zero bytes (failure) — this lets Or/Maybe treat a failed literal as a
// non-consuming failure by default.
type stringParser struct{ lit string }

func (p stringParser) eval(in *Input) (Value, *Error) {
	mark := in.Mark()
	for i := 0; i < len(p.lit); i++ {
		b, ok := in.Peek()
		if !ok || b != p.lit[i] {
			err := in.failExpect(quoteStr(p.lit))
			in.Rewind(mark)
			return nil, err
		}
		in.Next()
	}
	in.Commit(mark)
	return p.lit, nil
}

// ---- tag: Apply ----

type applyParser struct {
	inner Parser
	f     func(Value) (Value, error)
}

func (p applyParser) eval(in *Input) (Value, *Error) {
	v, err := p.inner.eval(in)
	if err != nil {
		return nil, err
	}
	out, ferr := p.f(v)
	if ferr != nil {
		return nil, in.failFail(ferr.Error())
	}
	return out, nil
}

// ---- tag: Check ----

type checkParser struct {
	inner Parser
	pred  func(Value) bool
	msg   string
}

func (p checkParser) eval(in *Input) (Value, *Error) {
	v, err := p.inner.eval(in)
	if err != nil {
		return nil, err
	}
	if !p.pred(v) {
		return nil, in.failFail(p.msg)
	}
	return v, nil
}

// ---- tag: Predict ----

// predictParser disables backtracking for its inner parser: a failure that
// consumed input is marked committed so it is never rewound, and propagates
// straight through any enclosing Or/Many.
type predictParser struct{ inner Parser }

func (p predictParser) eval(in *Input) (Value, *Error) {
	start := in.Pos()
	v, err := p.inner.eval(in)
	if err == nil {
		return v, nil
	}
	if in.Pos() != start {
		err.committed = true
	}
	return nil, err
}

// ---- tag: Not ----

type notParser struct {
	inner Parser
	def   Value
}

func (p notParser) eval(in *Input) (Value, *Error) {
	mark := in.Mark()
	_, err := p.inner.eval(in)
	in.Rewind(mark)
	if err == nil {
		return nil, in.failUnexpected("unexpected match")
	}
	return p.def, nil
}

// ---- tag: Maybe ----

type maybeParser struct {
	inner Parser
	def   Value
}

func (p maybeParser) eval(in *Input) (Value, *Error) {
	start := in.Pos()
	mark := in.Mark()
	v, err := p.inner.eval(in)
	if err == nil {
		in.Commit(mark)
		return v, nil
	}
	if in.Pos() != start {
		// consuming failure: Maybe does not default, it fails
		if !err.committed {
			in.Rewind(mark)
		}
		return nil, err
	}
	in.Rewind(mark)
	return p.def, nil
}

// ---- tag: Many / Many1 ----

type manyParser struct {
	inner Parser
	min   int
	fold  Fold
}

func (p manyParser) eval(in *Input) (Value, *Error) {
	var results []Value
	var lastErr *Error
	for {
		start := in.Pos()
		mark := in.Mark()
		v, err := p.inner.eval(in)
		if err != nil {
			if err.committed {
				return nil, err
			}
			in.Rewind(mark)
			lastErr = err
			break
		}
		in.Commit(mark)
		results = append(results, v)
		// zero-consumption repetitions stop immediately, guaranteeing termination
		if in.Pos() == start {
			break
		}
	}
	if len(results) < p.min {
		if lastErr == nil {
			lastErr = in.failExpect("more input")
		}
		return nil, lastErr
	}
	return p.fold(results), nil
}

// ---- tag: Count ----

type countParser struct {
	n     int
	inner Parser
	fold  Fold
}

func (p countParser) eval(in *Input) (Value, *Error) {
	results := make([]Value, 0, p.n)
	for i := 0; i < p.n; i++ {
		v, err := p.inner.eval(in)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return p.fold(results), nil
}

// ---- tag: Or ----

type orParser struct{ alts []Parser }

func (p orParser) eval(in *Input) (Value, *Error) {
	var merged *Error
	for _, alt := range p.alts {
		mark := in.Mark()
		v, err := alt.eval(in)
		if err == nil {
			in.Commit(mark)
			return v, nil
		}
		if err.committed {
			return nil, err
		}
		in.Rewind(mark)
		merged = merge(merged, err)
	}
	return nil, merged
}

// ---- tag: And ----

// andParser needs no marks of its own: if any child fails the whole
// sequence fails and propagates, and whichever ancestor combinator needs
// the position restored (an enclosing Or/Many/Maybe) already took its own
// mark before calling into this sequence.
type andParser struct {
	children []Parser
	fold     Fold
}

func (p andParser) eval(in *Input) (Value, *Error) {
	vals := make([]Value, len(p.children))
	for i, c := range p.children {
		v, err := c.eval(in)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return p.fold(vals), nil
}

// ---- tag: Ref ----

// Ref is a named, possibly-retained reference to another Parser, used to
// express mutual recursion via a declare → define → undefine → cleanup
// lifecycle.
type Ref struct {
	name string
	body Parser
}

func (r *Ref) eval(in *Input) (Value, *Error) {
	if r.body == nil {
		usagef("pego: parser %q referenced before it was defined", r.name)
	}
	return r.body.eval(in)
}

// Name returns the Ref's declared name.
func (r *Ref) Name() string { return r.name }

func quoteByte(b byte) string {
	return "'" + escapeByte(b) + "'"
}

func quoteStr(s string) string {
	var out []byte
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		out = append(out, escapeByte(s[i])...)
	}
	out = append(out, '"')
	return string(out)
}

func escapeByte(b byte) string {
	switch b {
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\\':
		return `\\`
	}
	if b < 0x20 || b >= 0x7f {
		return fmt.Sprintf(`\x%02x`, b)
	}
	return string(rune(b))
}
