package pego

// Grammar compiles an EBNF-style grammar definition (`rule ["label"] :
// alternation ;`, one or more rules) into a Parser for its first declared
// rule. Any refs the caller passes in are bound in place of a freshly
// allocated Ref for a same-named rule, so the caller keeps a live entry
// point into that rule by name even after Grammar returns. A usage error
// during compilation (a reference to an undefined rule, a Ref defined
// twice) is returned as an *Error with Kind == KindUsage.
func Grammar(flags Flags, src string, refs ...*Ref) (p Parser, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			up, ok := rec.(usagePanic)
			if !ok {
				panic(rec)
			}
			p = nil
			err = &Error{File: "<grammar>", Kind: KindUsage, Message: up.msg}
		}
	}()
	g, err := ParseGrammarSource("<grammar>", src)
	if err != nil {
		return nil, err
	}
	external := make(map[string]*Ref, len(refs))
	for _, r := range refs {
		external[r.Name()] = r
	}
	cfg := configFromFlags(flags)
	ruleRefs, order := compileGrammar(g, cfg, external)
	return ruleRefs[order[0]], nil
}

// Language compiles src exactly as Grammar does, but is used when the
// caller only cares about binding its pre-declared refs (typically more
// than one entry point into a larger grammar) rather than a single start
// parser; it reports a compile error and otherwise defines every ref in
// place.
func Language(flags Flags, src string, refs ...*Ref) error {
	_, err := Grammar(flags, src, refs...)
	return err
}
