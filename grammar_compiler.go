package pego

// grammarCompiler holds the state shared by every rule's compile() call:
// the Ref table every gIdent resolves against (built up front so forward
// references compile fine) and the pass toggles read out of a Config.
type grammarCompiler struct {
	refs             map[string]*Ref
	order            []string
	injectWhitespace bool
	predictive       bool
	multiline        bool
	dotAll           bool
}

// newGrammarCompiler declares a Ref for every rule in g. external supplies
// Refs the caller already holds onto (e.g. a long-lived entry point into
// a rule by name); those are reused in place of a freshly allocated Ref so
// the caller's pointer stays the one the compiled grammar actually runs.
func newGrammarCompiler(g *gGrammar, cfg *Config, external map[string]*Ref) *grammarCompiler {
	gc := &grammarCompiler{
		refs:             make(map[string]*Ref, len(g.rules)),
		injectWhitespace: cfg.GetBool("grammar.inject_whitespace"),
		predictive:       cfg.GetBool("grammar.predictive"),
		// grammar `.` has always matched any byte including newline;
		// only the regex front end gates it behind DOTALL.
		dotAll: true,
	}
	for _, r := range g.rules {
		if ext, ok := external[r.Name]; ok {
			gc.refs[r.Name] = ext
		} else {
			gc.refs[r.Name] = NewRef(r.Name)
		}
		gc.order = append(gc.order, r.Name)
	}
	return gc
}

func (gc *grammarCompiler) ref(name string) Parser {
	r, ok := gc.refs[name]
	if !ok {
		usagef("pego: grammar references undefined rule %q", name)
	}
	return r
}

// ruleWrap runs a rule's compiled body and reduces its result to a single
// Node per wrapRule's tag-chain-merging rule. compileGrammar wraps it in
// Predictive when the grammar is compiled PREDICTIVE.
type ruleWrap struct {
	name  string
	inner Parser
}

func (w ruleWrap) eval(in *Input) (Value, *Error) {
	start := in.Pos()
	v, err := w.inner.eval(in)
	if err != nil {
		return nil, err
	}
	end := in.Pos()
	var children []*Node
	switch val := v.(type) {
	case nil:
	case *Node:
		children = []*Node{val}
	case []*Node:
		children = val
	}
	return wrapRule(w.name, children, NewRange(start, end)), nil
}

// compileGrammar turns a parsed gGrammar into a set of named, mutually
// defined Refs ready to be evaluated. It returns the Ref map and the
// order rules were declared in (for picking a default start rule).
func compileGrammar(g *gGrammar, cfg *Config, external map[string]*Ref) (map[string]*Ref, []string) {
	gc := newGrammarCompiler(g, cfg, external)
	if cfg.GetBool("grammar.add_builtins") {
		addBuiltinRules(gc)
	}
	for _, r := range g.rules {
		var body Parser = ruleWrap{name: r.Name, inner: r.Body.compile(gc)}
		if r.Label != "" {
			body = Expect(r.Label, body)
		}
		if gc.predictive {
			body = predictParser{inner: body}
		}
		gc.refs[r.Name].Define(body)
	}
	return gc.refs, gc.order
}

// addBuiltinRules injects a handful of commonly needed character-class
// rules (letter, digit, alnum, space, eof) that a grammar may reference
// without defining, mirroring the convenience built-ins the grammar
// compilation pipeline has always offered. A grammar that defines its own
// rule by one of these names wins; built-ins never override it.
func addBuiltinRules(gc *grammarCompiler) {
	builtins := map[string]Parser{
		"letter": leafWrap{tag: "literal", inner: Or(ByteRange('a', 'z'), ByteRange('A', 'Z'))},
		"digit":  leafWrap{tag: "literal", inner: ByteRange('0', '9')},
		"alnum": leafWrap{tag: "literal", inner: Or(
			ByteRange('a', 'z'), ByteRange('A', 'Z'), ByteRange('0', '9'))},
		"space": leafWrap{tag: "literal", inner: OneOf(" \t\r\n")},
		"eof":   leafWrap{tag: "literal", inner: Eoi()},
	}
	for name, body := range builtins {
		if _, exists := gc.refs[name]; exists {
			continue
		}
		r := NewRef(name)
		r.Define(body)
		gc.refs[name] = r
	}
}
