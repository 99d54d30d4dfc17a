package pego

// NewRef declares a named, as-yet-undefined parser slot. Use it to write
// mutually or self-recursive grammars: construct the Ref first, build the
// body referring back to it, then call Define.
func NewRef(name string) *Ref { return &Ref{name: name} }

// Define binds body as the Ref's body. Calling Define on an already-defined
// Ref is a usage error; Undefine it first to rebind it.
func (r *Ref) Define(body Parser) {
	if r.body != nil {
		usagef("pego: parser %q defined twice", r.name)
	}
	r.body = body
}

// Undefine clears the Ref's body, returning it to the "declared but not
// defined" state. Evaluating an undefined Ref raises a usage error.
func (r *Ref) Undefine() { r.body = nil }

// IsDefined reports whether Define has been called since the last
// Undefine (or since construction).
func (r *Ref) IsDefined() bool { return r.body != nil }

// Cleanup walks refs and undefines every one of them. Call this once a
// grammar has been fully compiled into non-Ref parsers (or is being
// discarded) to break the reference cycles recursive rules create, so the
// Refs themselves can be garbage collected independently of each other.
func Cleanup(refs ...*Ref) {
	for _, r := range refs {
		r.Undefine()
	}
}

// Copy returns a new, independently definable Ref with the same name. The
// copy does not share the receiver's body.
func (r *Ref) Copy() *Ref { return &Ref{name: r.name} }

// Optimise collapses chains of direct aliasing (a Ref whose body is
// nothing but another Ref) down to a single indirection, so evaluating a
// rule that just renames another rule doesn't pay for an extra eval call
// per alias in the chain. It leaves genuinely recursive or compound rules
// untouched.
func Optimise(refs ...*Ref) {
	for _, r := range refs {
		seen := map[*Ref]bool{r: true}
		target := r
		for {
			next, ok := target.body.(*Ref)
			if !ok || seen[next] {
				break
			}
			seen[next] = true
			target = next
		}
		if target != r {
			r.body = target
		}
	}
}
