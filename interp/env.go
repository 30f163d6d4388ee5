package interp

// Env is one link in the environment chain: a mutable mapping from symbol
// to value, plus an optional pointer to an outer frame. The outer chain is
// append-only after construction of each frame.
type Env struct {
	vars  map[*Sym]Value
	outer *Env
}

// NewEnv creates an empty frame with no outer.
func NewEnv() *Env {
	return &Env{vars: make(map[*Sym]Value)}
}

// Extend creates a frame with the given bindings and outer frame.
func Extend(bindings map[*Sym]Value, outer *Env) *Env {
	if bindings == nil {
		bindings = make(map[*Sym]Value)
	}
	return &Env{vars: bindings, outer: outer}
}

// NewChildEnv creates an empty frame chained to outer.
func NewChildEnv(outer *Env) *Env {
	return &Env{vars: make(map[*Sym]Value), outer: outer}
}

// FromParamsAndArgs builds the frame for a closure invocation: a single
// Symbol param form binds the whole argument list unconditionally; a fixed
// list of Symbols requires an exact arity match.
func FromParamsAndArgs(p ParamForm, args []Value, outer *Env) (*Env, error) {
	vars := make(map[*Sym]Value, len(p.Fixed)+1)
	switch p.Kind {
	case ParamRest:
		vars[p.Rest] = ListFromSlice(append([]Value(nil), args...))
	case ParamFixed:
		if len(args) != len(p.Fixed) {
			return nil, &EvalError{
				Kind:    ArityError,
				Message: "arity mismatch: closure expects fixed parameter list",
			}
		}
		for i, s := range p.Fixed {
			vars[s] = args[i]
		}
	}
	return &Env{vars: vars, outer: outer}, nil
}

// FindContaining walks outward and returns the frame that already binds
// sym, or nil if none does.
func (e *Env) FindContaining(sym *Sym) *Env {
	for f := e; f != nil; f = f.outer {
		if _, ok := f.vars[sym]; ok {
			return f
		}
	}
	return nil
}

// Get looks up sym, walking outward; ok is false if unbound anywhere.
func (e *Env) Get(sym *Sym) (Value, bool) {
	for f := e; f != nil; f = f.outer {
		if v, ok := f.vars[sym]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Put writes into the current frame unconditionally, shadowing any outer
// binding. Used by define.
func (e *Env) Put(sym *Sym, v Value) {
	e.vars[sym] = v
}

// Set writes into the containing frame (set!). Callers should first locate
// the containing frame with FindContaining and fail if it is nil.
func (e *Env) Set(sym *Sym, v Value) {
	e.vars[sym] = v
}
