package interp

// Expander rewrites a raw S-expression into canonical form, applying the
// fixed set of special forms and the user-extensible macro table to
// fixpoint. It depends on the Evaluator because define-macro requires
// evaluating the macro's value at expansion time, and because a macro
// invocation runs its body to produce the form to re-expand — expansion
// and evaluation are deliberately entangled here, not separate passes.
type Expander struct {
	symtab   *SymbolTable
	reserved *Reserved
	macros   *MacroTable
	eval     *Evaluator
}

func NewExpander(symtab *SymbolTable, reserved *Reserved, macros *MacroTable, eval *Evaluator) *Expander {
	return &Expander{symtab: symtab, reserved: reserved, macros: macros, eval: eval}
}

// Expand walks expr once, recognizing special forms and macro calls and
// recursively expanding everything else.
func (ex *Expander) Expand(expr Value, env *Env, topLevel bool) (Value, error) {
	if expr.Kind != KindList {
		return expr, nil
	}
	if len(expr.List) == 0 {
		return expr, nil
	}

	head := expr.List[0]
	if head.Kind == KindSym {
		switch head.Sym {
		case ex.reserved.Quote:
			if len(expr.List) != 2 {
				return Value{}, syntaxErrorf("quote requires exactly one argument")
			}
			return expr, nil

		case ex.reserved.If:
			switch len(expr.List) {
			case 3:
				t, err := ex.Expand(expr.List[1], env, false)
				if err != nil {
					return Value{}, err
				}
				c, err := ex.Expand(expr.List[2], env, false)
				if err != nil {
					return Value{}, err
				}
				return List(expr.List[0], t, c, None), nil
			case 4:
				t, err := ex.Expand(expr.List[1], env, false)
				if err != nil {
					return Value{}, err
				}
				c, err := ex.Expand(expr.List[2], env, false)
				if err != nil {
					return Value{}, err
				}
				a, err := ex.Expand(expr.List[3], env, false)
				if err != nil {
					return Value{}, err
				}
				return List(expr.List[0], t, c, a), nil
			default:
				return Value{}, syntaxErrorf("if requires 2 or 3 arguments, got %d", len(expr.List)-1)
			}

		case ex.reserved.SetBang:
			if len(expr.List) != 3 || expr.List[1].Kind != KindSym {
				return Value{}, syntaxErrorf("set! requires (set! symbol expr)")
			}
			v, err := ex.Expand(expr.List[2], env, false)
			if err != nil {
				return Value{}, err
			}
			return List(expr.List[0], expr.List[1], v), nil

		case ex.reserved.Define:
			return ex.expandDefine(expr, env, topLevel)

		case ex.reserved.DefineMacro:
			return ex.expandDefineMacro(expr, env, topLevel)

		case ex.reserved.Begin:
			if len(expr.List) == 1 {
				return None, nil
			}
			out := make([]Value, len(expr.List))
			out[0] = expr.List[0]
			for i, e := range expr.List[1:] {
				v, err := ex.Expand(e, env, topLevel)
				if err != nil {
					return Value{}, err
				}
				out[i+1] = v
			}
			return ListFromSlice(out), nil

		case ex.reserved.Lambda:
			return ex.expandLambda(expr, env)

		case ex.reserved.Quasiquote:
			if len(expr.List) != 2 {
				return Value{}, syntaxErrorf("quasiquote requires exactly one argument")
			}
			return ex.expandQuasiquote(expr.List[1])
		}

		if macro, ok := ex.macros.Lookup(head.Sym); ok {
			result, err := ex.applyMacro(macro, expr.List[1:])
			if err != nil {
				return Value{}, err
			}
			return ex.Expand(result, env, topLevel)
		}
	}

	// Non-special list: recursively expand every element, non-top-level.
	out := make([]Value, len(expr.List))
	for i, e := range expr.List {
		v, err := ex.Expand(e, env, false)
		if err != nil {
			return Value{}, err
		}
		out[i] = v
	}
	return ListFromSlice(out), nil
}

// applyMacro invokes a macro's closure with the unexpanded tail of the call
// as its (unevaluated) arguments, the way a fexpr would: the arguments are
// bound directly as data, never evaluated, and the closure's body runs to
// produce the replacement form.
func (ex *Expander) applyMacro(c *Closure, rawArgs []Value) (Value, error) {
	newEnv, err := FromParamsAndArgs(c.Params, rawArgs, c.Env)
	if err != nil {
		return Value{}, err
	}
	return ex.eval.Eval(c.Body, newEnv)
}

// expandDefine handles both (define s x) and the head-form sugar
// (define (f params...) body...) -> (define f (lambda params... body...)).
func (ex *Expander) expandDefine(expr Value, env *Env, topLevel bool) (Value, error) {
	if len(expr.List) < 3 {
		return Value{}, syntaxErrorf("define requires at least 2 arguments")
	}
	target := expr.List[1]
	if target.Kind == KindList {
		name, paramForm, body, err := headFormParts(target, expr.List[2:])
		if err != nil {
			return Value{}, err
		}
		lambda := List(append([]Value{SymVal(ex.reserved.Lambda), paramForm}, body...)...)
		rewritten := List(expr.List[0], SymVal(name), lambda)
		return ex.Expand(rewritten, env, topLevel)
	}
	if target.Kind != KindSym || len(expr.List) != 3 {
		return Value{}, syntaxErrorf("define requires (define symbol expr)")
	}
	v, err := ex.Expand(expr.List[2], env, false)
	if err != nil {
		return Value{}, err
	}
	return List(expr.List[0], target, v), nil
}

// expandDefineMacro handles (define-macro (f params...) body...) sugar and
// the (define-macro s x) form, which must be top-level: x is evaluated in
// env and the result (which must be a closure) is installed into the
// macro table.
func (ex *Expander) expandDefineMacro(expr Value, env *Env, topLevel bool) (Value, error) {
	if len(expr.List) < 3 {
		return Value{}, syntaxErrorf("define-macro requires at least 2 arguments")
	}
	target := expr.List[1]
	if target.Kind == KindList {
		if !topLevel {
			return Value{}, syntaxErrorf("define-macro head form must be top-level")
		}
		name, paramForm, body, err := headFormParts(target, expr.List[2:])
		if err != nil {
			return Value{}, err
		}
		lambda := List(append([]Value{SymVal(ex.reserved.Lambda), paramForm}, body...)...)
		rewritten := List(expr.List[0], SymVal(name), lambda)
		return ex.Expand(rewritten, env, topLevel)
	}
	if !topLevel {
		return Value{}, syntaxErrorf("define-macro must be top-level")
	}
	if target.Kind != KindSym || len(expr.List) != 3 {
		return Value{}, syntaxErrorf("define-macro requires (define-macro symbol expr)")
	}
	expanded, err := ex.Expand(expr.List[2], env, false)
	if err != nil {
		return Value{}, err
	}
	v, err := ex.eval.Eval(expanded, env)
	if err != nil {
		return Value{}, err
	}
	if v.Kind != KindClosure {
		return Value{}, typeErrorf("define-macro value must evaluate to a closure")
	}
	ex.macros.Install(target.Sym, v.Closure)
	return None, nil
}

// headFormParts parses the (f . params) or (f params...) header shared by
// define and define-macro's head-form sugar. A header of exactly
// (f . rest), a literal "." symbol followed by one final symbol, denotes
// the rest-binding form, since the reader does not build true dotted pairs:
// the parameter form is a sum type (ParamRest or ParamFixed), not a
// dotted-tail convention. A "." that follows other parameters, as in
// (f a . rest), is not special: it becomes an ordinary fixed parameter.
func headFormParts(header Value, body []Value) (*Sym, Value, []Value, error) {
	if len(header.List) == 0 || header.List[0].Kind != KindSym {
		return nil, Value{}, nil, syntaxErrorf("define head form requires a function name")
	}
	if len(body) == 0 {
		return nil, Value{}, nil, syntaxErrorf("define head form requires at least one body expression")
	}
	name := header.List[0].Sym
	rest := header.List[1:]
	if len(rest) == 2 && rest[0].Kind == KindSym && rest[0].Sym.Name == "." {
		return name, rest[1], body, nil
	}
	for _, p := range rest {
		if p.Kind != KindSym {
			return nil, Value{}, nil, syntaxErrorf("define head form parameters must be symbols")
		}
	}
	return name, ListFromSlice(append([]Value(nil), rest...)), body, nil
}

// expandLambda handles (lambda p body...): p is a Symbol or list of
// Symbols; with one body form the lambda keeps it bare, otherwise the
// body is wrapped in begin before expansion.
func (ex *Expander) expandLambda(expr Value, env *Env) (Value, error) {
	if len(expr.List) < 3 {
		return Value{}, syntaxErrorf("lambda requires a parameter form and at least one body expression")
	}
	params := expr.List[1]
	if params.Kind != KindSym && params.Kind != KindList {
		return Value{}, syntaxErrorf("lambda parameter form must be a symbol or a list of symbols")
	}
	body := expr.List[2:]
	var bodyExpr Value
	if len(body) == 1 {
		expanded, err := ex.Expand(body[0], env, false)
		if err != nil {
			return Value{}, err
		}
		bodyExpr = expanded
	} else {
		begin := List(append([]Value{SymVal(ex.reserved.Begin)}, body...)...)
		expanded, err := ex.Expand(begin, env, false)
		if err != nil {
			return Value{}, err
		}
		bodyExpr = expanded
	}
	return List(expr.List[0], params, bodyExpr), nil
}

// expandQuasiquote desugars backquote/unquote/unquote-splicing into
// cons/append/quote forms.
func (ex *Expander) expandQuasiquote(x Value) (Value, error) {
	if x.Kind != KindList || len(x.List) == 0 {
		return List(SymVal(ex.reserved.Quote), x), nil
	}
	h := x.List[0]
	t := x.List[1:]

	if h.Kind == KindSym && h.Sym == ex.reserved.UnquoteSplicing {
		return Value{}, syntaxErrorf("Cannot splice at top level of quasiquote: %s", Print(x))
	}
	if h.Kind == KindSym && h.Sym == ex.reserved.Unquote {
		if len(x.List) != 2 {
			return Value{}, syntaxErrorf("unquote requires exactly one argument")
		}
		return x.List[1], nil
	}
	if h.Kind == KindList && len(h.List) == 2 && h.List[0].Kind == KindSym && h.List[0].Sym == ex.reserved.UnquoteSplicing {
		tail, err := ex.expandQuasiquote(ListFromSlice(t))
		if err != nil {
			return Value{}, err
		}
		return List(SymVal(ex.reserved.Append), h.List[1], tail), nil
	}

	headExp, err := ex.expandQuasiquote(h)
	if err != nil {
		return Value{}, err
	}
	tailExp, err := ex.expandQuasiquote(ListFromSlice(t))
	if err != nil {
		return Value{}, err
	}
	return List(SymVal(ex.reserved.Cons), headExp, tailExp), nil
}
