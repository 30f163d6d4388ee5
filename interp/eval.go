package interp

// Evaluator implements a trampoline: Eval maintains mutable local state
// (expr, env) and loops; only calls that return a value (not a
// continuation of the loop) may recurse into Eval. This guarantees proper
// tail calls in user code without growing the host call stack.
type Evaluator struct {
	symtab   *SymbolTable
	reserved *Reserved
}

func NewEvaluator(symtab *SymbolTable, reserved *Reserved) *Evaluator {
	return &Evaluator{symtab: symtab, reserved: reserved}
}

// Eval evaluates expr in env, trampolining over special forms and tail
// calls so that self-recursive closures in tail position run in bounded
// host-stack space.
func (ev *Evaluator) Eval(expr Value, env *Env) (Value, error) {
	for {
		switch expr.Kind {
		case KindSym:
			v, ok := env.Get(expr.Sym)
			if !ok {
				return Value{}, unboundSymbolErrorf("Symbol not defined: %s", expr.Sym.Name)
			}
			return v, nil

		case KindList:
			if len(expr.List) == 0 {
				// the empty list is a data value, self-evaluating.
				return expr, nil
			}
			head := expr.List[0]
			if head.Kind == KindSym {
				switch head.Sym {
				case ev.reserved.Quote:
					return expr.List[1], nil

				case ev.reserved.If:
					t, err := ev.Eval(expr.List[1], env)
					if err != nil {
						return Value{}, err
					}
					if t.Truthy() {
						expr = expr.List[2]
					} else {
						expr = expr.List[3]
					}
					continue

				case ev.reserved.Define:
					sym := expr.List[1].Sym
					v, err := ev.Eval(expr.List[2], env)
					if err != nil {
						return Value{}, err
					}
					if v.Kind == KindClosure && v.Closure.Name == "" {
						v.Closure.Name = sym.Name
					}
					env.Put(sym, v)
					return None, nil

				case ev.reserved.SetBang:
					sym := expr.List[1].Sym
					target := env.FindContaining(sym)
					if target == nil {
						return Value{}, unboundSymbolErrorf("set!: symbol not bound: %s", sym.Name)
					}
					v, err := ev.Eval(expr.List[2], env)
					if err != nil {
						return Value{}, err
					}
					target.Set(sym, v)
					return None, nil

				case ev.reserved.Lambda:
					params, err := parseParamForm(expr.List[1])
					if err != nil {
						return Value{}, err
					}
					return ClosureVal(&Closure{Params: params, Body: expr.List[2], Env: env}), nil

				case ev.reserved.Begin:
					body := expr.List[1:]
					if len(body) == 0 {
						return None, nil
					}
					for _, e := range body[:len(body)-1] {
						if _, err := ev.Eval(e, env); err != nil {
							return Value{}, err
						}
					}
					expr = body[len(body)-1]
					continue
				}
			}

			// Application.
			fn, err := ev.Eval(head, env)
			if err != nil {
				return Value{}, err
			}
			args := make([]Value, len(expr.List)-1)
			for i, a := range expr.List[1:] {
				v, err := ev.Eval(a, env)
				if err != nil {
					return Value{}, err
				}
				args[i] = v
			}

			switch fn.Kind {
			case KindClosure:
				c := fn.Closure
				newEnv, err := FromParamsAndArgs(c.Params, args, c.Env)
				if err != nil {
					return Value{}, withExpr(err, expr)
				}
				expr = c.Body
				env = newEnv
				continue

			case KindNative:
				return fn.Native.Fn(args)

			default:
				return Value{}, withExpr(typeErrorf("cannot apply a non-callable value of kind %s", fn.Kind), expr)
			}

		default:
			// Non-list atom: booleans, numbers, strings, closures, natives, None.
			return expr, nil
		}
	}
}

// Apply calls fn with already-evaluated args, the way a native callback
// (apply, map) invokes a callable without going through Eval's own
// application syntax. A closure call here runs through Eval itself, so it
// still benefits from the trampoline for any tail calls inside its body;
// it is simply not itself in the caller's tail position.
func (ev *Evaluator) Apply(fn Value, args []Value) (Value, error) {
	switch fn.Kind {
	case KindClosure:
		c := fn.Closure
		newEnv, err := FromParamsAndArgs(c.Params, args, c.Env)
		if err != nil {
			return Value{}, err
		}
		return ev.Eval(c.Body, newEnv)
	case KindNative:
		return fn.Native.Fn(args)
	default:
		return Value{}, typeErrorf("cannot apply a non-callable value of kind %s", fn.Kind)
	}
}

// parseParamForm builds the sum-type parameter form from a raw lambda
// parameter position: either a single Symbol (rest-binding) or an ordered
// list of Symbols (fixed arity).
func parseParamForm(v Value) (ParamForm, error) {
	switch v.Kind {
	case KindSym:
		return ParamForm{Kind: ParamRest, Rest: v.Sym}, nil
	case KindList:
		fixed := make([]*Sym, len(v.List))
		for i, e := range v.List {
			if e.Kind != KindSym {
				return ParamForm{}, syntaxErrorf("lambda parameter list must contain only symbols")
			}
			fixed[i] = e.Sym
		}
		return ParamForm{Kind: ParamFixed, Fixed: fixed}, nil
	default:
		return ParamForm{}, syntaxErrorf("lambda parameter form must be a symbol or a list of symbols")
	}
}
