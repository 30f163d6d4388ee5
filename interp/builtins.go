package interp

import (
	"strings"
)

// installBuiltins layers the required builtin menu plus a small set of
// domain-stack extras onto env. It is itself applied as the innermost
// Extension, ahead of anything a host supplies.
func installBuiltins(symtab *SymbolTable, env *Env) {
	def := func(name string, fn NativeFn) {
		env.Put(symtab.Intern(name), NativeVal(&Native{Name: name, Fn: fn}))
	}

	// Arithmetic: variadic left-folds over two-argument kernels.
	def("+", arithFold("+", 0, addKernel))
	def("*", arithFold("*", 1, mulKernel))
	def("-", func(args []Value) (Value, error) { return subOrNeg(args) })
	def("/", func(args []Value) (Value, error) { return divOrRecip(args) })
	def("%", biModulus)

	// Comparisons: binary, numeric.
	def("=", binaryNumCompare("=", func(a, b Value) bool { return NumEqual(a, b) }))
	def("<", binaryNumCompare("<", func(a, b Value) bool { return numLess(a, b) }))
	def("<=", binaryNumCompare("<=", func(a, b Value) bool { return numLess(a, b) || NumEqual(a, b) }))
	def(">", binaryNumCompare(">", func(a, b Value) bool { return numLess(b, a) }))
	def(">=", binaryNumCompare(">=", func(a, b Value) bool { return numLess(b, a) || NumEqual(a, b) }))

	// Predicates.
	def("eq?", func(args []Value) (Value, error) {
		if err := wantArity("eq?", args, 2); err != nil {
			return Value{}, err
		}
		return Bool(Eq(args[0], args[1])), nil
	})
	def("equal?", func(args []Value) (Value, error) {
		if err := wantArity("equal?", args, 2); err != nil {
			return Value{}, err
		}
		return Bool(Equal(args[0], args[1])), nil
	})
	def("boolean?", predicate("boolean?", func(v Value) bool { return v.Kind == KindBool }))
	def("num?", predicate("num?", func(v Value) bool { return v.IsNumber() }))
	def("string?", predicate("string?", func(v Value) bool { return v.Kind == KindStr }))
	def("symbol?", predicate("symbol?", func(v Value) bool { return v.Kind == KindSym }))
	def("list?", predicate("list?", func(v Value) bool { return v.Kind == KindList }))
	def("null?", predicate("null?", func(v Value) bool { return v.IsNil() }))
	def("not", func(args []Value) (Value, error) {
		if err := wantArity("not", args, 1); err != nil {
			return Value{}, err
		}
		return Bool(!args[0].Truthy()), nil
	})

	// List operations.
	def("list", func(args []Value) (Value, error) {
		return ListFromSlice(append([]Value(nil), args...)), nil
	})
	def("length", func(args []Value) (Value, error) {
		if err := wantArity("length", args, 1); err != nil {
			return Value{}, err
		}
		if args[0].Kind != KindList {
			return Value{}, typeErrorf("length: not a list")
		}
		return Int(int64(len(args[0].List))), nil
	})
	def("car", func(args []Value) (Value, error) {
		if err := wantArity("car", args, 1); err != nil {
			return Value{}, err
		}
		if args[0].Kind != KindList || len(args[0].List) == 0 {
			return Value{}, typeErrorf("car: not a non-empty list")
		}
		return args[0].List[0], nil
	})
	def("cdr", func(args []Value) (Value, error) {
		if err := wantArity("cdr", args, 1); err != nil {
			return Value{}, err
		}
		if args[0].Kind != KindList || len(args[0].List) == 0 {
			return Value{}, typeErrorf("cdr: not a non-empty list")
		}
		return ListFromSlice(append([]Value(nil), args[0].List[1:]...)), nil
	})
	def("cons", func(args []Value) (Value, error) {
		if err := wantArity("cons", args, 2); err != nil {
			return Value{}, err
		}
		if args[1].Kind != KindList {
			return Value{}, typeErrorf("cons: second argument must be a list")
		}
		out := make([]Value, 0, len(args[1].List)+1)
		out = append(out, args[0])
		out = append(out, args[1].List...)
		return ListFromSlice(out), nil
	})
	def("append", func(args []Value) (Value, error) {
		if err := wantArity("append", args, 2); err != nil {
			return Value{}, err
		}
		if args[0].Kind != KindList || args[1].Kind != KindList {
			return Value{}, typeErrorf("append: both arguments must be lists")
		}
		out := make([]Value, 0, len(args[0].List)+len(args[1].List))
		out = append(out, args[0].List...)
		out = append(out, args[1].List...)
		return ListFromSlice(out), nil
	})
	def("reverse", func(args []Value) (Value, error) {
		if err := wantArity("reverse", args, 1); err != nil {
			return Value{}, err
		}
		if args[0].Kind != KindList {
			return Value{}, typeErrorf("reverse: not a list")
		}
		src := args[0].List
		out := make([]Value, len(src))
		for i, v := range src {
			out[len(src)-1-i] = v
		}
		return ListFromSlice(out), nil
	})
	def("list-ref", func(args []Value) (Value, error) {
		if err := wantArity("list-ref", args, 2); err != nil {
			return Value{}, err
		}
		if args[0].Kind != KindList || args[1].Kind != KindInt {
			return Value{}, typeErrorf("list-ref: expects (list index)")
		}
		idx := args[1].Int
		if idx < 0 || int(idx) >= len(args[0].List) {
			return Value{}, typeErrorf("list-ref: index out of range")
		}
		return args[0].List[idx], nil
	})
	def("range", builtinRange)

	// Misc builtins.
	def("symbol->string", func(args []Value) (Value, error) {
		if err := wantArity("symbol->string", args, 1); err != nil {
			return Value{}, err
		}
		if args[0].Kind != KindSym {
			return Value{}, typeErrorf("symbol->string: not a symbol")
		}
		return Str(args[0].Sym.Name), nil
	})
	def("null", func(args []Value) (Value, error) {
		if err := wantArity("null", args, 0); err != nil {
			return Value{}, err
		}
		return EmptyList(), nil
	})
	def("assert", builtinAssert)

	// String and number extras beyond the required menu.
	def("string-append", func(args []Value) (Value, error) {
		var b strings.Builder
		for _, a := range args {
			if a.Kind != KindStr {
				return Value{}, typeErrorf("string-append: all arguments must be strings")
			}
			b.WriteString(a.Str)
		}
		return Str(b.String()), nil
	})
	def("string-length", func(args []Value) (Value, error) {
		if err := wantArity("string-length", args, 1); err != nil {
			return Value{}, err
		}
		if args[0].Kind != KindStr {
			return Value{}, typeErrorf("string-length: not a string")
		}
		return Int(int64(len(args[0].Str))), nil
	})
	def("string-ref", func(args []Value) (Value, error) {
		if err := wantArity("string-ref", args, 2); err != nil {
			return Value{}, err
		}
		if args[0].Kind != KindStr || args[1].Kind != KindInt {
			return Value{}, typeErrorf("string-ref: expects (string index)")
		}
		idx := args[1].Int
		if idx < 0 || int(idx) >= len(args[0].Str) {
			return Value{}, typeErrorf("string-ref: index out of range")
		}
		return Str(string(args[0].Str[idx])), nil
	})
	def("number->string", func(args []Value) (Value, error) {
		if err := wantArity("number->string", args, 1); err != nil {
			return Value{}, err
		}
		if !args[0].IsNumber() {
			return Value{}, typeErrorf("number->string: not a number")
		}
		return Str(Print(args[0])), nil
	})
}

func wantArity(name string, args []Value, n int) error {
	if len(args) != n {
		return arityErrorf("%s: expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func predicate(name string, p func(Value) bool) NativeFn {
	return func(args []Value) (Value, error) {
		if err := wantArity(name, args, 1); err != nil {
			return Value{}, err
		}
		return Bool(p(args[0])), nil
	}
}

func addKernel(a, b Value) (Value, error) {
	if a.Kind == KindInt && b.Kind == KindInt {
		return Int(a.Int + b.Int), nil
	}
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, typeErrorf("+: operands must be numbers")
	}
	return Float(a.AsFloat() + b.AsFloat()), nil
}

func mulKernel(a, b Value) (Value, error) {
	if a.Kind == KindInt && b.Kind == KindInt {
		return Int(a.Int * b.Int), nil
	}
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, typeErrorf("*: operands must be numbers")
	}
	return Float(a.AsFloat() * b.AsFloat()), nil
}

func subKernel(a, b Value) (Value, error) {
	if a.Kind == KindInt && b.Kind == KindInt {
		return Int(a.Int - b.Int), nil
	}
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, typeErrorf("-: operands must be numbers")
	}
	return Float(a.AsFloat() - b.AsFloat()), nil
}

func divKernel(a, b Value) (Value, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, typeErrorf("/: operands must be numbers")
	}
	if a.Kind == KindInt && b.Kind == KindInt {
		if b.Int == 0 {
			return Value{}, typeErrorf("/: division by zero")
		}
		return Int(a.Int / b.Int), nil // truncating integer division
	}
	return Float(a.AsFloat() / b.AsFloat()), nil
}

// arithFold implements the variadic left-fold over a two-argument kernel:
// with no arguments returns the identity; with one argument returns it
// unchanged.
func arithFold(name string, identity int64, kernel func(a, b Value) (Value, error)) NativeFn {
	return func(args []Value) (Value, error) {
		if len(args) == 0 {
			return Int(identity), nil
		}
		acc := args[0]
		if !acc.IsNumber() {
			return Value{}, typeErrorf("%s: operands must be numbers", name)
		}
		for _, v := range args[1:] {
			var err error
			acc, err = kernel(acc, v)
			if err != nil {
				return Value{}, err
			}
		}
		return acc, nil
	}
}

// subOrNeg implements unary negation and variadic left-fold subtraction.
func subOrNeg(args []Value) (Value, error) {
	if len(args) == 0 {
		return Value{}, arityErrorf("-: expects at least 1 argument")
	}
	if len(args) == 1 {
		return subKernel(Int(0), args[0])
	}
	acc := args[0]
	for _, v := range args[1:] {
		var err error
		acc, err = subKernel(acc, v)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// divOrRecip implements unary reciprocal and variadic left-fold division.
func divOrRecip(args []Value) (Value, error) {
	if len(args) == 0 {
		return Value{}, arityErrorf("/: expects at least 1 argument")
	}
	if len(args) == 1 {
		return divKernel(Int(1), args[0])
	}
	acc := args[0]
	for _, v := range args[1:] {
		var err error
		acc, err = divKernel(acc, v)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// biModulus implements %, defined only for Int/Int.
func biModulus(args []Value) (Value, error) {
	if err := wantArity("%", args, 2); err != nil {
		return Value{}, err
	}
	a, b := args[0], args[1]
	if a.Kind != KindInt || b.Kind != KindInt {
		return Value{}, typeErrorf("%%: modulus is defined only for Int/Int")
	}
	if b.Int == 0 {
		return Value{}, typeErrorf("%%: division by zero")
	}
	return Int(a.Int % b.Int), nil
}

func numLess(a, b Value) bool {
	return a.AsFloat() < b.AsFloat()
}

func binaryNumCompare(name string, cmp func(a, b Value) bool) NativeFn {
	return func(args []Value) (Value, error) {
		if err := wantArity(name, args, 2); err != nil {
			return Value{}, err
		}
		if !args[0].IsNumber() || !args[1].IsNumber() {
			return Value{}, typeErrorf("%s: operands must be numbers", name)
		}
		return Bool(cmp(args[0], args[1])), nil
	}
}

// builtinRange implements Python-like range semantics with 1-3 integer
// arguments and the sign of step checked against start/stop.
func builtinRange(args []Value) (Value, error) {
	var start, stop, step int64
	switch len(args) {
	case 1:
		start, stop, step = 0, args[0].Int, 1
	case 2:
		start, stop, step = args[0].Int, args[1].Int, 1
	case 3:
		start, stop, step = args[0].Int, args[1].Int, args[2].Int
	default:
		return Value{}, arityErrorf("range: expects 1 to 3 arguments, got %d", len(args))
	}
	for _, a := range args {
		if a.Kind != KindInt {
			return Value{}, typeErrorf("range: arguments must be integers")
		}
	}
	if step == 0 {
		return Value{}, typeErrorf("range: step must not be zero")
	}
	var out []Value
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, Int(i))
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, Int(i))
		}
	}
	return ListFromSlice(out), nil
}

// builtinAssert implements assert, taking 1 or 2 arguments; a second
// argument is a string message.
func builtinAssert(args []Value) (Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return Value{}, arityErrorf("assert: expects 1 or 2 arguments, got %d", len(args))
	}
	if args[0].Truthy() {
		return None, nil
	}
	msg := "assertion failed"
	if len(args) == 2 {
		if args[1].Kind != KindStr {
			return Value{}, typeErrorf("assert: second argument must be a string message")
		}
		msg = args[1].Str
	}
	return Value{}, assertionErrorf("%s", msg)
}

// apply and map are installed separately, in builtins_callback.go, since
// they need access to the Evaluator to call back into closures.
