package interp

import "fmt"

// installCallbackBuiltins layers map and apply onto env. Unlike the rest
// of the builtin menu, these two need the Evaluator to call back into user
// closures, so they are installed separately from builtins.go's pure,
// Evaluator-free installBuiltins.
func installCallbackBuiltins(symtab *SymbolTable, env *Env, ev *Evaluator) {
	def := func(name string, fn NativeFn) {
		env.Put(symtab.Intern(name), NativeVal(&Native{Name: name, Fn: fn}))
	}

	def("map", func(args []Value) (Value, error) {
		if err := wantArity("map", args, 2); err != nil {
			return Value{}, err
		}
		fn, lst := args[0], args[1]
		if lst.Kind != KindList {
			return Value{}, typeErrorf("map: second argument must be a list")
		}
		out := make([]Value, len(lst.List))
		for i, v := range lst.List {
			r, err := ev.Apply(fn, []Value{v})
			if err != nil {
				return Value{}, err
			}
			out[i] = r
		}
		return ListFromSlice(out), nil
	})

	def("apply", func(args []Value) (Value, error) {
		if len(args) < 2 {
			return Value{}, arityErrorf("apply: expects at least 2 arguments, got %d", len(args))
		}
		last := args[len(args)-1]
		if last.Kind != KindList {
			return Value{}, typeErrorf("apply: final argument must be a list")
		}
		callArgs := make([]Value, 0, len(args)-2+len(last.List))
		callArgs = append(callArgs, args[1:len(args)-1]...)
		callArgs = append(callArgs, last.List...)
		return ev.Apply(args[0], callArgs)
	})
}

// installIOBuiltins layers display, newline, and read onto the
// interpreter's global environment, bound to whatever io.Reader/io.Writer
// the interpreter was configured with rather than os.Stdin/os.Stdout
// directly.
func installIOBuiltins(i *Interpreter) {
	def := func(name string, fn NativeFn) {
		i.global.Put(i.symtab.Intern(name), NativeVal(&Native{Name: name, Fn: fn}))
	}

	def("display", func(args []Value) (Value, error) {
		if err := wantArity("display", args, 1); err != nil {
			return Value{}, err
		}
		if args[0].Kind == KindStr {
			fmt.Fprint(i.stdout, args[0].Str)
		} else {
			fmt.Fprint(i.stdout, Print(args[0]))
		}
		return None, nil
	})

	def("newline", func(args []Value) (Value, error) {
		if err := wantArity("newline", args, 0); err != nil {
			return Value{}, err
		}
		fmt.Fprintln(i.stdout)
		return None, nil
	})

	def("read", func(args []Value) (Value, error) {
		if err := wantArity("read", args, 0); err != nil {
			return Value{}, err
		}
		rd := NewReader(i.stdin, i.symtab, i.reserved)
		return rd.Read()
	})
}
