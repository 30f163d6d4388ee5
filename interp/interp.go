package interp

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/schemy-lang/schemy/internal/prelude"
)

// Exports is a set of bindings a host wants visible in the global
// environment.
type Exports map[string]Value

// Extension is a symbol-table producer: given the interpreter and its
// global environment, it layers additional bindings onto env. New applies
// extensions in order, after the required builtins, so a later
// extension's binding wins on name collision.
type Extension func(i *Interpreter, env *Env)

// UseExports adapts a plain Exports map into an Extension, for a host that
// already has a flat symbol table and would rather not write a closure.
func UseExports(ex Exports) Extension {
	return func(i *Interpreter, env *Env) {
		for name, v := range ex {
			env.Put(i.symtab.Intern(name), v)
		}
	}
}

// Options configures a new Interpreter.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Extensions are applied, in order, on top of the required builtins.
	Extensions []Extension

	// InitScript, if set, names a file evaluated once after the bundled
	// prelude and all Extensions — a caller-supplied substitute for the
	// CLI's cwd-relative .init.ss. Library embedders opt into filesystem
	// access explicitly, by naming a path, rather than having the cwd's
	// .init.ss loaded on their behalf.
	InitScript string

	// Trace, when set, writes each top-level form as read and as expanded
	// to Stderr.
	Trace bool
}

// Interpreter owns the global resources and top-level frame shared by
// every evaluation it performs.
type Interpreter struct {
	symtab   *SymbolTable
	reserved *Reserved
	macros   *MacroTable
	eval     *Evaluator
	expand   *Expander
	global   *Env

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	trace  bool
}

// New returns a new interpreter with the required builtins, any host
// Extensions, and the bundled standard prelude (let, cond, fold-left, ...)
// already evaluated into the global environment.
func New(options Options) (*Interpreter, error) {
	symtab := NewSymbolTable()
	reserved := newReserved(symtab)
	macros := NewMacroTable()
	ev := NewEvaluator(symtab, reserved)
	ex := NewExpander(symtab, reserved, macros, ev)
	global := NewEnv()

	i := &Interpreter{
		symtab:   symtab,
		reserved: reserved,
		macros:   macros,
		eval:     ev,
		expand:   ex,
		global:   global,
		stdin:    options.Stdin,
		stdout:   options.Stdout,
		stderr:   options.Stderr,
		trace:    options.Trace,
	}
	if i.stdin == nil {
		i.stdin = os.Stdin
	}
	if i.stdout == nil {
		i.stdout = os.Stdout
	}
	if i.stderr == nil {
		i.stderr = os.Stderr
	}

	installBuiltins(symtab, global)
	installCallbackBuiltins(symtab, global, ev)
	installIOBuiltins(i)

	for _, ext := range options.Extensions {
		ext(i, global)
	}

	if _, err := i.EvalString(prelude.Source); err != nil {
		return nil, fmt.Errorf("loading bundled prelude: %w", err)
	}

	if options.InitScript != "" {
		if _, err := i.EvalPath(options.InitScript); err != nil {
			return nil, fmt.Errorf("loading init script %s: %w", options.InitScript, err)
		}
	}

	return i, nil
}

// Symtab exposes the interpreter's interner, for Extensions that need to
// intern their own symbol names.
func (i *Interpreter) Symtab() *SymbolTable { return i.symtab }

// GlobalEnv exposes the top-level frame to extensions and embedders.
func (i *Interpreter) GlobalEnv() *Env { return i.global }

// tracef writes a trace line to stderr when Options.Trace was set.
func (i *Interpreter) tracef(format string, args ...interface{}) {
	if !i.trace {
		return
	}
	fmt.Fprintf(i.stderr, "trace: "+format+"\n", args...)
}

// recoverEval converts an unexpected Go panic into an EvalError. The
// reader/expander/evaluator in this package report failures as ordinary
// errors; this is a last-resort net, not the primary error path.
func recoverEval(err *error) {
	if r := recover(); r != nil {
		*err = &EvalError{
			Kind:    TypeError,
			Message: fmt.Sprintf("internal error: %v", r),
			Err:     fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
		}
	}
}

// readExpandEvalOne reads one top-level form from rd, expands it at
// top-level, and evaluates it in env. Each top-level form is expanded and
// evaluated independently: macro installation and definitions from one
// form are visible when expanding the next.
func (i *Interpreter) readExpandEvalOne(rd *Reader, env *Env) (v Value, isEOF bool, err error) {
	defer recoverEval(&err)

	form, err := rd.Read()
	if err != nil {
		return Value{}, false, err
	}
	if form.Kind == KindSym && form.Sym == i.reserved.EOFObject {
		return Value{}, true, nil
	}
	i.tracef("read: %s", Print(form))

	expanded, err := i.expand.Expand(form, env, true)
	if err != nil {
		return Value{}, false, err
	}
	i.tracef("expanded: %s", Print(expanded))

	v, err = i.eval.Eval(expanded, env)
	return v, false, err
}

// EvalReader reads, expands, and evaluates every top-level form from r in
// the global environment, returning the last value computed. On error it
// stops and returns the error.
func (i *Interpreter) EvalReader(r io.Reader) (Value, error) {
	rd := NewReader(r, i.symtab, i.reserved)
	var last Value
	for {
		v, isEOF, err := i.readExpandEvalOne(rd, i.global)
		if err != nil {
			return last, err
		}
		if isEOF {
			return last, nil
		}
		last = v
	}
}

// EvalString is a convenience wrapper around EvalReader for in-memory source.
func (i *Interpreter) EvalString(src string) (Value, error) {
	return i.EvalReader(strings.NewReader(src))
}

// EvalPath reads the file at path and evaluates it, returning the final
// value.
func (i *Interpreter) EvalPath(path string) (Value, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Value{}, err
	}
	return i.EvalString(string(b))
}

const replPrompt = "Schemy> "

// REPL performs a read-eval-print loop on in, printing a prompt before
// each read and each result to out. Per-expression errors are caught and
// printed, and the loop continues until EOF.
func (i *Interpreter) REPL(in io.Reader, out io.Writer) {
	rd := NewReader(in, i.symtab, i.reserved)
	for {
		fmt.Fprint(out, replPrompt)
		v, isEOF, err := i.readExpandEvalOne(rd, i.global)
		if isEOF {
			return
		}
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if v.Kind != KindNone {
			fmt.Fprintln(out, Print(v))
		}
	}
}
