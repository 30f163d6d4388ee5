// Command schemy is the CLI host for the Schemy interpreter: given a file
// argument it evaluates the file and prints the final value; given no
// arguments it starts an interactive read-eval-print loop.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/schemy-lang/schemy/interp"
)

func main() {
	trace := flag.Bool("trace", false, "print read/expand trace to stderr")
	noInit := flag.Bool("no-init", false, "skip loading ./.init.ss at startup")
	flag.Parse()

	i, err := interp.New(interp.Options{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Trace:  *trace,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "schemy: failed to initialize interpreter:", err)
		os.Exit(1)
	}

	if !*noInit {
		loadDotInit(i)
	}

	if args := flag.Args(); len(args) > 0 {
		v, err := i.EvalPath(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if v.Kind != interp.KindNone {
			fmt.Println(interp.Print(v))
		}
		return
	}

	runREPL(i)
}

// loadDotInit loads ./.init.ss, if present, before the file argument or the
// REPL runs —
// distinct from the bundled prelude New always loads, and from
// Options.InitScript, which an embedder supplies explicitly; this one is
// the CLI's own cwd-relative convenience.
func loadDotInit(i *interp.Interpreter) {
	const name = ".init.ss"
	if _, err := os.Stat(name); err != nil {
		return
	}
	if _, err := i.EvalPath(name); err != nil {
		fmt.Fprintf(os.Stderr, "schemy: error loading %s: %v\n", name, err)
		return
	}
	abs, _ := filepath.Abs(name)
	fmt.Fprintf(os.Stderr, "schemy: loaded %s\n", abs)
}

// runREPL drives an interactive session. When stdin is a terminal it uses
// readline for history and line editing; otherwise (piped input, tests) it
// falls back to the interpreter's own plain io.Reader-based REPL.
func runREPL(i *interp.Interpreter) {
	const prompt = "Schemy> "

	if !isTerminal(os.Stdin) {
		i.REPL(os.Stdin, os.Stdout)
		return
	}

	rl, err := readline.New(prompt)
	if err != nil {
		i.REPL(os.Stdin, os.Stdout)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return
		}
		v, evalErr := i.EvalString(line)
		if evalErr != nil {
			fmt.Println(evalErr)
			continue
		}
		if v.Kind != interp.KindNone {
			fmt.Println(interp.Print(v))
		}
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
