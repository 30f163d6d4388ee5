package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	var stdout, stderr bytes.Buffer
	i, err := New(Options{Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)
	return i
}

func TestNewLoadsBundledPreludeLet(t *testing.T) {
	i := newTestInterpreter(t)
	v, err := i.EvalString(`(let ((a 1) (b 2)) (+ a b))`)
	require.NoError(t, err)
	assert.Equal(t, Int(3), v)
}

func TestPreludeCondAndShortCircuit(t *testing.T) {
	i := newTestInterpreter(t)
	v, err := i.EvalString(`
		(cond (#f 'no)
		      ((and #t #t) 'yes)
		      (else 'fallback))
	`)
	require.NoError(t, err)
	require.Equal(t, KindSym, v.Kind)
	assert.Equal(t, "yes", v.Sym.Name)

	v, err = i.EvalString(`(or #f #f 3)`)
	require.NoError(t, err)
	assert.Equal(t, Int(3), v)
}

func TestPreludeWhenUnlessAndFilter(t *testing.T) {
	i := newTestInterpreter(t)
	v, err := i.EvalString(`(when (> 2 1) 'ok)`)
	require.NoError(t, err)
	assert.Equal(t, "ok", v.Sym.Name)

	v, err = i.EvalString(`(unless (> 2 1) 'nope)`)
	require.NoError(t, err)
	assert.Equal(t, KindNone, v.Kind)

	v, err = i.EvalString(`
		(define (even-num? n) (= (% n 2) 0))
		(filter even-num? (list 1 2 3 4 5 6))
	`)
	require.NoError(t, err)
	assert.Equal(t, []Value{Int(2), Int(4), Int(6)}, v.List)
}

func TestPreludeFoldAndForEach(t *testing.T) {
	i := newTestInterpreter(t)
	v, err := i.EvalString(`(fold-left + 0 (list 1 2 3 4))`)
	require.NoError(t, err)
	assert.Equal(t, Int(10), v)

	v, err = i.EvalString(`
		(define total 0)
		(for-each (lambda (x) (set! total (+ total x))) (list 1 2 3))
		total
	`)
	require.NoError(t, err)
	assert.Equal(t, Int(6), v)
}

func TestEvalReaderStopsAtFirstError(t *testing.T) {
	i := newTestInterpreter(t)
	_, err := i.EvalReader(strings.NewReader(`(+ 1 2) (this-is-unbound) (+ 1 1)`))
	require.Error(t, err)
}

func TestExtensionsLayerOntoGlobalEnv(t *testing.T) {
	var stdout bytes.Buffer
	ext := func(i *Interpreter, env *Env) {
		env.Put(i.Symtab().Intern("answer"), Int(42))
	}
	i, err := New(Options{Stdout: &stdout, Extensions: []Extension{ext}})
	require.NoError(t, err)

	v, err := i.EvalString("answer")
	require.NoError(t, err)
	assert.Equal(t, Int(42), v)
}

func TestDisplayWritesToConfiguredStdout(t *testing.T) {
	var stdout bytes.Buffer
	i, err := New(Options{Stdout: &stdout})
	require.NoError(t, err)

	_, err = i.EvalString(`(display "hello") (newline)`)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
}

func TestREPLPrintsResultsAndRecoversFromErrors(t *testing.T) {
	i := newTestInterpreter(t)
	var out bytes.Buffer
	i.REPL(strings.NewReader("(+ 1 2)\n(undefined-thing)\n(+ 3 4)\n"), &out)

	output := out.String()
	assert.Contains(t, output, "3")
	assert.Contains(t, output, "7")
	assert.Contains(t, output, "unbound symbol")
}
