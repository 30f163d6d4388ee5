package interp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReader(src string) (*Reader, *SymbolTable, *Reserved) {
	symtab := NewSymbolTable()
	reserved := newReserved(symtab)
	return NewReader(strings.NewReader(src), symtab, reserved), symtab, reserved
}

func TestReadAtoms(t *testing.T) {
	rd, symtab, _ := newTestReader(`42 3.5 #t #f "hi" foo`)

	v, err := rd.Read()
	require.NoError(t, err)
	assert.Equal(t, Int(42), v)

	v, err = rd.Read()
	require.NoError(t, err)
	assert.Equal(t, Float(3.5), v)

	v, err = rd.Read()
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)

	v, err = rd.Read()
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)

	v, err = rd.Read()
	require.NoError(t, err)
	assert.Equal(t, Str("hi"), v)

	v, err = rd.Read()
	require.NoError(t, err)
	require.Equal(t, KindSym, v.Kind)
	assert.Same(t, symtab.Intern("foo"), v.Sym)
}

func TestReadList(t *testing.T) {
	rd, _, _ := newTestReader(`(+ 1 (* 2 3))`)
	v, err := rd.Read()
	require.NoError(t, err)
	require.Equal(t, KindList, v.Kind)
	require.Len(t, v.List, 3)
	assert.Equal(t, KindSym, v.List[0].Kind)
	assert.Equal(t, Int(1), v.List[1])
	require.Equal(t, KindList, v.List[2].Kind)
	assert.Equal(t, Int(2), v.List[2].List[1])
}

func TestReadQuoteLikeForms(t *testing.T) {
	rd, _, reserved := newTestReader("'x `(a ,b ,@c)")

	v, err := rd.Read()
	require.NoError(t, err)
	require.Equal(t, KindList, v.Kind)
	assert.Same(t, reserved.Quote, v.List[0].Sym)

	v, err = rd.Read()
	require.NoError(t, err)
	require.Equal(t, KindList, v.Kind)
	assert.Same(t, reserved.Quasiquote, v.List[0].Sym)
	inner := v.List[1]
	require.Len(t, inner.List, 3)
	assert.Same(t, reserved.Unquote, inner.List[1].List[0].Sym)
	assert.Same(t, reserved.UnquoteSplicing, inner.List[2].List[0].Sym)
}

func TestReadEOFYieldsSentinelSymbol(t *testing.T) {
	rd, _, reserved := newTestReader("  ")
	v, err := rd.Read()
	require.NoError(t, err)
	require.Equal(t, KindSym, v.Kind)
	assert.Same(t, reserved.EOFObject, v.Sym)
}

func TestUnterminatedStringIsSyntaxError(t *testing.T) {
	rd, _, _ := newTestReader(`"unterminated`)
	_, err := rd.Read()
	require.Error(t, err)
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, SyntaxError, ee.Kind)
}

func TestUnexpectedCloseParenIsSyntaxError(t *testing.T) {
	rd, _, _ := newTestReader(`)`)
	_, err := rd.Read()
	require.Error(t, err)
}
