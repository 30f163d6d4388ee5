package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvGetWalksOuterChain(t *testing.T) {
	symtab := NewSymbolTable()
	x := symtab.Intern("x")

	outer := NewEnv()
	outer.Put(x, Int(1))
	inner := NewChildEnv(outer)

	v, ok := inner.Get(x)
	require.True(t, ok)
	assert.Equal(t, Int(1), v)
}

func TestEnvPutShadowsOuterBinding(t *testing.T) {
	symtab := NewSymbolTable()
	x := symtab.Intern("x")

	outer := NewEnv()
	outer.Put(x, Int(1))
	inner := NewChildEnv(outer)
	inner.Put(x, Int(2))

	v, ok := inner.Get(x)
	require.True(t, ok)
	assert.Equal(t, Int(2), v)

	v, ok = outer.Get(x)
	require.True(t, ok)
	assert.Equal(t, Int(1), v)
}

func TestEnvFindContainingLocatesDefiningFrame(t *testing.T) {
	symtab := NewSymbolTable()
	x := symtab.Intern("x")

	outer := NewEnv()
	outer.Put(x, Int(1))
	inner := NewChildEnv(outer)

	assert.Same(t, outer, inner.FindContaining(x))
	assert.Nil(t, inner.FindContaining(symtab.Intern("y")))
}

func TestFromParamsAndArgsFixedArity(t *testing.T) {
	symtab := NewSymbolTable()
	a, b := symtab.Intern("a"), symtab.Intern("b")
	params := ParamForm{Kind: ParamFixed, Fixed: []*Sym{a, b}}

	env, err := FromParamsAndArgs(params, []Value{Int(1), Int(2)}, nil)
	require.NoError(t, err)
	v, _ := env.Get(a)
	assert.Equal(t, Int(1), v)
	v, _ = env.Get(b)
	assert.Equal(t, Int(2), v)

	_, err = FromParamsAndArgs(params, []Value{Int(1)}, nil)
	require.Error(t, err)
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ArityError, ee.Kind)
}

func TestFromParamsAndArgsRestBinding(t *testing.T) {
	symtab := NewSymbolTable()
	rest := symtab.Intern("args")
	params := ParamForm{Kind: ParamRest, Rest: rest}

	env, err := FromParamsAndArgs(params, []Value{Int(1), Int(2), Int(3)}, nil)
	require.NoError(t, err)
	v, _ := env.Get(rest)
	assert.Equal(t, []Value{Int(1), Int(2), Int(3)}, v.List)
}
