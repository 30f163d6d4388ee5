package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthyOnlyFalseIsFalse(t *testing.T) {
	assert.False(t, Bool(false).Truthy())
	assert.True(t, Bool(true).Truthy())
	assert.True(t, Int(0).Truthy())
	assert.True(t, Str("").Truthy())
	assert.True(t, EmptyList().Truthy())
	assert.True(t, None.Truthy())
}

func TestEqIdentityVsEqualStructural(t *testing.T) {
	a := List(Int(1), Int(2))
	b := List(Int(1), Int(2))

	assert.False(t, Eq(a, b), "distinct list values are not eq?")
	assert.True(t, Equal(a, b), "but they are equal? by structure")
	assert.True(t, Eq(a, a), "a value is eq? to itself")
}

func TestSymbolIdentityIsInterned(t *testing.T) {
	symtab := NewSymbolTable()
	a := symtab.Intern("foo")
	b := symtab.Intern("foo")
	require.Same(t, a, b)
	assert.True(t, Eq(SymVal(a), SymVal(b)))
}

func TestNumEqualToleratesFloatIntMix(t *testing.T) {
	assert.True(t, NumEqual(Int(2), Float(2.0)))
	assert.False(t, NumEqual(Int(2), Float(2.1)))
}

func TestPrintAtomsAndLists(t *testing.T) {
	assert.Equal(t, "42", Print(Int(42)))
	assert.Equal(t, "#t", Print(Bool(true)))
	assert.Equal(t, "#f", Print(Bool(false)))
	assert.Equal(t, "()", Print(EmptyList()))
	assert.Equal(t, "(1 2 3)", Print(List(Int(1), Int(2), Int(3))))
}
