package interp

import (
	"fmt"
	"math"
)

// Kind tags the payload carried by a Value.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindStr
	KindSym
	KindList
	KindClosure
	KindNative
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindStr:
		return "string"
	case KindSym:
		return "symbol"
	case KindList:
		return "list"
	case KindClosure:
		return "closure"
	case KindNative:
		return "native"
	case KindNone:
		return "none"
	default:
		return "unknown"
	}
}

// Closure is a user-defined procedure: a parameter form, a canonicalized
// body expression, and the environment captured at creation time.
type Closure struct {
	Params ParamForm
	Body   Value
	Env    *Env
	Name   string // display name, best-effort, set by (define (f ...) ...)
}

// NativeFn is a host-native callable invoked with already-evaluated arguments.
type NativeFn func(args []Value) (Value, error)

// Native wraps a host callable with an optional display name.
type Native struct {
	Name string
	Fn   NativeFn
}

// ParamKind distinguishes a rest-binding single symbol from a fixed list of symbols.
type ParamKind uint8

const (
	ParamRest ParamKind = iota
	ParamFixed
)

// ParamForm is the sum type behind a lambda's parameter list: either one
// Symbol that collects all arguments, or an ordered list of Symbols
// requiring exact arity. There is no mixed fixed-plus-rest form.
type ParamForm struct {
	Kind  ParamKind
	Rest  *Sym
	Fixed []*Sym
}

// Value is a tagged union over the core Schemy value model. Only the field
// matching Kind is meaningful.
type Value struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Float   float64
	Str     string
	Sym     *Sym
	List    []Value
	Closure *Closure
	Native  *Native
}

// Constructors.

func Bool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func Int(i int64) Value     { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func Str(s string) Value    { return Value{Kind: KindStr, Str: s} }
func SymVal(s *Sym) Value   { return Value{Kind: KindSym, Sym: s} }
func List(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{Kind: KindList, List: vs}
}
func ListFromSlice(vs []Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{Kind: KindList, List: vs}
}
func ClosureVal(c *Closure) Value { return Value{Kind: KindClosure, Closure: c} }
func NativeVal(n *Native) Value   { return Value{Kind: KindNative, Native: n} }

// None is the unit value returned by define, set!, and empty begin.
var None = Value{Kind: KindNone}

// EmptyList is the empty Scheme list, distinct from None.
func EmptyList() Value { return List() }

// Truthy reports whether v counts as true in a boolean context: only #f is
// false; everything else, including the empty list, 0, None and "" is true.
func (v Value) Truthy() bool {
	return !(v.Kind == KindBool && !v.Bool)
}

func (v Value) IsNil() bool {
	return v.Kind == KindList && len(v.List) == 0
}

func (v Value) IsNumber() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// AsFloat coerces an Int or Float value to float64; callers must check IsNumber first.
func (v Value) AsFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// Eq implements eq?: identity for reference-like values (symbols by
// identity, closures/natives by pointer), structural equality on atoms.
func Eq(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBool:
		return a.Bool == b.Bool
	case KindInt:
		return a.Int == b.Int
	case KindFloat:
		return a.Float == b.Float
	case KindStr:
		return a.Str == b.Str
	case KindSym:
		return a.Sym == b.Sym
	case KindList:
		if len(a.List) == 0 && len(b.List) == 0 {
			return true
		}
		return len(a.List) == len(b.List) && sameBacking(a.List, b.List)
	case KindClosure:
		return a.Closure == b.Closure
	case KindNative:
		return a.Native == b.Native
	case KindNone:
		return true
	default:
		return false
	}
}

func sameBacking(a, b []Value) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return &a[0] == &b[0]
}

// Equal implements equal?: deep structural equality.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !Equal(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case KindClosure, KindNative:
		return Eq(a, b)
	default:
		return Eq(a, b)
	}
}

// numericTolerance is the absolute tolerance for numeric `=`; deliberately
// not exact equality, since Float results routinely differ from an Int
// literal's exact value by less than this.
const numericTolerance = 1e-13

// NumEqual implements the `=` comparison: both operands coerced to Float
// and compared with the inherited absolute tolerance.
func NumEqual(a, b Value) bool {
	return math.Abs(a.AsFloat()-b.AsFloat()) <= numericTolerance
}

func (v Value) String() string { return Print(v) }

func typeErrorf(format string, args ...interface{}) error {
	return &EvalError{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}
