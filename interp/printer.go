package interp

import (
	"strconv"
	"strings"
)

// Print renders v as source text: #t/#f for booleans, the bare name for
// symbols, a double-quoted string with no re-escaping, (e1 e2 ...) for
// lists, decimal literals for numbers, #<NativeProcedure:NAME> for
// natives, (lambda p body) for closures, and the empty string for None.
func Print(v Value) string {
	var b strings.Builder
	print1(&b, v)
	return b.String()
}

func print1(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case KindInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindFloat:
		b.WriteString(formatFloat(v.Float))
	case KindStr:
		b.WriteByte('"')
		b.WriteString(v.Str)
		b.WriteByte('"')
	case KindSym:
		b.WriteString(v.Sym.Name)
	case KindList:
		b.WriteByte('(')
		for i, e := range v.List {
			if i > 0 {
				b.WriteByte(' ')
			}
			print1(b, e)
		}
		b.WriteByte(')')
	case KindClosure:
		b.WriteString("(lambda ")
		printParamForm(b, v.Closure.Params)
		b.WriteByte(' ')
		print1(b, v.Closure.Body)
		b.WriteByte(')')
	case KindNative:
		b.WriteString("#<NativeProcedure:")
		b.WriteString(v.Native.Name)
		b.WriteByte('>')
	case KindNone:
		// empty string
	}
}

func printParamForm(b *strings.Builder, p ParamForm) {
	switch p.Kind {
	case ParamRest:
		b.WriteString(p.Rest.Name)
	case ParamFixed:
		b.WriteByte('(')
		for i, s := range p.Fixed {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(s.Name)
		}
		b.WriteByte(')')
	}
}

// formatFloat prints a float with a decimal point so it round-trips as a
// Float, not an Int, when read back.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += "."
	}
	return s
}

// PrintSymbol renders a symbol preceded by a quote mark, the printed
// representation for a Symbol identity shown standalone (distinct from
// the bare name used inside list/source printing above).
func PrintSymbol(s *Sym) string {
	return "'" + s.Name
}
