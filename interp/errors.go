package interp

import "fmt"

// ErrKind classifies an EvalError by Scheme-level semantics, not by Go
// error type.
type ErrKind uint8

const (
	SyntaxError ErrKind = iota
	UnboundSymbol
	TypeError
	ArityError
	AssertionError
)

func (k ErrKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case UnboundSymbol:
		return "unbound symbol"
	case TypeError:
		return "type error"
	case ArityError:
		return "arity error"
	case AssertionError:
		return "assertion failed"
	default:
		return "error"
	}
}

// EvalError is the single error envelope produced by the reader, expander,
// and evaluator. EvalString/EvalPath catch and return it, terminating the
// stream; REPL catches per-expression, prints it, and continues.
type EvalError struct {
	Kind    ErrKind
	Message string
	// Expr, when non-empty, is the printed form of the offending
	// expression, included where practical.
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("%s: %s in %s", e.Kind, e.Message, e.Expr)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *EvalError) Unwrap() error { return e.Err }

func syntaxErrorf(format string, args ...interface{}) error {
	return &EvalError{Kind: SyntaxError, Message: fmt.Sprintf(format, args...)}
}

func unboundSymbolErrorf(format string, args ...interface{}) error {
	return &EvalError{Kind: UnboundSymbol, Message: fmt.Sprintf(format, args...)}
}

func arityErrorf(format string, args ...interface{}) error {
	return &EvalError{Kind: ArityError, Message: fmt.Sprintf(format, args...)}
}

func assertionErrorf(format string, args ...interface{}) error {
	return &EvalError{Kind: AssertionError, Message: fmt.Sprintf(format, args...)}
}

// withExpr annotates err (if it is an *EvalError) with the printed form of
// expr, so the error message includes the offending expression where
// practical.
func withExpr(err error, expr Value) error {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*EvalError); ok && ee.Expr == "" {
		ee.Expr = Print(expr)
	}
	return err
}
