package evaluator

import (
	"context"
	"fmt"
)

// Value is an opaque result produced by an Evaluator. Values from one
// evaluator must only be compared through that same evaluator's Equal.
type Value interface {
	String() string
}

// Evaluator executes source text and exposes the resulting top-level
// bindings. Every Execute call yields a fresh, disposable namespace.
//
// Implementations run code with the full privileges of the calling process.
// Never feed an Evaluator code that crossed a trust boundary.
type Evaluator interface {
	// Execute runs src in a new namespace. hint names the expected entry
	// point and is used only to label diagnostics.
	Execute(ctx context.Context, src, hint string) (Namespace, error)

	// Args parses a literal argument list such as `[2, 7], 9` into values.
	// Each call returns freshly built values.
	Args(ctx context.Context, literal string) ([]Value, error)

	// Equal reports deep structural equality of two values.
	Equal(a, b Value) (bool, error)
}

// Namespace is the set of global bindings left behind by an execution.
type Namespace interface {
	Callable(name string) (Callable, bool)
	// Callables returns every callable global in definition order.
	Callables() []Callable
	Global(name string) (Value, bool)
	// Output is everything the executed code printed.
	Output() string
}

// Callable is a function bound in a Namespace.
type Callable interface {
	Name() string
	// Arity is the number of positional parameters, or -1 if unknown.
	Arity() int
	Call(ctx context.Context, args []Value) (Value, error)
}

// Kind classifies an ExecError.
type Kind int

const (
	KindSyntax Kind = iota + 1
	KindRuntime
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindRuntime:
		return "runtime"
	case KindTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ExecError is returned by Execute and Call when the evaluated code fails.
type ExecError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *ExecError) Error() string { return e.Msg }

func (e *ExecError) Unwrap() error { return e.Err }

// TypeName returns the dynamic type of v, such as "int" or "list", when the
// evaluator exposes it.
func TypeName(v Value) string {
	if t, ok := v.(interface{ Type() string }); ok {
		return t.Type()
	}
	return ""
}

// Len returns the length of a sized value such as a list or string.
func Len(v Value) (int, bool) {
	if s, ok := v.(interface{ Len() int }); ok {
		return s.Len(), true
	}
	return 0, false
}
