package evaluator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// DefaultTimeout bounds a single Execute or Call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// DefaultMaxDepth matches Python's default recursion limit.
const DefaultMaxDepth = 1000

// depthCheckInterval is how many interpreter steps run between call-depth
// checks. Every call takes at least one step, so a runaway recursion
// overshoots the limit by at most this many frames.
const depthCheckInterval = 64

// MsgRecursionDepth starts the message of an ExecError raised when the
// call depth limit is hit.
const MsgRecursionDepth = "maximum recursion depth exceeded"

const reasonSteps = "too many steps"

// SyntaxOptions returns the Starlark dialect used for reference files and
// submissions. It is close enough to Python for small exercises: while
// loops, top-level control flow, recursion and global reassignment are on.
func SyntaxOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}
}

// Starlark evaluates source text with go.starlark.net.
type Starlark struct {
	// Timeout caps the wall-clock time of each Execute or Call. Zero disables it.
	Timeout time.Duration
	// MaxSteps caps the interpreter steps of each Execute or Call. Zero disables it.
	MaxSteps uint64
	// MaxDepth caps the Starlark call stack. Zero means DefaultMaxDepth;
	// the cap cannot be turned off since Starlark frames live on the Go stack.
	MaxDepth int
}

// NewStarlark creates a Starlark evaluator with the given limits.
func NewStarlark(timeout time.Duration, maxSteps uint64) *Starlark {
	return &Starlark{Timeout: timeout, MaxSteps: maxSteps}
}

var predeclared = starlark.StringDict{}

func (s *Starlark) Execute(ctx context.Context, src, hint string) (Namespace, error) {
	filename := hint
	if filename == "" {
		filename = "main"
	}
	filename += ".star"

	f, err := SyntaxOptions().Parse(filename, src, 0)
	if err != nil {
		return nil, &ExecError{Kind: KindSyntax, Msg: err.Error(), Err: err}
	}
	prog, err := starlark.FileProgram(f, predeclared.Has)
	if err != nil {
		return nil, &ExecError{Kind: KindSyntax, Msg: err.Error(), Err: err}
	}

	ns := &starlarkNamespace{ev: s, filename: filename, order: definitionOrder(f)}
	thread := ns.newThread()

	var globals starlark.StringDict
	err = s.run(ctx, thread, func() error {
		var err error
		globals, err = prog.Init(thread, predeclared)
		return err
	})
	if err != nil {
		return nil, err
	}
	ns.globals = globals
	return ns, nil
}

func (s *Starlark) Args(ctx context.Context, literal string) ([]Value, error) {
	if strings.TrimSpace(literal) == "" {
		return nil, nil
	}
	thread := &starlark.Thread{Name: "args"}
	var v starlark.Value
	err := s.run(ctx, thread, func() error {
		var err error
		v, err = starlark.EvalOptions(SyntaxOptions(), thread, "args", "("+literal+",)", nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	tuple, ok := v.(starlark.Tuple)
	if !ok {
		return nil, fmt.Errorf("evaluator: argument literal %q is not a tuple", literal)
	}
	out := make([]Value, len(tuple))
	for i, elem := range tuple {
		out[i] = elem
	}
	return out, nil
}

func (s *Starlark) Equal(a, b Value) (bool, error) {
	x, ok := a.(starlark.Value)
	if !ok {
		return false, fmt.Errorf("evaluator: foreign value %T", a)
	}
	y, ok := b.(starlark.Value)
	if !ok {
		return false, fmt.Errorf("evaluator: foreign value %T", b)
	}
	return starlark.Equal(x, y)
}

// run executes fn on thread, cancelling the thread when ctx is done or the
// configured timeout elapses.
func (s *Starlark) run(ctx context.Context, thread *starlark.Thread, fn func() error) error {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	s.guard(thread)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	err := fn()
	if err == nil {
		return nil
	}
	return s.classify(ctx, err)
}

func (s *Starlark) maxDepth() int {
	if s.MaxDepth > 0 {
		return s.MaxDepth
	}
	return DefaultMaxDepth
}

// guard makes the interpreter stop every depthCheckInterval steps to check
// the call depth and the step budget.
func (s *Starlark) guard(thread *starlark.Thread) {
	limit := s.maxDepth()
	next := func(steps uint64) uint64 {
		n := steps + depthCheckInterval
		if s.MaxSteps > 0 && n > s.MaxSteps {
			n = s.MaxSteps
		}
		return n
	}
	thread.SetMaxExecutionSteps(next(thread.ExecutionSteps()))
	thread.OnMaxSteps = func(thread *starlark.Thread) {
		steps := thread.ExecutionSteps()
		switch {
		case thread.CallStackDepth() > limit:
			thread.Cancel(MsgRecursionDepth)
		case s.MaxSteps > 0 && steps >= s.MaxSteps:
			thread.Cancel(reasonSteps)
		default:
			thread.SetMaxExecutionSteps(next(steps))
		}
	}
}

func (s *Starlark) classify(ctx context.Context, err error) *ExecError {
	if ctxErr := ctx.Err(); ctxErr != nil {
		msg := "execution cancelled"
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			msg = "execution timed out"
			if s.Timeout > 0 {
				msg = fmt.Sprintf("execution timed out after %s", s.Timeout)
			}
		}
		return &ExecError{Kind: KindTimeout, Msg: msg, Err: err}
	}
	if strings.Contains(err.Error(), reasonSteps) {
		return &ExecError{Kind: KindTimeout, Msg: fmt.Sprintf("execution exceeded %d steps", s.MaxSteps), Err: err}
	}
	if strings.Contains(err.Error(), MsgRecursionDepth) {
		return &ExecError{Kind: KindRuntime, Msg: fmt.Sprintf("%s (%d calls)", MsgRecursionDepth, s.maxDepth()), Err: err}
	}

	var synErr syntax.Error
	var resolveErrs resolve.ErrorList
	if errors.As(err, &synErr) || errors.As(err, &resolveErrs) {
		return &ExecError{Kind: KindSyntax, Msg: err.Error(), Err: err}
	}

	msg := err.Error()
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		msg = evalErr.Msg
	}
	return &ExecError{Kind: KindRuntime, Msg: msg, Err: err}
}

// definitionOrder lists top-level def names in textual order.
func definitionOrder(f *syntax.File) []string {
	var names []string
	for _, stmt := range f.Stmts {
		if def, ok := stmt.(*syntax.DefStmt); ok {
			names = append(names, def.Name.Name)
		}
	}
	return names
}

type starlarkNamespace struct {
	ev       *Starlark
	filename string
	globals  starlark.StringDict
	order    []string
	out      strings.Builder
}

func (n *starlarkNamespace) newThread() *starlark.Thread {
	return &starlark.Thread{
		Name: n.filename,
		Print: func(_ *starlark.Thread, msg string) {
			n.out.WriteString(msg)
			n.out.WriteByte('\n')
		},
	}
}

func (n *starlarkNamespace) Callable(name string) (Callable, bool) {
	v, ok := n.globals[name]
	if !ok {
		return nil, false
	}
	fn, ok := v.(starlark.Callable)
	if !ok {
		return nil, false
	}
	return &starlarkCallable{ns: n, name: name, fn: fn}, true
}

func (n *starlarkNamespace) Callables() []Callable {
	seen := make(map[string]bool, len(n.globals))
	var out []Callable
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if c, ok := n.Callable(name); ok {
			out = append(out, c)
		}
	}
	for _, name := range n.order {
		add(name)
	}
	// Lambdas and aliases follow in name order.
	for _, name := range n.globals.Keys() {
		add(name)
	}
	return out
}

func (n *starlarkNamespace) Global(name string) (Value, bool) {
	v, ok := n.globals[name]
	if !ok {
		return nil, false
	}
	return v, true
}

func (n *starlarkNamespace) Output() string { return n.out.String() }

type starlarkCallable struct {
	ns   *starlarkNamespace
	name string
	fn   starlark.Callable
}

func (c *starlarkCallable) Name() string { return c.name }

func (c *starlarkCallable) Arity() int {
	fn, ok := c.fn.(*starlark.Function)
	if !ok {
		return -1
	}
	n := fn.NumParams() - fn.NumKwonlyParams()
	if fn.HasVarargs() {
		n--
	}
	if fn.HasKwargs() {
		n--
	}
	return n
}

func (c *starlarkCallable) Call(ctx context.Context, args []Value) (Value, error) {
	tuple := make(starlark.Tuple, 0, len(args))
	for _, a := range args {
		v, ok := a.(starlark.Value)
		if !ok {
			return nil, fmt.Errorf("evaluator: foreign value %T", a)
		}
		tuple = append(tuple, v)
	}

	thread := c.ns.newThread()
	var result starlark.Value
	err := c.ns.ev.run(ctx, thread, func() error {
		var err error
		result, err = starlark.Call(thread, c.fn, tuple, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
