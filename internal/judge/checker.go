package judge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/evaluator"
	"github.com/abhisek/codearena/internal/source"
)

// Fixed verdict messages.
const (
	MsgPassed     = "Great job! Your solution works correctly."
	MsgUnverified = "Nice work! Your code runs without errors."
	MsgBooleans   = "Boolean values are spelled True and False, with a capital letter."
)

// Strategy selects how the submitted entry point is found.
type Strategy int

const (
	// StrategyNameThenArity looks the function up by name and otherwise
	// takes the first function, in definition order, with the reference
	// function's arity.
	StrategyNameThenArity Strategy = iota

	// StrategyName only accepts a function with the reference name.
	//
	// Deprecated: kept for replaying old results; use StrategyNameThenArity.
	StrategyName
)

// ResolveEntryPoint finds the submitted function to judge.
func ResolveEntryPoint(ns evaluator.Namespace, name string, arity int, strategy Strategy) (evaluator.Callable, bool) {
	if fn, ok := ns.Callable(name); ok {
		return fn, true
	}
	if strategy == StrategyName || arity < 0 {
		return nil, false
	}
	for _, fn := range ns.Callables() {
		if fn.Arity() == arity {
			return fn, true
		}
	}
	return nil, false
}

// Checker judges submissions against a reference solution by running both
// on the argument lists of a known exercise.
//
// Both programs run in-process with full privileges. The checker must not
// be exposed to code submitted across a trust boundary.
type Checker struct {
	ev       evaluator.Evaluator
	reg      *Registry
	key      string
	facts    source.FunctionFacts
	ref      string
	strategy Strategy
	logger   *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithStrategy overrides the entry point strategy.
func WithStrategy(s Strategy) Option {
	return func(c *Checker) { c.strategy = s }
}

// WithLogger sets the logger used for verdict tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// MakeChecker builds a checker for the exercise key whose reference source
// is refSrc and whose entry point is described by facts.
func MakeChecker(ev evaluator.Evaluator, reg *Registry, key string, facts source.FunctionFacts, refSrc string, opts ...Option) *Checker {
	c := &Checker{
		ev:     ev,
		reg:    reg,
		key:    key,
		facts:  facts,
		ref:    refSrc,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ challenge.Checker = (*Checker)(nil)

// Check runs the reference and the submission from scratch and compares
// them. Nothing is cached between calls.
func (c *Checker) Check(ctx context.Context, submission string) (challenge.Result, error) {
	name := c.facts.Name

	refNS, err := c.ev.Execute(ctx, c.ref, name)
	if err != nil {
		return fail("Could not load reference solution: %v", err), nil
	}
	refFn, ok := refNS.Callable(name)
	if !ok {
		return fail("Could not find reference function %s", name), nil
	}
	arity := refFn.Arity()
	if arity < 0 {
		arity = c.facts.Arity()
	}

	userNS, err := c.ev.Execute(ctx, submission, name)
	if err != nil {
		return fail("Error in your code: %s", explain(err)), nil
	}
	candidate, ok := ResolveEntryPoint(userNS, name, arity, c.strategy)
	if !ok {
		return challenge.Result{Message: c.missingMessage(name, arity)}, nil
	}

	ex, ok := c.reg.Lookup(c.key, name)
	if !ok {
		c.logger.Debug("no known exercise, skipping verification", "key", c.key, "function", name)
		return challenge.Result{Passed: true, Message: MsgUnverified, Unverified: true}, nil
	}

	for _, lit := range ex.Args {
		res, done, err := c.runCase(ctx, refFn, candidate, lit)
		if err != nil {
			return challenge.Result{}, err
		}
		if done {
			c.logger.Debug("submission failed", "key", c.key, "args", lit)
			return res, nil
		}
	}
	c.logger.Debug("submission passed", "key", c.key, "candidate", candidate.Name(), "cases", len(ex.Args))
	return challenge.Result{Passed: true, Message: MsgPassed}, nil
}

// runCase calls both functions with a freshly parsed copy of lit. done is
// true when the case failed and judging must stop.
func (c *Checker) runCase(ctx context.Context, ref, candidate evaluator.Callable, lit string) (challenge.Result, bool, error) {
	refArgs, err := c.ev.Args(ctx, lit)
	if err != nil {
		return challenge.Result{}, true, fmt.Errorf("exercise %s: bad args %q: %w", c.key, lit, err)
	}
	expected, err := ref.Call(ctx, refArgs)
	if err != nil {
		return fail("Error running test with (%s): reference solution failed: %v", lit, err), true, nil
	}

	userArgs, err := c.ev.Args(ctx, lit)
	if err != nil {
		return challenge.Result{}, true, fmt.Errorf("exercise %s: bad args %q: %w", c.key, lit, err)
	}
	actual, err := candidate.Call(ctx, userArgs)
	if err != nil {
		return fail("Error running test with (%s): %s", lit, explain(err)), true, nil
	}

	eq, err := c.ev.Equal(expected, actual)
	if err != nil || !eq {
		return fail("Test failed with input (%s). Expected %s, got %s", lit, expected.String(), actual.String()), true, nil
	}
	return challenge.Result{}, false, nil
}

func (c *Checker) missingMessage(name string, arity int) string {
	if c.strategy == StrategyName || arity < 0 {
		return fmt.Sprintf("Your code must define a function named '%s'", name)
	}
	return fmt.Sprintf("Your code must define a function named '%s' (or any function taking %d %s)",
		name, arity, plural(arity, "argument", "arguments"))
}

func fail(format string, args ...any) challenge.Result {
	return challenge.Result{Message: fmt.Sprintf(format, args...)}
}

// explain turns an evaluation error into a player-facing description.
func explain(err error) string {
	msg := err.Error()
	var execErr *evaluator.ExecError
	if errors.As(err, &execErr) {
		msg = execErr.Msg
		if execErr.Kind == evaluator.KindTimeout {
			return msg + ". Check your loops for a missing exit condition."
		}
	}
	if IsBooleanSpelling(msg) {
		return MsgBooleans + " (" + msg + ")"
	}
	return msg
}

// IsBooleanSpelling reports whether msg looks like a lowercase true/false
// was used as a name.
func IsBooleanSpelling(msg string) bool {
	return strings.Contains(msg, "undefined: true") || strings.Contains(msg, "undefined: false")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
