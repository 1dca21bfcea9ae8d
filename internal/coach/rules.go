package coach

import (
	"strings"

	"github.com/abhisek/codearena/internal/evaluator"
	"github.com/abhisek/codearena/internal/judge"
)

// Kind classifies why a submission failed.
type Kind string

const (
	KindBooleanSpelling Kind = "boolean-spelling"
	KindTimeout         Kind = "timeout"
	KindMissingFunction Kind = "missing-function"
	KindLoadError       Kind = "load-error"
	KindRecursion       Kind = "recursion"
	KindCrash           Kind = "crash"
	KindWrongAnswer     Kind = "wrong-answer"
	KindUnclassified    Kind = "unclassified"
)

// Input is a failed submission and the verdict it got.
type Input struct {
	ChallengeID string
	Title       string
	Description string
	Submission  string
	Message     string
	Attempts    int
}

// Rule recognises one kind of failure from the verdict message.
type Rule interface {
	Name() string
	Match(in *Input) (Kind, bool)
}

type containsRule struct {
	name   string
	kind   Kind
	needle string
	prefix bool
}

func (r containsRule) Name() string { return r.name }

func (r containsRule) Match(in *Input) (Kind, bool) {
	if r.prefix {
		return r.kind, strings.HasPrefix(in.Message, r.needle)
	}
	return r.kind, strings.Contains(in.Message, r.needle)
}

// DefaultRules returns the rules in priority order. Booleans and timeouts
// come first because their text is embedded in the more general messages.
func DefaultRules() []Rule {
	return []Rule{
		containsRule{name: "booleans", kind: KindBooleanSpelling, needle: judge.MsgBooleans},
		containsRule{name: "timeout", kind: KindTimeout, needle: "missing exit condition"},
		containsRule{name: "missing-function", kind: KindMissingFunction, needle: "Your code must define", prefix: true},
		containsRule{name: "load-error", kind: KindLoadError, needle: "Error in your code:", prefix: true},
		containsRule{name: "recursion", kind: KindRecursion, needle: evaluator.MsgRecursionDepth},
		containsRule{name: "crash", kind: KindCrash, needle: "Error running test with", prefix: true},
		containsRule{name: "wrong-answer", kind: KindWrongAnswer, needle: "Test failed with input", prefix: true},
	}
}

// RunRules returns the first matching kind and the rule that matched, or
// KindUnclassified and "none".
func RunRules(rules []Rule, in *Input) (Kind, string) {
	for _, r := range rules {
		if k, ok := r.Match(in); ok {
			return k, r.Name()
		}
	}
	return KindUnclassified, "none"
}

var advice = map[Kind][2]string{
	KindBooleanSpelling: {
		"Starlark spells its booleans True and False.",
		"Replace every lowercase true or false in your code.",
	},
	KindTimeout: {
		"Your code ran for too long, usually a loop that never ends.",
		"Check that every while loop changes the value its condition tests.",
	},
	KindMissingFunction: {
		"The checker could not find your function.",
		"Keep the function name and the number of parameters from the starting code.",
	},
	KindLoadError: {
		"Your code failed before any test ran.",
		"Read the line and column in the message and fix that spot first.",
	},
	KindRecursion: {
		"Your function kept calling itself and never reached a base case.",
		"Make sure every recursive call moves the argument closer to the case that returns directly.",
	},
	KindCrash: {
		"Your function raised an error on one of the test inputs.",
		"Try that input by hand and watch for empty lists, missing keys and index bounds.",
	},
	KindWrongAnswer: {
		"Your function runs but returns a different answer for one input.",
		"Trace the failing input step by step and compare each value with what you expect.",
	},
	KindUnclassified: {
		"The check did not pass yet.",
		"Re-read the description and compare your output with the example.",
	},
}
