// Package builtin holds the hand-written starter challenges.
package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/evaluator"
)

// Challenges returns fresh copies of the built-in challenges, judged with ev.
func Challenges(ev evaluator.Evaluator) []*challenge.Challenge {
	return []*challenge.Challenge{
		{
			ID:             "hello_world",
			Title:          "Hello, World!",
			Description:    "Write a program that prints 'Hello, World!' to the console.",
			Category:       challenge.CategoryBasics,
			Difficulty:     challenge.Easy,
			Hints:          []string{"Use the print() function", "Don't forget the quotes around the text"},
			ExpectedAnswer: `print("Hello, World!")`,
			Checker:        challenge.CheckerFunc(helloWorld(ev)),
		},
		{
			ID:             "variables_basic",
			Title:          "Working with Variables",
			Description:    "Create two variables: 'name' (a string with your name) and 'age' (a number).",
			Category:       challenge.CategoryBasics,
			Difficulty:     challenge.Easy,
			Hints:          []string{"Variables are created with = sign", "Strings need quotes, numbers don't"},
			ExpectedAnswer: "name = \"Your Name\"\nage = 25",
			Checker:        challenge.CheckerFunc(variables(ev)),
		},
		{
			ID:             "simple_loop",
			Title:          "Count to Ten",
			Description:    "Write a loop that prints numbers from 1 to 10.",
			Category:       challenge.CategoryBasics,
			Difficulty:     challenge.Medium,
			Hints:          []string{"Use 'for i in range(1, 11):'", "Don't forget to print(i) inside the loop"},
			ExpectedAnswer: "for i in range(1, 11):\n    print(i)",
			Checker:        challenge.CheckerFunc(simpleLoop(ev)),
		},
		{
			ID:             "list_basics",
			Title:          "List Operations",
			Description:    "Create a list called 'my_list' with 5 numbers, then add one more number to it.",
			Category:       challenge.CategoryDataStructures,
			Difficulty:     challenge.Easy,
			Hints:          []string{"Lists are created with square brackets []", "Use append() to add items"},
			ExpectedAnswer: "my_list = [1, 2, 3, 4, 5]\nmy_list.append(6)",
			Checker:        challenge.CheckerFunc(listBasics(ev)),
		},
		{
			ID:             "basic_sort",
			Title:          "Sort a List",
			Description:    "Write a function called 'sort_list' that takes a list of numbers and returns it sorted.",
			Category:       challenge.CategoryAlgorithms,
			Difficulty:     challenge.Medium,
			Hints:          []string{"You can use the built-in sorted() function", "Or implement bubble sort if you're feeling brave"},
			ExpectedAnswer: "def sort_list(numbers):\n    return sorted(numbers)",
			Checker:        challenge.CheckerFunc(basicSort(ev)),
		},
	}
}

type checkFunc func(ctx context.Context, submission string) (challenge.Result, error)

func pass(msg string) (challenge.Result, error) {
	return challenge.Result{Passed: true, Message: msg}, nil
}

func fail(format string, args ...any) (challenge.Result, error) {
	return challenge.Result{Message: fmt.Sprintf(format, args...)}, nil
}

func helloWorld(ev evaluator.Evaluator) checkFunc {
	return func(ctx context.Context, submission string) (challenge.Result, error) {
		ns, err := ev.Execute(ctx, submission, "main")
		if err != nil {
			return fail("Code error: %v", err)
		}
		out := strings.TrimSpace(ns.Output())
		if strings.Contains(out, "Hello, World!") {
			return pass("Perfect! You've mastered your first print statement.")
		}
		return fail("Expected 'Hello, World!' but got: '%s'", out)
	}
}

func variables(ev evaluator.Evaluator) checkFunc {
	return func(ctx context.Context, submission string) (challenge.Result, error) {
		ns, err := ev.Execute(ctx, submission, "main")
		if err != nil {
			return fail("Check your syntax: %v", err)
		}
		name, okName := ns.Global("name")
		age, okAge := ns.Global("age")
		if !okName || !okAge {
			return fail("Make sure you create both 'name' and 'age' variables.")
		}
		if evaluator.TypeName(name) != "string" {
			return fail("'name' should be a string, got %s.", evaluator.TypeName(name))
		}
		if t := evaluator.TypeName(age); t != "int" && t != "float" {
			return fail("'age' should be a number, got %s.", t)
		}
		return pass("Perfect! You've learned about variables.")
	}
}

func simpleLoop(ev evaluator.Evaluator) checkFunc {
	return func(ctx context.Context, submission string) (challenge.Result, error) {
		ns, err := ev.Execute(ctx, submission, "main")
		if err != nil {
			return fail("Something's not right with your loop: %v", err)
		}
		if !strings.Contains(submission, "for") && !strings.Contains(submission, "while") {
			return fail("Try using a for loop or while loop.")
		}
		var want []string
		for i := 1; i <= 10; i++ {
			want = append(want, fmt.Sprint(i))
		}
		got := strings.Fields(ns.Output())
		if strings.Join(got, " ") != strings.Join(want, " ") {
			return fail("Expected the numbers 1 to 10, one per line, but got: '%s'", strings.Join(got, " "))
		}
		return pass("Nice work with loops!")
	}
}

func listBasics(ev evaluator.Evaluator) checkFunc {
	return func(ctx context.Context, submission string) (challenge.Result, error) {
		ns, err := ev.Execute(ctx, submission, "main")
		if err != nil {
			return fail("Check your list syntax: %v", err)
		}
		v, ok := ns.Global("my_list")
		if !ok || evaluator.TypeName(v) != "list" {
			return fail("Make sure you create and modify a list named 'my_list'.")
		}
		if n, _ := evaluator.Len(v); n != 6 {
			return fail("'my_list' should hold 6 numbers after adding one, it holds %d.", n)
		}
		return pass("Great work with lists!")
	}
}

func basicSort(ev evaluator.Evaluator) checkFunc {
	cases := []struct{ in, want string }{
		{"[3, 1, 4, 1, 5]", "[1, 1, 3, 4, 5]"},
		{"[]", "[]"},
		{"[10, -2, 7]", "[-2, 7, 10]"},
	}
	return func(ctx context.Context, submission string) (challenge.Result, error) {
		ns, err := ev.Execute(ctx, submission, "sort_list")
		if err != nil {
			return fail("Error testing your function: %v", err)
		}
		fn, ok := ns.Callable("sort_list")
		if !ok {
			return fail("Create a function called 'sort_list'.")
		}
		for _, tc := range cases {
			args, err := ev.Args(ctx, tc.in)
			if err != nil {
				return challenge.Result{}, err
			}
			want, err := ev.Args(ctx, tc.want)
			if err != nil {
				return challenge.Result{}, err
			}
			got, err := fn.Call(ctx, args)
			if err != nil {
				return fail("Error testing your function: %v", err)
			}
			if eq, err := ev.Equal(got, want[0]); err != nil || !eq {
				return fail("Your function doesn't sort correctly: sort_list(%s) returned %s.", tc.in, got.String())
			}
		}
		return pass("Excellent sorting!")
	}
}
