// Package describe writes the player-facing text of a derived challenge:
// its title, description and hints.
package describe

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/source"
)

// Describe returns the description and up to challenge.MaxHints hints for
// the function described by facts.
func Describe(facts source.FunctionFacts, src string) (string, []string) {
	return Description(facts), Hints(facts, src)
}

var cannedDescriptions = map[string]string{
	"twoSum": "Given a list of integers nums and an integer target, return the indices of the two numbers " +
		"that add up to target. Each input has exactly one solution, and you may not use the same element twice.",
	"fizz_buzz": "Given an integer n, return a list of strings for the numbers 1 to n. Use \"FizzBuzz\" for " +
		"multiples of both 3 and 5, \"Fizz\" for multiples of 3, \"Buzz\" for multiples of 5, and the number itself otherwise.",
	"is_palindrome": "Given a string, return True if it reads the same forwards and backwards after lowercasing it " +
		"and removing every non-alphanumeric character. Return False otherwise.",
	"maxArea": "Given a list of heights, pick two lines that together with the x-axis form a container holding " +
		"the most water. Return the maximum amount of water the container can store.",
	"is_anagram": "Given two strings, return True if the second is an anagram of the first, using exactly the " +
		"same letters the same number of times. Return False otherwise.",
	"plus_one": "Given a non-empty list of digits representing a non-negative integer, add one to the integer " +
		"and return the resulting list of digits.",
}

type descriptionRule struct {
	keywords []string
	text     string
}

// Tried in order against the lowercased function name.
var descriptionRules = []descriptionRule{
	{[]string{"palindrome"}, "Decide whether the input reads the same forwards and backwards."},
	{[]string{"anagram"}, "Decide whether two inputs contain exactly the same characters in a different order."},
	{[]string{"sum"}, "Find the values in the input that add up to the requested total."},
	{[]string{"sort"}, "Return the input arranged in ascending order."},
	{[]string{"reverse"}, "Return the input in reverse order."},
	{[]string{"count"}, "Count how often things occur in the input and return the result."},
	{[]string{"max", "min"}, "Find the extreme value the problem asks for and return it."},
	{[]string{"prime"}, "Work with prime numbers: a prime is only divisible by 1 and itself."},
	{[]string{"fib"}, "Compute values of the Fibonacci sequence, where each number is the sum of the two before it."},
}

// Description picks, in order: the docstring, a canned description for a
// well-known function name, a keyword rule on the name, or a generic prompt.
func Description(facts source.FunctionFacts) string {
	if facts.HasDocstring {
		return facts.Docstring
	}
	if d, ok := cannedDescriptions[facts.Name]; ok {
		return d
	}
	name := strings.ToLower(facts.Name)
	for _, r := range descriptionRules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return r.text
			}
		}
	}
	return fmt.Sprintf("Complete the implementation of %s() so it returns the right answer for every input.", facts.Name)
}

var cannedHints = map[string][]string{
	"twoSum": {
		"Consider using a hash map to store numbers you've seen",
		"For each number, check if its complement exists in your map",
		"The complement is target - current_number",
	},
	"fizz_buzz": {
		"Use the modulo operator % to check divisibility",
		"Check for divisibility by both 3 AND 5 first",
		"Don't forget to convert numbers to strings",
	},
	"is_palindrome": {
		"Remove non-alphanumeric characters first",
		"Convert to lowercase for comparison",
		"Compare the string with its reverse",
	},
	"maxArea": {
		"Use two pointers, one at start and one at end",
		"Calculate area as width * min(left_height, right_height)",
		"Move the pointer with the smaller height",
	},
	"is_anagram": {
		"Count the frequency of each character",
		"Two strings are anagrams if they have the same character counts",
		"You can use dictionaries to count characters",
	},
}

// Generic hints.
const (
	HintDictionary  = "Consider using a dictionary to track values"
	HintIteration   = "Think about what you need to iterate through"
	HintTermination = "Consider the loop termination condition carefully"
	HintSteps       = "Break the problem down into smaller steps"
	HintEdgeCases   = "Think about edge cases"
)

// Hints returns canned hints for well-known names, otherwise hints
// synthesized from constructs found in src.
func Hints(facts source.FunctionFacts, src string) []string {
	var hints []string
	if canned, ok := cannedHints[facts.Name]; ok {
		hints = append(hints, canned...)
	} else {
		if strings.Contains(src, "dict") || strings.Contains(src, "{}") {
			hints = append(hints, HintDictionary)
		}
		if strings.Contains(src, "for") {
			hints = append(hints, HintIteration)
		}
		if strings.Contains(src, "while") {
			hints = append(hints, HintTermination)
		}
		if len(hints) == 0 {
			hints = append(hints, HintSteps, HintEdgeCases)
		}
	}
	if len(hints) > challenge.MaxHints {
		hints = hints[:challenge.MaxHints]
	}
	return hints
}

var titleFixes = map[string]string{
	"Twosum":        "Two Sum",
	"Fizz Buzz":     "FizzBuzz",
	"Is Palindrome": "Palindrome Check",
	"Maxarea":       "Container With Most Water",
	"Is Anagram":    "Valid Anagram",
}

// Title converts a function name to a display title: underscores become
// spaces, every word is capitalized with the rest lowercased, and a few
// known awkward results are replaced outright.
func Title(name string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.ReplaceAll(name, "_", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	title := strings.TrimSpace(b.String())
	if fixed, ok := titleFixes[title]; ok {
		return fixed
	}
	return title
}
