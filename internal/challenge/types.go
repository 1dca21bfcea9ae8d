package challenge

import "fmt"

// Category groups challenges and gates them behind progression.
type Category string

const (
	CategoryBasics         Category = "basics"
	CategoryDataStructures Category = "data-structures"
	CategoryAlgorithms     Category = "algorithms"
	CategoryProblemSolving Category = "problem-solving"
	CategoryDebugging      Category = "debugging"
	CategoryLeetcode       Category = "leetcode-style"
)

// AllCategories lists categories in unlock order.
var AllCategories = []Category{
	CategoryBasics,
	CategoryDataStructures,
	CategoryAlgorithms,
	CategoryProblemSolving,
	CategoryDebugging,
	CategoryLeetcode,
}

// DisplayName returns a human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryBasics:
		return "Basics"
	case CategoryDataStructures:
		return "Data Structures"
	case CategoryAlgorithms:
		return "Algorithms"
	case CategoryProblemSolving:
		return "Problem Solving"
	case CategoryDebugging:
		return "Debugging"
	case CategoryLeetcode:
		return "LeetCode Style"
	default:
		return string(c)
	}
}

// Blurb is a one-line description shown on the categories screen.
func (c Category) Blurb() string {
	switch c {
	case CategoryBasics:
		return "Variables, loops, and simple functions"
	case CategoryDataStructures:
		return "Lists, dictionaries, stacks, and queues"
	case CategoryAlgorithms:
		return "Sorting, searching, and recursion"
	case CategoryProblemSolving:
		return "String puzzles and pattern problems"
	case CategoryDebugging:
		return "Find and fix broken code"
	case CategoryLeetcode:
		return "Classic interview problems"
	default:
		return ""
	}
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Difficulty is an ordinal difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}
