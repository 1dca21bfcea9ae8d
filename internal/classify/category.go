package classify

import (
	"strings"

	"github.com/abhisek/codearena/internal/challenge"
)

// Input is what the category rules look at.
type Input struct {
	ID     string // Challenge identifier.
	Source string // Full reference source text.
}

// Rule assigns a category, or returns "" if it doesn't apply.
type Rule interface {
	Name() string
	Match(input *Input) challenge.Category
}

// keywordRule matches when any keyword appears in the identifier, and in
// the source text too unless idOnly is set.
type keywordRule struct {
	name     string
	category challenge.Category
	keywords []string
	idOnly   bool
}

func (r *keywordRule) Name() string { return r.name }

func (r *keywordRule) Match(input *Input) challenge.Category {
	id := strings.ToLower(input.ID)
	src := strings.ToLower(input.Source)
	for _, kw := range r.keywords {
		if strings.Contains(id, kw) {
			return r.category
		}
		if !r.idOnly && strings.Contains(src, kw) {
			return r.category
		}
	}
	return ""
}

// Keyword sets, in the order the rules are tried.
var (
	ClassicProblems = []string{
		"two_sum", "container_water", "buy_sell_stock", "jump_game",
		"gas_station", "majority_element", "contains_duplicate",
	}
	AlgorithmKeywords = []string{
		"sort", "search", "tree", "graph", "dynamic", "recursion",
	}
	DataStructureKeywords = []string{
		"array", "list", "hash", "map", "dict", "stack", "queue",
		"duplicate", "merge", "plus_one", "remove",
	}
	StringKeywords = []string{
		"string", "palindrome", "anagram", "pattern", "prefix", "roman",
		"ip", "word", "isomorphic", "ransom", "subsequence", "first",
	}
	BasicsKeywords = []string{
		"fizz", "buzz", "factorial", "sqrt", "capital", "length", "last",
	}
)

// DefaultRules returns the category rules in priority order. The classic
// problem list is checked against the identifier only, so a known interview
// problem wins over any keyword in its body.
func DefaultRules() []Rule {
	return []Rule{
		&keywordRule{name: "classic", category: challenge.CategoryLeetcode, keywords: ClassicProblems, idOnly: true},
		&keywordRule{name: "algorithm", category: challenge.CategoryAlgorithms, keywords: AlgorithmKeywords},
		&keywordRule{name: "data-structure", category: challenge.CategoryDataStructures, keywords: DataStructureKeywords},
		&keywordRule{name: "string", category: challenge.CategoryProblemSolving, keywords: StringKeywords},
		&keywordRule{name: "basics", category: challenge.CategoryBasics, keywords: BasicsKeywords},
	}
}

// DefaultCategory is used when no rule matches.
const DefaultCategory = challenge.CategoryProblemSolving

// RunRules returns the first matching category and the rule that produced
// it, or DefaultCategory and "default".
func RunRules(rules []Rule, input *Input) (challenge.Category, string) {
	for _, r := range rules {
		if cat := r.Match(input); cat != "" {
			return cat, r.Name()
		}
	}
	return DefaultCategory, "default"
}
