package classify

import (
	"strings"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/source"
)

// Signal is one contribution to the complexity score.
type Signal struct {
	Name   string
	Points int
}

// Score accumulates the complexity signals found in src. The signals are
// plain substring checks over the raw text, so the score is a rough proxy
// for difficulty and can be fooled by comments or identifiers.
func Score(src string, facts source.FunctionFacts) (int, []Signal) {
	var signals []Signal
	add := func(name string, points int) {
		if points > 0 {
			signals = append(signals, Signal{Name: name, Points: points})
		}
	}

	if strings.Contains(src, "while") {
		add("while loop", 2)
	}
	if strings.Contains(src, "for") && !strings.Contains(src, "range") {
		add("for loop without range", 1)
	}
	if strings.Contains(src, "enumerate") {
		add("enumerate", 1)
	}
	if strings.Contains(src, "dict") || strings.Contains(src, "{}") {
		add("mapping", 2)
	}
	if strings.Contains(src, "try:") || strings.Contains(src, "except") {
		add("exception handling", 1)
	}
	add("nesting", (strings.Count(src, "    if")+strings.Count(src, "        "))/4)

	switch lines := strings.Count(src, "\n") + 1; {
	case lines > 30:
		add("long source", 2)
	case lines > 20:
		add("medium source", 1)
	}

	switch n := len(facts.Docstring); {
	case n > 200:
		add("long docstring", 2)
	case n > 100:
		add("medium docstring", 1)
	}

	total := 0
	for _, s := range signals {
		total += s.Points
	}
	return total, signals
}

// Difficulty thresholds on the complexity score.
const (
	HardThreshold   = 6
	MediumThreshold = 3
)

// DifficultyFor maps a complexity score to a difficulty.
func DifficultyFor(score int) challenge.Difficulty {
	switch {
	case score >= HardThreshold:
		return challenge.Hard
	case score >= MediumThreshold:
		return challenge.Medium
	default:
		return challenge.Easy
	}
}

// Classify derives the category and approximate difficulty of a challenge.
func Classify(id, src string, facts source.FunctionFacts) (challenge.Category, challenge.Difficulty) {
	cat, _ := RunRules(DefaultRules(), &Input{ID: id, Source: src})
	score, _ := Score(src, facts)
	return cat, DifficultyFor(score)
}
