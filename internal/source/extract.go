package source

import (
	"regexp"
	"strings"
)

// ExtractFunction returns the text of the top-level function name, from its
// def line up to the first following non-empty line that is not indented.
// It returns "" when the function is not found.
func ExtractFunction(src, name string) string {
	lines := strings.Split(src, "\n")
	prefix := "def " + name + "("

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			end = i
			break
		}
	}
	return strings.TrimRight(strings.Join(lines[start:end], "\n"), " \t\n")
}

// MaxSampleCases bounds how many cases ScanSampleCases returns.
const MaxSampleCases = 3

var (
	bracketGroup = regexp.MustCompile(`\[(.*?)\]`)
	quotedString = regexp.MustCompile(`"[^"]*"|'[^']*'`)
	integerLit   = regexp.MustCompile(`-?\d+`)
)

// ScanSampleCases loosely scans sample-output lines such as
//
//	print("two_sum([2, 7, 11, 15], 9) = %s" % two_sum([2, 7, 11, 15], 9))
//
// and returns the literal arguments found on each. Results are informational
// only and are never used for judging.
func ScanSampleCases(src string) [][]string {
	var cases [][]string
	for _, line := range strings.Split(src, "\n") {
		if !strings.Contains(line, "print(") || !strings.Contains(line, "=") {
			continue
		}
		var args []string
		if groups := bracketGroup.FindAllString(line, -1); len(groups) > 0 {
			args = groups
		} else if strs := quotedString.FindAllString(line, -1); len(strs) > 1 {
			// The first quoted string is the format itself.
			args = strs[1:]
		} else {
			args = integerLit.FindAllString(line, -1)
		}
		if len(args) == 0 {
			continue
		}
		cases = append(cases, args)
		if len(cases) == MaxSampleCases {
			break
		}
	}
	return cases
}
