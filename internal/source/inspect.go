package source

import (
	"strings"

	"go.starlark.net/syntax"

	"github.com/abhisek/codearena/internal/evaluator"
)

// SentinelName is the function name reported when a file has no top-level def.
const SentinelName = "solution"

// FunctionFacts is the structural metadata of a reference solution: the
// first top-level function's name, positional parameters and docstring.
type FunctionFacts struct {
	Name         string
	Params       []string
	Docstring    string
	HasDocstring bool
}

// Sentinel returns the facts used when no function definition is found.
func Sentinel() FunctionFacts {
	return FunctionFacts{Name: SentinelName}
}

// Arity is the number of positional parameters.
func (f FunctionFacts) Arity() int { return len(f.Params) }

// Inspect returns facts for the first top-level def in src. It never fails:
// unparsable text and files without a def both yield Sentinel().
func Inspect(src string) FunctionFacts {
	facts, err := Parse("inspect.star", src)
	if err != nil {
		return Sentinel()
	}
	return facts
}

// Parse is Inspect but reports syntax errors instead of hiding them.
func Parse(filename, src string) (FunctionFacts, error) {
	f, err := evaluator.SyntaxOptions().Parse(filename, src, 0)
	if err != nil {
		return FunctionFacts{}, err
	}
	// Statements are visited in textual order; nested defs are not considered.
	for _, stmt := range f.Stmts {
		def, ok := stmt.(*syntax.DefStmt)
		if !ok {
			continue
		}
		facts := FunctionFacts{
			Name:   def.Name.Name,
			Params: positionalParams(def.Params),
		}
		facts.Docstring, facts.HasDocstring = docstring(def.Body)
		return facts, nil
	}
	return Sentinel(), nil
}

func positionalParams(params []syntax.Expr) []string {
	var names []string
	for _, p := range params {
		switch p := p.(type) {
		case *syntax.Ident:
			names = append(names, p.Name)
		case *syntax.BinaryExpr:
			if id, ok := p.X.(*syntax.Ident); ok {
				names = append(names, id.Name)
			}
		case *syntax.UnaryExpr:
			// *args, **kwargs, or the bare * separator. Anything after it is keyword-only.
			return names
		}
	}
	return names
}

func docstring(body []syntax.Stmt) (string, bool) {
	if len(body) == 0 {
		return "", false
	}
	expr, ok := body[0].(*syntax.ExprStmt)
	if !ok {
		return "", false
	}
	lit, ok := expr.X.(*syntax.Literal)
	if !ok || lit.Token != syntax.STRING {
		return "", false
	}
	s, ok := lit.Value.(string)
	if !ok {
		return "", false
	}
	s = cleanDoc(s)
	return s, s != ""
}

// cleanDoc trims a docstring the way documentation tools do: the first line
// loses leading space, later lines lose their common indentation, and
// surrounding blank lines are dropped.
func cleanDoc(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\t", "    "), "\n")
	indent := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " ")
	if indent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= indent {
				lines[i] = lines[i][indent:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
