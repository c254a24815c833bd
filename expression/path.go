package expression

import (
	"fmt"
	"strings"
)

// PathLanguage is the language name of the built-in path evaluator.
const PathLanguage = "path"

// PathEvaluator resolves dot-separated paths against the context object and
// the input document. Paths rooted at "input." address the input document;
// everything else addresses the context. An unresolvable path evaluates to
// nil, not an error.
type PathEvaluator struct {
}

var _ Evaluator = (*PathEvaluator)(nil)

func (pe *PathEvaluator) Evaluate(expr string, input any, context map[string]any) (any, error) {
	path := Unwrap(expr)
	if path == "" {
		return nil, fmt.Errorf("empty expression path")
	}

	segments := strings.Split(path, ".")

	if segments[0] == "input" {
		return walk(input, segments[1:]), nil
	}

	return walk(context, segments), nil
}

func walk(v any, segments []string) any {
	for _, s := range segments {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}

		v, ok = m[s]
		if !ok {
			return nil
		}
	}

	return v
}
