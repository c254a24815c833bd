package expression

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Evaluator evaluates a runtime expression against an input document and a
// context object. Implementations must be pure with respect to their
// inputs; resolution may evaluate the same expression more than once and
// relies on getting the same result.
type Evaluator interface {
	Evaluate(expression string, input any, context map[string]any) (any, error)
}

const (
	expressionPrefix = "${"
	expressionSuffix = "}"
)

// IsRuntimeExpression reports whether s is a runtime expression rather than
// a literal. Expressions are wrapped in ${...}.
func IsRuntimeExpression(s string) bool {
	return strings.HasPrefix(s, expressionPrefix) && strings.HasSuffix(s, expressionSuffix)
}

// Unwrap strips the expression marker from s. Returns s unchanged if it is
// not a runtime expression.
func Unwrap(s string) string {
	if !IsRuntimeExpression(s) {
		return s
	}

	return strings.TrimSuffix(strings.TrimPrefix(s, expressionPrefix), expressionSuffix)
}

// EvaluateAs evaluates the expression and coerces the result to T.
func EvaluateAs[T any](e Evaluator, expression string, input any, context map[string]any) (T, error) {
	var result T

	v, err := e.Evaluate(expression, input, context)
	if err != nil {
		return result, err
	}

	if v == nil {
		return result, nil
	}

	if t, ok := v.(T); ok {
		return t, nil
	}

	// Coerce via JSON for mismatched but compatible types.
	b, err := json.Marshal(v)
	if err != nil {
		return result, fmt.Errorf("coercing expression result: %w", err)
	}

	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("coercing expression result: %w", err)
	}

	return result, nil
}
