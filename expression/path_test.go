package expression

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_IsRuntimeExpression(t *testing.T) {
	require.True(t, IsRuntimeExpression("${input.requester}"))
	require.False(t, IsRuntimeExpression("input.requester"))
	require.False(t, IsRuntimeExpression("${unterminated"))
}

func Test_Unwrap(t *testing.T) {
	require.Equal(t, "input.requester", Unwrap("${input.requester}"))
	require.Equal(t, "literal", Unwrap("literal"))
}

func Test_PathEvaluator(t *testing.T) {
	pe := &PathEvaluator{}

	input := map[string]any{
		"requester": "alice",
		"invoice": map[string]any{
			"amount": 42.0,
		},
	}
	context := map[string]any{
		"region": "emea",
	}

	tests := []struct {
		expr string
		want any
	}{
		{"${input.requester}", "alice"},
		{"${input.invoice.amount}", 42.0},
		{"${region}", "emea"},
		{"${input.missing}", nil},
		{"${missing.deeper}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := pe.Evaluate(tt.expr, input, context)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_EvaluateAs_Coerces(t *testing.T) {
	pe := &PathEvaluator{}

	input := map[string]any{"amount": 42.0}

	amount, err := EvaluateAs[int](pe, "${input.amount}", input, nil)
	require.NoError(t, err)
	require.Equal(t, 42, amount)

	// Unresolvable paths yield the zero value, not an error.
	s, err := EvaluateAs[string](pe, "${input.missing}", input, nil)
	require.NoError(t, err)
	require.Empty(t, s)
}

func Test_Registry_UnsupportedLanguage(t *testing.T) {
	r := NewRegistry()
	r.Register(PathLanguage, &PathEvaluator{})

	_, err := r.Evaluator("xpath")
	require.ErrorIs(t, err, ErrUnsupportedLanguage)

	e, err := r.Evaluator(PathLanguage)
	require.NoError(t, err)
	require.NotNil(t, e)
}
