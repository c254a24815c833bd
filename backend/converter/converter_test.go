package converter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_JSONConverter(t *testing.T) {
	in := map[string]any{"amount": 42.0, "approved": true}

	data, err := DefaultConverter.To(in)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, DefaultConverter.From(data, &out))
	require.Equal(t, in, out)
}
