package task

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_MatchCompletionBehavior(t *testing.T) {
	d := &Definition{
		ID: "approve-invoice",
		CompletionBehaviors: []CompletionBehavior{
			{Name: "notify-requester", Outcome: "approved"},
			{Name: "escalate", Outcome: "rejected"},
			{Name: "archive"},
		},
	}

	require.Equal(t, "notify-requester", d.MatchCompletionBehavior("approved"))
	require.Equal(t, "escalate", d.MatchCompletionBehavior("rejected"))

	// An empty outcome pattern matches anything.
	require.Equal(t, "archive", d.MatchCompletionBehavior("deferred"))

	require.Empty(t, (&Definition{}).MatchCompletionBehavior("approved"))
}
