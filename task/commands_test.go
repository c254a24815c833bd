package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"humantask/backend/history"
	"humantask/backend/payload"
	"humantask/core"
)

func Test_Lifecycle_ClaimStartComplete(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.NoError(t, ht.Claim(u1))
	require.Equal(t, core.TaskStatusReserved, ht.Status())
	require.Equal(t, &u1, ht.ActualOwner())

	require.NoError(t, ht.Start(u1))
	require.Equal(t, core.TaskStatusInProgress, ht.Status())
	require.NotNil(t, ht.StartedAt())

	require.NoError(t, ht.Complete(u1, "approved", payload.Payload(`{"ok":true}`), ""))
	require.Equal(t, core.TaskStatusCompleted, ht.Status())
	require.Equal(t, "approved", ht.Outcome())
	require.NotNil(t, ht.CompletedAt())
}

func Test_Claim_Rejections(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	// Not a potential owner.
	requireRejected(t, ht, "Claim", func() error { return ht.Claim(stranger) })

	// The initiator holds no potential-owner role.
	requireRejected(t, ht, "Claim", func() error { return ht.Claim(initiator) })

	require.NoError(t, ht.Claim(u1))

	// Already claimed.
	requireRejected(t, ht, "Claim", func() error { return ht.Claim(u2) })
}

func Test_Release(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	requireRejected(t, ht, "Release", func() error { return ht.Release(u1) })

	require.NoError(t, ht.Claim(u1))

	// Only the owner or a business administrator may release.
	requireRejected(t, ht, "Release", func() error { return ht.Release(u2) })

	require.NoError(t, ht.Release(u1))
	require.Equal(t, core.TaskStatusReady, ht.Status())
	require.Nil(t, ht.ActualOwner())

	// Administrators can revoke a claim too.
	require.NoError(t, ht.Claim(u2))
	require.NoError(t, ht.Release(admin))
	require.Equal(t, core.TaskStatusReady, ht.Status())
}

func Test_Complete_RequiresInProgress(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.NoError(t, ht.Claim(u1))

	requireRejected(t, ht, "Complete", func() error { return ht.Complete(u1, "approved", nil, "") })
}

func Test_Complete_FromReservedPolicy(t *testing.T) {
	ht, _ := newTestTask(t, &history.TaskCreatedAttributes{
		CompletionPolicy: core.CompleteFromReserved,
	})

	require.NoError(t, ht.Claim(u1))
	require.NoError(t, ht.Complete(u1, "approved", nil, ""))
	require.Equal(t, core.TaskStatusCompleted, ht.Status())
}

func Test_Complete_OnlyActualOwner(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.NoError(t, ht.Claim(u1))
	require.NoError(t, ht.Start(u1))

	// Even a business administrator cannot complete on the owner's behalf.
	requireRejected(t, ht, "Complete", func() error { return ht.Complete(admin, "approved", nil, "") })
}

func Test_Delegate(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.NoError(t, ht.Claim(u1))
	require.NoError(t, ht.Start(u1))

	require.NoError(t, ht.Delegate(u1, u3))

	// The delegatee becomes the owner and a potential owner; the release
	// recorded on the way keeps the status transition in the history.
	require.Equal(t, &u3, ht.ActualOwner())
	require.True(t, core.ContainsUser(ht.Assignments().PotentialOwners, u3))

	changes := ht.Changes()
	last := changes[len(changes)-1]
	require.Equal(t, history.EventType_TaskDelegated, last.Type)
	require.Equal(t, history.EventType_TaskReleased, changes[len(changes)-2].Type)
}

func Test_Delegate_RequiresTarget(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.NoError(t, ht.Claim(u1))

	requireRejected(t, ht, "Delegate", func() error { return ht.Delegate(u1, core.UserReference{}) })
}

func Test_Forward_WhileClaimed(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.NoError(t, ht.Claim(u1))
	require.NoError(t, ht.Forward(u1, []core.UserReference{u3}))

	require.Equal(t, core.TaskStatusReady, ht.Status())
	require.Nil(t, ht.ActualOwner())

	// The forwarder left the potential owners, the recipient joined.
	require.False(t, core.ContainsUser(ht.Assignments().PotentialOwners, u1))
	require.True(t, core.ContainsUser(ht.Assignments().PotentialOwners, u3))
}

func Test_Forward_WhileReady(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	// A potential owner may forward an unclaimed task; others may not.
	requireRejected(t, ht, "Forward", func() error { return ht.Forward(stranger, []core.UserReference{u3}) })

	require.NoError(t, ht.Forward(u2, []core.UserReference{u3}))
	require.Equal(t, core.TaskStatusReady, ht.Status())
	require.False(t, core.ContainsUser(ht.Assignments().PotentialOwners, u2))
	require.True(t, core.ContainsUser(ht.Assignments().PotentialOwners, u3))

	// The new potential owner can claim.
	require.NoError(t, ht.Claim(u3))
}

func Test_Forward_RequiresRecipients(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	requireRejected(t, ht, "Forward", func() error { return ht.Forward(u1, nil) })
}

func Test_SuspendResume(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	requireRejected(t, ht, "Suspend", func() error { return ht.Suspend(u1, "too early") })

	require.NoError(t, ht.Claim(u1))
	require.NoError(t, ht.Start(u1))
	require.NoError(t, ht.Suspend(u1, "waiting for paperwork"))
	require.Equal(t, core.TaskStatusSuspended, ht.Status())

	// Suspended tasks reject work commands.
	requireRejected(t, ht, "Complete", func() error { return ht.Complete(u1, "approved", nil, "") })

	require.NoError(t, ht.Resume(u1))
	require.Equal(t, core.TaskStatusInProgress, ht.Status())
}

func Test_Skip(t *testing.T) {
	ht, _ := newTestTask(t, &history.TaskCreatedAttributes{Skippable: true})

	require.NoError(t, ht.Skip(u1, "no longer needed"))
	require.Equal(t, core.TaskStatusObsolete, ht.Status())
}

func Test_Skip_NotSkippable(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	requireRejected(t, ht, "Skip", func() error { return ht.Skip(u1, "no longer needed") })
}

func Test_Cancel(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.NoError(t, ht.Cancel(admin, "order withdrawn"))
	require.Equal(t, core.TaskStatusCancelled, ht.Status())

	// Terminal tasks reject everything.
	requireRejected(t, ht, "Claim", func() error { return ht.Claim(u1) })
	requireRejected(t, ht, "Cancel", func() error { return ht.Cancel(admin, "again") })
}

func Test_Fault(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	requireRejected(t, ht, "Fault", func() error { return ht.Fault(admin, nil) })

	require.NoError(t, ht.Fault(admin, []core.Fault{{Name: "validation"}}))
	require.Equal(t, core.TaskStatusFaulted, ht.Status())
	require.Len(t, ht.Faults(), 1)
	require.NotEmpty(t, ht.Faults()[0].ID)
}

func Test_AddRemoveFault(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.NoError(t, ht.AddFault(admin, core.Fault{Name: "validation"}))
	require.Len(t, ht.Faults(), 1)

	// Status is unchanged by bookkeeping faults.
	require.Equal(t, core.TaskStatusReady, ht.Status())

	removed, err := ht.RemoveFault(admin, ht.Faults()[0].ID)
	require.NoError(t, err)
	require.True(t, removed)
	require.Empty(t, ht.Faults())

	// Removing an unknown fault is a reported no-op.
	removed, err = ht.RemoveFault(admin, "unknown")
	require.NoError(t, err)
	require.False(t, removed)

	// Only business administrators manage the fault list.
	requireRejected(t, ht, "AddFault", func() error { return ht.AddFault(u1, core.Fault{Name: "x"}) })
}

func Test_Comments(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	comment, err := ht.AddComment(u1, "looks fine")
	require.NoError(t, err)
	require.NotEmpty(t, comment.ID)
	require.Len(t, ht.Comments(), 1)

	updated, err := ht.UpdateComment(u1, comment.ID, "looks great")
	require.NoError(t, err)
	require.True(t, updated)
	require.Equal(t, "looks great", ht.Comments()[0].Text)

	updated, err = ht.UpdateComment(u1, "unknown", "x")
	require.NoError(t, err)
	require.False(t, updated)

	removed, err := ht.RemoveComment(u1, comment.ID)
	require.NoError(t, err)
	require.True(t, removed)
	require.Empty(t, ht.Comments())

	// A stranger cannot comment.
	requireRejected(t, ht, "AddComment", func() error {
		_, err := ht.AddComment(stranger, "hi")
		return err
	})
}

func Test_Attachments(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	requireRejected(t, ht, "AddAttachment", func() error { return ht.AddAttachment(u1, core.Attachment{}) })

	require.NoError(t, ht.AddAttachment(u1, core.Attachment{Name: "invoice.pdf", ContentType: "application/pdf"}))
	require.Len(t, ht.Attachments(), 1)
	require.Equal(t, u1, ht.Attachments()[0].AttachedBy)

	removed, err := ht.RemoveAttachment(u1, ht.Attachments()[0].ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = ht.RemoveAttachment(u1, "unknown")
	require.NoError(t, err)
	require.False(t, removed)
}

func Test_SetPriority(t *testing.T) {
	ht, _ := newTestTask(t, &history.TaskCreatedAttributes{Priority: 3})

	changed, err := ht.SetPriority(u1, 7)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, 7, ht.Priority())

	// Re-setting the current value records nothing.
	before := len(ht.Changes())
	changed, err = ht.SetPriority(u1, 7)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, ht.Changes(), before)

	// The guard runs before the idempotence check.
	requireRejected(t, ht, "SetPriority", func() error {
		_, err := ht.SetPriority(stranger, 7)
		return err
	})
}

func Test_Delete(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	requireRejected(t, ht, "Delete", func() error { return ht.Delete(u1) })

	require.NoError(t, ht.Delete(admin))
	require.True(t, ht.Deleted())

	// A deleted task accepts no further commands.
	requireRejected(t, ht, "Claim", func() error { return ht.Claim(u1) })
	requireRejected(t, ht, "Delete", func() error { return ht.Delete(admin) })
}
