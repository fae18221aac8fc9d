package approval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuflow/internal/storage/memory"
	"docuflow/pkg/model"
)

func boolPtr(b bool) *bool { return &b }

func TestEffectiveApproval(t *testing.T) {
	pending := model.ApprovalRequest{ApprovalKey: "a2", State: model.ApprovalPending}
	accepted := model.ApprovalRequest{ApprovalKey: "a1", State: model.ApprovalAccepted}

	t.Run("prefers pending over decided history", func(t *testing.T) {
		got := EffectiveApproval([]model.ApprovalRequest{accepted, pending})
		require.NotNil(t, got)
		assert.Equal(t, "a2", got.ApprovalKey)
	})

	t.Run("nil when nothing pending", func(t *testing.T) {
		assert.Nil(t, EffectiveApproval([]model.ApprovalRequest{accepted}))
	})

	t.Run("nil on empty history", func(t *testing.T) {
		assert.Nil(t, EffectiveApproval(nil))
	})
}

func TestProject_NoApprovalRequired(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBackend().Approvals()
	projector := NewProjector(store, nil)

	// No records at all.
	view, err := projector.Project(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, StateNoApprovalRequired, view.State)

	// Only the synthetic unassigned placeholder.
	require.NoError(t, store.Create(ctx, &model.ApprovalRequest{
		ApprovalKey: "a1", DocumentKey: "d2", State: model.ApprovalPending,
	}))
	view, err = projector.Project(ctx, "d2")
	require.NoError(t, err)
	assert.Equal(t, StateNoApprovalRequired, view.State)
	assert.Nil(t, view.Approval)
}

func TestProject_AwaitingIndividual(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBackend().Approvals()
	projector := NewProjector(store, nil)

	require.NoError(t, store.Create(ctx, &model.ApprovalRequest{
		ApprovalKey: "a1", DocumentKey: "d1", AssignedTo: "alice",
		Rule: model.RuleIndividual, State: model.ApprovalPending,
	}))

	view, err := projector.Project(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingIndividual, view.State)
	assert.Equal(t, "alice", view.AssignedTo)
	assert.Nil(t, view.Group)
}

func TestProject_PrefersNewestPending(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBackend().Approvals()
	projector := NewProjector(store, nil)

	// Two pending rows; the newer one is the effective approval even though
	// its key sorts after the older one.
	require.NoError(t, store.Create(ctx, &model.ApprovalRequest{
		ApprovalKey: "a-old", DocumentKey: "d1", AssignedTo: "alice",
		Rule: model.RuleIndividual, State: model.ApprovalPending, CreatedAt: 1,
	}))
	require.NoError(t, store.Create(ctx, &model.ApprovalRequest{
		ApprovalKey: "b-new", DocumentKey: "d1", AssignedTo: "bob",
		Rule: model.RuleIndividual, State: model.ApprovalPending, CreatedAt: 2,
	}))

	view, err := projector.Project(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, view.Approval)
	assert.Equal(t, "b-new", view.Approval.ApprovalKey)
	assert.Equal(t, "bob", view.AssignedTo)
}

func TestProject_AwaitingGroupWithProgress(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBackend().Approvals()
	projector := NewProjector(store, nil)

	require.NoError(t, store.PutGroup(ctx, &model.ApprovalGroup{
		GroupKey: "g1", Name: "Finance", Rule: model.RuleGroupAny,
		Members: []model.GroupMember{
			{UserKey: "u1", Username: "alice"},
			{UserKey: "u2", Username: "bob"},
			{UserKey: "u3", Username: "carol"},
		},
	}))
	require.NoError(t, store.Create(ctx, &model.ApprovalRequest{
		ApprovalKey: "a1", DocumentKey: "d1", GroupKey: "g1",
		Rule: model.RuleGroupAny, State: model.ApprovalPending,
	}))
	require.NoError(t, store.SaveResponse(ctx, &model.ApprovalResponse{
		ResponseKey: "r1", ApprovalKey: "a1", UserKey: "u1", IsApproved: boolPtr(true),
	}))
	require.NoError(t, store.SaveResponse(ctx, &model.ApprovalResponse{
		ResponseKey: "r2", ApprovalKey: "a1", UserKey: "u2", IsApproved: nil,
	}))

	view, err := projector.Project(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingGroup, view.State)
	require.NotNil(t, view.Group)
	assert.Equal(t, "Finance", view.Group.Name)

	require.NotNil(t, view.Progress)
	assert.Equal(t, 3, view.Progress.Total)
	assert.Equal(t, 1, view.Progress.Approved)
	assert.Equal(t, 0, view.Progress.Rejected)
	assert.Equal(t, 2, view.Progress.Pending)
	assert.InDelta(t, 1.0/3.0, view.Progress.Ratio, 1e-9)
}

func TestProject_GroupLoadFailureDegrades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBackend().Approvals()
	projector := NewProjector(store, nil)

	// Approval references a group that does not exist.
	require.NoError(t, store.Create(ctx, &model.ApprovalRequest{
		ApprovalKey: "a1", DocumentKey: "d1", GroupKey: "ghost",
		Rule: model.RuleGroupAll, State: model.ApprovalPending,
	}))

	view, err := projector.Project(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingGroup, view.State)
	assert.Nil(t, view.Group)
	assert.Nil(t, view.Progress)
}

func TestProgress_Counts(t *testing.T) {
	group := &model.ApprovalGroup{Members: []model.GroupMember{
		{UserKey: "u1"}, {UserKey: "u2"}, {UserKey: "u3"}, {UserKey: "u4"},
	}}
	responses := []model.ApprovalResponse{
		{UserKey: "u1", IsApproved: boolPtr(true)},
		{UserKey: "u2", IsApproved: boolPtr(false)},
		{UserKey: "u3", IsApproved: nil},
		// u4 never responded, and this stray user is not a member:
		{UserKey: "stranger", IsApproved: boolPtr(true)},
	}

	progress := Progress(group, responses)
	assert.Equal(t, 4, progress.Total)
	assert.Equal(t, 1, progress.Approved)
	assert.Equal(t, 1, progress.Rejected)
	assert.Equal(t, 2, progress.Pending)
	assert.Equal(t, 0.25, progress.Ratio)
}

func TestProgress_EmptyGroup(t *testing.T) {
	progress := Progress(&model.ApprovalGroup{}, nil)
	assert.Equal(t, 0, progress.Total)
	assert.Equal(t, 0.0, progress.Ratio)
}
