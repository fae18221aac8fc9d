package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuflow/pkg/model"
)

func TestDocumentStore_CRUD(t *testing.T) {
	ctx := context.Background()
	docs := NewBackend().Documents()

	doc := &model.Document{DocumentKey: "d1", Title: "Invoice", TypeKey: "invoice"}
	require.NoError(t, docs.Create(ctx, doc))
	assert.ErrorIs(t, docs.Create(ctx, doc), model.ErrExists)

	got, err := docs.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice", got.Title)

	_, err = docs.Get(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	got.Title = "Invoice 2026"
	require.NoError(t, docs.Update(ctx, got))
	assert.Equal(t, int64(1), got.Version)

	require.NoError(t, docs.Delete(ctx, "d1"))
	assert.ErrorIs(t, docs.Delete(ctx, "d1"), model.ErrNotFound)
}

func TestDocumentStore_UpdateVersionConflict(t *testing.T) {
	ctx := context.Background()
	docs := NewBackend().Documents()

	doc := &model.Document{DocumentKey: "d1", Title: "Invoice", TypeKey: "invoice"}
	require.NoError(t, docs.Create(ctx, doc))

	stale := *doc
	require.NoError(t, docs.Update(ctx, doc)) // version 0 -> 1

	err := docs.Update(ctx, &stale) // still version 0
	assert.ErrorIs(t, err, model.ErrPreconditionFailed)

	missing := model.Document{DocumentKey: "nope"}
	assert.ErrorIs(t, docs.Update(ctx, &missing), model.ErrNotFound)
}

func TestDocumentStore_DeleteMany(t *testing.T) {
	ctx := context.Background()
	docs := NewBackend().Documents()

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, docs.Create(ctx, &model.Document{DocumentKey: key, Title: key, TypeKey: "t"}))
	}

	deleted, err := docs.DeleteMany(ctx, []string{"a", "c", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := docs.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].DocumentKey)
}

func TestLigneStore_ByDocument(t *testing.T) {
	ctx := context.Background()
	lignes := NewBackend().Lignes()

	require.NoError(t, lignes.Create(ctx, &model.Ligne{LigneKey: "l1", DocumentKey: "d1", Title: "a"}))
	require.NoError(t, lignes.Create(ctx, &model.Ligne{LigneKey: "l2", DocumentKey: "d1", Title: "b"}))
	require.NoError(t, lignes.Create(ctx, &model.Ligne{LigneKey: "l3", DocumentKey: "d2", Title: "c"}))

	got, err := lignes.ListByDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	deleted, err := lignes.DeleteByDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	got, err = lignes.ListByDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWorkflowStore_StepsByCircuit(t *testing.T) {
	ctx := context.Background()
	wf := NewBackend().Workflow()

	require.NoError(t, wf.CreateCircuit(ctx, &model.Circuit{CircuitKey: "c1", Title: "Purchase"}))
	require.NoError(t, wf.CreateStep(ctx, &model.Step{
		StepKey: "s1", CircuitKey: "c1", CurrentStatusKey: "draft", NextStatusKey: "review", Rule: model.RuleNone,
	}))
	require.NoError(t, wf.CreateStep(ctx, &model.Step{
		StepKey: "s2", CircuitKey: "other", CurrentStatusKey: "a", NextStatusKey: "b", Rule: model.RuleNone,
	}))

	steps, err := wf.ListSteps(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "s1", steps[0].StepKey)
}

func TestApprovalStore_ListByDocumentNewestFirst(t *testing.T) {
	ctx := context.Background()
	approvals := NewBackend().Approvals()

	// Inserted oldest last so key order and creation order disagree.
	require.NoError(t, approvals.Create(ctx, &model.ApprovalRequest{
		ApprovalKey: "a-old", DocumentKey: "d1", State: model.ApprovalPending, CreatedAt: 1,
	}))
	require.NoError(t, approvals.Create(ctx, &model.ApprovalRequest{
		ApprovalKey: "b-new", DocumentKey: "d1", State: model.ApprovalPending, CreatedAt: 2,
	}))
	require.NoError(t, approvals.Create(ctx, &model.ApprovalRequest{
		ApprovalKey: "z-other", DocumentKey: "d2", State: model.ApprovalPending, CreatedAt: 3,
	}))

	rows, err := approvals.ListByDocument(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "b-new", rows[0].ApprovalKey)
	assert.Equal(t, "a-old", rows[1].ApprovalKey)
}

func TestUserStore_ByUsername(t *testing.T) {
	ctx := context.Background()
	users := NewBackend().Users()

	require.NoError(t, users.Create(ctx, &model.User{UserKey: "u1", Username: "alice"}))
	assert.ErrorIs(t, users.Create(ctx, &model.User{UserKey: "u2", Username: "alice"}), model.ErrExists)

	got, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserKey)

	_, err = users.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	kv := NewBackend().Settings()

	_, err := kv.Get(ctx, "u1")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, kv.Put(ctx, "u1", []byte(`{"theme":"dark"}`)))
	value, err := kv.Get(ctx, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(value))

	// Returned slice is a copy; mutating it must not affect the store.
	value[0] = 'X'
	again, err := kv.Get(ctx, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(again))

	require.NoError(t, kv.Delete(ctx, "u1"))
	assert.ErrorIs(t, kv.Delete(ctx, "u1"), model.ErrNotFound)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := NewBackend().Documents()
	_, err := docs.Get(ctx, "x")
	assert.ErrorIs(t, err, model.ErrCanceled)
}
