// Package memory is the in-process storage backend. Rows are plain struct
// copies in maps, which is enough for tests and single-node runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"docuflow/internal/storage"
	"docuflow/pkg/model"
)

// Backend implements storage.Backend with in-memory tables.
type Backend struct {
	documents *table[model.Document]
	lignes    *table[model.Ligne]
	circuits  *table[model.Circuit]
	steps     *table[model.Step]
	statuses  *table[model.Status]
	approvals *table[model.ApprovalRequest]
	groups    *table[model.ApprovalGroup]
	responses *table[model.ApprovalResponse]
	types     *table[model.DocumentType]
	items     *table[model.Item]
	accounts  *table[model.GeneralAccount]
	vendors   *table[model.Vendor]
	customers *table[model.Customer]
	locations *table[model.Location]
	users     *table[model.User]
	settings  *table[[]byte]
}

var _ storage.Backend = (*Backend)(nil)

// NewBackend creates an empty backend.
func NewBackend() *Backend {
	return &Backend{
		documents: newTable[model.Document](),
		lignes:    newTable[model.Ligne](),
		circuits:  newTable[model.Circuit](),
		steps:     newTable[model.Step](),
		statuses:  newTable[model.Status](),
		approvals: newTable[model.ApprovalRequest](),
		groups:    newTable[model.ApprovalGroup](),
		responses: newTable[model.ApprovalResponse](),
		types:     newTable[model.DocumentType](),
		items:     newTable[model.Item](),
		accounts:  newTable[model.GeneralAccount](),
		vendors:   newTable[model.Vendor](),
		customers: newTable[model.Customer](),
		locations: newTable[model.Location](),
		users:     newTable[model.User](),
		settings:  newTable[[]byte](),
	}
}

func (b *Backend) Documents() storage.DocumentStore  { return &documentStore{b} }
func (b *Backend) Lignes() storage.LigneStore        { return &ligneStore{b} }
func (b *Backend) Workflow() storage.WorkflowStore   { return &workflowStore{b} }
func (b *Backend) Approvals() storage.ApprovalStore  { return &approvalStore{b} }
func (b *Backend) Reference() storage.ReferenceStore { return &referenceStore{b} }
func (b *Backend) Users() storage.UserStore          { return &userStore{b} }
func (b *Backend) Settings() storage.KVStore         { return &kvStore{b} }
func (b *Backend) Close(ctx context.Context) error   { return nil }

// table is a mutex-guarded map of rows keyed by string.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(ctx context.Context, key string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, model.WrapError(err)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[key]
	if !ok {
		return zero, model.ErrNotFound
	}
	return row, nil
}

// list returns rows matching the predicate (nil matches all), sorted by key
// for deterministic output.
func (t *table[T]) list(ctx context.Context, match func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.WrapError(err)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.rows))
	for key, row := range t.rows {
		if match == nil || match(row) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, key := range keys {
		out = append(out, t.rows[key])
	}
	return out, nil
}

func (t *table[T]) create(ctx context.Context, key string, row T) error {
	if err := ctx.Err(); err != nil {
		return model.WrapError(err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[key]; ok {
		return model.ErrExists
	}
	t.rows[key] = row
	return nil
}

func (t *table[T]) update(ctx context.Context, key string, row T) error {
	if err := ctx.Err(); err != nil {
		return model.WrapError(err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[key]; !ok {
		return model.ErrNotFound
	}
	t.rows[key] = row
	return nil
}

func (t *table[T]) put(ctx context.Context, key string, row T) error {
	if err := ctx.Err(); err != nil {
		return model.WrapError(err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[key] = row
	return nil
}

func (t *table[T]) delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return model.WrapError(err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[key]; !ok {
		return model.ErrNotFound
	}
	delete(t.rows, key)
	return nil
}

// deleteWhere removes all rows matching the predicate and returns the count.
func (t *table[T]) deleteWhere(ctx context.Context, match func(T) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, model.WrapError(err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	deleted := 0
	for key, row := range t.rows {
		if match(row) {
			delete(t.rows, key)
			deleted++
		}
	}
	return deleted, nil
}
