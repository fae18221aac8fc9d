package engine

import (
	"context"
	"fmt"
	"time"

	"docuflow/internal/events"
	"docuflow/pkg/model"
)

// ListLignes runs the list pipeline over one document's line items. The
// parent document must exist.
func (e *Engine) ListLignes(ctx context.Context, documentKey string, req ListRequest) (ListResult[model.Ligne], error) {
	if _, err := e.store.Documents().Get(ctx, documentKey); err != nil {
		return ListResult[model.Ligne]{}, err
	}
	rows, err := e.store.Lignes().ListByDocument(ctx, documentKey)
	if err != nil {
		return ListResult[model.Ligne]{}, err
	}
	return runList(e, e.lignes, rows, req), nil
}

// GetLigne returns one line item by key.
func (e *Engine) GetLigne(ctx context.Context, key string) (*model.Ligne, error) {
	return e.store.Lignes().Get(ctx, key)
}

// CreateLigne normalizes amounts, validates and stores a new line under its
// document.
func (e *Engine) CreateLigne(ctx context.Context, ligne *model.Ligne, actor string) error {
	if _, err := e.store.Documents().Get(ctx, ligne.DocumentKey); err != nil {
		return err
	}

	ligne.Normalize()
	if err := ligne.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}

	now := time.Now().UnixMilli()
	ligne.CreatedAt = now
	ligne.UpdatedAt = now

	if err := e.store.Lignes().Create(ctx, ligne); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityLigne, ligne.LigneKey, events.OpCreate).
		WithParent(ligne.DocumentKey).WithActor(actor))
	return nil
}

// UpdateLigne recomputes amounts and stores the edit.
func (e *Engine) UpdateLigne(ctx context.Context, ligne *model.Ligne, actor string) error {
	ligne.Normalize()
	if err := ligne.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}
	ligne.UpdatedAt = time.Now().UnixMilli()

	if err := e.store.Lignes().Update(ctx, ligne); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityLigne, ligne.LigneKey, events.OpUpdate).
		WithParent(ligne.DocumentKey).WithActor(actor))
	return nil
}

// DeleteLigne removes one line item.
func (e *Engine) DeleteLigne(ctx context.Context, key, actor string) error {
	ligne, err := e.store.Lignes().Get(ctx, key)
	if err != nil {
		return err
	}
	if err := e.store.Lignes().Delete(ctx, key); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityLigne, key, events.OpDelete).
		WithParent(ligne.DocumentKey).WithActor(actor))
	return nil
}
