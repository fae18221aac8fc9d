package engine

import (
	"context"
	"fmt"
	"time"

	"docuflow/internal/events"
	"docuflow/pkg/model"
)

// ListDocuments runs the list pipeline over all documents.
func (e *Engine) ListDocuments(ctx context.Context, req ListRequest) (ListResult[model.Document], error) {
	rows, err := e.store.Documents().List(ctx)
	if err != nil {
		return ListResult[model.Document]{}, err
	}
	return runList(e, e.documents, rows, req), nil
}

// GetDocument returns one document by key.
func (e *Engine) GetDocument(ctx context.Context, key string) (*model.Document, error) {
	return e.store.Documents().Get(ctx, key)
}

// CreateDocument normalizes, validates and stores a new document.
func (e *Engine) CreateDocument(ctx context.Context, doc *model.Document, actor string) error {
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}

	now := time.Now().UnixMilli()
	doc.CreatedBy = actor
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.Version = 0

	if err := e.store.Documents().Create(ctx, doc); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityDocument, doc.DocumentKey, events.OpCreate).WithActor(actor))
	return nil
}

// UpdateDocument validates and stores an edit. The incoming Version must
// match the stored one.
func (e *Engine) UpdateDocument(ctx context.Context, doc *model.Document, actor string) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}

	if err := e.store.Documents().Update(ctx, doc); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityDocument, doc.DocumentKey, events.OpUpdate).WithActor(actor))
	return nil
}

// DeleteDocument removes a document and its lignes.
func (e *Engine) DeleteDocument(ctx context.Context, key, actor string) error {
	if err := e.store.Documents().Delete(ctx, key); err != nil {
		return err
	}
	if _, err := e.store.Lignes().DeleteByDocument(ctx, key); err != nil {
		e.logger.Warn("Failed to delete lignes of deleted document", "document_key", key, "error", err)
	}
	e.publish(ctx, events.NewChange(events.EntityDocument, key, events.OpDelete).WithActor(actor))
	return nil
}

// BulkDeleteDocuments removes every listed document, skipping keys that no
// longer exist, and returns the number actually deleted.
func (e *Engine) BulkDeleteDocuments(ctx context.Context, keys []string, actor string) (int, error) {
	deleted, err := e.store.Documents().DeleteMany(ctx, keys)
	if err != nil {
		return 0, err
	}

	for _, key := range keys {
		if _, err := e.store.Lignes().DeleteByDocument(ctx, key); err != nil {
			e.logger.Warn("Failed to delete lignes of deleted document", "document_key", key, "error", err)
		}
		e.publish(ctx, events.NewChange(events.EntityDocument, key, events.OpDelete).WithActor(actor))
	}
	return deleted, nil
}
