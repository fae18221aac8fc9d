// Package mongo is the MongoDB storage backend. Each entity lives in its own
// collection keyed by _id; driver errors are mapped onto the model sentinels
// so callers never see driver types.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docuflow/internal/storage"
	"docuflow/pkg/model"
)

// Collection names.
const (
	collDocuments = "documents"
	collLignes    = "lignes"
	collCircuits  = "circuits"
	collSteps     = "steps"
	collStatuses  = "statuses"
	collApprovals = "approvals"
	collGroups    = "approval_groups"
	collResponses = "approval_responses"
	collTypes     = "document_types"
	collItems     = "items"
	collAccounts  = "general_accounts"
	collVendors   = "vendors"
	collCustomers = "customers"
	collLocations = "locations"
	collUsers     = "users"
	collSettings  = "settings"
)

// Backend implements storage.Backend on MongoDB.
type Backend struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ storage.Backend = (*Backend)(nil)

// NewBackend connects to MongoDB and verifies the connection.
func NewBackend(ctx context.Context, uri, dbName string) (*Backend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	b := &Backend{client: client, db: client.Database(dbName)}
	b.ensureIndexes(ctx)
	return b, nil
}

func (b *Backend) Documents() storage.DocumentStore {
	return &documentStore{b.db.Collection(collDocuments)}
}
func (b *Backend) Lignes() storage.LigneStore        { return &ligneStore{b.db.Collection(collLignes)} }
func (b *Backend) Workflow() storage.WorkflowStore   { return newWorkflowStore(b.db) }
func (b *Backend) Approvals() storage.ApprovalStore  { return newApprovalStore(b.db) }
func (b *Backend) Reference() storage.ReferenceStore { return newReferenceStore(b.db) }
func (b *Backend) Users() storage.UserStore          { return &userStore{b.db.Collection(collUsers)} }
func (b *Backend) Settings() storage.KVStore         { return &kvStore{b.db.Collection(collSettings)} }

// Close disconnects from MongoDB.
func (b *Backend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

func (b *Backend) ensureIndexes(ctx context.Context) {
	indexes := map[string][]mongo.IndexModel{
		collLignes: {
			{Keys: bson.D{{Key: "document_key", Value: 1}}},
		},
		collSteps: {
			{Keys: bson.D{{Key: "circuit_key", Value: 1}, {Key: "order_index", Value: 1}}},
		},
		collStatuses: {
			{Keys: bson.D{{Key: "circuit_key", Value: 1}}},
		},
		collApprovals: {
			{Keys: bson.D{{Key: "document_key", Value: 1}}},
		},
		collResponses: {
			{Keys: bson.D{{Key: "approval_key", Value: 1}}},
		},
		collUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for coll, models := range indexes {
		if _, err := b.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			slog.Warn("Failed to ensure indexes", "collection", coll, "error", err)
		}
	}
}

// getByID decodes the row with the given _id, mapping driver errors to the
// model sentinels.
func getByID[T any](ctx context.Context, coll *mongo.Collection, key string) (*T, error) {
	var row T
	err := coll.FindOne(ctx, bson.M{"_id": key}).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, model.WrapError(err)
	}
	return &row, nil
}

// listRows returns all rows matching the filter, sorted by _id.
func listRows[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, model.WrapError(err)
	}
	defer cursor.Close(ctx)

	rows := make([]T, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, model.WrapError(err)
	}
	return rows, nil
}

func insertRow(ctx context.Context, coll *mongo.Collection, row any) error {
	_, err := coll.InsertOne(ctx, row)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrExists
	}
	return model.WrapError(err)
}

func replaceRow(ctx context.Context, coll *mongo.Collection, key string, row any) error {
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": key}, row)
	if err != nil {
		return model.WrapError(err)
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func upsertRow(ctx context.Context, coll *mongo.Collection, key string, row any) error {
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": key}, row, options.Replace().SetUpsert(true))
	return model.WrapError(err)
}

func deleteRow(ctx context.Context, coll *mongo.Collection, key string) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return model.WrapError(err)
	}
	if result.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
