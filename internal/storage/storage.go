// Package storage defines the persistence ports the engine runs on. Two
// backends implement them: an in-process memory backend for tests and
// single-node runs, and a MongoDB backend for real deployments.
package storage

import (
	"context"

	"docuflow/pkg/model"
)

// Backend bundles every store behind one connection lifecycle.
type Backend interface {
	Documents() DocumentStore
	Lignes() LigneStore
	Workflow() WorkflowStore
	Approvals() ApprovalStore
	Reference() ReferenceStore
	Users() UserStore
	Settings() KVStore

	Close(ctx context.Context) error
}

// DocumentStore persists documents. Update applies an optimistic version
// check: the stored version must match the incoming one, and the write
// increments it.
type DocumentStore interface {
	Get(ctx context.Context, key string) (*model.Document, error)
	List(ctx context.Context) ([]model.Document, error)
	Create(ctx context.Context, doc *model.Document) error
	Update(ctx context.Context, doc *model.Document) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) (int, error)
}

// LigneStore persists document line items.
type LigneStore interface {
	Get(ctx context.Context, key string) (*model.Ligne, error)
	ListByDocument(ctx context.Context, documentKey string) ([]model.Ligne, error)
	Create(ctx context.Context, ligne *model.Ligne) error
	Update(ctx context.Context, ligne *model.Ligne) error
	Delete(ctx context.Context, key string) error
	DeleteByDocument(ctx context.Context, documentKey string) (int, error)
}

// WorkflowStore persists circuits, their steps and their statuses.
type WorkflowStore interface {
	GetCircuit(ctx context.Context, key string) (*model.Circuit, error)
	ListCircuits(ctx context.Context) ([]model.Circuit, error)
	CreateCircuit(ctx context.Context, circuit *model.Circuit) error
	UpdateCircuit(ctx context.Context, circuit *model.Circuit) error
	DeleteCircuit(ctx context.Context, key string) error

	GetStep(ctx context.Context, key string) (*model.Step, error)
	ListSteps(ctx context.Context, circuitKey string) ([]model.Step, error)
	CreateStep(ctx context.Context, step *model.Step) error
	UpdateStep(ctx context.Context, step *model.Step) error
	DeleteStep(ctx context.Context, key string) error

	GetStatus(ctx context.Context, key string) (*model.Status, error)
	ListStatuses(ctx context.Context, circuitKey string) ([]model.Status, error)
	CreateStatus(ctx context.Context, status *model.Status) error
	UpdateStatus(ctx context.Context, status *model.Status) error
	DeleteStatus(ctx context.Context, key string) error
}

// ApprovalStore persists approval requests, groups and responses.
type ApprovalStore interface {
	Get(ctx context.Context, key string) (*model.ApprovalRequest, error)
	// ListByDocument returns the document's approval history ordered by
	// CreatedAt descending, keys ascending on ties. Callers scanning for
	// the effective approval rely on newest-first order.
	ListByDocument(ctx context.Context, documentKey string) ([]model.ApprovalRequest, error)
	Create(ctx context.Context, req *model.ApprovalRequest) error
	Update(ctx context.Context, req *model.ApprovalRequest) error

	GetGroup(ctx context.Context, key string) (*model.ApprovalGroup, error)
	ListGroups(ctx context.Context) ([]model.ApprovalGroup, error)
	PutGroup(ctx context.Context, group *model.ApprovalGroup) error

	ListResponses(ctx context.Context, approvalKey string) ([]model.ApprovalResponse, error)
	SaveResponse(ctx context.Context, resp *model.ApprovalResponse) error
}

// ReferenceStore persists the lookup tables.
type ReferenceStore interface {
	ListTypes(ctx context.Context) ([]model.DocumentType, error)
	PutType(ctx context.Context, typ *model.DocumentType) error
	DeleteType(ctx context.Context, key string) error

	ListItems(ctx context.Context) ([]model.Item, error)
	PutItem(ctx context.Context, item *model.Item) error
	DeleteItem(ctx context.Context, code string) error

	ListAccounts(ctx context.Context) ([]model.GeneralAccount, error)
	PutAccount(ctx context.Context, account *model.GeneralAccount) error
	DeleteAccount(ctx context.Context, code string) error

	ListVendors(ctx context.Context) ([]model.Vendor, error)
	PutVendor(ctx context.Context, vendor *model.Vendor) error
	DeleteVendor(ctx context.Context, code string) error

	ListCustomers(ctx context.Context) ([]model.Customer, error)
	PutCustomer(ctx context.Context, customer *model.Customer) error
	DeleteCustomer(ctx context.Context, code string) error

	ListLocations(ctx context.Context) ([]model.Location, error)
	PutLocation(ctx context.Context, location *model.Location) error
	DeleteLocation(ctx context.Context, code string) error
}

// UserStore persists accounts.
type UserStore interface {
	Get(ctx context.Context, key string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

// KVStore is a small raw key-value port, used for per-user settings blobs.
// Get returns model.ErrNotFound when the key is absent.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
