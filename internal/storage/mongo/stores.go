package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docuflow/internal/storage"
	"docuflow/pkg/model"
)

type documentStore struct {
	coll *mongo.Collection
}

var _ storage.DocumentStore = (*documentStore)(nil)

func (s *documentStore) Get(ctx context.Context, key string) (*model.Document, error) {
	return getByID[model.Document](ctx, s.coll, key)
}

func (s *documentStore) List(ctx context.Context) ([]model.Document, error) {
	return listRows[model.Document](ctx, s.coll, bson.M{})
}

func (s *documentStore) Create(ctx context.Context, doc *model.Document) error {
	return insertRow(ctx, s.coll, doc)
}

// Update replaces the document only when the stored version matches,
// incrementing the version on success.
func (s *documentStore) Update(ctx context.Context, doc *model.Document) error {
	next := *doc
	next.Version = doc.Version + 1
	next.UpdatedAt = time.Now().UnixMilli()

	filter := bson.M{"_id": doc.DocumentKey, "version": doc.Version}
	result, err := s.coll.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return model.WrapError(err)
	}
	if result.MatchedCount == 0 {
		count, countErr := s.coll.CountDocuments(ctx, bson.M{"_id": doc.DocumentKey})
		if countErr != nil {
			return model.WrapError(countErr)
		}
		if count == 0 {
			return model.ErrNotFound
		}
		return model.ErrPreconditionFailed
	}
	doc.Version = next.Version
	doc.UpdatedAt = next.UpdatedAt
	return nil
}

func (s *documentStore) Delete(ctx context.Context, key string) error {
	return deleteRow(ctx, s.coll, key)
}

func (s *documentStore) DeleteMany(ctx context.Context, keys []string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	result, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return 0, model.WrapError(err)
	}
	return int(result.DeletedCount), nil
}

type ligneStore struct {
	coll *mongo.Collection
}

var _ storage.LigneStore = (*ligneStore)(nil)

func (s *ligneStore) Get(ctx context.Context, key string) (*model.Ligne, error) {
	return getByID[model.Ligne](ctx, s.coll, key)
}

func (s *ligneStore) ListByDocument(ctx context.Context, documentKey string) ([]model.Ligne, error) {
	return listRows[model.Ligne](ctx, s.coll, bson.M{"document_key": documentKey})
}

func (s *ligneStore) Create(ctx context.Context, ligne *model.Ligne) error {
	return insertRow(ctx, s.coll, ligne)
}

func (s *ligneStore) Update(ctx context.Context, ligne *model.Ligne) error {
	return replaceRow(ctx, s.coll, ligne.LigneKey, ligne)
}

func (s *ligneStore) Delete(ctx context.Context, key string) error {
	return deleteRow(ctx, s.coll, key)
}

func (s *ligneStore) DeleteByDocument(ctx context.Context, documentKey string) (int, error) {
	result, err := s.coll.DeleteMany(ctx, bson.M{"document_key": documentKey})
	if err != nil {
		return 0, model.WrapError(err)
	}
	return int(result.DeletedCount), nil
}

type workflowStore struct {
	circuits *mongo.Collection
	steps    *mongo.Collection
	statuses *mongo.Collection
}

var _ storage.WorkflowStore = (*workflowStore)(nil)

func newWorkflowStore(db *mongo.Database) *workflowStore {
	return &workflowStore{
		circuits: db.Collection(collCircuits),
		steps:    db.Collection(collSteps),
		statuses: db.Collection(collStatuses),
	}
}

func (s *workflowStore) GetCircuit(ctx context.Context, key string) (*model.Circuit, error) {
	return getByID[model.Circuit](ctx, s.circuits, key)
}

func (s *workflowStore) ListCircuits(ctx context.Context) ([]model.Circuit, error) {
	return listRows[model.Circuit](ctx, s.circuits, bson.M{})
}

func (s *workflowStore) CreateCircuit(ctx context.Context, circuit *model.Circuit) error {
	return insertRow(ctx, s.circuits, circuit)
}

func (s *workflowStore) UpdateCircuit(ctx context.Context, circuit *model.Circuit) error {
	return replaceRow(ctx, s.circuits, circuit.CircuitKey, circuit)
}

func (s *workflowStore) DeleteCircuit(ctx context.Context, key string) error {
	return deleteRow(ctx, s.circuits, key)
}

func (s *workflowStore) GetStep(ctx context.Context, key string) (*model.Step, error) {
	return getByID[model.Step](ctx, s.steps, key)
}

// ListSteps returns a circuit's steps in flow order.
func (s *workflowStore) ListSteps(ctx context.Context, circuitKey string) ([]model.Step, error) {
	cursor, err := s.steps.Find(ctx, bson.M{"circuit_key": circuitKey},
		options.Find().SetSort(bson.D{{Key: "order_index", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, model.WrapError(err)
	}
	defer cursor.Close(ctx)

	steps := make([]model.Step, 0)
	if err := cursor.All(ctx, &steps); err != nil {
		return nil, model.WrapError(err)
	}
	return steps, nil
}

func (s *workflowStore) CreateStep(ctx context.Context, step *model.Step) error {
	return insertRow(ctx, s.steps, step)
}

func (s *workflowStore) UpdateStep(ctx context.Context, step *model.Step) error {
	return replaceRow(ctx, s.steps, step.StepKey, step)
}

func (s *workflowStore) DeleteStep(ctx context.Context, key string) error {
	return deleteRow(ctx, s.steps, key)
}

func (s *workflowStore) GetStatus(ctx context.Context, key string) (*model.Status, error) {
	return getByID[model.Status](ctx, s.statuses, key)
}

func (s *workflowStore) ListStatuses(ctx context.Context, circuitKey string) ([]model.Status, error) {
	return listRows[model.Status](ctx, s.statuses, bson.M{"circuit_key": circuitKey})
}

func (s *workflowStore) CreateStatus(ctx context.Context, status *model.Status) error {
	return insertRow(ctx, s.statuses, status)
}

func (s *workflowStore) UpdateStatus(ctx context.Context, status *model.Status) error {
	return replaceRow(ctx, s.statuses, status.StatusKey, status)
}

func (s *workflowStore) DeleteStatus(ctx context.Context, key string) error {
	return deleteRow(ctx, s.statuses, key)
}

type approvalStore struct {
	approvals *mongo.Collection
	groups    *mongo.Collection
	responses *mongo.Collection
}

var _ storage.ApprovalStore = (*approvalStore)(nil)

func newApprovalStore(db *mongo.Database) *approvalStore {
	return &approvalStore{
		approvals: db.Collection(collApprovals),
		groups:    db.Collection(collGroups),
		responses: db.Collection(collResponses),
	}
}

func (s *approvalStore) Get(ctx context.Context, key string) (*model.ApprovalRequest, error) {
	return getByID[model.ApprovalRequest](ctx, s.approvals, key)
}

// ListByDocument returns a document's approvals newest first, so the first
// pending row is the effective one.
func (s *approvalStore) ListByDocument(ctx context.Context, documentKey string) ([]model.ApprovalRequest, error) {
	cursor, err := s.approvals.Find(ctx, bson.M{"document_key": documentKey},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, model.WrapError(err)
	}
	defer cursor.Close(ctx)

	approvals := make([]model.ApprovalRequest, 0)
	if err := cursor.All(ctx, &approvals); err != nil {
		return nil, model.WrapError(err)
	}
	return approvals, nil
}

func (s *approvalStore) Create(ctx context.Context, req *model.ApprovalRequest) error {
	return insertRow(ctx, s.approvals, req)
}

func (s *approvalStore) Update(ctx context.Context, req *model.ApprovalRequest) error {
	return replaceRow(ctx, s.approvals, req.ApprovalKey, req)
}

func (s *approvalStore) GetGroup(ctx context.Context, key string) (*model.ApprovalGroup, error) {
	return getByID[model.ApprovalGroup](ctx, s.groups, key)
}

func (s *approvalStore) ListGroups(ctx context.Context) ([]model.ApprovalGroup, error) {
	return listRows[model.ApprovalGroup](ctx, s.groups, bson.M{})
}

func (s *approvalStore) PutGroup(ctx context.Context, group *model.ApprovalGroup) error {
	return upsertRow(ctx, s.groups, group.GroupKey, group)
}

func (s *approvalStore) ListResponses(ctx context.Context, approvalKey string) ([]model.ApprovalResponse, error) {
	return listRows[model.ApprovalResponse](ctx, s.responses, bson.M{"approval_key": approvalKey})
}

func (s *approvalStore) SaveResponse(ctx context.Context, resp *model.ApprovalResponse) error {
	return upsertRow(ctx, s.responses, resp.ResponseKey, resp)
}

type referenceStore struct {
	types     *mongo.Collection
	items     *mongo.Collection
	accounts  *mongo.Collection
	vendors   *mongo.Collection
	customers *mongo.Collection
	locations *mongo.Collection
}

var _ storage.ReferenceStore = (*referenceStore)(nil)

func newReferenceStore(db *mongo.Database) *referenceStore {
	return &referenceStore{
		types:     db.Collection(collTypes),
		items:     db.Collection(collItems),
		accounts:  db.Collection(collAccounts),
		vendors:   db.Collection(collVendors),
		customers: db.Collection(collCustomers),
		locations: db.Collection(collLocations),
	}
}

func (s *referenceStore) ListTypes(ctx context.Context) ([]model.DocumentType, error) {
	return listRows[model.DocumentType](ctx, s.types, bson.M{})
}

func (s *referenceStore) PutType(ctx context.Context, typ *model.DocumentType) error {
	return upsertRow(ctx, s.types, typ.TypeKey, typ)
}

func (s *referenceStore) DeleteType(ctx context.Context, key string) error {
	return deleteRow(ctx, s.types, key)
}

func (s *referenceStore) ListItems(ctx context.Context) ([]model.Item, error) {
	return listRows[model.Item](ctx, s.items, bson.M{})
}

func (s *referenceStore) PutItem(ctx context.Context, item *model.Item) error {
	return upsertRow(ctx, s.items, item.Code, item)
}

func (s *referenceStore) DeleteItem(ctx context.Context, code string) error {
	return deleteRow(ctx, s.items, code)
}

func (s *referenceStore) ListAccounts(ctx context.Context) ([]model.GeneralAccount, error) {
	return listRows[model.GeneralAccount](ctx, s.accounts, bson.M{})
}

func (s *referenceStore) PutAccount(ctx context.Context, account *model.GeneralAccount) error {
	return upsertRow(ctx, s.accounts, account.Code, account)
}

func (s *referenceStore) DeleteAccount(ctx context.Context, code string) error {
	return deleteRow(ctx, s.accounts, code)
}

func (s *referenceStore) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	return listRows[model.Vendor](ctx, s.vendors, bson.M{})
}

func (s *referenceStore) PutVendor(ctx context.Context, vendor *model.Vendor) error {
	return upsertRow(ctx, s.vendors, vendor.Code, vendor)
}

func (s *referenceStore) DeleteVendor(ctx context.Context, code string) error {
	return deleteRow(ctx, s.vendors, code)
}

func (s *referenceStore) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return listRows[model.Customer](ctx, s.customers, bson.M{})
}

func (s *referenceStore) PutCustomer(ctx context.Context, customer *model.Customer) error {
	return upsertRow(ctx, s.customers, customer.Code, customer)
}

func (s *referenceStore) DeleteCustomer(ctx context.Context, code string) error {
	return deleteRow(ctx, s.customers, code)
}

func (s *referenceStore) ListLocations(ctx context.Context) ([]model.Location, error) {
	return listRows[model.Location](ctx, s.locations, bson.M{})
}

func (s *referenceStore) PutLocation(ctx context.Context, location *model.Location) error {
	return upsertRow(ctx, s.locations, location.Code, location)
}

func (s *referenceStore) DeleteLocation(ctx context.Context, code string) error {
	return deleteRow(ctx, s.locations, code)
}

type userStore struct {
	coll *mongo.Collection
}

var _ storage.UserStore = (*userStore)(nil)

func (s *userStore) Get(ctx context.Context, key string) (*model.User, error) {
	return getByID[model.User](ctx, s.coll, key)
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, model.WrapError(err)
	}
	return &user, nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	return insertRow(ctx, s.coll, user)
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	return replaceRow(ctx, s.coll, user.UserKey, user)
}

// settingsRow is the raw settings blob stored per key.
type settingsRow struct {
	ID    string `bson:"_id"`
	Value []byte `bson:"value"`
}

type kvStore struct {
	coll *mongo.Collection
}

var _ storage.KVStore = (*kvStore)(nil)

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	row, err := getByID[settingsRow](ctx, s.coll, key)
	if err != nil {
		return nil, err
	}
	return row.Value, nil
}

func (s *kvStore) Put(ctx context.Context, key string, value []byte) error {
	return upsertRow(ctx, s.coll, key, &settingsRow{ID: key, Value: value})
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	return deleteRow(ctx, s.coll, key)
}
