package memory

import (
	"context"
	"sort"

	"docuflow/internal/storage"
	"docuflow/pkg/model"
)

type documentStore struct{ b *Backend }

var _ storage.DocumentStore = (*documentStore)(nil)

func (s *documentStore) Get(ctx context.Context, key string) (*model.Document, error) {
	doc, err := s.b.documents.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *documentStore) List(ctx context.Context) ([]model.Document, error) {
	return s.b.documents.list(ctx, nil)
}

func (s *documentStore) Create(ctx context.Context, doc *model.Document) error {
	return s.b.documents.create(ctx, doc.DocumentKey, *doc)
}

// Update enforces the optimistic version check and bumps the version on
// success, mirroring the mongo backend.
func (s *documentStore) Update(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return model.WrapError(err)
	}
	t := s.b.documents
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.rows[doc.DocumentKey]
	if !ok {
		return model.ErrNotFound
	}
	if current.Version != doc.Version {
		return model.ErrPreconditionFailed
	}
	next := *doc
	next.Version++
	t.rows[doc.DocumentKey] = next
	doc.Version = next.Version
	return nil
}

func (s *documentStore) Delete(ctx context.Context, key string) error {
	return s.b.documents.delete(ctx, key)
}

func (s *documentStore) DeleteMany(ctx context.Context, keys []string) (int, error) {
	wanted := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		wanted[key] = struct{}{}
	}
	return s.b.documents.deleteWhere(ctx, func(d model.Document) bool {
		_, ok := wanted[d.DocumentKey]
		return ok
	})
}

type ligneStore struct{ b *Backend }

var _ storage.LigneStore = (*ligneStore)(nil)

func (s *ligneStore) Get(ctx context.Context, key string) (*model.Ligne, error) {
	ligne, err := s.b.lignes.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &ligne, nil
}

func (s *ligneStore) ListByDocument(ctx context.Context, documentKey string) ([]model.Ligne, error) {
	return s.b.lignes.list(ctx, func(l model.Ligne) bool { return l.DocumentKey == documentKey })
}

func (s *ligneStore) Create(ctx context.Context, ligne *model.Ligne) error {
	return s.b.lignes.create(ctx, ligne.LigneKey, *ligne)
}

func (s *ligneStore) Update(ctx context.Context, ligne *model.Ligne) error {
	return s.b.lignes.update(ctx, ligne.LigneKey, *ligne)
}

func (s *ligneStore) Delete(ctx context.Context, key string) error {
	return s.b.lignes.delete(ctx, key)
}

func (s *ligneStore) DeleteByDocument(ctx context.Context, documentKey string) (int, error) {
	return s.b.lignes.deleteWhere(ctx, func(l model.Ligne) bool { return l.DocumentKey == documentKey })
}

type workflowStore struct{ b *Backend }

var _ storage.WorkflowStore = (*workflowStore)(nil)

func (s *workflowStore) GetCircuit(ctx context.Context, key string) (*model.Circuit, error) {
	circuit, err := s.b.circuits.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &circuit, nil
}

func (s *workflowStore) ListCircuits(ctx context.Context) ([]model.Circuit, error) {
	return s.b.circuits.list(ctx, nil)
}

func (s *workflowStore) CreateCircuit(ctx context.Context, circuit *model.Circuit) error {
	return s.b.circuits.create(ctx, circuit.CircuitKey, *circuit)
}

func (s *workflowStore) UpdateCircuit(ctx context.Context, circuit *model.Circuit) error {
	return s.b.circuits.update(ctx, circuit.CircuitKey, *circuit)
}

func (s *workflowStore) DeleteCircuit(ctx context.Context, key string) error {
	return s.b.circuits.delete(ctx, key)
}

func (s *workflowStore) GetStep(ctx context.Context, key string) (*model.Step, error) {
	step, err := s.b.steps.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (s *workflowStore) ListSteps(ctx context.Context, circuitKey string) ([]model.Step, error) {
	return s.b.steps.list(ctx, func(st model.Step) bool { return st.CircuitKey == circuitKey })
}

func (s *workflowStore) CreateStep(ctx context.Context, step *model.Step) error {
	return s.b.steps.create(ctx, step.StepKey, *step)
}

func (s *workflowStore) UpdateStep(ctx context.Context, step *model.Step) error {
	return s.b.steps.update(ctx, step.StepKey, *step)
}

func (s *workflowStore) DeleteStep(ctx context.Context, key string) error {
	return s.b.steps.delete(ctx, key)
}

func (s *workflowStore) GetStatus(ctx context.Context, key string) (*model.Status, error) {
	status, err := s.b.statuses.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *workflowStore) ListStatuses(ctx context.Context, circuitKey string) ([]model.Status, error) {
	return s.b.statuses.list(ctx, func(st model.Status) bool { return st.CircuitKey == circuitKey })
}

func (s *workflowStore) CreateStatus(ctx context.Context, status *model.Status) error {
	return s.b.statuses.create(ctx, status.StatusKey, *status)
}

func (s *workflowStore) UpdateStatus(ctx context.Context, status *model.Status) error {
	return s.b.statuses.update(ctx, status.StatusKey, *status)
}

func (s *workflowStore) DeleteStatus(ctx context.Context, key string) error {
	return s.b.statuses.delete(ctx, key)
}

type approvalStore struct{ b *Backend }

var _ storage.ApprovalStore = (*approvalStore)(nil)

func (s *approvalStore) Get(ctx context.Context, key string) (*model.ApprovalRequest, error) {
	req, err := s.b.approvals.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByDocument returns a document's approvals newest first, matching the
// mongo backend; ties break on key so the order stays deterministic.
func (s *approvalStore) ListByDocument(ctx context.Context, documentKey string) ([]model.ApprovalRequest, error) {
	rows, err := s.b.approvals.list(ctx, func(a model.ApprovalRequest) bool { return a.DocumentKey == documentKey })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt != rows[j].CreatedAt {
			return rows[i].CreatedAt > rows[j].CreatedAt
		}
		return rows[i].ApprovalKey < rows[j].ApprovalKey
	})
	return rows, nil
}

func (s *approvalStore) Create(ctx context.Context, req *model.ApprovalRequest) error {
	return s.b.approvals.create(ctx, req.ApprovalKey, *req)
}

func (s *approvalStore) Update(ctx context.Context, req *model.ApprovalRequest) error {
	return s.b.approvals.update(ctx, req.ApprovalKey, *req)
}

func (s *approvalStore) GetGroup(ctx context.Context, key string) (*model.ApprovalGroup, error) {
	group, err := s.b.groups.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *approvalStore) ListGroups(ctx context.Context) ([]model.ApprovalGroup, error) {
	return s.b.groups.list(ctx, nil)
}

func (s *approvalStore) PutGroup(ctx context.Context, group *model.ApprovalGroup) error {
	return s.b.groups.put(ctx, group.GroupKey, *group)
}

func (s *approvalStore) ListResponses(ctx context.Context, approvalKey string) ([]model.ApprovalResponse, error) {
	return s.b.responses.list(ctx, func(r model.ApprovalResponse) bool { return r.ApprovalKey == approvalKey })
}

func (s *approvalStore) SaveResponse(ctx context.Context, resp *model.ApprovalResponse) error {
	return s.b.responses.put(ctx, resp.ResponseKey, *resp)
}

type referenceStore struct{ b *Backend }

var _ storage.ReferenceStore = (*referenceStore)(nil)

func (s *referenceStore) ListTypes(ctx context.Context) ([]model.DocumentType, error) {
	return s.b.types.list(ctx, nil)
}

func (s *referenceStore) PutType(ctx context.Context, typ *model.DocumentType) error {
	return s.b.types.put(ctx, typ.TypeKey, *typ)
}

func (s *referenceStore) DeleteType(ctx context.Context, key string) error {
	return s.b.types.delete(ctx, key)
}

func (s *referenceStore) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.b.items.list(ctx, nil)
}

func (s *referenceStore) PutItem(ctx context.Context, item *model.Item) error {
	return s.b.items.put(ctx, item.Code, *item)
}

func (s *referenceStore) DeleteItem(ctx context.Context, code string) error {
	return s.b.items.delete(ctx, code)
}

func (s *referenceStore) ListAccounts(ctx context.Context) ([]model.GeneralAccount, error) {
	return s.b.accounts.list(ctx, nil)
}

func (s *referenceStore) PutAccount(ctx context.Context, account *model.GeneralAccount) error {
	return s.b.accounts.put(ctx, account.Code, *account)
}

func (s *referenceStore) DeleteAccount(ctx context.Context, code string) error {
	return s.b.accounts.delete(ctx, code)
}

func (s *referenceStore) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	return s.b.vendors.list(ctx, nil)
}

func (s *referenceStore) PutVendor(ctx context.Context, vendor *model.Vendor) error {
	return s.b.vendors.put(ctx, vendor.Code, *vendor)
}

func (s *referenceStore) DeleteVendor(ctx context.Context, code string) error {
	return s.b.vendors.delete(ctx, code)
}

func (s *referenceStore) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.b.customers.list(ctx, nil)
}

func (s *referenceStore) PutCustomer(ctx context.Context, customer *model.Customer) error {
	return s.b.customers.put(ctx, customer.Code, *customer)
}

func (s *referenceStore) DeleteCustomer(ctx context.Context, code string) error {
	return s.b.customers.delete(ctx, code)
}

func (s *referenceStore) ListLocations(ctx context.Context) ([]model.Location, error) {
	return s.b.locations.list(ctx, nil)
}

func (s *referenceStore) PutLocation(ctx context.Context, location *model.Location) error {
	return s.b.locations.put(ctx, location.Code, *location)
}

func (s *referenceStore) DeleteLocation(ctx context.Context, code string) error {
	return s.b.locations.delete(ctx, code)
}

type userStore struct{ b *Backend }

var _ storage.UserStore = (*userStore)(nil)

func (s *userStore) Get(ctx context.Context, key string) (*model.User, error) {
	user, err := s.b.users.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := s.b.users.list(ctx, func(u model.User) bool { return u.Username == username })
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, model.ErrNotFound
	}
	return &users[0], nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	if _, err := s.GetByUsername(ctx, user.Username); err == nil {
		return model.ErrExists
	}
	return s.b.users.create(ctx, user.UserKey, *user)
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	return s.b.users.update(ctx, user.UserKey, *user)
}

type kvStore struct{ b *Backend }

var _ storage.KVStore = (*kvStore)(nil)

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.b.settings.get(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *kvStore) Put(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	return s.b.settings.put(ctx, key, stored)
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	return s.b.settings.delete(ctx, key)
}
