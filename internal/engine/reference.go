package engine

import (
	"context"
	"fmt"

	"docuflow/pkg/model"
)

// Reference data: read-mostly lookup tables served to pickers. Lists run the
// shared pipeline so pickers can search and page like any other view. Writes
// are admin-only imports, so they skip the change-event bus.

func (e *Engine) ListDocumentTypes(ctx context.Context, req ListRequest) (ListResult[model.DocumentType], error) {
	rows, err := e.store.Reference().ListTypes(ctx)
	if err != nil {
		return ListResult[model.DocumentType]{}, err
	}
	return runList(e, e.types, rows, req), nil
}

func (e *Engine) PutDocumentType(ctx context.Context, typ *model.DocumentType) error {
	if typ.TypeKey == "" || typ.TypeName == "" {
		return fmt.Errorf("%w: typeKey and typeName are required", model.ErrInvalidQuery)
	}
	return e.store.Reference().PutType(ctx, typ)
}

func (e *Engine) DeleteDocumentType(ctx context.Context, key string) error {
	return e.store.Reference().DeleteType(ctx, key)
}

func (e *Engine) ListItems(ctx context.Context, req ListRequest) (ListResult[model.Item], error) {
	rows, err := e.store.Reference().ListItems(ctx)
	if err != nil {
		return ListResult[model.Item]{}, err
	}
	return runList(e, e.items, rows, req), nil
}

func (e *Engine) PutItem(ctx context.Context, item *model.Item) error {
	if item.Code == "" {
		return fmt.Errorf("%w: code is required", model.ErrInvalidQuery)
	}
	return e.store.Reference().PutItem(ctx, item)
}

func (e *Engine) DeleteItem(ctx context.Context, code string) error {
	return e.store.Reference().DeleteItem(ctx, code)
}

func (e *Engine) ListAccounts(ctx context.Context, req ListRequest) (ListResult[model.GeneralAccount], error) {
	rows, err := e.store.Reference().ListAccounts(ctx)
	if err != nil {
		return ListResult[model.GeneralAccount]{}, err
	}
	return runList(e, e.accounts, rows, req), nil
}

func (e *Engine) PutAccount(ctx context.Context, account *model.GeneralAccount) error {
	if account.Code == "" {
		return fmt.Errorf("%w: code is required", model.ErrInvalidQuery)
	}
	return e.store.Reference().PutAccount(ctx, account)
}

func (e *Engine) DeleteAccount(ctx context.Context, code string) error {
	return e.store.Reference().DeleteAccount(ctx, code)
}

func (e *Engine) ListVendors(ctx context.Context, req ListRequest) (ListResult[model.Vendor], error) {
	rows, err := e.store.Reference().ListVendors(ctx)
	if err != nil {
		return ListResult[model.Vendor]{}, err
	}
	return runList(e, e.vendors, rows, req), nil
}

func (e *Engine) PutVendor(ctx context.Context, vendor *model.Vendor) error {
	if vendor.Code == "" {
		return fmt.Errorf("%w: vendorCode is required", model.ErrInvalidQuery)
	}
	return e.store.Reference().PutVendor(ctx, vendor)
}

func (e *Engine) DeleteVendor(ctx context.Context, code string) error {
	return e.store.Reference().DeleteVendor(ctx, code)
}

func (e *Engine) ListCustomers(ctx context.Context, req ListRequest) (ListResult[model.Customer], error) {
	rows, err := e.store.Reference().ListCustomers(ctx)
	if err != nil {
		return ListResult[model.Customer]{}, err
	}
	return runList(e, e.customers, rows, req), nil
}

func (e *Engine) PutCustomer(ctx context.Context, customer *model.Customer) error {
	if customer.Code == "" {
		return fmt.Errorf("%w: customerCode is required", model.ErrInvalidQuery)
	}
	return e.store.Reference().PutCustomer(ctx, customer)
}

func (e *Engine) DeleteCustomer(ctx context.Context, code string) error {
	return e.store.Reference().DeleteCustomer(ctx, code)
}

func (e *Engine) ListLocations(ctx context.Context, req ListRequest) (ListResult[model.Location], error) {
	rows, err := e.store.Reference().ListLocations(ctx)
	if err != nil {
		return ListResult[model.Location]{}, err
	}
	return runList(e, e.locations, rows, req), nil
}

func (e *Engine) PutLocation(ctx context.Context, location *model.Location) error {
	if location.Code == "" {
		return fmt.Errorf("%w: locationCode is required", model.ErrInvalidQuery)
	}
	return e.store.Reference().PutLocation(ctx, location)
}

func (e *Engine) DeleteLocation(ctx context.Context, code string) error {
	return e.store.Reference().DeleteLocation(ctx, code)
}
