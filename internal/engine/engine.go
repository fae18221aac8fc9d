// Package engine is the business layer: CRUD over the storage ports, list
// operations running the listview pipeline server-side, the approval
// projection, and change-event publishing after every mutation.
package engine

import (
	"context"
	"log/slog"

	"docuflow/internal/approval"
	"docuflow/internal/events"
	"docuflow/internal/pubsub"
	"docuflow/internal/storage"
	"docuflow/pkg/listview"
	"docuflow/pkg/model"
)

// Options tune the engine beyond its stores.
type Options struct {
	// Publisher receives change events after mutations. Nil disables
	// publishing.
	Publisher pubsub.Publisher

	// ExtraFacets adds configured facets per table name ("documents",
	// "lignes", "circuits", "items", ...) on top of the built-in ones.
	ExtraFacets map[string][]listview.Facet

	DefaultPageSize int
	MaxPageSize     int

	Logger *slog.Logger
}

// Engine executes every operation the gateway exposes.
type Engine struct {
	store     storage.Backend
	publisher pubsub.Publisher
	projector *approval.Projector
	logger    *slog.Logger

	documents *listview.Table[model.Document]
	lignes    *listview.Table[model.Ligne]
	circuits  *listview.Table[model.Circuit]
	steps     *listview.Table[model.Step]
	statuses  *listview.Table[model.Status]
	types     *listview.Table[model.DocumentType]
	items     *listview.Table[model.Item]
	accounts  *listview.Table[model.GeneralAccount]
	vendors   *listview.Table[model.Vendor]
	customers *listview.Table[model.Customer]
	locations *listview.Table[model.Location]

	defaultPageSize int
	maxPageSize     int
}

// New creates an engine over the backend.
func New(store storage.Backend, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defaultSize := opts.DefaultPageSize
	if defaultSize <= 0 {
		defaultSize = listview.DefaultPageSize
	}
	maxSize := opts.MaxPageSize
	if maxSize < defaultSize {
		maxSize = defaultSize * 10
	}

	e := &Engine{
		store:           store,
		publisher:       opts.Publisher,
		projector:       approval.NewProjector(store.Approvals(), logger),
		logger:          logger,
		documents:       documentTable(),
		lignes:          ligneTable(),
		circuits:        circuitTable(),
		steps:           stepTable(),
		statuses:        statusTable(),
		types:           documentTypeTable(),
		items:           itemTable(),
		accounts:        accountTable(),
		vendors:         vendorTable(),
		customers:       customerTable(),
		locations:       locationTable(),
		defaultPageSize: defaultSize,
		maxPageSize:     maxSize,
	}

	applyFacets(e.documents, opts.ExtraFacets["documents"])
	applyFacets(e.lignes, opts.ExtraFacets["lignes"])
	applyFacets(e.circuits, opts.ExtraFacets["circuits"])
	applyFacets(e.steps, opts.ExtraFacets["steps"])
	applyFacets(e.statuses, opts.ExtraFacets["statuses"])
	applyFacets(e.types, opts.ExtraFacets["document-types"])
	applyFacets(e.items, opts.ExtraFacets["items"])
	applyFacets(e.accounts, opts.ExtraFacets["accounts"])
	applyFacets(e.vendors, opts.ExtraFacets["vendors"])
	applyFacets(e.customers, opts.ExtraFacets["customers"])
	applyFacets(e.locations, opts.ExtraFacets["locations"])
	return e
}

// ListRequest carries one list view's query: search, facet selections,
// sort and page cursor. Zero values leave the view unconstrained.
type ListRequest struct {
	Search      string
	SearchField string
	Facets      map[string]string
	SortField   string
	SortDir     string
	Page        int
	PageSize    int
}

func (r ListRequest) criteria() listview.Criteria {
	return listview.Criteria{
		Search:      r.Search,
		SearchField: r.SearchField,
		Facets:      r.Facets,
	}
}

func (r ListRequest) sortSpec() listview.SortSpec {
	dir := listview.Asc
	if r.SortDir == string(listview.Desc) {
		dir = listview.Desc
	}
	return listview.SortSpec{Field: r.SortField, Direction: dir}
}

func (r ListRequest) pageState(defaultSize, maxSize int) listview.PageState {
	size := r.PageSize
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return listview.PageState{Current: r.Page, Size: size}
}

// ListResult is one page of rows plus bucket tallies for the view's facets.
// Counts are taken over the filtered set, so they reflect the active search
// and facet selections.
type ListResult[T any] struct {
	listview.Page[T]
	FacetCounts map[string]map[string]int `json:"facetCounts,omitempty"`
}

// runList executes the shared Filter -> Sort -> Paginate pipeline.
func runList[T any](e *Engine, table *listview.Table[T], rows []T, req ListRequest) ListResult[T] {
	filtered := table.Filter(rows, req.criteria())
	sorted := table.Sort(filtered, req.sortSpec())
	return ListResult[T]{
		Page:        listview.Paginate(sorted, req.pageState(e.defaultPageSize, e.maxPageSize)),
		FacetCounts: table.FacetCounts(filtered),
	}
}

// publish sends a change event. Delivery is best effort: failures are logged
// and never fail the mutation that produced them.
func (e *Engine) publish(ctx context.Context, change events.Change) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, change.Subject(), change.Encode()); err != nil {
		e.logger.Warn("Failed to publish change event",
			"subject", change.Subject(),
			"key", change.Key,
			"error", err,
		)
	}
}

// ApprovalView renders the approval panel for a document.
func (e *Engine) ApprovalView(ctx context.Context, documentKey string) (*approval.View, error) {
	if _, err := e.store.Documents().Get(ctx, documentKey); err != nil {
		return nil, err
	}
	return e.projector.Project(ctx, documentKey)
}
