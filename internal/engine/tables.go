package engine

import (
	"docuflow/pkg/listview"
	"docuflow/pkg/model"
)

// Every collection the gateway lists gets a table definition here, so the
// same Filter -> Sort -> Paginate pipeline serves documents, lignes, the
// workflow collections and the reference lookups alike.

// documentTable registers the searchable and sortable document fields.
func documentTable() *listview.Table[model.Document] {
	return listview.NewTable(model.Document.Key).
		Text("title", func(d model.Document) string { return d.Title }).
		Text("content", func(d model.Document) string { return d.Content }).
		Text("typeKey", func(d model.Document) string { return d.TypeKey }).
		Text("circuitKey", func(d model.Document) string { return d.CircuitKey }).
		Text("status", func(d model.Document) string { return d.StatusCode.String() }).
		Text("responsibleCentre", func(d model.Document) string { return d.ResponsibleCentre }).
		Text("externalRef", func(d model.Document) string { return d.ExternalRef }).
		Text("createdBy", func(d model.Document) string { return d.CreatedBy }).
		Number("statusCode", func(d model.Document) float64 { return float64(d.StatusCode) }).
		Number("docDate", func(d model.Document) float64 { return float64(d.DocDate) }).
		Number("comptableDate", func(d model.Document) float64 { return float64(d.ComptableDate) }).
		Number("createdAt", func(d model.Document) float64 { return float64(d.CreatedAt) }).
		Number("updatedAt", func(d model.Document) float64 { return float64(d.UpdatedAt) }).
		Facet(statusFacet())
}

// statusFacet buckets documents by lifecycle status code.
func statusFacet() listview.Facet {
	point := func(name string, s model.DocumentStatus) listview.Bucket {
		v := float64(s)
		return listview.Bucket{Name: name, Gte: &v, Lte: &v}
	}
	return listview.Facet{
		Name:  "statusFilter",
		Field: "statusCode",
		Buckets: []listview.Bucket{
			point("draft", model.StatusDraft),
			point("in_progress", model.StatusInProgress),
			point("completed", model.StatusCompleted),
			point("rejected", model.StatusRejected),
		},
	}
}

// ligneTable registers the line-item fields with the built-in facets.
func ligneTable() *listview.Table[model.Ligne] {
	return listview.NewTable(model.Ligne.Key).
		Text("title", func(l model.Ligne) string { return l.Title }).
		Text("article", func(l model.Ligne) string { return l.Article }).
		Text("itemCode", func(l model.Ligne) string { return l.ItemCode }).
		Text("accountCode", func(l model.Ligne) string { return l.AccountCode }).
		Text("locationCode", func(l model.Ligne) string { return l.LocationCode }).
		Number("quantity", func(l model.Ligne) float64 { return l.Quantity }).
		Number("priceHT", func(l model.Ligne) float64 { return l.PriceHT }).
		Number("discountPercentage", func(l model.Ligne) float64 { return l.DiscountPercentage }).
		Number("vatPercentage", func(l model.Ligne) float64 { return l.VatPercentage }).
		Number("amountHT", func(l model.Ligne) float64 { return l.AmountHT }).
		Number("amountVAT", func(l model.Ligne) float64 { return l.AmountVAT }).
		Number("amountTTC", func(l model.Ligne) float64 { return l.AmountTTC }).
		Number("createdAt", func(l model.Ligne) float64 { return float64(l.CreatedAt) }).
		Facet(listview.QuantityFacet()).
		Facet(listview.PriceFacet()).
		Facet(listview.AmountFacet()).
		Facet(listview.DiscountFacet())
}

func circuitTable() *listview.Table[model.Circuit] {
	return listview.NewTable(model.Circuit.Key).
		Text("title", func(c model.Circuit) string { return c.Title }).
		Text("descriptif", func(c model.Circuit) string { return c.Descriptif }).
		Text("documentTypeKey", func(c model.Circuit) string { return c.DocumentTypeKey }).
		Number("isActive", func(c model.Circuit) float64 { return flag(c.IsActive) }).
		Number("createdAt", func(c model.Circuit) float64 { return float64(c.CreatedAt) }).
		Number("updatedAt", func(c model.Circuit) float64 { return float64(c.UpdatedAt) }).
		Facet(activeFacet())
}

// activeFacet splits circuits on the activation flag.
func activeFacet() listview.Facet {
	on, off := 1.0, 0.0
	return listview.Facet{
		Name:  "activeFilter",
		Field: "isActive",
		Buckets: []listview.Bucket{
			{Name: "active", Gte: &on},
			{Name: "inactive", Lte: &off},
		},
	}
}

func stepTable() *listview.Table[model.Step] {
	return listview.NewTable(model.Step.Key).
		Text("title", func(s model.Step) string { return s.Title }).
		Text("descriptif", func(s model.Step) string { return s.Descriptif }).
		Text("currentStatusKey", func(s model.Step) string { return s.CurrentStatusKey }).
		Text("nextStatusKey", func(s model.Step) string { return s.NextStatusKey }).
		Text("approvalRule", func(s model.Step) string { return string(s.Rule) }).
		Text("assignedTo", func(s model.Step) string { return s.AssignedTo }).
		Number("orderIndex", func(s model.Step) float64 { return float64(s.OrderIndex) }).
		Number("createdAt", func(s model.Step) float64 { return float64(s.CreatedAt) })
}

func statusTable() *listview.Table[model.Status] {
	return listview.NewTable(model.Status.Key).
		Text("title", func(s model.Status) string { return s.Title }).
		Number("isInitial", func(s model.Status) float64 { return flag(s.IsInitial) }).
		Number("isFinal", func(s model.Status) float64 { return flag(s.IsFinal) }).
		Number("createdAt", func(s model.Status) float64 { return float64(s.CreatedAt) })
}

func documentTypeTable() *listview.Table[model.DocumentType] {
	return listview.NewTable(model.DocumentType.Key).
		Text("typeKey", func(t model.DocumentType) string { return t.TypeKey }).
		Text("typeName", func(t model.DocumentType) string { return t.TypeName }).
		Text("typeAttr", func(t model.DocumentType) string { return t.TypeAttr }).
		Text("tierType", func(t model.DocumentType) string { return t.TierType }).
		Number("createdAt", func(t model.DocumentType) float64 { return float64(t.CreatedAt) })
}

func itemTable() *listview.Table[model.Item] {
	return listview.NewTable(model.Item.Key).
		Text("code", func(i model.Item) string { return i.Code }).
		Text("description", func(i model.Item) string { return i.Description }).
		Text("unit", func(i model.Item) string { return i.Unit }).
		Number("unitPrice", func(i model.Item) float64 { return i.UnitPrice })
}

func accountTable() *listview.Table[model.GeneralAccount] {
	return listview.NewTable(model.GeneralAccount.Key).
		Text("code", func(a model.GeneralAccount) string { return a.Code }).
		Text("description", func(a model.GeneralAccount) string { return a.Description }).
		Text("accountType", func(a model.GeneralAccount) string { return a.AccountType })
}

func vendorTable() *listview.Table[model.Vendor] {
	return listview.NewTable(model.Vendor.Key).
		Text("vendorCode", func(v model.Vendor) string { return v.Code }).
		Text("name", func(v model.Vendor) string { return v.Name }).
		Text("city", func(v model.Vendor) string { return v.City }).
		Text("country", func(v model.Vendor) string { return v.Country })
}

func customerTable() *listview.Table[model.Customer] {
	return listview.NewTable(model.Customer.Key).
		Text("customerCode", func(c model.Customer) string { return c.Code }).
		Text("name", func(c model.Customer) string { return c.Name }).
		Text("city", func(c model.Customer) string { return c.City }).
		Text("country", func(c model.Customer) string { return c.Country })
}

func locationTable() *listview.Table[model.Location] {
	return listview.NewTable(model.Location.Key).
		Text("locationCode", func(l model.Location) string { return l.Code }).
		Text("description", func(l model.Location) string { return l.Description })
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// applyFacets layers configured facets on top of a table's built-in ones.
func applyFacets[T any](table *listview.Table[T], facets []listview.Facet) {
	for _, f := range facets {
		table.Facet(f)
	}
}
