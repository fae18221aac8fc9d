package model

// Reference data rows served to line-item pickers. These tables are imported
// from the ERP side and are read-mostly; each row's code is its canonical key.

// Item is a stock or service article.
type Item struct {
	Code        string  `json:"code" bson:"_id"`
	Description string  `json:"description" bson:"description"`
	Unit        string  `json:"unit,omitempty" bson:"unit,omitempty"`
	UnitPrice   float64 `json:"unitPrice" bson:"unit_price"`
}

func (i Item) Key() string { return i.Code }

// GeneralAccount is a ledger account usable on a line.
type GeneralAccount struct {
	Code        string `json:"code" bson:"_id"`
	Description string `json:"description" bson:"description"`
	AccountType string `json:"accountType,omitempty" bson:"account_type,omitempty"`
}

func (a GeneralAccount) Key() string { return a.Code }

// Vendor is a supplier tier.
type Vendor struct {
	Code    string `json:"vendorCode" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

func (v Vendor) Key() string { return v.Code }

// Customer is a client tier.
type Customer struct {
	Code    string `json:"customerCode" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

func (c Customer) Key() string { return c.Code }

// Location is a warehouse or site code.
type Location struct {
	Code        string `json:"locationCode" bson:"_id"`
	Description string `json:"description" bson:"description"`
}

func (l Location) Key() string { return l.Code }
