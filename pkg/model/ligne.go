package model

import "errors"

// Ligne is a document line item. Amounts are computed once at the data
// boundary so list logic never recomputes or nil-checks them.
type Ligne struct {
	LigneKey           string  `json:"ligneKey" bson:"_id"`
	DocumentKey        string  `json:"documentKey" bson:"document_key"`
	Title              string  `json:"title" bson:"title"`
	Article            string  `json:"article" bson:"article"`
	ItemCode           string  `json:"itemCode,omitempty" bson:"item_code,omitempty"`
	AccountCode        string  `json:"accountCode,omitempty" bson:"account_code,omitempty"`
	LocationCode       string  `json:"locationCode,omitempty" bson:"location_code,omitempty"`
	Quantity           float64 `json:"quantity" bson:"quantity"`
	PriceHT            float64 `json:"priceHT" bson:"price_ht"`
	DiscountPercentage float64 `json:"discountPercentage" bson:"discount_percentage"`
	DiscountAmount     float64 `json:"discountAmount" bson:"discount_amount"`
	VatPercentage      float64 `json:"vatPercentage" bson:"vat_percentage"`
	AmountHT           float64 `json:"amountHT" bson:"amount_ht"`
	AmountVAT          float64 `json:"amountVAT" bson:"amount_vat"`
	AmountTTC          float64 `json:"amountTTC" bson:"amount_ttc"`
	CreatedAt          int64   `json:"createdAt" bson:"created_at"`
	UpdatedAt          int64   `json:"updatedAt" bson:"updated_at"`
}

// Key returns the canonical identifier.
func (l Ligne) Key() string { return l.LigneKey }

// Validate checks the line invariants enforced at the data boundary.
func (l Ligne) Validate() error {
	if l.DocumentKey == "" {
		return errors.New("documentKey is required")
	}
	if l.Title == "" && l.Article == "" {
		return errors.New("title or article is required")
	}
	if l.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	if l.PriceHT < 0 {
		return errors.New("priceHT cannot be negative")
	}
	if l.DiscountPercentage < 0 || l.DiscountPercentage > 1 {
		return errors.New("discountPercentage must be within [0, 1]")
	}
	return nil
}

// Normalize fills the key and derives the amount fields from quantity,
// unit price, discount and VAT. A non-zero DiscountAmount takes precedence
// over DiscountPercentage.
func (l *Ligne) Normalize() {
	if l.LigneKey == "" {
		l.LigneKey = NewKey()
	}
	gross := l.Quantity * l.PriceHT
	discount := l.DiscountAmount
	if discount == 0 && l.DiscountPercentage > 0 {
		discount = gross * l.DiscountPercentage
	}
	l.AmountHT = gross - discount
	l.AmountVAT = l.AmountHT * l.VatPercentage
	l.AmountTTC = l.AmountHT + l.AmountVAT
}
