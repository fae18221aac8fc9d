package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"simple", "doc-123", true},
		{"uuid", "550e8400-e29b-41d4-a716-446655440000", true},
		{"dots and underscores", "a_b.c-d", true},
		{"empty", "", false},
		{"slash", "a/b", false},
		{"space", "a b", false},
		{"too long", string(make([]byte, 65)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckKey(tt.key))
		})
	}
}

func TestDocument_Validate(t *testing.T) {
	valid := Document{DocumentKey: "d1", Title: "Invoice", TypeKey: "facture", StatusCode: StatusDraft}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"bad key", func(d *Document) { d.DocumentKey = "a/b" }},
		{"missing title", func(d *Document) { d.Title = "" }},
		{"missing type", func(d *Document) { d.TypeKey = "" }},
		{"bad status", func(d *Document) { d.StatusCode = DocumentStatus(42) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			assert.Error(t, d.Validate())
		})
	}
}

func TestDocument_Normalize(t *testing.T) {
	var d Document
	d.StatusCode = DocumentStatus(99)
	d.Normalize()

	assert.True(t, CheckKey(d.DocumentKey))
	assert.NotZero(t, d.DocDate)
	assert.Equal(t, StatusDraft, d.StatusCode)

	// Existing values survive.
	d2 := Document{DocumentKey: "d1", DocDate: 42, StatusCode: StatusCompleted}
	d2.Normalize()
	assert.Equal(t, "d1", d2.DocumentKey)
	assert.Equal(t, int64(42), d2.DocDate)
	assert.Equal(t, StatusCompleted, d2.StatusCode)
}

func TestLigne_Normalize(t *testing.T) {
	l := Ligne{DocumentKey: "d1", Title: "Cement", Quantity: 10, PriceHT: 100, DiscountPercentage: 0.1, VatPercentage: 0.2}
	l.Normalize()

	require.True(t, CheckKey(l.LigneKey))
	assert.InDelta(t, 900.0, l.AmountHT, 1e-9)
	assert.InDelta(t, 180.0, l.AmountVAT, 1e-9)
	assert.InDelta(t, 1080.0, l.AmountTTC, 1e-9)

	// A fixed discount amount takes precedence over the percentage.
	l2 := Ligne{DocumentKey: "d1", Title: "Steel", Quantity: 2, PriceHT: 50, DiscountAmount: 30, DiscountPercentage: 0.5}
	l2.Normalize()
	assert.InDelta(t, 70.0, l2.AmountHT, 1e-9)
	assert.InDelta(t, 70.0, l2.AmountTTC, 1e-9)
}

func TestLigne_Validate(t *testing.T) {
	valid := Ligne{DocumentKey: "d1", Title: "Cement", Quantity: 1, PriceHT: 2}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Ligne)
	}{
		{"missing document", func(l *Ligne) { l.DocumentKey = "" }},
		{"no title nor article", func(l *Ligne) { l.Title, l.Article = "", "" }},
		{"negative quantity", func(l *Ligne) { l.Quantity = -1 }},
		{"negative price", func(l *Ligne) { l.PriceHT = -1 }},
		{"discount above 1", func(l *Ligne) { l.DiscountPercentage = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			assert.Error(t, l.Validate())
		})
	}
}

func TestParseApprovalState(t *testing.T) {
	tests := []struct {
		in   string
		want ApprovalState
	}{
		{"Pending", ApprovalPending},
		{"InProgress", ApprovalPending},
		{"in_progress", ApprovalPending},
		{"  Waiting ", ApprovalPending},
		{"open", ApprovalPending},
		{"Approved", ApprovalAccepted},
		{"accepted", ApprovalAccepted},
		{"REJECTED", ApprovalRejected},
		{"refused", ApprovalRejected},
		{"gibberish", ApprovalState("")},
		{"", ApprovalState("")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseApprovalState(tt.in))
		})
	}
}

func TestApprovalRequest_IsPlaceholder(t *testing.T) {
	assert.True(t, ApprovalRequest{}.IsPlaceholder())
	assert.False(t, ApprovalRequest{AssignedTo: "alice"}.IsPlaceholder())
	assert.False(t, ApprovalRequest{GroupKey: "g1"}.IsPlaceholder())
}

func TestApprovalRule_IsValid(t *testing.T) {
	for _, r := range []ApprovalRule{RuleNone, RuleIndividual, RuleGroupAny, RuleGroupAll, RuleSequential} {
		assert.True(t, r.IsValid())
	}
	assert.False(t, ApprovalRule("majority").IsValid())
}

func TestUser_HasRole(t *testing.T) {
	u := User{Roles: []string{RoleAdmin, RoleFullUser}}
	assert.True(t, u.HasRole(RoleAdmin))
	assert.False(t, u.HasRole(RoleSimple))
	assert.False(t, User{}.HasRole(RoleAdmin))
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled(context.Canceled))
	assert.True(t, IsCanceled(context.DeadlineExceeded))
	assert.True(t, IsCanceled(ErrCanceled))
	assert.True(t, IsCanceled(errors.New("operation failed: context canceled")))
	assert.False(t, IsCanceled(nil))
	assert.False(t, IsCanceled(ErrNotFound))

	assert.Equal(t, ErrCanceled, WrapError(context.Canceled))
	assert.Equal(t, ErrNotFound, WrapError(ErrNotFound))
	assert.NoError(t, WrapError(nil))
}
