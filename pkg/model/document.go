package model

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]{1,64}$`)

// CheckKey reports whether a record key is well-formed.
func CheckKey(key string) bool {
	return keyRegex.MatchString(key)
}

// NewKey generates a fresh record key.
func NewKey() string {
	return uuid.New().String()
}

// DocumentStatus is the lifecycle status of a document.
type DocumentStatus int

const (
	StatusDraft      DocumentStatus = 0
	StatusInProgress DocumentStatus = 1
	StatusCompleted  DocumentStatus = 2
	StatusRejected   DocumentStatus = 3
)

// IsValid checks if the status is a known value.
func (s DocumentStatus) IsValid() bool {
	return s >= StatusDraft && s <= StatusRejected
}

func (s DocumentStatus) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Document is a managed document moving through a workflow circuit.
//
// DocumentKey is the canonical identifier for every endpoint that serves
// documents; no alternative id fields exist.
type Document struct {
	DocumentKey       string         `json:"documentKey" bson:"_id"`
	Title             string         `json:"title" bson:"title"`
	Content           string         `json:"content" bson:"content"`
	TypeKey           string         `json:"typeKey" bson:"type_key"`
	SubTypeKey        string         `json:"subTypeKey,omitempty" bson:"sub_type_key,omitempty"`
	CircuitKey        string         `json:"circuitKey,omitempty" bson:"circuit_key,omitempty"`
	StatusCode        DocumentStatus `json:"status" bson:"status"`
	DocDate           int64          `json:"docDate" bson:"doc_date"`
	ComptableDate     int64          `json:"comptableDate,omitempty" bson:"comptable_date,omitempty"`
	ResponsibleCentre string         `json:"responsibleCentre,omitempty" bson:"responsible_centre,omitempty"`
	ExternalRef       string         `json:"externalRef,omitempty" bson:"external_ref,omitempty"`
	CreatedBy         string         `json:"createdBy" bson:"created_by"`
	CreatedAt         int64          `json:"createdAt" bson:"created_at"`
	UpdatedAt         int64          `json:"updatedAt" bson:"updated_at"`
	Version           int64          `json:"version" bson:"version"`
}

// Key returns the canonical identifier.
func (d Document) Key() string { return d.DocumentKey }

// Validate checks the document invariants enforced at the data boundary.
func (d Document) Validate() error {
	if d.DocumentKey != "" && !CheckKey(d.DocumentKey) {
		return errors.New("invalid documentKey: must be 1-64 characters of a-z, A-Z, 0-9, _, ., -")
	}
	if d.Title == "" {
		return errors.New("title is required")
	}
	if d.TypeKey == "" {
		return errors.New("typeKey is required")
	}
	if !d.StatusCode.IsValid() {
		return errors.New("unknown document status")
	}
	return nil
}

// Normalize fills boundary defaults so downstream logic can assume
// well-formed fields: a key, a doc date and a draft status.
func (d *Document) Normalize() {
	if d.DocumentKey == "" {
		d.DocumentKey = NewKey()
	}
	if d.DocDate == 0 {
		d.DocDate = time.Now().UnixMilli()
	}
	if !d.StatusCode.IsValid() {
		d.StatusCode = StatusDraft
	}
}

// DocumentType is a reference row describing a kind of document.
type DocumentType struct {
	TypeKey   string `json:"typeKey" bson:"_id"`
	TypeName  string `json:"typeName" bson:"type_name"`
	TypeAttr  string `json:"typeAttr,omitempty" bson:"type_attr,omitempty"`
	TierType  string `json:"tierType,omitempty" bson:"tier_type,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"created_at"`
}

func (t DocumentType) Key() string { return t.TypeKey }
