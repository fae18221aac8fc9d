// Package events defines the canonical change-event schema published after
// every mutation. Consumers (the realtime hub, external caches) use these
// events as invalidation signals and refetch; events never carry enough
// state to patch a cached collection in place.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Operation is the kind of mutation that produced the event.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// IsValid checks if the operation is a known value.
func (o Operation) IsValid() bool {
	switch o {
	case OpCreate, OpUpdate, OpDelete:
		return true
	}
	return false
}

// Entity names the collection a change belongs to. Subjects are derived from
// these, so they are single dot-free tokens.
const (
	EntityDocument = "documents"
	EntityLigne    = "lignes"
	EntityCircuit  = "circuits"
	EntityStep     = "steps"
	EntityStatus   = "statuses"
	EntityApproval = "approvals"
)

// Change is one mutation notification.
type Change struct {
	EventID   string    `json:"eventId"`
	Entity    string    `json:"entity"`
	Key       string    `json:"key"`
	ParentKey string    `json:"parentKey,omitempty"`
	Op        Operation `json:"op"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

// NewChange creates a change with a fresh event ID and the current
// timestamp.
func NewChange(entity, key string, op Operation) Change {
	return Change{
		EventID:   uuid.New().String(),
		Entity:    entity,
		Key:       key,
		Op:        op,
		Timestamp: time.Now().UnixMilli(),
	}
}

// WithParent sets the parent key (e.g. the document a ligne belongs to).
func (c Change) WithParent(key string) Change {
	c.ParentKey = key
	return c
}

// WithActor sets the acting username.
func (c Change) WithActor(actor string) Change {
	c.Actor = actor
	return c
}

// Subject returns the pubsub subject for the change,
// "changes.<entity>.<op>".
func (c Change) Subject() string {
	return "changes." + c.Entity + "." + string(c.Op)
}

// Encode marshals the change for publishing.
func (c Change) Encode() []byte {
	b, _ := json.Marshal(c) // struct of scalars, cannot fail
	return b
}

// Decode unmarshals a change payload.
func Decode(data []byte) (Change, error) {
	var c Change
	err := json.Unmarshal(data, &c)
	return c, err
}
