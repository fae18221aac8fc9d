package realtime

import (
	"encoding/json"

	"docuflow/internal/events"
)

// Message types
const (
	TypeSubscribe      = "subscribe"
	TypeSubscribeAck   = "subscribe_ack"
	TypeUnsubscribe    = "unsubscribe"
	TypeUnsubscribeAck = "unsubscribe_ack"
	TypeEvent          = "event"
	TypeError          = "error"
)

// BaseMessage is the envelope for all messages.
type BaseMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SubscribePayload selects the entities a client wants invalidation hints
// for. An empty Entity subscribes to every collection.
type SubscribePayload struct {
	Entity string `json:"entity"`
}

// UnsubscribePayload cancels an earlier subscription by its message ID.
type UnsubscribePayload struct {
	ID string `json:"id"`
}

// EventPayload (server -> client) carries one change hint. Clients refetch;
// events never carry row data.
type EventPayload struct {
	SubID  string        `json:"subId"`
	Change events.Change `json:"change"`
}

// ErrorPayload reports a protocol error to the client.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func mustMarshal(v interface{}) []byte {
	b, _ := json.Marshal(v) // internal types, cannot fail
	return b
}
