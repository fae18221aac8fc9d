package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan BaseMessage

	// Subscription ID -> entity name ("" means all entities).
	subscriptions map[string]string
	mu            sync.Mutex
}

// readPump pumps messages from the websocket connection to the hub. There is
// at most one reader per connection.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Websocket connection closed unexpectedly", "error", err)
			}
			break
		}

		var msg BaseMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			slog.Warn("Failed to unmarshal websocket message", "error", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg BaseMessage) {
	switch msg.Type {
	case TypeSubscribe:
		var payload SubscribePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.send <- BaseMessage{ID: msg.ID, Type: TypeError,
				Payload: mustMarshal(ErrorPayload{Code: "BAD_PAYLOAD", Message: "invalid subscribe payload"})}
			return
		}
		c.mu.Lock()
		c.subscriptions[msg.ID] = payload.Entity
		c.mu.Unlock()
		slog.Debug("Websocket subscription added", "entity", payload.Entity, "sub_id", msg.ID)

		c.send <- BaseMessage{ID: msg.ID, Type: TypeSubscribeAck}
	case TypeUnsubscribe:
		var payload UnsubscribePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return
		}
		c.mu.Lock()
		delete(c.subscriptions, payload.ID)
		c.mu.Unlock()
		c.send <- BaseMessage{ID: msg.ID, Type: TypeUnsubscribeAck}
	}
}

// writePump pumps messages from the hub to the websocket connection. There
// is at most one writer per connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades an HTTP request and attaches the connection to the hub.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}
	client := &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan BaseMessage, 256),
		subscriptions: make(map[string]string),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
