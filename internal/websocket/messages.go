package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of a websocket message.
type MessageType string

const (
	// Server -> client.
	TypePlanUpdated MessageType = "plan.updated"
	TypePong        MessageType = "pong"
	TypeError       MessageType = "error"

	// Client -> server.
	TypePing MessageType = "ping"
)

// Message is the websocket envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

// NewMessage creates a message stamped with at.
func NewMessage(t MessageType, at time.Time, payload any) Message {
	return Message{Type: t, Timestamp: at.UTC(), Payload: payload}
}

// JSON serializes the message.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}
