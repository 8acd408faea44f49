package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WebSocketMessageType represents message type constants
type WebSocketMessageType string

const (
	// Message types
	StateMessage        WebSocketMessageType = "state"
	NotificationMessage WebSocketMessageType = "notification"
	ErrorMessage        WebSocketMessageType = "error"
)

// StandardMessage represents a standardized WebSocket message format
type StandardMessage struct {
	ID        string                 `json:"id"`
	Type      WebSocketMessageType   `json:"type"`
	Event     string                 `json:"event,omitempty"` // For state and notification messages
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload"`
}

func (m *StandardMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// NewStandardMessage creates a new standard message
func NewStandardMessage(msgType WebSocketMessageType, event string, payload map[string]interface{}) *StandardMessage {
	return &StandardMessage{
		ID:        uuid.New().String(),
		Type:      msgType,
		Event:     event,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
