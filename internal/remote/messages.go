// Package remote lets a decision provider live in another process. The
// engine side dials a bot with Dial; the bot side serves any
// game.DecisionProvider with NewHandler. Messages are JSON over a websocket
// and every reply echoes the request ID it answers.
package remote

import (
	"encoding/json"
	"time"

	"github.com/lox/headsup/internal/betting"
)

// MessageType identifies the payload of a Message.
type MessageType string

const (
	MessageTypeDecisionRequest MessageType = "decision_request"
	MessageTypeDecision        MessageType = "decision"
	MessageTypeCallOffRequest  MessageType = "call_off_request"
	MessageTypeCallOff         MessageType = "call_off"
	MessageTypeError           MessageType = "error"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// The request payloads are game.DecisionRequest and game.CallOffRequest.

type DecisionData struct {
	Action betting.Action `json:"action"`
}

type CallOffData struct {
	Accept bool `json:"accept"`
}

type ErrorData struct {
	Message string `json:"message"`
}
