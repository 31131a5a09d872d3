package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/headsup/internal/game"
)

// Handler serves a decision provider to engines that connect with Dial.
// Requests on a connection are answered in order.
type Handler struct {
	provider game.DecisionProvider
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler wraps provider. Call-off prompts go to provider when it
// implements game.CallOffPrompter and are accepted otherwise.
func NewHandler(provider game.DecisionProvider, logger *log.Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger.WithPrefix("remote"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logger := h.logger.With("remote_addr", r.RemoteAddr)
	logger.Info("Engine connected")

	ctx := r.Context()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Error("Connection lost", "error", err)
			} else {
				logger.Info("Engine disconnected")
			}
			return
		}

		reply, err := h.handle(ctx, &msg)
		if err != nil {
			logger.Warn("Request failed", "type", msg.Type, "id", msg.RequestID, "error", err)
			reply, err = NewMessage(MessageTypeError, ErrorData{Message: err.Error()})
			if err != nil {
				return
			}
		}
		reply.RequestID = msg.RequestID
		if err := conn.WriteJSON(reply); err != nil {
			logger.Error("Failed to write reply", "error", err)
			return
		}
	}
}

func (h *Handler) handle(ctx context.Context, msg *Message) (*Message, error) {
	switch msg.Type {
	case MessageTypeDecisionRequest:
		var req game.DecisionRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return nil, fmt.Errorf("invalid decision request: %w", err)
		}
		action, err := h.provider.Decide(ctx, req)
		if err != nil {
			return nil, err
		}
		h.logger.Debug("Decided", "hand", req.HandID, "street", req.Street, "action", action)
		return NewMessage(MessageTypeDecision, DecisionData{Action: action})

	case MessageTypeCallOffRequest:
		var req game.CallOffRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return nil, fmt.Errorf("invalid call-off request: %w", err)
		}
		accept := true
		if c, ok := h.provider.(game.CallOffPrompter); ok {
			var err error
			if accept, err = c.CallOff(ctx, req); err != nil {
				return nil, err
			}
		}
		return NewMessage(MessageTypeCallOff, CallOffData{Accept: accept})
	}
	return nil, fmt.Errorf("unknown message type %q", msg.Type)
}
