package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

var (
	// ErrDisconnected is returned once the connection to the bot is gone.
	ErrDisconnected = errors.New("remote bot disconnected")
	// ErrRemote wraps an error reported by the bot.
	ErrRemote = errors.New("remote bot error")
)

const closeGracePeriod = time.Second

// Provider is a game.DecisionProvider backed by a bot on the other end of
// a websocket. Replies are matched to requests by ID, so a reply that
// arrives after its request was abandoned is dropped.
type Provider struct {
	conn   *websocket.Conn
	logger *log.Logger
	seq    atomic.Uint64

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan *Message
	err     error
	done    chan struct{}
}

// Dial connects to a bot, e.g. "ws://127.0.0.1:8090/ws".
func Dial(ctx context.Context, url string, logger *log.Logger) (*Provider, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	p := &Provider{
		conn:    conn,
		logger:  logger.WithPrefix("remote").With("url", url),
		pending: make(map[string]chan *Message),
		done:    make(chan struct{}),
	}
	go p.readPump()
	p.logger.Info("Connected to bot")
	return p, nil
}

func (p *Provider) Decide(ctx context.Context, req game.DecisionRequest) (betting.Action, error) {
	var d DecisionData
	if err := p.request(ctx, MessageTypeDecisionRequest, req, MessageTypeDecision, &d); err != nil {
		return betting.Action{}, err
	}
	return d.Action, nil
}

func (p *Provider) CallOff(ctx context.Context, req game.CallOffRequest) (bool, error) {
	var d CallOffData
	if err := p.request(ctx, MessageTypeCallOffRequest, req, MessageTypeCallOff, &d); err != nil {
		return false, err
	}
	return d.Accept, nil
}

// Close says goodbye to the bot and waits briefly for the connection to
// shut down.
func (p *Provider) Close() error {
	p.writeMu.Lock()
	_ = p.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeGracePeriod))
	p.writeMu.Unlock()

	select {
	case <-p.done:
	case <-time.After(closeGracePeriod):
	}
	return p.conn.Close()
}

func (p *Provider) request(ctx context.Context, typ MessageType, data any, want MessageType, out any) error {
	msg, err := NewMessage(typ, data)
	if err != nil {
		return err
	}
	msg.RequestID = strconv.FormatUint(p.seq.Add(1), 10)

	ch := make(chan *Message, 1)
	p.mu.Lock()
	if p.err != nil {
		p.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrDisconnected, p.err)
	}
	p.pending[msg.RequestID] = ch
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.pending, msg.RequestID)
		p.mu.Unlock()
	}()

	if err := p.write(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}

	select {
	case reply := <-ch:
		return decodeReply(reply, want, out)
	case <-ctx.Done():
		p.logger.Warn("Abandoned request", "type", typ, "id", msg.RequestID, "error", ctx.Err())
		return ctx.Err()
	case <-p.done:
		return fmt.Errorf("%w: %v", ErrDisconnected, p.err)
	}
}

func (p *Provider) write(ctx context.Context, msg *Message) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	deadline, _ := ctx.Deadline()
	if err := p.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return p.conn.WriteJSON(msg)
}

func decodeReply(reply *Message, want MessageType, out any) error {
	switch reply.Type {
	case want:
		return json.Unmarshal(reply.Data, out)
	case MessageTypeError:
		var e ErrorData
		if err := json.Unmarshal(reply.Data, &e); err != nil {
			return fmt.Errorf("%w: undecodable error reply: %v", ErrRemote, err)
		}
		return fmt.Errorf("%w: %s", ErrRemote, e.Message)
	}
	return fmt.Errorf("%w: expected %s reply, got %s", ErrRemote, want, reply.Type)
}

// readPump routes replies to waiting requests until the connection fails.
func (p *Provider) readPump() {
	for {
		var msg Message
		if err := p.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Error("Connection lost", "error", err)
			}
			p.mu.Lock()
			p.err = err
			p.mu.Unlock()
			close(p.done)
			return
		}

		p.mu.Lock()
		ch, ok := p.pending[msg.RequestID]
		p.mu.Unlock()
		if !ok {
			p.logger.Debug("Dropping stale reply", "type", msg.Type, "id", msg.RequestID)
			continue
		}
		select {
		case ch <- &msg:
		default:
			p.logger.Warn("Dropping duplicate reply", "type", msg.Type, "id", msg.RequestID)
		}
	}
}
