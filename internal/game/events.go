package game

import (
	"time"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/poker"
)

// EventType identifies a game event.
type EventType string

const (
	EventTypeHandStarted        EventType = "hand_started"
	EventTypeBlindsPosted       EventType = "blinds_posted"
	EventTypeShortStackResolved EventType = "short_stack_resolved"
	EventTypeActionTaken        EventType = "action_taken"
	EventTypeStreetDealt        EventType = "street_dealt"
	EventTypeRoundResolved      EventType = "round_resolved"
	EventTypeHandSettled        EventType = "hand_settled"
	EventTypeMatchEnded         EventType = "match_ended"
)

func (et EventType) String() string {
	return string(et)
}

// Event is anything published by a hand or match.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

type stamp struct {
	at time.Time
}

func now() stamp { return stamp{at: time.Now()} }

func (s stamp) Timestamp() time.Time { return s.at }

// HandStarted is published after hole cards are dealt. Players, Stacks and
// Hole are indexed by betting.Seat.
type HandStarted struct {
	stamp
	HandID     string
	Number     int
	Players    [2]string
	Stacks     [2]int
	Hole       [2][]poker.Card
	SmallBlind int
	BigBlind   int
}

func (HandStarted) EventType() EventType { return EventTypeHandStarted }

// BlindsPosted is published when both blinds are in on the normal path.
type BlindsPosted struct {
	stamp
	HandID string
	Posted [2]int
	Pot    int
}

func (BlindsPosted) EventType() EventType { return EventTypeBlindsPosted }

// ShortStackOutcome says how a short-stack hand was resolved before betting.
type ShortStackOutcome uint8

const (
	// Flip commits both players for the smaller stack.
	Flip ShortStackOutcome = iota + 1
	// CallOffAccepted is a flip chosen by the small blind.
	CallOffAccepted
	// CallOffDeclined forfeits the posted small blind.
	CallOffDeclined
)

func (o ShortStackOutcome) String() string {
	switch o {
	case Flip:
		return "flip"
	case CallOffAccepted:
		return "call-off accepted"
	case CallOffDeclined:
		return "call-off declined"
	}
	return "none"
}

// ShortStackResolved is published when a short stack skips normal betting.
type ShortStackResolved struct {
	stamp
	HandID  string
	Outcome ShortStackOutcome
	Amount  int // chips each player commits; the call-off increment when declined
	Pot     int
}

func (ShortStackResolved) EventType() EventType { return EventTypeShortStackResolved }

// ActionTaken is published for every accepted action.
type ActionTaken struct {
	stamp
	HandID string
	Street Street
	Seat   betting.Seat
	Player string
	Action betting.Action
	Amount int // chips moved from the stack by the action
	Refund int // uncalled chips returned when the action closed the street
	Pot    int
	Stack  int // the actor's stack afterwards
}

func (ActionTaken) EventType() EventType { return EventTypeActionTaken }

// StreetDealt is published when board cards are dealt, including runouts.
type StreetDealt struct {
	stamp
	HandID string
	Street Street
	Board  []poker.Card
	Runout bool
}

func (StreetDealt) EventType() EventType { return EventTypeStreetDealt }

// RoundResolved is published when a street's betting closes.
type RoundResolved struct {
	stamp
	HandID  string
	Street  Street
	History betting.History
	Pot     int
	Folded  bool
	AllIn   bool
}

func (RoundResolved) EventType() EventType { return EventTypeRoundResolved }

// HandSettled is published once the pot has been awarded.
type HandSettled struct {
	stamp
	HandID   string
	Players  [2]string
	Pot      int
	Board    []poker.Card
	Showdown bool
	Hole     [2][]poker.Card // only set at showdown
	Scores   [2]poker.Score  // only set at showdown
	Payouts  [2]int
	Stacks   [2]int
	Winners  []betting.Seat
}

func (HandSettled) EventType() EventType { return EventTypeHandSettled }

// MatchEnded is published when a match stops.
type MatchEnded struct {
	stamp
	Winner string // empty when the match ended level
	Hands  int
	Stacks map[string]int
}

func (MatchEnded) EventType() EventType { return EventTypeMatchEnded }

// EventSubscriber receives published events.
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber. Func values are not
// comparable, so they cannot be unsubscribed.
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(e Event) { f(e) }

// EventBus manages event publishing and subscription.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus delivers events synchronously in subscription order. It is
// not safe for concurrent use; each match owns its own bus.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

type discardBus struct{}

func (discardBus) Subscribe(EventSubscriber)   {}
func (discardBus) Unsubscribe(EventSubscriber) {}
func (discardBus) Publish(Event)               {}
