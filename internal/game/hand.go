package game

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

// HandResult describes a settled hand. Arrays are indexed by betting.Seat.
type HandResult struct {
	HandID     string
	Pot        int
	Board      []poker.Card
	Stacks     [2]int
	Payouts    [2]int
	Winners    []betting.Seat
	Showdown   bool
	ShortStack ShortStackOutcome // zero when the hand was bet normally
	Histories  map[Street]betting.History
}

// Hand runs a single hand between a small blind and a big blind. It works
// on copies of the players' stacks and only writes them back once the hand
// is settled, so an aborted hand leaves the match unchanged.
type Hand struct {
	id      string
	number  int
	players [2]*Player
	sb, bb  int
	stacks  [2]int
	pot     int
	hole    [2][]poker.Card
	board   []poker.Card
	deck    *poker.Deck
	bus     EventBus

	histories map[Street]betting.History
}

// NewHand prepares a hand. Both players need a provider and chips.
func NewHand(sb, bb *Player, smallBlind, bigBlind int, opts ...HandOption) (*Hand, error) {
	if smallBlind <= 0 || bigBlind <= smallBlind {
		return nil, fmt.Errorf("%w: blinds %d/%d must satisfy 0 < sb < bb", ErrInvalidSetup, smallBlind, bigBlind)
	}
	for _, p := range []*Player{sb, bb} {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if p.Stack == 0 {
			return nil, fmt.Errorf("%w: player %q has no chips", ErrInvalidSetup, p.Name)
		}
	}

	cfg := &handConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	deck := cfg.deck
	if deck == nil {
		rng := cfg.rng
		if rng == nil {
			rng = randutil.New(time.Now().UnixNano())
		}
		deck = poker.NewDeck(rng)
	}
	id := cfg.id
	if id == "" {
		id = uuid.NewString()
	}
	var bus EventBus = discardBus{}
	if cfg.bus != nil {
		bus = cfg.bus
	}

	return &Hand{
		id:        id,
		number:    cfg.number,
		players:   [2]*Player{sb, bb},
		sb:        smallBlind,
		bb:        bigBlind,
		stacks:    [2]int{sb.Stack, bb.Stack},
		deck:      deck,
		bus:       bus,
		histories: make(map[Street]betting.History),
	}, nil
}

// ID returns the hand's identifier.
func (h *Hand) ID() string { return h.id }

// Play runs the hand to settlement and writes the final stacks back to the
// players.
func (h *Hand) Play(ctx context.Context) (HandResult, error) {
	if err := h.deal(); err != nil {
		return HandResult{}, fmt.Errorf("hand %s: %w", h.id, err)
	}
	h.bus.Publish(HandStarted{
		stamp:      now(),
		HandID:     h.id,
		Number:     h.number,
		Players:    h.names(),
		Stacks:     h.stacks,
		Hole:       [2][]poker.Card{slices.Clone(h.hole[0]), slices.Clone(h.hole[1])},
		SmallBlind: h.sb,
		BigBlind:   h.bb,
	})

	res, err := h.play(ctx)
	if err != nil {
		return HandResult{}, fmt.Errorf("hand %s: %w", h.id, err)
	}
	for s, p := range h.players {
		p.Stack = res.Stacks[s]
		p.Hole = slices.Clone(h.hole[s])
	}
	return res, nil
}

func (h *Hand) deal() error {
	for s := range h.players {
		cards, err := h.deck.Deal(2)
		if err != nil {
			return err
		}
		h.hole[s] = cards
	}
	return nil
}

func (h *Hand) play(ctx context.Context) (HandResult, error) {
	sbStack, bbStack := h.stacks[betting.SmallBlind], h.stacks[betting.BigBlind]
	switch {
	case sbStack <= h.sb || bbStack <= h.sb:
		return h.flip(Flip)
	case (sbStack <= h.bb && bbStack <= h.bb) || bbStack <= h.bb:
		return h.callOff(ctx)
	}

	posted := [2]int{h.sb, h.bb}
	h.post(posted)
	h.bus.Publish(BlindsPosted{stamp: now(), HandID: h.id, Posted: posted, Pot: h.pot})
	return h.streets(ctx, posted)
}

func (h *Hand) post(amounts [2]int) {
	for s, amt := range amounts {
		h.stacks[s] -= amt
		h.pot += amt
	}
}

// flip commits both players for the smaller stack and shows down.
func (h *Hand) flip(outcome ShortStackOutcome) (HandResult, error) {
	m := min(h.stacks[0], h.stacks[1])
	h.post([2]int{m, m})
	h.bus.Publish(ShortStackResolved{stamp: now(), HandID: h.id, Outcome: outcome, Amount: m, Pot: h.pot})
	if err := h.runout(Preflop); err != nil {
		return HandResult{}, err
	}
	res, err := h.showdown()
	res.ShortStack = outcome
	return res, err
}

// callOff handles a big blind who is all-in by posting. The small blind
// either matches the smaller stack or forfeits the small blind.
func (h *Hand) callOff(ctx context.Context) (HandResult, error) {
	sb := h.players[betting.SmallBlind]
	req := CallOffRequest{
		HandID: h.id,
		Seat:   betting.SmallBlind,
		Amount: min(h.stacks[0], h.stacks[1]) - h.sb,
		Stacks: h.stacks,
		Pot:    h.pot,
		Hole:   slices.Clone(h.hole[betting.SmallBlind]),
	}
	accept, err := callOff(ctx, sb.Provider, req)
	if err != nil {
		return HandResult{}, fmt.Errorf("%w: %s call-off: %w", ErrProvider, sb.Name, err)
	}
	if accept {
		return h.flip(CallOffAccepted)
	}

	posted := [2]int{h.sb, min(h.bb, h.stacks[betting.BigBlind])}
	h.post(posted)
	h.bus.Publish(ShortStackResolved{stamp: now(), HandID: h.id, Outcome: CallOffDeclined, Amount: req.Amount, Pot: h.pot})

	r, err := betting.NewRound(betting.RoundConfig{
		Phase:      betting.Preflop,
		BigBlind:   h.bb,
		Stacks:     h.stacks,
		Committed:  posted,
		FirstToAct: betting.SmallBlind,
	})
	if err != nil {
		return HandResult{}, err
	}
	if err := h.apply(Preflop, r, betting.FoldAction()); err != nil {
		return HandResult{}, err
	}
	h.resolve(Preflop, r)
	res := h.settle([]betting.Seat{betting.BigBlind}, nil)
	res.ShortStack = CallOffDeclined
	return res, nil
}

// streets drives betting from preflop to the river. posted holds the blinds
// already committed on the preflop street.
func (h *Hand) streets(ctx context.Context, posted [2]int) (HandResult, error) {
	street := Preflop
	committed := posted
	first := betting.SmallBlind
	for {
		r, err := betting.NewRound(betting.RoundConfig{
			Phase:      street.Phase(),
			BigBlind:   h.bb,
			Stacks:     h.stacks,
			Committed:  committed,
			FirstToAct: first,
		})
		if err != nil {
			return HandResult{}, err
		}
		if err := h.bet(ctx, street, r); err != nil {
			return HandResult{}, err
		}
		folded := h.resolve(street, r)

		switch {
		case folded:
			// The folder is still the seat to act.
			return h.settle([]betting.Seat{r.ToAct().Other()}, nil), nil
		case street == River:
			return h.showdown()
		case r.AllIn():
			if err := h.runout(street); err != nil {
				return HandResult{}, err
			}
			return h.showdown()
		}

		street++
		if err := h.dealStreet(street, false); err != nil {
			return HandResult{}, err
		}
		committed = [2]int{}
		first = betting.BigBlind
	}
}

// bet asks providers for actions until the round closes.
func (h *Hand) bet(ctx context.Context, street Street, r *betting.Round) error {
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		legal, err := r.Legal()
		if err != nil {
			return err
		}
		seat := r.ToAct()
		p := h.players[seat]
		a, err := p.Provider.Decide(ctx, h.request(street, r, legal))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrProvider, p.Name, err)
		}
		if err := h.apply(street, r, a); err != nil {
			return fmt.Errorf("%s on the %s: %w", p.Name, street, err)
		}
	}
	return nil
}

func (h *Hand) request(street Street, r *betting.Round, legal []betting.Kind) DecisionRequest {
	seat := r.ToAct()
	return DecisionRequest{
		HandID:     h.id,
		Seat:       seat,
		Street:     street,
		Phase:      r.Phase(),
		History:    r.History(),
		Legal:      legal,
		ToCall:     r.ToCall(),
		MinRaiseTo: r.MinRaiseTo(),
		MaxRaiseTo: r.MaxRaiseTo(),
		Stacks:     r.Stacks(),
		Committed:  r.Committed(),
		Pot:        h.pot,
		BigBlind:   h.bb,
		Hole:       slices.Clone(h.hole[seat]),
		Board:      slices.Clone(h.board),
	}
}

// apply moves the chips for one action and publishes it.
func (h *Hand) apply(street Street, r *betting.Round, a betting.Action) error {
	t, err := r.Apply(a)
	if err != nil {
		return err
	}
	h.pot += t.Amount - t.Refund
	h.stacks = r.Stacks()
	h.bus.Publish(ActionTaken{
		stamp:  now(),
		HandID: h.id,
		Street: street,
		Seat:   t.Seat,
		Player: h.players[t.Seat].Name,
		Action: a,
		Amount: t.Amount,
		Refund: t.Refund,
		Pot:    h.pot,
		Stack:  h.stacks[t.Seat],
	})
	return nil
}

// resolve records a closed round and reports whether it ended in a fold.
func (h *Hand) resolve(street Street, r *betting.Round) bool {
	hist := r.History()
	h.histories[street] = hist
	last, _ := hist.Last()
	folded := last.Kind == betting.Fold
	h.bus.Publish(RoundResolved{
		stamp:   now(),
		HandID:  h.id,
		Street:  street,
		History: hist,
		Pot:     h.pot,
		Folded:  folded,
		AllIn:   r.AllIn(),
	})
	return folded
}

func (h *Hand) dealStreet(street Street, runout bool) error {
	cards, err := h.deck.Deal(street.cards())
	if err != nil {
		return err
	}
	h.board = append(h.board, cards...)
	h.bus.Publish(StreetDealt{stamp: now(), HandID: h.id, Street: street, Board: slices.Clone(h.board), Runout: runout})
	return nil
}

// runout deals every street after from without betting.
func (h *Hand) runout(from Street) error {
	for s := from + 1; s <= River; s++ {
		if err := h.dealStreet(s, true); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hand) showdown() (HandResult, error) {
	var scores [2]poker.Score
	for s := range h.hole {
		score, err := poker.Evaluate(h.hole[s], h.board)
		if err != nil {
			return HandResult{}, fmt.Errorf("evaluate %s: %w", h.players[s].Name, err)
		}
		scores[s] = score
	}

	var winners []betting.Seat
	switch c := poker.Compare(scores[betting.SmallBlind], scores[betting.BigBlind]); {
	case c > 0:
		winners = []betting.Seat{betting.SmallBlind}
	case c < 0:
		winners = []betting.Seat{betting.BigBlind}
	default:
		winners = []betting.Seat{betting.SmallBlind, betting.BigBlind}
	}
	return h.settle(winners, &scores), nil
}

// settle pays the pot to the winners. A split pot gives the odd chip to the
// big blind. scores is nil when the hand ended without a showdown.
func (h *Hand) settle(winners []betting.Seat, scores *[2]poker.Score) HandResult {
	showdown := scores != nil
	var payouts [2]int
	if len(winners) == 1 {
		payouts[winners[0]] = h.pot
	} else {
		half := h.pot / 2
		payouts[betting.SmallBlind] = half
		payouts[betting.BigBlind] = h.pot - half
	}
	stacks := h.stacks
	for s := range stacks {
		stacks[s] += payouts[s]
	}

	ev := HandSettled{
		stamp:    now(),
		HandID:   h.id,
		Players:  h.names(),
		Pot:      h.pot,
		Board:    slices.Clone(h.board),
		Showdown: showdown,
		Payouts:  payouts,
		Stacks:   stacks,
		Winners:  winners,
	}
	if showdown {
		ev.Hole = [2][]poker.Card{slices.Clone(h.hole[0]), slices.Clone(h.hole[1])}
		ev.Scores = *scores
	}
	h.bus.Publish(ev)

	return HandResult{
		HandID:    h.id,
		Pot:       h.pot,
		Board:     slices.Clone(h.board),
		Stacks:    stacks,
		Payouts:   payouts,
		Winners:   winners,
		Showdown:  showdown,
		Histories: h.histories,
	}
}

func (h *Hand) names() [2]string {
	return [2]string{h.players[0].Name, h.players[1].Name}
}
