package phh

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/fileutil"
	"github.com/lox/headsup/internal/game"
)

// Sink receives each completed hand.
type Sink func(*HandHistory) error

// DirSink writes each hand to <dir>/<hand id>.phh.
func DirSink(dir string) (Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history dir: %w", err)
	}
	return func(h *HandHistory) error {
		data, err := EncodeToBytes(h)
		if err != nil {
			return err
		}
		return fileutil.WriteFileAtomic(filepath.Join(dir, h.HandID+".phh"), data, 0o644)
	}, nil
}

// Recorder is a game.EventSubscriber that builds a HandHistory per hand and
// hands it to a Sink once the hand settles. Hands that abort are dropped.
type Recorder struct {
	sink   Sink
	logger *log.Logger

	current *HandHistory
	dealt   int // board cards already recorded
}

func NewRecorder(sink Sink, logger *log.Logger) *Recorder {
	return &Recorder{sink: sink, logger: logger.WithPrefix("phh")}
}

func (r *Recorder) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.HandStarted:
		h := &HandHistory{
			Variant:           "NT",
			Antes:             []int{0, 0},
			BlindsOrStraddles: []int{e.SmallBlind, e.BigBlind},
			MinBet:            e.BigBlind,
			StartingStacks:    []int{e.Stacks[betting.SmallBlind], e.Stacks[betting.BigBlind]},
			Players:           []string{e.Players[betting.SmallBlind], e.Players[betting.BigBlind]},
			HandID:            e.HandID,
		}
		h.SetTimestamp(e.Timestamp())
		for _, s := range []betting.Seat{betting.SmallBlind, betting.BigBlind} {
			h.Actions = append(h.Actions, "d dh "+player(s)+" "+FormatCards(e.Hole[s]))
		}
		r.current, r.dealt = h, 0

	case game.ShortStackResolved:
		if r.current != nil {
			r.current.Actions = append(r.current.Actions, fmt.Sprintf("# %s for %d", e.Outcome, e.Amount))
		}

	case game.ActionTaken:
		if r.current != nil {
			r.current.Actions = append(r.current.Actions, FormatAction(e.Seat, e.Action))
		}

	case game.StreetDealt:
		if r.current != nil && len(e.Board) > r.dealt {
			r.current.Actions = append(r.current.Actions, "d db "+FormatCards(e.Board[r.dealt:]))
			r.dealt = len(e.Board)
		}

	case game.HandSettled:
		h := r.current
		if h == nil || h.HandID != e.HandID {
			return
		}
		r.current = nil
		if e.Showdown {
			for _, s := range []betting.Seat{betting.SmallBlind, betting.BigBlind} {
				h.Actions = append(h.Actions, player(s)+" sm "+FormatCards(e.Hole[s]))
			}
		}
		h.FinishingStacks = []int{e.Stacks[betting.SmallBlind], e.Stacks[betting.BigBlind]}
		h.Winnings = []int{e.Payouts[betting.SmallBlind], e.Payouts[betting.BigBlind]}
		if err := r.sink(h); err != nil {
			r.logger.Error("Failed to record hand", "hand", h.HandID, "error", err)
		}
	}
}
