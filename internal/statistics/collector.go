package statistics

import (
	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

// Collector is a game.EventSubscriber that records every settled hand from
// one player's point of view.
type Collector struct {
	player string
	stats  Statistics

	seat     betting.Seat
	start    int
	bigBlind int
	playing  bool
}

func NewCollector(player string) *Collector {
	return &Collector{player: player}
}

func (c *Collector) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.HandStarted:
		c.playing = false
		for _, s := range []betting.Seat{betting.SmallBlind, betting.BigBlind} {
			if e.Players[s] == c.player {
				c.seat, c.start, c.bigBlind, c.playing = s, e.Stacks[s], e.BigBlind, true
			}
		}
	case game.HandSettled:
		if !c.playing {
			return
		}
		c.playing = false
		c.stats.Add(HandResult{
			NetBB:          float64(e.Stacks[c.seat]-c.start) / float64(c.bigBlind),
			Seat:           c.seat,
			WentToShowdown: e.Showdown,
			FinalPotSize:   e.Pot,
			BigBlind:       c.bigBlind,
		})
	}
}

// Statistics returns what has been collected so far.
func (c *Collector) Statistics() *Statistics {
	return &c.stats
}
