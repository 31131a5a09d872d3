package statistics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

func TestStatisticsEmpty(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.9))
	assert.Zero(t, stats.SeatMean(betting.SmallBlind))
	assert.Error(t, stats.Validate())
}

func TestStatisticsAdd(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.5, Seat: betting.SmallBlind, WentToShowdown: true, FinalPotSize: 10, BigBlind: 2})
	stats.Add(HandResult{NetBB: -1, Seat: betting.BigBlind, FinalPotSize: 4, BigBlind: 2})
	stats.Add(HandResult{NetBB: 0.5, Seat: betting.SmallBlind, FinalPotSize: 200, BigBlind: 2})
	stats.Add(HandResult{NetBB: -50, Seat: betting.BigBlind, WentToShowdown: true, FinalPotSize: 200, BigBlind: 2})

	require.NoError(t, stats.Validate())
	assert.Equal(t, 4, stats.Hands)
	assert.InDelta(t, -12, stats.Mean(), 1e-9)
	assert.InDelta(t, -1200, stats.BBPer100(), 1e-9)
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Equal(t, 1, stats.NonShowdownWins)
	assert.InDelta(t, -47.5, stats.ShowdownBB, 1e-9)
	assert.InDelta(t, -0.5, stats.NonShowdownBB, 1e-9)
	assert.InDelta(t, 1.5, stats.SeatMean(betting.SmallBlind), 1e-9)
	assert.InDelta(t, -25.5, stats.SeatMean(betting.BigBlind), 1e-9)
	assert.InDelta(t, 100, stats.MaxPotBB, 1e-9)
	assert.Equal(t, 2, stats.BigPots)
	assert.InDelta(t, -0.25, stats.Median(), 1e-9)
}

func TestStatisticsVarianceAndInterval(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		stats.Add(HandResult{NetBB: v, Seat: betting.SmallBlind})
	}
	assert.InDelta(t, 5, stats.Mean(), 1e-9)
	assert.InDelta(t, 32.0/7, stats.Variance(), 1e-9)

	lo, hi := stats.ConfidenceInterval95()
	assert.Less(t, lo, 5.0)
	assert.Greater(t, hi, 5.0)
	assert.InDelta(t, 5, (lo+hi)/2, 1e-9)

	assert.InDelta(t, 2, stats.Percentile(0), 1e-9)
	assert.InDelta(t, 9, stats.Percentile(1), 1e-9)
	assert.InDelta(t, 4.5, stats.Median(), 1e-9)
}

func TestStatisticsMerge(t *testing.T) {
	t.Parallel()
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []HandResult{
		{NetBB: 3, Seat: betting.SmallBlind, WentToShowdown: true, FinalPotSize: 12, BigBlind: 2},
		{NetBB: -1, Seat: betting.BigBlind, FinalPotSize: 4, BigBlind: 2},
		{NetBB: 60, Seat: betting.BigBlind, WentToShowdown: true, FinalPotSize: 240, BigBlind: 2},
	}
	a.Add(results[0])
	b.Add(results[1])
	b.Add(results[2])
	for _, r := range results {
		all.Add(r)
	}

	a.Merge(b)
	require.NoError(t, a.Validate())
	assert.Equal(t, all, a)
}

func TestStatisticsValidate(t *testing.T) {
	t.Parallel()
	valid := func() *Statistics {
		s := &Statistics{}
		s.Add(HandResult{NetBB: 1, Seat: betting.SmallBlind})
		s.Add(HandResult{NetBB: -1, Seat: betting.BigBlind})
		return s
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(s *Statistics)
		wantErr string
	}{
		{"ledger", func(s *Statistics) { s.ShowdownBB += 1 }, "ledger mismatch"},
		{"values", func(s *Statistics) { s.Values = s.Values[:1] }, "values array length"},
		{"wins", func(s *Statistics) { s.NonShowdownWins = 5 }, "exceeds total hands"},
		{"seats", func(s *Statistics) { s.Seats[0].Hands = 0 }, "seat hands total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCollector(t *testing.T) {
	t.Parallel()
	checkDown := game.DecisionFunc(func(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
		if req.Can(betting.Call) {
			return betting.CallAction(), nil
		}
		return betting.CheckAction(), nil
	})
	folder := game.DecisionFunc(func(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
		return req.Passive(), nil
	})

	bus := game.NewEventBus()
	c := NewCollector("alice")
	bus.Subscribe(c)

	// Aces check down and win 2bb from the small blind.
	deck, err := poker.NewDeckFromCards(poker.MustParseCards("As Ad Kc Kd 2c 7d 9h Js 3s"))
	require.NoError(t, err)
	alice := &game.Player{Name: "alice", Stack: 200, Provider: checkDown}
	bob := &game.Player{Name: "bob", Stack: 200, Provider: checkDown}
	h, err := game.NewHand(alice, bob, 1, 2, game.WithDeck(deck), game.WithEventBus(bus))
	require.NoError(t, err)
	_, err = h.Play(context.Background())
	require.NoError(t, err)

	// From the big blind, alice wins the small blind when bob folds.
	bob.Provider = folder
	h, err = game.NewHand(bob, alice, 1, 2, game.WithEventBus(bus))
	require.NoError(t, err)
	_, err = h.Play(context.Background())
	require.NoError(t, err)

	stats := c.Statistics()
	require.NoError(t, stats.Validate())
	assert.Equal(t, 2, stats.Hands)
	assert.Equal(t, []float64{1, 0.5}, stats.Values)
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Equal(t, 1, stats.NonShowdownWins)
	assert.InDelta(t, 1, stats.SeatMean(betting.SmallBlind), 1e-9)
	assert.InDelta(t, 0.5, stats.SeatMean(betting.BigBlind), 1e-9)
}
