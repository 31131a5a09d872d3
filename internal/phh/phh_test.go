package phh

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

func TestFormatAction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		seat   betting.Seat
		action betting.Action
		want   string
	}{
		{betting.SmallBlind, betting.FoldAction(), "p1 f"},
		{betting.BigBlind, betting.CheckAction(), "p2 cc"},
		{betting.SmallBlind, betting.CallAction(), "p1 cc"},
		{betting.SmallBlind, betting.RaiseTo(6), "p1 cbr 6"},
		{betting.BigBlind, betting.BetTo(40), "p2 cbr 40"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAction(tt.seat, tt.action))
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()
	hand := &HandHistory{
		Variant:           "NT",
		Antes:             []int{0, 0},
		BlindsOrStraddles: []int{1, 2},
		MinBet:            2,
		StartingStacks:    []int{200, 200},
		FinishingStacks:   []int{206, 194},
		Winnings:          []int{12, 0},
		Actions:           []string{"d dh p1 AhKh", "d dh p2 7c2d", "p1 cbr 6", "p2 cc", "d db 2c7d9h", "p2 cc", "p1 cbr 6", "p2 f"},
		Players:           []string{"alice", "bob"},
		HandID:            "hand-42",
	}
	hand.SetTimestamp(time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC))

	data, err := EncodeToBytes(hand)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `variant = "NT"`)
	assert.Contains(t, out, `blinds_or_straddles = [1, 2]`)
	assert.Contains(t, out, `actions = ["d dh p1 AhKh", "d dh p2 7c2d", "p1 cbr 6", "p2 cc", "d db 2c7d9h", "p2 cc", "p1 cbr 6", "p2 f"]`)
	assert.Contains(t, out, `hand = "hand-42"`)
	assert.Contains(t, out, `time = "15:22:00"`)
	assert.Contains(t, out, "year = 2025")

	require.Error(t, Encode(io.Discard, nil))
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func checkDown() game.DecisionFunc {
	return func(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
		if req.Can(betting.Call) {
			return betting.CallAction(), nil
		}
		return betting.CheckAction(), nil
	}
}

func TestRecorder(t *testing.T) {
	t.Parallel()
	var got []*HandHistory
	rec := NewRecorder(func(h *HandHistory) error {
		got = append(got, h)
		return nil
	}, quietLogger())
	bus := game.NewEventBus()
	bus.Subscribe(rec)

	deck, err := poker.NewDeckFromCards(poker.MustParseCards("As Ad Kc Kd 2c 7d 9h Js 3s"))
	require.NoError(t, err)
	alice := &game.Player{Name: "alice", Stack: 200, Provider: checkDown()}
	bob := &game.Player{Name: "bob", Stack: 200, Provider: checkDown()}
	h, err := game.NewHand(alice, bob, 1, 2, game.WithDeck(deck), game.WithEventBus(bus), game.WithHandID("h1"))
	require.NoError(t, err)
	_, err = h.Play(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 1)
	hh := got[0]
	assert.Equal(t, "h1", hh.HandID)
	assert.Equal(t, []string{"alice", "bob"}, hh.Players)
	assert.Equal(t, []int{1, 2}, hh.BlindsOrStraddles)
	assert.Equal(t, []int{200, 200}, hh.StartingStacks)
	assert.Equal(t, []int{202, 198}, hh.FinishingStacks)
	assert.Equal(t, []int{4, 0}, hh.Winnings)
	assert.Equal(t, []string{
		"d dh p1 AsAd",
		"d dh p2 KcKd",
		"p1 cc",
		"p2 cc",
		"d db 2c7d9h",
		"p2 cc",
		"p1 cc",
		"d db Js",
		"p2 cc",
		"p1 cc",
		"d db 3s",
		"p2 cc",
		"p1 cc",
		"p1 sm AsAd",
		"p2 sm KcKd",
	}, hh.Actions)
}

func TestDirSink(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "history")
	sink, err := DirSink(dir)
	require.NoError(t, err)

	hand := &HandHistory{
		Variant:           "NT",
		Antes:             []int{0, 0},
		BlindsOrStraddles: []int{1, 2},
		MinBet:            2,
		StartingStacks:    []int{200, 200},
		Actions:           []string{"d dh p1 AsAd", "d dh p2 KcKd", "p1 f"},
		HandID:            "abc",
	}
	require.NoError(t, sink(hand))

	var decoded HandHistory
	_, err = toml.DecodeFile(filepath.Join(dir, "abc.phh"), &decoded)
	require.NoError(t, err)
	assert.Equal(t, hand.Actions, decoded.Actions)
	assert.Equal(t, hand.StartingStacks, decoded.StartingStacks)
	assert.Equal(t, "abc", decoded.HandID)
}
