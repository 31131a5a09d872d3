package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/bot"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// serve starts a bot server for p and returns a connected Provider.
func serve(t *testing.T, p game.DecisionProvider) *Provider {
	t.Helper()
	srv := httptest.NewServer(NewHandler(p, quietLogger()))
	t.Cleanup(srv.Close)
	return dial(t, srv)
}

func dial(t *testing.T, srv *httptest.Server) *Provider {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p, err := Dial(ctx, url, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func openingRequest() game.DecisionRequest {
	return game.DecisionRequest{
		HandID:     "h1",
		Seat:       betting.SmallBlind,
		Street:     game.Preflop,
		Phase:      betting.Preflop,
		History:    betting.NewHistory(),
		Legal:      []betting.Kind{betting.Fold, betting.Call, betting.Raise},
		ToCall:     1,
		MinRaiseTo: 4,
		MaxRaiseTo: 200,
		Stacks:     [2]int{199, 198},
		Committed:  [2]int{1, 2},
		Pot:        3,
		BigBlind:   2,
		Hole:       poker.MustParseCards("As Kd"),
	}
}

func TestDecideRoundTrip(t *testing.T) {
	t.Parallel()
	var got game.DecisionRequest
	p := serve(t, game.DecisionFunc(func(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
		got = req
		return betting.RaiseTo(6), nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	action, err := p.Decide(ctx, openingRequest())
	require.NoError(t, err)
	assert.Equal(t, betting.RaiseTo(6), action)

	want := openingRequest()
	assert.Equal(t, want.HandID, got.HandID)
	assert.Equal(t, want.Legal, got.Legal)
	assert.Equal(t, want.Stacks, got.Stacks)
	assert.Equal(t, want.MinRaiseTo, got.MinRaiseTo)
	assert.Equal(t, "As Kd", poker.FormatCards(got.Hole))
	require.Equal(t, 1, got.History.Len())
	assert.Equal(t, betting.Root, got.History.At(0).Kind)
	assert.True(t, got.Can(betting.Raise))
}

func TestCallOff(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req := game.CallOffRequest{HandID: "h1", Seat: betting.SmallBlind, Amount: 1, Stacks: [2]int{199, 0}, Pot: 3}

	t.Run("prompter declines", func(t *testing.T) {
		p := serve(t, bot.NewScriptBot(false))
		accept, err := p.CallOff(ctx, req)
		require.NoError(t, err)
		assert.False(t, accept)
	})

	t.Run("plain provider accepts", func(t *testing.T) {
		p := serve(t, bot.NewCallBot(quietLogger()))
		accept, err := p.CallOff(ctx, req)
		require.NoError(t, err)
		assert.True(t, accept)
	})
}

func TestRemoteErrorIsReported(t *testing.T) {
	t.Parallel()
	p := serve(t, game.DecisionFunc(func(context.Context, game.DecisionRequest) (betting.Action, error) {
		return betting.Action{}, errors.New("no strategy loaded")
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := p.Decide(ctx, openingRequest())
	require.ErrorIs(t, err, ErrRemote)
	assert.Contains(t, err.Error(), "no strategy loaded")

	// The connection stays usable after a reported error.
	_, err = p.Decide(ctx, openingRequest())
	require.ErrorIs(t, err, ErrRemote)
}

func TestAbandonedReplyIsDropped(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	var calls atomic.Int32
	p := serve(t, game.DecisionFunc(func(context.Context, game.DecisionRequest) (betting.Action, error) {
		n := calls.Add(1)
		<-release
		return betting.RaiseTo(2 + 2*int(n)), nil
	}))

	short, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := p.Decide(short, openingRequest())
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)

	ctx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	action, err := p.Decide(ctx, openingRequest())
	require.NoError(t, err)
	assert.Equal(t, betting.RaiseTo(6), action, "reply to the second request, not the first")
}

func TestDisconnectedBot(t *testing.T) {
	t.Parallel()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	t.Cleanup(srv.Close)
	p := dial(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := p.Decide(ctx, openingRequest())
	require.ErrorIs(t, err, ErrDisconnected)
}

func TestDuplicateRepliesDoNotStallTheConnection(t *testing.T) {
	t.Parallel()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for n := 1; ; n++ {
			var req Message
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			reply, err := NewMessage(MessageTypeDecision, DecisionData{Action: betting.RaiseTo(2 + 2*n)})
			if err != nil {
				return
			}
			reply.RequestID = req.RequestID
			for range 3 {
				if err := conn.WriteJSON(reply); err != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(srv.Close)
	p := dial(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	action, err := p.Decide(ctx, openingRequest())
	require.NoError(t, err)
	assert.Equal(t, betting.RaiseTo(4), action)

	action, err = p.Decide(ctx, openingRequest())
	require.NoError(t, err)
	assert.Equal(t, betting.RaiseTo(6), action)
}

func TestDialFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), quietLogger())
	require.Error(t, err)
}

func TestMatchAgainstRemoteBot(t *testing.T) {
	t.Parallel()
	remoteBot := serve(t, bot.NewTagBot(randutil.New(3), quietLogger()))

	alice := &game.Player{Name: "alice", Stack: 200, Provider: remoteBot}
	bob := &game.Player{Name: "bob", Stack: 200, Provider: bot.NewCallBot(quietLogger())}
	m, err := game.NewMatch(game.MatchConfig{SmallBlind: 1, BigBlind: 2, MaxHands: 25}, alice, bob,
		game.WithMatchRand(randutil.New(11)))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := m.Play(ctx)
	require.NoError(t, err)
	assert.Equal(t, 400, res.Stacks["alice"]+res.Stacks["bob"])
	assert.LessOrEqual(t, res.Hands, 25)
}
