// Package game runs heads-up hands and matches on top of the betting engine.
//
// A Hand deals the cards, resolves short-stack cases, posts the blinds and
// drives one betting.Round per street until the hand is settled by a fold or
// at showdown. A Match repeats hands, swapping the small blind each time,
// until a player is eliminated.
//
// # Basic Usage
//
//	alice := &game.Player{Name: "alice", Stack: 200, Provider: bot.CallingStation{}}
//	bob := &game.Player{Name: "bob", Stack: 200, Provider: human}
//	m, err := game.NewMatch(game.MatchConfig{SmallBlind: 1, BigBlind: 2}, alice, bob,
//	    game.WithMatchRand(randutil.New(42)))
//	if err != nil {
//	    return err
//	}
//	result, err := m.Play(ctx)
//
// # Deterministic Testing
//
// Pass a stacked deck to control every card dealt:
//
//	deck, _ := poker.NewDeckFromCards(poker.MustParseCards("As Ad Kc Kd 2c 7d 9h Js 3s"))
//	h, _ := game.NewHand(sb, bb, 1, 2, game.WithDeck(deck))
//
// Hole cards are dealt two to the small blind, then two to the big blind,
// followed by the flop, turn and river.
//
// # Events
//
// The orchestrator never prints. It publishes typed events to an EventBus;
// LogSubscriber and the terminal UI subscribe to narrate play.
package game
