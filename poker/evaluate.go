package poker

import (
	"fmt"

	ph "github.com/paulhankin/poker"
)

// Score is the strength of a seven card hand. Higher scores win.
type Score int16

// Evaluate scores the best five card hand made from two hole cards and a
// five card board.
func Evaluate(hole, board []Card) (Score, error) {
	if len(hole) != 2 || len(board) != 5 {
		return 0, fmt.Errorf("evaluate needs 2 hole and 5 board cards, got %d and %d", len(hole), len(board))
	}
	var seven [7]ph.Card
	var seen Card
	for i, c := range append(append([]Card(nil), hole...), board...) {
		if seen&c != 0 {
			return 0, fmt.Errorf("duplicate card %s", c)
		}
		seen |= c
		pc, err := toLibCard(c)
		if err != nil {
			return 0, err
		}
		seven[i] = pc
	}
	return Score(ph.Eval7(&seven)), nil
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 on a tie.
func Compare(a, b Score) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func toLibCard(c Card) (ph.Card, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("invalid card %d", uint64(c))
	}
	var suit ph.Suit
	switch c.Suit() {
	case Clubs:
		suit = ph.Club
	case Diamonds:
		suit = ph.Diamond
	case Hearts:
		suit = ph.Heart
	default:
		suit = ph.Spade
	}
	// The library numbers ranks 1..13 with the ace as 1.
	rank := ph.Rank(c.Rank() + 2)
	if c.Rank() == Ace {
		rank = ph.Rank(1)
	}
	return ph.MakeCard(suit, rank)
}
