package poker

import (
	"testing"
)

func mustScore(t *testing.T, hole, board string) Score {
	t.Helper()
	s, err := Evaluate(MustParseCards(hole), MustParseCards(board))
	if err != nil {
		t.Fatalf("Evaluate(%s | %s): %v", hole, board, err)
	}
	return s
}

func TestEvaluateOrdering(t *testing.T) {
	t.Parallel()
	board := "Ts Js Qs 2d 7c"

	royal := mustScore(t, "As Ks", board)
	pair := mustScore(t, "2h 3c", board)
	trips := mustScore(t, "Qh Qd", board)

	if Compare(royal, trips) != 1 {
		t.Errorf("royal flush should beat trips")
	}
	if Compare(trips, pair) != 1 {
		t.Errorf("trips should beat a pair")
	}
	if Compare(pair, royal) != -1 {
		t.Errorf("pair should lose to royal flush")
	}
}

func TestEvaluateBoardPlays(t *testing.T) {
	t.Parallel()
	board := "As Ks Qs Js Ts"
	a := mustScore(t, "2h 3c", board)
	b := mustScore(t, "4d 5d", board)
	if Compare(a, b) != 0 {
		t.Errorf("both players play the board, expected tie")
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	t.Parallel()
	if _, err := Evaluate(MustParseCards("As"), MustParseCards("2c 3c 4c 5c 6c")); err == nil {
		t.Error("expected error for one hole card")
	}
	if _, err := Evaluate(MustParseCards("As 2c"), MustParseCards("2c 3c 4c 5c 6c")); err == nil {
		t.Error("expected error for duplicate card")
	}
}
