// Package statistics summarises a player's results over many hands in big
// blinds per hand.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/headsup/internal/betting"
)

// HandResult represents the outcome of a single hand for the tracked player
type HandResult struct {
	NetBB          float64 // net big blinds won/lost
	Seat           betting.Seat
	WentToShowdown bool
	FinalPotSize   int // in chips
	BigBlind       int
}

// SeatStats tracks statistics for one seat
type SeatStats struct {
	Hands int
	SumBB float64
}

// Statistics accumulates hand results. It is not safe for concurrent use;
// combine per-worker values with Merge.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // BB from showdown (wins AND losses)
	NonShowdownBB   float64 // BB from fold equity (wins AND losses)
	AllBB           float64 // Total BB for sanity check

	Seats [2]SeatStats // indexed by betting.Seat

	MaxPotBB  float64
	BigPots   int // pots of 50bb or more
	BigPotsBB float64
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// BBPer100 is the win rate in big blinds per hundred hands.
func (s *Statistics) BBPer100() float64 {
	return s.Mean() * 100
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if netBB > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if result.Seat == betting.SmallBlind || result.Seat == betting.BigBlind {
		s.Seats[result.Seat].Hands++
		s.Seats[result.Seat].SumBB += netBB
	}

	if result.BigBlind > 0 {
		potBB := float64(result.FinalPotSize) / float64(result.BigBlind)
		s.MaxPotBB = max(s.MaxPotBB, potBB)
		if potBB >= 50 {
			s.BigPots++
			s.BigPotsBB += netBB
		}
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	for i := range s.Seats {
		s.Seats[i].Hands += other.Seats[i].Hands
		s.Seats[i].SumBB += other.Seats[i].SumBB
	}
	s.MaxPotBB = max(s.MaxPotBB, other.MaxPotBB)
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean result from one seat.
func (s *Statistics) SeatMean(seat betting.Seat) float64 {
	if seat != betting.SmallBlind && seat != betting.BigBlind {
		return 0
	}
	ss := s.Seats[seat]
	if ss.Hands == 0 {
		return 0
	}
	return ss.SumBB / float64(ss.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the counters agree with each other.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	if seated := s.Seats[0].Hands + s.Seats[1].Hands; seated != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match total hands (%d)", seated, s.Hands)
	}
	return nil
}
