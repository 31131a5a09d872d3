package poker

// Tier is a coarse preflop strength bucket for two hole cards.
type Tier int

const (
	TierTrash Tier = iota
	TierMarginal
	TierPlayable
	TierStrong
	TierPremium
)

func (t Tier) String() string {
	switch t {
	case TierPremium:
		return "premium"
	case TierStrong:
		return "strong"
	case TierPlayable:
		return "playable"
	case TierMarginal:
		return "marginal"
	default:
		return "trash"
	}
}

// PreflopTier buckets hole cards: premium (JJ+, AK), strong (TT, AQ, AJ),
// playable (77-99, suited broadway), marginal (22-66, suited connectors).
func PreflopTier(a, b Card) Tier {
	if !a.Valid() || !b.Valid() || a == b {
		return TierTrash
	}
	hi, lo := int(a.Rank()), int(b.Rank())
	if lo > hi {
		hi, lo = lo, hi
	}
	pair := hi == lo
	suited := a.Suit() == b.Suit()

	switch {
	case pair && lo >= int(Jack), hi == int(Ace) && lo == int(King):
		return TierPremium
	case pair && lo == int(Ten), hi == int(Ace) && lo >= int(Jack):
		return TierStrong
	case pair && lo >= int(Seven), suited && lo >= int(Ten):
		return TierPlayable
	case pair, suited && hi-lo <= 2:
		return TierMarginal
	}
	return TierTrash
}
