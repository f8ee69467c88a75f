package poker

// HoleCardCategory is a coarse preflop strength bucket. Categories are
// ordered, so they can be compared.
type HoleCardCategory int

const (
	CategoryUnknown HoleCardCategory = iota
	CategoryTrash
	CategoryWeak
	CategoryMedium
	CategoryStrong
	CategoryPremium
)

func (c HoleCardCategory) String() string {
	switch c {
	case CategoryTrash:
		return "trash"
	case CategoryWeak:
		return "weak"
	case CategoryMedium:
		return "medium"
	case CategoryStrong:
		return "strong"
	case CategoryPremium:
		return "premium"
	}
	return "unknown"
}

// Categorize buckets two hole cards:
//
//	premium  JJ+, AK
//	strong   TT, AQ, AJ
//	medium   77-99, suited broadway
//	weak     22-66, suited connectors and one-gappers
//	trash    everything else
func Categorize(hole Hand) HoleCardCategory {
	cards := hole.Cards()
	if len(cards) != 2 {
		return CategoryUnknown
	}
	hi, lo := cards[0].Rank(), cards[1].Rank()
	if lo > hi {
		hi, lo = lo, hi
	}
	suited := cards[0].Suit() == cards[1].Suit()
	pair := hi == lo

	switch {
	case pair && lo >= Jack, hi == Ace && lo == King:
		return CategoryPremium
	case pair && lo == Ten, hi == Ace && lo >= Jack:
		return CategoryStrong
	case pair && lo >= Seven, suited && lo >= Ten:
		return CategoryMedium
	case pair, suited && hi-lo <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}
