package bot

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// TAGBot is tight and aggressive. It raises strong starting hands and made
// hands, calls with medium ones and otherwise checks or mostly folds.
type TAGBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) Decide(state game.PublicState) game.Decision {
	l := classify(state.ValidActions)
	category := poker.Categorize(state.HoleCards)
	strong := category >= poker.CategoryStrong
	playable := category >= poker.CategoryMedium
	if state.Street > game.Preflop {
		strong = pairsBoard(state.HoleCards, state.Board)
		playable = strong
	}

	var d game.Decision
	switch {
	case strong && l.minRaise != nil:
		d = decide(between(l, 0.25), "TAG raise")
	case strong && l.call != nil:
		d = decide(l.call, "TAG call with a strong hand")
	case l.check != nil:
		d = decide(l.check, "TAG check")
	case playable && l.call != nil:
		d = decide(l.call, "TAG call with a playable hand")
	case l.call != nil && t.rng.Float64() < 0.3:
		d = decide(l.call, "TAG call")
	default:
		d = decide(l.fold, "TAG fold")
	}
	t.logger.Debug("decision", "player", state.Player, "action", d.Kind, "amount", d.Amount, "reason", d.Reasoning)
	return d
}

// pairsBoard reports a pocket pair or a hole card matching a board rank.
func pairsBoard(hole, board poker.Hand) bool {
	cards := hole.Cards()
	if len(cards) == 2 && cards[0].Rank() == cards[1].Rank() {
		return true
	}
	for _, h := range cards {
		for _, b := range board.Cards() {
			if h.Rank() == b.Rank() {
				return true
			}
		}
	}
	return false
}
