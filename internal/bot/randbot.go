package bot

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// RandBot picks a uniformly random legal action, and a random size when
// it raises.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(state game.PublicState) game.Decision {
	if len(state.ValidActions) == 0 {
		return decide(nil, "")
	}
	pick := state.ValidActions[r.rng.Intn(len(state.ValidActions))]
	if pick.Kind.IsAggressive() {
		if a := between(classify(state.ValidActions), r.rng.Float64()); a != nil {
			pick = *a
		}
	}
	r.logger.Debug("decision", "player", state.Player, "action", pick.Kind, "amount", pick.Amount)
	return decide(&pick, "rand-bot random action")
}
