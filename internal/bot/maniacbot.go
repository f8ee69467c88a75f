package bot

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// ManiacBot bets and raises most of the time and shoves short stacks.
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) Decide(state game.PublicState) game.Decision {
	l := classify(state.ValidActions)
	d := m.choose(state, l)
	m.logger.Debug("decision", "player", state.Player, "action", d.Kind, "amount", d.Amount, "reason", d.Reasoning)
	return d
}

func (m *ManiacBot) choose(state game.PublicState, l legal) game.Decision {
	short := state.Blinds.Big > 0 && state.Stack <= 20*state.Blinds.Big
	r := m.rng.Float64()

	if l.minRaise != nil {
		switch {
		case short && r < 0.6:
			return decide(l.maxRaise, "maniac shove")
		case r < 0.3:
			return decide(l.maxRaise, "maniac max raise")
		case r < 0.8:
			return decide(between(l, 0.75), "maniac big raise")
		}
	}
	if l.check != nil {
		return decide(l.check, "maniac checking")
	}
	if l.call != nil && r < 0.9 {
		return decide(l.call, "maniac call")
	}
	return decide(l.fold, "maniac fold")
}
