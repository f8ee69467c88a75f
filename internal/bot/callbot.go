package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// CallBot checks or calls every street and never raises.
type CallBot struct {
	logger *log.Logger
}

func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(state game.PublicState) game.Decision {
	l := classify(state.ValidActions)
	var d game.Decision
	switch {
	case l.check != nil:
		d = decide(l.check, "call-bot checking")
	case l.call != nil:
		d = decide(l.call, "call-bot calling")
	default:
		d = decide(l.fold, "call-bot forced fold")
	}
	c.logger.Debug("decision", "player", state.Player, "action", d.Kind, "amount", d.Amount)
	return d
}
