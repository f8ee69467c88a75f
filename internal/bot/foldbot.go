package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// FoldBot folds whenever it has to put chips in and checks otherwise.
type FoldBot struct {
	logger *log.Logger
}

func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Decide(state game.PublicState) game.Decision {
	d := decide(classify(state.ValidActions).passive(), "fold-bot")
	f.logger.Debug("decision", "player", state.Player, "action", d.Kind)
	return d
}
