package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdem-engine/internal/game"
)

// Prompter is a game.DecisionSource backed by a terminal UI. Decide blocks
// until the player answers; once the UI has exited every decision is a
// fold.
type Prompter struct {
	program *tea.Program
	done    chan struct{}
}

func NewPrompter(opts ...tea.ProgramOption) *Prompter {
	return &Prompter{
		program: tea.NewProgram(NewModel(), opts...),
		done:    make(chan struct{}),
	}
}

// Run runs the UI until the player quits or Quit is called.
func (p *Prompter) Run() error {
	defer close(p.done)
	_, err := p.program.Run()
	return err
}

// Quit stops the UI and waits for Run to return.
func (p *Prompter) Quit() {
	p.program.Quit()
	<-p.done
}

// Done is closed when the UI has exited.
func (p *Prompter) Done() <-chan struct{} {
	return p.done
}

func (p *Prompter) Decide(state game.PublicState) game.Decision {
	reply := make(chan game.Decision, 1)
	p.program.Send(promptMsg{state: state, reply: reply})
	select {
	case d := <-reply:
		return d
	case <-p.done:
		return game.Decision{Kind: game.Fold, Reasoning: "quit"}
	}
}

// Printf appends a line to the log pane.
func (p *Prompter) Printf(format string, args ...any) {
	p.program.Send(logMsg(fmt.Sprintf(format, args...)))
}
