// Package tui lets a person play a seat from the terminal.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// promptMsg asks the model for a decision.
type promptMsg struct {
	state game.PublicState
	reply chan game.Decision
}

// logMsg appends a line to the log pane.
type logMsg string

type styles struct {
	LogPane    lipgloss.Style
	ActionPane lipgloss.Style
	HandInfo   lipgloss.Style
	Actions    lipgloss.Style
	RedCard    lipgloss.Style
	BlackCard  lipgloss.Style
	Error      lipgloss.Style
	Help       lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		LogPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		ActionPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1),
		HandInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Actions:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		RedCard:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

// Model is the bubbletea model behind a Prompter.
type Model struct {
	logView viewport.Model
	input   textinput.Model
	lines   []string
	prompt  *promptMsg
	status  string
	styles  styles

	width    int
	height   int
	quitting bool
}

func NewModel() *Model {
	ti := textinput.New()
	ti.Placeholder = "f, k, c, b 10, r 20, a"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.Prompt = "> "

	return &Model{
		logView: viewport.New(80, 20),
		input:   ti,
		styles:  defaultStyles(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logView.Width = max(msg.Width-4, 10)
		m.logView.Height = max(msg.Height-9, 3)
		m.input.Width = max(msg.Width-8, 10)

	case logMsg:
		m.addLine(string(msg))

	case promptMsg:
		m.prompt = &msg
		m.status = ""

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.quit()
		case tea.KeyEnter:
			return m, m.submit()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.logView, cmd = m.logView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit answers the pending prompt with the typed command.
func (m *Model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.SetValue("")
	if m.prompt == nil {
		m.status = "waiting for the other players"
		return nil
	}
	d, err := ParseCommand(line, m.prompt.state)
	if errors.Is(err, ErrQuit) {
		return m.quit()
	}
	if err != nil {
		m.status = err.Error()
		return nil
	}
	m.prompt.reply <- d
	m.prompt = nil
	m.status = ""
	return nil
}

// quit folds any pending decision and stops the program.
func (m *Model) quit() tea.Cmd {
	if m.prompt != nil {
		m.prompt.reply <- game.Decision{Kind: game.Fold, Reasoning: "quit"}
		m.prompt = nil
	}
	m.quitting = true
	return tea.Quit
}

func (m *Model) addLine(s string) {
	m.lines = append(m.lines, s)
	m.logView.SetContent(strings.Join(m.lines, "\n"))
	m.logView.GotoBottom()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width := max(m.width-2, 20)

	var b strings.Builder
	if m.prompt != nil {
		b.WriteString(m.renderHandInfo(m.prompt.state))
		b.WriteString("\n")
		b.WriteString(m.renderActions(m.prompt.state))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.Error.Render(m.status))
	} else {
		b.WriteString(m.styles.Help.Render(helpText))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.LogPane.Width(width).Render(m.logView.View()),
		m.styles.ActionPane.Width(width).Render(b.String()),
	)
}

func (m *Model) renderHandInfo(s game.PublicState) string {
	info := fmt.Sprintf("%s  Hand: %s  Board: %s  Stack: %d  Pot: %d",
		s.Street, m.formatCards(s.HoleCards), m.formatCards(s.Board), s.Stack, s.Pot)
	return m.styles.HandInfo.Render(info)
}

func (m *Model) renderActions(s game.PublicState) string {
	var parts []string
	for _, a := range s.ValidActions {
		switch {
		case a.Kind.IsAggressive():
			label := fmt.Sprintf("[%s to %d]", a.Kind, a.Amount+s.CommittedThisStreet)
			if a.AllIn {
				label = fmt.Sprintf("[all-in %d]", a.Amount+s.CommittedThisStreet)
			}
			parts = append(parts, label)
		case a.Amount > 0:
			parts = append(parts, fmt.Sprintf("[%s %d]", a.Kind, a.Amount))
		default:
			parts = append(parts, fmt.Sprintf("[%s]", a.Kind))
		}
	}
	return m.styles.Actions.Render("Actions: " + strings.Join(parts, " "))
}

func (m *Model) formatCards(h poker.Hand) string {
	if h == 0 {
		return "-"
	}
	var out []string
	for _, c := range h.Cards() {
		style := m.styles.BlackCard
		if c.Suit() == poker.Hearts || c.Suit() == poker.Diamonds {
			style = m.styles.RedCard
		}
		out = append(out, style.Render(c.String()))
	}
	return strings.Join(out, " ")
}
