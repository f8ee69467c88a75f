package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/record"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// loadConfig reads and validates the configuration file.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", g.Config, err)
	}
	return cfg, nil
}

// logger builds a logger writing to w. The flag level wins over the config
// file.
func (g *Globals) logger(cfg *config.Config, w io.Writer) (*log.Logger, error) {
	name := g.LogLevel
	if name == "" && cfg != nil {
		name = cfg.LogLevel
	}
	if name == "" {
		name = "info"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}), nil
}

// newRand returns a seeded rng; a zero seed picks one from the clock.
func newRand(seed int64, logger *log.Logger) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("Using seed", "seed", seed)
	return rand.New(rand.NewSource(seed)), seed
}

func readRecord(path string) (*record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return record.Decode(f)
}

// describe prints the state of a replayed hand.
func describe(w io.Writer, res *game.ResumeResult) {
	h := res.History
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Hand:"), h.ID)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Street:"), h.Street)
	if b := h.Board(); b != 0 {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Board:"), b)
	}
	for _, p := range h.Pots {
		fmt.Fprintf(w, "%s %d\n", labelStyle.Render(p.Name+":"), p.Size)
	}
	for i, s := range h.Seats {
		fmt.Fprintf(w, "  %-16s %6d\n", s.Name, h.Stacks[i])
	}
	if res.Complete {
		for _, win := range h.Winners {
			fmt.Fprintf(w, "%s wins %d from the %s\n", win.Player, win.Amount, win.Pot)
		}
		return
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("To act:"), res.NextActor)
	for _, a := range res.ValidActions {
		fmt.Fprintf(w, "  %s\n", a)
	}
}
