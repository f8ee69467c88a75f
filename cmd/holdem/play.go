package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/record"
	"github.com/lox/holdem-engine/internal/tui"
)

type PlayCmd struct {
	Table     string `help:"Table from the config file (default: the first)"`
	Hands     int    `default:"10" help:"Number of hands to play"`
	Seed      int64  `default:"0" env:"HOLDEM_SEED" help:"RNG seed (0 for random)"`
	RecordDir string `type:"path" help:"Save a TOML record of every hand to this directory"`
	LogFile   string `type:"path" default:"holdem-play.log" help:"Log file used while the terminal UI is running"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	tbl, err := cfg.Table(c.Table)
	if err != nil {
		return err
	}
	human := slices.ContainsFunc(tbl.Seats, func(s config.SeatConfig) bool {
		return s.Strategy == config.HumanStrategy
	})
	if !human {
		logger, err := g.logger(cfg, os.Stderr)
		if err != nil {
			return err
		}
		return c.play(context.Background(), tbl, logger, nil, func(s string) { fmt.Println(s) })
	}

	// The UI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger, err := g.logger(cfg, logFile)
	if err != nil {
		return err
	}

	prompter := tui.NewPrompter(tea.WithAltScreen())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-prompter.Done()
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.play(ctx, tbl, logger, prompter, func(s string) { prompter.Printf("%s", s) })
		prompter.Printf("Game over. Press Ctrl+C to exit.")
	}()
	if err := prompter.Run(); err != nil {
		return err
	}
	cancel()
	if err := <-errCh; err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// play deals hands until the count is reached or fewer than two seats have
// chips. Stacks carry over and the button moves one seat per hand.
func (c *PlayCmd) play(ctx context.Context, tbl *config.TableConfig, logger *log.Logger, human game.DecisionSource, out func(string)) error {
	base, err := tbl.HandConfig()
	if err != nil {
		return err
	}
	opts, err := tbl.Options()
	if err != nil {
		return err
	}
	rng, seed := newRand(c.Seed, logger)
	logger.Info("Starting game", "table", tbl.Name, "hands", c.Hands, "seed", seed)

	strategies := make(map[string]string, len(tbl.Seats))
	brains := make(map[string]game.DecisionSource, len(tbl.Seats))
	for _, s := range tbl.Seats {
		strategies[s.Name] = s.Strategy
		if s.Strategy == config.HumanStrategy {
			brains[s.Name] = human
			continue
		}
		brains[s.Name], err = bot.New(s.Strategy, rand.New(rand.NewSource(rng.Int63())), logger.WithPrefix(s.Name))
		if err != nil {
			return err
		}
	}

	seats := slices.Clone(base.Seats)
	slices.SortFunc(seats, func(a, b game.Seat) int { return a.Position - b.Position })
	button := base.Button

	for i := range c.Hands {
		if len(seats) < 2 {
			out("Not enough players with chips left.")
			return nil
		}
		hand := base
		hand.Button = button
		hand.Seats = make([]game.Seat, len(seats))
		for j, s := range seats {
			s.Brain = brains[s.Name]
			hand.Seats[j] = s
		}

		engine, err := game.NewEngine(hand, append(slices.Clone(opts), game.WithRNG(rng), game.WithLogger(logger))...)
		if err != nil {
			return err
		}
		h, err := engine.Play(ctx)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		for _, line := range strings.Split(strings.TrimRight(h.String(), "\n"), "\n") {
			out(line)
		}
		out("")
		if err := c.saveRecord(h); err != nil {
			return err
		}

		// Carry stacks over and drop busted seats.
		next := seats[:0]
		for j, s := range seats {
			s.Stack = h.Stacks[j]
			if s.Stack > 0 {
				next = append(next, s)
			} else {
				logger.Info("Seat busted", "seat", s.Name, "strategy", strategies[s.Name])
			}
		}
		seats = next
		button = nextButton(seats, button)
	}
	return nil
}

// nextButton returns the position of the first seat after pos.
func nextButton(seats []game.Seat, pos int) int {
	if len(seats) == 0 {
		return pos
	}
	for _, s := range seats {
		if s.Position > pos {
			return s.Position
		}
	}
	return seats[0].Position
}

func (c *PlayCmd) saveRecord(h *game.HandHistory) error {
	if c.RecordDir == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := record.Encode(&buf, record.FromHistory(h)); err != nil {
		return err
	}
	return fileutil.WriteFileAtomicDir(filepath.Join(c.RecordDir, h.ID+".toml"), buf.Bytes(), 0o644)
}
