package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/simulator"
)

type SimulateCmd struct {
	Table      string `help:"Table from the config file (default: the first)"`
	Hands      int    `default:"1000" help:"Number of hands to play"`
	Workers    int    `default:"0" help:"Parallel workers (0 for one per CPU)"`
	Seed       int64  `default:"0" env:"HOLDEM_SEED" help:"RNG seed (0 for random)"`
	HistoryDir string `type:"path" help:"Write a text history of every hand to this directory"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, err := g.logger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	tbl, err := cfg.Table(c.Table)
	if err != nil {
		return err
	}
	hand, err := tbl.HandConfig()
	if err != nil {
		return err
	}
	opts, err := tbl.Options()
	if err != nil {
		return err
	}
	strategies := make(map[string]string, len(tbl.Seats))
	for _, s := range tbl.Seats {
		strategies[s.Name] = s.Strategy
	}
	_, seed := newRand(c.Seed, logger)

	sim := simulator.Config{
		Hands:      c.Hands,
		Workers:    c.Workers,
		Seed:       seed,
		Table:      hand,
		Strategies: strategies,
		Options:    opts,
		Logger:     logger,
	}
	if c.HistoryDir != "" {
		sim.History = game.NewFileHistoryWriter(c.HistoryDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Starting simulation", "table", tbl.Name, "hands", c.Hands, "seed", seed)
	sum, err := simulator.Run(ctx, sim)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf(" %s: %d hands ", tbl.Name, sum.Hands)))
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Seat", "Strategy", "Net", "bb/100", "Won", "Showdowns")
	for i, s := range sum.Seats {
		t.Row(s.Name, s.Strategy,
			strconv.Itoa(s.Net),
			fmt.Sprintf("%.2f", sum.BigBlindsPer100(i, hand.Blinds.Big)),
			strconv.Itoa(s.Won),
			strconv.Itoa(s.Showdowns))
	}
	fmt.Println(t.Render())
	fmt.Printf("%s %d  %s %d (hand %d)  %s %d\n",
		labelStyle.Render("Showdowns:"), sum.Showdowns,
		labelStyle.Render("Largest pot:"), sum.LargestPot, sum.LargestPotHand,
		labelStyle.Render("Seed:"), seed)
	return nil
}
