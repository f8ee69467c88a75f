package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/server"
	"github.com/lox/holdem-engine/internal/store"
)

type ServeCmd struct {
	Addr     string `env:"HOLDEM_ADDR" help:"Listen address (default: from the config file)"`
	Database string `type:"path" env:"HOLDEM_DATABASE" help:"SQLite database (default: from the config file)"`
	Seed     int64  `default:"0" env:"HOLDEM_SEED" help:"RNG seed for dealing (0 for random)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, err := g.logger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.Address()
	}
	dbPath := c.Database
	if dbPath == "" {
		dbPath = cfg.Server.Database
	}
	rule, err := game.ParseSplitRule(cfg.Server.SplitRule)
	if err != nil {
		return err
	}
	eval, err := evaluator.New(cfg.Server.Evaluator)
	if err != nil {
		return err
	}

	hands, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer hands.Close()

	rng, _ := newRand(c.Seed, logger)
	srv := server.NewServer(hands, logger, rng,
		game.WithSplitRule(rule),
		game.WithEvaluator(eval),
		game.WithLogger(logger.WithPrefix("hand")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Serving hands", "addr", addr, "database", dbPath, "evaluator", cfg.Server.Evaluator)
	return srv.ListenAndServe(ctx, addr)
}
