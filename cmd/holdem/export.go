package main

import (
	"os"

	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/phh"
)

type ExportCmd struct {
	File   string `arg:"" type:"existingfile" help:"Hand record (TOML)"`
	Output string `short:"o" type:"path" help:"Write PHH here instead of stdout"`
	Table  string `help:"Table name written into the PHH"`
	Seed   int64  `default:"0" env:"HOLDEM_SEED" help:"Seed for cards the record has not dealt yet"`
}

func (c *ExportCmd) Run(g *Globals) error {
	logger, err := g.logger(nil, os.Stderr)
	if err != nil {
		return err
	}
	rec, err := readRecord(c.File)
	if err != nil {
		return err
	}
	rng, _ := newRand(c.Seed, logger)
	res, err := rec.Resume(rng)
	if err != nil {
		return err
	}

	out, err := phh.EncodeToBytes(phh.FromHistory(res.History, c.Table))
	if err != nil {
		return err
	}
	if c.Output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := fileutil.WriteFileAtomicDir(c.Output, out, 0o644); err != nil {
		return err
	}
	logger.Info("Wrote PHH", "file", c.Output)
	return nil
}
