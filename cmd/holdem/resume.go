package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/record"
)

type ResumeCmd struct {
	File  string `arg:"" type:"existingfile" help:"Hand record (TOML)"`
	Seed  int64  `default:"0" env:"HOLDEM_SEED" help:"Seed for cards the record has not dealt yet"`
	Write bool   `short:"w" help:"Write dealt cards and winners back to the record"`
}

func (c *ResumeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, err := g.logger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	rec, err := readRecord(c.File)
	if err != nil {
		return err
	}
	tbl, err := cfg.Table("")
	if err != nil {
		return err
	}
	opts, err := tbl.Options()
	if err != nil {
		return err
	}

	rng, _ := newRand(c.Seed, logger)
	res, err := rec.Resume(rng, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("record cannot be replayed"))
		return err
	}
	describe(os.Stdout, res)

	if c.Write {
		var buf bytes.Buffer
		if err := record.Encode(&buf, rec); err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(c.File, buf.Bytes(), 0o644); err != nil {
			return err
		}
		logger.Info("Updated record", "file", c.File)
	}
	return nil
}
