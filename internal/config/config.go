// Package config loads table and server settings from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
)

// HumanStrategy marks a seat played from the terminal.
const HumanStrategy = "human"

// Config is the complete configuration file.
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Server   *ServerSettings `hcl:"server,block"`
	Tables   []TableConfig   `hcl:"table,block"`
}

// ServerSettings configures the hand API.
type ServerSettings struct {
	Address   string `hcl:"address,optional"`
	Port      int    `hcl:"port,optional"`
	Database  string `hcl:"database,optional"`
	Evaluator string `hcl:"evaluator,optional"`
	SplitRule string `hcl:"split_rule,optional"`
}

// TableConfig describes a table that hands are dealt at.
type TableConfig struct {
	Name       string       `hcl:"name,label"`
	Structure  string       `hcl:"structure,optional"`
	SmallBlind int          `hcl:"small_blind,optional"`
	BigBlind   int          `hcl:"big_blind,optional"`
	Ante       int          `hcl:"ante,optional"`
	Rake       int          `hcl:"rake,optional"`
	Button     int          `hcl:"button,optional"`
	SplitRule  string       `hcl:"split_rule,optional"`
	Evaluator  string       `hcl:"evaluator,optional"`
	Seats      []SeatConfig `hcl:"seat,block"`
}

// SeatConfig is one seat at a table.
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Position int    `hcl:"position,optional"`
	Stack    int    `hcl:"stack,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Tables: []TableConfig{
			{
				Name:       "main",
				SmallBlind: 1,
				BigBlind:   2,
				Seats: []SeatConfig{
					{Name: "tag"},
					{Name: "caller", Strategy: "call"},
					{Name: "maniac", Strategy: "raise"},
					{Name: "random", Strategy: "random"},
				},
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads the HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Database == "" {
		c.Server.Database = "hands.db"
	}
	if c.Server.Evaluator == "" {
		c.Server.Evaluator = "paulhankin"
	}
	if c.Server.SplitRule == "" {
		c.Server.SplitRule = game.SplitOddChipToButton.String()
	}

	for i := range c.Tables {
		t := &c.Tables[i]
		if t.Structure == "" {
			t.Structure = game.NoLimit.String()
		}
		if t.SplitRule == "" {
			t.SplitRule = c.Server.SplitRule
		}
		if t.Evaluator == "" {
			t.Evaluator = c.Server.Evaluator
		}
		for j := range t.Seats {
			s := &t.Seats[j]
			if s.Position == 0 {
				s.Position = j + 1
			}
			if s.Stack == 0 {
				s.Stack = max(t.BigBlind, 1) * 100
			}
			if s.Strategy == "" {
				s.Strategy = "tag"
			}
		}
		if t.Button == 0 && len(t.Seats) > 0 {
			t.Button = t.Seats[0].Position
		}
	}
}

// Validate checks every table can deal a hand.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := game.ParseSplitRule(c.Server.SplitRule); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if _, err := evaluator.New(c.Server.Evaluator); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	names := make(map[string]bool, len(c.Tables))
	for _, table := range c.Tables {
		if names[table.Name] {
			return fmt.Errorf("table %s: defined twice", table.Name)
		}
		names[table.Name] = true

		hand, err := table.HandConfig()
		if err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
		if err := hand.Validate(); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
		if _, err := table.Options(); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
		for _, seat := range table.Seats {
			if seat.Strategy != HumanStrategy && !slices.Contains(bot.Strategies, seat.Strategy) {
				return fmt.Errorf("table %s: seat %s: invalid strategy %s", table.Name, seat.Name, seat.Strategy)
			}
		}
	}
	return nil
}

// Address returns the listen address of the hand API.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Table returns the named table, or the first table for an empty name.
func (c *Config) Table(name string) (*TableConfig, error) {
	if name == "" && len(c.Tables) > 0 {
		return &c.Tables[0], nil
	}
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("no table named %q", name)
}

// HandConfig converts the table into a hand configuration. Seats have no
// decision source attached.
func (t TableConfig) HandConfig() (game.HandConfig, error) {
	structure, err := game.ParseStructure(t.Structure)
	if err != nil {
		return game.HandConfig{}, err
	}
	cfg := game.HandConfig{
		Button:    t.Button,
		Blinds:    game.Blinds{Small: t.SmallBlind, Big: t.BigBlind},
		Ante:      t.Ante,
		Structure: structure,
		Rake:      t.Rake,
		Seats:     make([]game.Seat, len(t.Seats)),
	}
	for i, s := range t.Seats {
		cfg.Seats[i] = game.Seat{Name: s.Name, Position: s.Position, Stack: s.Stack}
	}
	return cfg, nil
}

// Options returns the engine options for the table's evaluator and split
// rule.
func (t TableConfig) Options() ([]game.Option, error) {
	rule, err := game.ParseSplitRule(t.SplitRule)
	if err != nil {
		return nil, err
	}
	eval, err := evaluator.New(t.Evaluator)
	if err != nil {
		return nil, err
	}
	return []game.Option{game.WithSplitRule(rule), game.WithEvaluator(eval)}, nil
}
