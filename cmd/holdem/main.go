package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" type:"path" default:"holdem.hcl" env:"HOLDEM_CONFIG" help:"HCL configuration file"`
	LogLevel string `default:"" env:"HOLDEM_LOG_LEVEL" help:"Log level (debug, info, warn, error); overrides the config file"`
	NoColor  bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play many hands between bots and report the results"`
	Play     PlayCmd          `cmd:"" help:"Play hands from the terminal"`
	Resume   ResumeCmd        `cmd:"" help:"Replay a hand record and show whose turn it is"`
	Serve    ServeCmd         `cmd:"" help:"Serve the hand API over HTTP"`
	Export   ExportCmd        `cmd:"" help:"Convert a hand record to PHH"`
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em hand engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)

	if cli.NoColor || termenv.NewOutput(os.Stdout).EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
