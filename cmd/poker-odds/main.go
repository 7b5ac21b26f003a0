package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"

	"github.com/cynthiacxzhang/range-equity-agent/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every subcommand, plus the state built
// from them before a command runs.
type Globals struct {
	Config   string `short:"c" default:"${config_file}" env:"POKER_ODDS_CONFIG" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" env:"POKER_ODDS_LOG_LEVEL" help:"Log level: debug, info, warn or error (overrides config)"`
	NoColor  bool   `help:"Disable colored output"`

	out    io.Writer
	cfg    *config.Config
	logger *log.Logger
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Equity  EquityCmd        `cmd:"" help:"Estimate hero equity against a range"`
	Outs    OutsCmd          `cmd:"" help:"Count the cards that improve the hero's hand"`
	Range   RangeCmd         `cmd:"" help:"Expand range notation into combos"`
	Eval    EvalCmd          `cmd:"" help:"Score a five to seven card hand"`
	Presets PresetsCmd       `cmd:"" help:"List named ranges"`
	Serve   ServeCmd         `cmd:"" help:"Run the HTTP and websocket service"`
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("poker-odds"),
		kong.Description("Monte Carlo equity, outs and range tools for Texas Hold'em"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)

	if err := cli.setup(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// setup loads the config file, applies flag overrides and builds the logger.
func (g *Globals) setup(out, logOut io.Writer) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger := log.New(logOut)
	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	g.out = out
	g.cfg = cfg
	g.logger = logger
	return nil
}
