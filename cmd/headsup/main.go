package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	LogLevel string `default:"warn" enum:"debug,info,warn,error" env:"HEADSUP_LOG_LEVEL" help:"Log level (debug|info|warn|error)"`
	LogFile  string `env:"HEADSUP_LOG_FILE" type:"path" help:"Write logs to a file instead of stderr"`
	NoColor  bool   `env:"NO_COLOR" help:"Disable colored output"`

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play a match from a config file"`
	Simulate SimulateCmd `cmd:"" help:"Run bot-vs-bot matches and report win rates"`
	Bot      BotCmd      `cmd:"" help:"Serve a built-in bot over websocket"`
	Version  VersionCmd  `cmd:"" help:"Print the version"`
}

type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Println(version)
	return nil
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("headsup"),
		kong.Description("Heads-up no-limit Texas Hold'em"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger, closeLog, err := newLogger(cli.LogLevel, cli.LogFile)
	kctx.FatalIfErrorf(err)
	defer closeLog()

	err = kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}

func newLogger(level, file string) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
			}
		}
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           lvl,
	}), closer, nil
}
