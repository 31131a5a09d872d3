package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/headsup/internal/bot"
	"github.com/lox/headsup/internal/config"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/phh"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/remote"
	"github.com/lox/headsup/internal/tui"
)

type PlayCmd struct {
	Config string `short:"c" default:"headsup.hcl" type:"path" help:"Match config file; defaults apply when it does not exist"`
	Seed   int64  `help:"Override the configured seed"`
	Hands  int    `help:"Override the configured hand cap"`

	HistoryDir string `type:"path" env:"HEADSUP_HISTORY_DIR" help:"Write each hand as a PHH file into this directory"`
}

func (c *PlayCmd) Run(ctx context.Context, logger *log.Logger) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Match.Seed = c.Seed
	}
	if c.Hands != 0 {
		cfg.Match.MaxHands = c.Hands
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}
	seed := randutil.Seed(cfg.Match.Seed)
	logger.Info("Starting match", "config", c.Config, "seed", seed, "timeout", timeout)

	var players [2]*game.Player
	var hero string
	for i, pc := range cfg.Players {
		provider, closer, err := newProvider(ctx, pc, randutil.Derive(seed, i+1), logger)
		if err != nil {
			return fmt.Errorf("player %s: %w", pc.Name, err)
		}
		defer closer()
		if pc.Strategy == config.StrategyHuman && hero == "" {
			hero = pc.Name
		}
		players[i] = &game.Player{
			Name:     pc.Name,
			Stack:    cfg.Match.StartingStack,
			Provider: game.NewTimedProvider(provider, timeout, quartz.NewReal(), logger),
		}
	}

	bus := game.NewEventBus()
	bus.Subscribe(game.NewLogSubscriber(logger))
	bus.Subscribe(tui.NewEventPrinter(os.Stdout, hero))
	if c.HistoryDir != "" {
		sink, err := phh.DirSink(c.HistoryDir)
		if err != nil {
			return err
		}
		bus.Subscribe(phh.NewRecorder(sink, logger))
	}

	m, err := game.NewMatch(cfg.MatchConfig(), players[0], players[1],
		game.WithMatchRand(randutil.New(seed)),
		game.WithMatchEventBus(bus),
	)
	if err != nil {
		return err
	}

	res, err := m.Play(ctx)
	switch {
	case errors.Is(err, tui.ErrQuit):
		fmt.Println(tui.InfoStyle.Render(fmt.Sprintf("You left after %d hands.", res.Hands)))
		return nil
	case errors.Is(err, context.Canceled):
		fmt.Println(tui.InfoStyle.Render("Interrupted."))
		return nil
	}
	return err
}

func newProvider(ctx context.Context, pc config.PlayerConfig, seed int64, logger *log.Logger) (game.DecisionProvider, func(), error) {
	noop := func() {}
	switch pc.Strategy {
	case config.StrategyHuman:
		return tui.NewHuman(os.Stdin, os.Stdout, logger), noop, nil
	case config.StrategyRemote:
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		p, err := remote.Dial(dialCtx, pc.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		return p, func() {
			if err := p.Close(); err != nil {
				logger.Warn("Failed to close remote bot", "error", err)
			}
		}, nil
	}
	p, err := bot.ByName(pc.Strategy, randutil.New(seed), logger)
	return p, noop, err
}
