package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/simulate"
	"github.com/lox/headsup/internal/tui"
)

type SimulateCmd struct {
	Strategies  []string `arg:"" help:"Two bot strategies, e.g. tag random"`
	Matches     int      `short:"n" default:"100" help:"Number of matches"`
	Hands       int      `default:"0" help:"Hand cap per match (0 plays to elimination)"`
	SmallBlind  int      `name:"sb" default:"1" help:"Small blind"`
	BigBlind    int      `name:"bb" default:"2" help:"Big blind"`
	Stack       int      `default:"200" help:"Starting stack"`
	Seed        int64    `help:"Seed for reproducible runs (0 = time based)"`
	Concurrency int      `short:"j" default:"0" help:"Parallel matches (0 = GOMAXPROCS)"`
	Quiet       bool     `short:"q" help:"Hide the progress bar"`
}

func (c *SimulateCmd) Run(ctx context.Context, logger *log.Logger) error {
	if len(c.Strategies) != 2 {
		return fmt.Errorf("simulate needs exactly two strategies, got %d", len(c.Strategies))
	}
	var progress io.Writer = os.Stderr
	if c.Quiet {
		progress = nil
	}

	strategies := [2]string{c.Strategies[0], c.Strategies[1]}
	res, err := simulate.Run(ctx, simulate.Config{
		Strategies:    strategies,
		Matches:       c.Matches,
		MaxHands:      c.Hands,
		SmallBlind:    c.SmallBlind,
		BigBlind:      c.BigBlind,
		StartingStack: c.Stack,
		Seed:          c.Seed,
		Concurrency:   c.Concurrency,
		Progress:      progress,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	s := res.Stats
	lo, hi := s.ConfidenceInterval95()
	fmt.Println()
	fmt.Println(tui.HeaderStyle.Render(fmt.Sprintf(" %s vs %s ", strategies[0], strategies[1])))
	fmt.Printf("Matches:  %d (seed %d)\n", res.Matches, res.Seed)
	fmt.Printf("Wins:     %s %d, %s %d, level %d\n", strategies[0], res.Wins[0], strategies[1], res.Wins[1], res.Draws)
	fmt.Printf("Hands:    %d\n", res.Hands)
	fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("%s: %.2f bb/100 (95%% CI %.2f to %.2f)", strategies[0], s.BBPer100(), lo*100, hi*100)))
	fmt.Printf("By seat:  SB %.3f bb/hand, BB %.3f bb/hand\n", s.SeatMean(betting.SmallBlind), s.SeatMean(betting.BigBlind))
	fmt.Printf("Showdown: %.1f bb, without showdown %.1f bb\n", s.ShowdownBB, s.NonShowdownBB)
	return nil
}
