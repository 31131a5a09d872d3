// Package simulate plays many bot-versus-bot matches in parallel and
// summarises the results.
package simulate

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/lox/headsup/internal/bot"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Strategies    [2]string
	Matches       int
	MaxHands      int // per match; 0 plays to elimination
	SmallBlind    int
	BigBlind      int
	StartingStack int
	Seed          int64 // 0 picks a time based seed
	Concurrency   int   // 0 uses GOMAXPROCS
	Progress      io.Writer
	Logger        *log.Logger
}

func (c Config) validate() error {
	if c.Matches <= 0 {
		return fmt.Errorf("matches must be positive, got %d", c.Matches)
	}
	if c.StartingStack <= 0 {
		return fmt.Errorf("starting stack must be positive, got %d", c.StartingStack)
	}
	for _, s := range c.Strategies {
		if !slices.Contains(bot.Names(), s) {
			return fmt.Errorf("unknown bot strategy %q (want one of %v)", s, bot.Names())
		}
	}
	return game.MatchConfig{SmallBlind: c.SmallBlind, BigBlind: c.BigBlind, MaxHands: c.MaxHands}.Validate()
}

// Result aggregates every match. Stats are from the first strategy's
// point of view.
type Result struct {
	Seed    int64
	Matches int
	Wins    [2]int // indexed like Config.Strategies
	Draws   int
	Hands   int
	Stats   *statistics.Statistics
}

type outcome struct {
	winner int // -1 on a draw
	hands  int
	stats  *statistics.Statistics
}

// Run plays cfg.Matches matches. Match i is seeded from Derive(seed, i), so
// results do not depend on scheduling.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	logger := cfg.Logger.WithPrefix("simulate")
	seed := randutil.Seed(cfg.Seed)
	workers := cfg.Concurrency
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(cfg.Matches,
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("matches"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
		)
	} else {
		bar = progressbar.DefaultSilent(int64(cfg.Matches))
	}

	logger.Info("Starting simulation", "strategies", cfg.Strategies, "matches", cfg.Matches, "seed", seed, "workers", workers)

	outcomes := make([]outcome, cfg.Matches)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfg.Matches {
		g.Go(func() error {
			o, err := playMatch(ctx, cfg, randutil.Derive(seed, i), i, logger)
			if err != nil {
				return fmt.Errorf("match %d: %w", i+1, err)
			}
			outcomes[i] = o
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	_ = bar.Finish()

	res := &Result{Seed: seed, Matches: cfg.Matches, Stats: &statistics.Statistics{}}
	for _, o := range outcomes {
		if o.winner < 0 {
			res.Draws++
		} else {
			res.Wins[o.winner]++
		}
		res.Hands += o.hands
		res.Stats.Merge(o.stats)
	}
	logger.Info("Simulation complete", "wins", res.Wins, "draws", res.Draws, "hands", res.Hands)
	return res, nil
}

func playerNames(strategies [2]string) [2]string {
	if strategies[0] == strategies[1] {
		return [2]string{strategies[0] + "-1", strategies[1] + "-2"}
	}
	return strategies
}

func playMatch(ctx context.Context, cfg Config, seed int64, n int, logger *log.Logger) (outcome, error) {
	names := playerNames(cfg.Strategies)
	botLogger := logger.With("match", n+1)

	var players [2]*game.Player
	for i, strategy := range cfg.Strategies {
		provider, err := bot.ByName(strategy, randutil.New(randutil.Derive(seed, i+1)), botLogger)
		if err != nil {
			return outcome{}, err
		}
		players[i] = &game.Player{Name: names[i], Stack: cfg.StartingStack, Provider: provider}
	}

	collector := statistics.NewCollector(names[0])
	bus := game.NewEventBus()
	bus.Subscribe(collector)

	// Alternate who posts the first small blind.
	first, second := players[0], players[1]
	if n%2 == 1 {
		first, second = second, first
	}
	m, err := game.NewMatch(
		game.MatchConfig{SmallBlind: cfg.SmallBlind, BigBlind: cfg.BigBlind, MaxHands: cfg.MaxHands},
		first, second,
		game.WithMatchRand(randutil.New(seed)),
		game.WithMatchEventBus(bus),
	)
	if err != nil {
		return outcome{}, err
	}
	res, err := m.Play(ctx)
	if err != nil {
		return outcome{}, fmt.Errorf("seed %d: %w", seed, err)
	}

	o := outcome{winner: -1, hands: res.Hands, stats: collector.Statistics()}
	for i, p := range players {
		if res.Winner == p {
			o.winner = i
		}
	}
	botLogger.Debug("Match finished", "hands", res.Hands, "stacks", res.Stacks)
	return o, nil
}
