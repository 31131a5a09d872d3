// Package config loads match configuration from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/headsup/internal/bot"
	"github.com/lox/headsup/internal/game"
)

// Strategies that are not bots.
const (
	StrategyHuman  = "human"
	StrategyRemote = "remote"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config represents a complete match configuration
type Config struct {
	Match   *MatchSettings `hcl:"match,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// MatchSettings holds the blinds, stacks and pacing of a match.
type MatchSettings struct {
	SmallBlind      int    `hcl:"small_blind,optional"`
	BigBlind        int    `hcl:"big_blind,optional"`
	StartingStack   int    `hcl:"starting_stack,optional"`
	MaxHands        int    `hcl:"max_hands,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
	Seed            int64  `hcl:"seed,optional"`
}

// PlayerConfig is one seat. URL is only used by the remote strategy.
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	URL      string `hcl:"url,optional"`
}

func defaultMatch() *MatchSettings {
	return &MatchSettings{
		SmallBlind:      1,
		BigBlind:        2,
		StartingStack:   200,
		DecisionTimeout: "30s",
	}
}

// Default returns a human against the tag bot with 1/2 blinds.
func Default() *Config {
	return &Config{
		Match: defaultMatch(),
		Players: []PlayerConfig{
			{Name: "you", Strategy: StrategyHuman},
			{Name: "bot", Strategy: "tag"},
		},
	}
}

// Load reads filename. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, fills in defaults and validates the result.
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

	// Apply defaults for missing values
	defaults := defaultMatch()
	if config.Match == nil {
		config.Match = defaults
	}
	if config.Match.SmallBlind == 0 {
		config.Match.SmallBlind = defaults.SmallBlind
	}
	if config.Match.BigBlind == 0 {
		config.Match.BigBlind = max(defaults.BigBlind, 2*config.Match.SmallBlind)
	}
	if config.Match.StartingStack == 0 {
		config.Match.StartingStack = 100 * config.Match.BigBlind
	}
	if config.Match.DecisionTimeout == "" {
		config.Match.DecisionTimeout = defaults.DecisionTimeout
	}
	if len(config.Players) == 0 {
		config.Players = Default().Players
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks blinds, stacks and players.
func (c *Config) Validate() error {
	m := c.Match
	if m == nil {
		return fmt.Errorf("%w: missing match block", ErrInvalidConfig)
	}
	if err := c.MatchConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if m.StartingStack <= 0 {
		return fmt.Errorf("%w: starting stack must be positive, got %d", ErrInvalidConfig, m.StartingStack)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	if len(c.Players) != 2 {
		return fmt.Errorf("%w: exactly two players are required, got %d", ErrInvalidConfig, len(c.Players))
	}
	if c.Players[0].Name == c.Players[1].Name {
		return fmt.Errorf("%w: both players are named %q", ErrInvalidConfig, c.Players[0].Name)
	}
	for _, p := range c.Players {
		switch {
		case p.Strategy == StrategyRemote && p.URL == "":
			return fmt.Errorf("%w: player %s: remote strategy needs a url", ErrInvalidConfig, p.Name)
		case p.Strategy == StrategyHuman, p.Strategy == StrategyRemote:
		case !slices.Contains(bot.Names(), p.Strategy):
			return fmt.Errorf("%w: player %s: invalid strategy %s", ErrInvalidConfig, p.Name, p.Strategy)
		}
	}
	return nil
}

// Timeout returns the per-decision limit. Zero disables it.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Match.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: decision_timeout: %w", ErrInvalidConfig, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: decision_timeout must not be negative, got %s", ErrInvalidConfig, d)
	}
	return d, nil
}

// MatchConfig converts the settings for game.NewMatch.
func (c *Config) MatchConfig() game.MatchConfig {
	return game.MatchConfig{
		SmallBlind: c.Match.SmallBlind,
		BigBlind:   c.Match.BigBlind,
		MaxHands:   c.Match.MaxHands,
	}
}
