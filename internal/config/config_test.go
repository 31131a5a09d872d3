package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "match.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
match {
  small_blind      = 5
  big_blind        = 10
  starting_stack   = 1000
  max_hands        = 50
  decision_timeout = "0s"
  seed             = 42
}

player "alice" {
  strategy = "human"
}

player "far" {
  strategy = "remote"
  url      = "ws://127.0.0.1:8090/ws"
}
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, MatchSettings{
		SmallBlind:      5,
		BigBlind:        10,
		StartingStack:   1000,
		MaxHands:        50,
		DecisionTimeout: "0s",
		Seed:            42,
	}, *cfg.Match)
	assert.Equal(t, []PlayerConfig{
		{Name: "alice", Strategy: "human"},
		{Name: "far", Strategy: "remote", URL: "ws://127.0.0.1:8090/ws"},
	}, cfg.Players)

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Zero(t, d)

	mc := cfg.MatchConfig()
	assert.Equal(t, 5, mc.SmallBlind)
	assert.Equal(t, 10, mc.BigBlind)
	assert.Equal(t, 50, mc.MaxHands)
}

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(`
match {
  small_blind = 2
}
`), "partial.hcl")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Match.SmallBlind)
	assert.Equal(t, 4, cfg.Match.BigBlind)
	assert.Equal(t, 400, cfg.Match.StartingStack)
	assert.Equal(t, "30s", cfg.Match.DecisionTimeout)
	assert.Len(t, cfg.Players, 2)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"syntax", `match {`, "failed to parse"},
		{"unknown attribute", `match { ante = 1 }`, "failed to decode"},
		{"inverted blinds", `match {
  small_blind = 4
  big_blind = 2
}`, "blinds 4/2"},
		{"negative stack", `match { starting_stack = -5 }`, "starting stack must be positive"},
		{"bad timeout", `match { decision_timeout = "soon" }`, "decision_timeout"},
		{"negative timeout", `match { decision_timeout = "-1s" }`, "must not be negative"},
		{"one player", `player "a" { strategy = "tag" }`, "exactly two players"},
		{"same names", `
player "a" { strategy = "tag" }
player "a" { strategy = "calling" }`, "both players are named"},
		{"unknown strategy", `
player "a" { strategy = "tag" }
player "b" { strategy = "psychic" }`, "invalid strategy psychic"},
		{"remote without url", `
player "a" { strategy = "tag" }
player "b" { strategy = "remote" }`, "needs a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src), tt.name+".hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateWrapsErrInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Players = cfg.Players[:1]
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
