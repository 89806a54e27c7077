package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/game"
)

const minimal = `
types:
  - name: fire
    not_very_effective: [water]
  - name: water
    super_effective: [fire]
species:
  - id: emberling
    types: [fire]
moves:
  - id: tackle
    power: 40
    accuracy: 100
`

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "battle_config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.NotEmpty(t, cfg.Species)
	assert.NotEmpty(t, cfg.Moves)
	assert.NotEmpty(t, cfg.Items)
	assert.Equal(t, engine.DefaultBalance(), cfg.Balance)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimal))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, engine.DefaultBalance(), cfg.Balance)
	require.Len(t, cfg.Moves, 1)
	assert.Equal(t, game.CategoryPhysical, cfg.Moves[0].Category, "damaging moves default to physical")
}

func TestParsePartialBalanceKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimal + "balance:\n  trick_room_rounds: 3\n"))
	require.NoError(t, err)
	want := engine.DefaultBalance()
	want.TrickRoomRounds = 3
	assert.Equal(t, want, cfg.Balance)
}

func TestParseRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"duplicate species": "types:\n  - name: fire\nspecies:\n  - id: a\n    types: [fire]\n  - id: A\n    types: [fire]\nmoves:\n  - id: m\n",
		"duplicate move":    minimal + "  - id: Tackle\n",
		"unknown type":      "types:\n  - name: fire\nspecies:\n  - id: a\n    types: [plasma]\nmoves:\n  - id: m\n",
		"hp stage":          "types:\n  - name: fire\nspecies:\n  - id: a\n    types: [fire]\nmoves:\n  - id: m\n    stage_effects:\n      - {stat: hp, delta: 1}\n",
		"bad status":        "types:\n  - name: fire\nspecies:\n  - id: a\n    types: [fire]\nmoves:\n  - id: m\n    status_effect: {status: confused}\n",
		"bad accuracy":      "types:\n  - name: fire\nspecies:\n  - id: a\n    types: [fire]\nmoves:\n  - id: m\n    accuracy: 140\n",
		"empty moves":       "types:\n  - name: fire\nspecies:\n  - id: a\n    types: [fire]\n",
		"bad item":          minimal + "items:\n  - id: ball\n",
		"bad balance":       minimal + "balance:\n  paralysis_skip_percent: 150\n",
		"not yaml":          "types: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestParseEnvDefaults(t *testing.T) {
	t.Setenv("BATTLE_ACTION_TIMEOUT", "30s")
	t.Setenv("BATTLE_ADDR", ":9090")
	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, e.ActionTimeout)
	assert.Equal(t, 5*time.Second, e.ScanInterval)
	assert.Equal(t, ":9090", e.Address)
	assert.Equal(t, "./battle_config.yaml", e.ConfigPath)
}

func TestParseEnvRejectsBadDuration(t *testing.T) {
	t.Setenv("BATTLE_SCAN_INTERVAL", "soon")
	_, err := ParseEnv()
	assert.Error(t, err)
}
