package testutil

import (
	"github.com/rs/zerolog"

	"imperium/internal/config"
	"imperium/internal/content"
	"imperium/internal/game"
	"imperium/internal/game/rng"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rng.Generator {
	return rng.New(seed)
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// NewTestEngine builds an engine over the embedded content tables and
// default tunables, with the given nation as player.
func NewTestEngine(playerNationID string) (*game.Engine, error) {
	lib, err := content.Load()
	if err != nil {
		return nil, err
	}
	return game.NewEngine(lib, config.Default(), playerNationID, NopLogger())
}
