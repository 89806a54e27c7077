package engine

import (
	"math/rand"

	"github.com/avoid201/untoldstory/internal/game"
)

// Reference is the immutable reference data the engine reads: moves,
// species, items, the type-effectiveness chart and type-based status
// immunities. The engine never mutates it.
type Reference interface {
	Move(id string) (game.Move, bool)
	Species(id string) (game.Species, bool)
	Item(id string) (game.Item, bool)
	// Effectiveness returns the combined multiplier of moveType against all
	// defender types (1.0 neutral, 0 immune).
	Effectiveness(moveType string, defenderTypes []string) float64
	StatusImmune(types []string, s game.Status) bool
}

// Source is the random source used by the engine. Tests substitute a fixed
// source to make rolls predictable.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// roundSource derives a deterministic source for one round of one battle, so
// a battle restored from storage rolls exactly as it would have in memory.
func roundSource(seed int64, round int) Source {
	return rand.New(rand.NewSource(seed ^ (int64(round) * 0x5DEECE66D)))
}

// chance rolls a percentage. Zero or >= 100 always succeeds.
func chance(src Source, percent int) bool {
	if percent <= 0 || percent >= 100 {
		return true
	}
	return src.Intn(100) < percent
}
