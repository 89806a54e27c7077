package engine

import "github.com/avoid201/untoldstory/internal/game"

func clampStage(s int) int {
	if s < game.MinStage {
		return game.MinStage
	}
	if s > game.MaxStage {
		return game.MaxStage
	}
	return s
}

// ApplyStageChange adds delta to c's stage for stat and clamps the result to
// [-6,6]. clamped reports that the requested change did not fully apply, which
// callers surface as "won't go any higher/lower". HP has no stage: the call is
// a no-op reported as clamped.
func ApplyStageChange(c *game.Combatant, stat game.Stat, delta int) (newStage int, clamped bool) {
	if stat == game.StatHP || !stat.Valid() {
		return 0, true
	}
	if c.Stages == nil {
		c.Stages = make(map[game.Stat]int, len(game.StageableStats))
	}
	cur := clampStage(c.Stages[stat])
	want := cur + delta
	next := clampStage(want)
	c.Stages[stat] = next
	return next, next != want
}

// ResetStages zeroes every stage. Calling it again is a no-op.
func ResetStages(c *game.Combatant) {
	if c.Stages == nil {
		c.Stages = make(map[game.Stat]int, len(game.StageableStats))
	}
	for _, s := range game.StageableStats {
		c.Stages[s] = 0
	}
}
