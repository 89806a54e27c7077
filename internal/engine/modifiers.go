package engine

import (
	"math"

	"github.com/avoid201/untoldstory/internal/game"
)

// --- Stat resolver -------------------------------------------------------

// StageMultiplier returns the multiplier for a stage of stat. Regular stats
// step by halves (-6 -> 2/8, +6 -> 8/2); accuracy and evasion step by thirds
// (-6 -> 3/9, +6 -> 9/3). Stages outside [-6,6] are clamped first.
func StageMultiplier(stat game.Stat, stage int) float64 {
	stage = clampStage(stage)
	base := 2.0
	if stat == game.StatAccuracy || stat == game.StatEvasion {
		base = 3.0
	}
	if stage >= 0 {
		return (base + float64(stage)) / base
	}
	return base / (base - float64(stage))
}

// statusPenalty is the multiplier a status applies to stat.
func statusPenalty(st *game.StatusCondition, stat game.Stat) float64 {
	if st == nil {
		return 1
	}
	switch {
	case st.Status == game.StatusBurn && stat == game.StatAttack:
		return 0.5
	case st.Status == game.StatusParalysis && stat == game.StatSpeed:
		return 0.5
	}
	return 1
}

// denominatorStat reports whether stat is ever used as a divisor and must
// therefore never resolve below 1.
func denominatorStat(stat game.Stat) bool {
	switch stat {
	case game.StatSpeed, game.StatDefense, game.StatSpDefense:
		return true
	}
	return false
}

// EffectiveStat computes base * stage multiplier * status penalty, floored at
// 1 for denominator stats and at 0 otherwise. A zero (or missing) base is
// reported with dataErr=true so the caller can emit a warning; the function
// itself never fails. HP ignores stages. Accuracy and evasion have no base
// value and resolve to 0; use StageMultiplier for them.
func EffectiveStat(c *game.Combatant, stat game.Stat) (value int, dataErr bool) {
	floor := 0
	if denominatorStat(stat) {
		floor = 1
	}
	if c == nil {
		return floor, true
	}
	base, ok := c.Stats.Base(stat)
	if !ok {
		return 0, false
	}
	if base <= 0 {
		return floor, true
	}
	v := float64(base)
	if stat != game.StatHP {
		v *= StageMultiplier(stat, c.Stages[stat])
	}
	v *= statusPenalty(c.Status, stat)
	out := int(math.Floor(v))
	if out < floor {
		out = floor
	}
	return out, false
}

// Speed is EffectiveStat for speed without the warning flag.
func Speed(c *game.Combatant) int {
	v, _ := EffectiveStat(c, game.StatSpeed)
	return v
}

// hitMultiplier combines the attacker's accuracy and the defender's evasion
// stages into one clamped stage, as accuracy checks do.
func hitMultiplier(attacker, defender *game.Combatant) float64 {
	return StageMultiplier(game.StatAccuracy, attacker.Stages[game.StatAccuracy]-defender.Stages[game.StatEvasion])
}
