package engine

import (
	"math"

	"github.com/avoid201/untoldstory/internal/game"
)

// Flee and capture chances are never certain and never impossible; only a
// battle-type rule (trainer battles) can forbid them outright.
const (
	FleeFloor    = 0.05
	FleeCap      = 0.95
	FleeFactor   = 0.5
	CaptureFloor = 0.01
	CaptureCap   = 0.99
)

func clampProbability(p, lo, hi float64) float64 {
	if math.IsNaN(p) || p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// FleeChance grows with userSpeed/opponentSpeed and stays inside
// [FleeFloor, FleeCap]. Non-positive speeds count as 1, so the division is
// always defined.
func FleeChance(userSpeed, opponentSpeed int) float64 {
	if userSpeed < 1 {
		userSpeed = 1
	}
	if opponentSpeed < 1 {
		opponentSpeed = 1
	}
	ratio := float64(userSpeed) / float64(opponentSpeed)
	return clampProbability(FleeFactor*ratio, FleeFloor, FleeCap)
}

// CaptureChance grows as currentHP drops relative to maxHP:
//
//	(3*max - 2*cur) / (3*max) * catchModifier * statusBonus
//
// clamped to [CaptureFloor, CaptureCap]. A maxHP of 0 or a non-positive or
// non-finite modifier is bad data and yields CaptureFloor. A statusBonus
// below 1 is treated as 1.
func CaptureChance(targetMaxHP, targetCurrentHP int, catchModifier, statusBonus float64) float64 {
	if targetMaxHP <= 0 || !(catchModifier > 0) || math.IsInf(catchModifier, 0) {
		return CaptureFloor
	}
	if !(statusBonus >= 1) || math.IsInf(statusBonus, 0) {
		statusBonus = 1
	}
	cur := targetCurrentHP
	if cur < 0 {
		cur = 0
	}
	if cur > targetMaxHP {
		cur = targetMaxHP
	}
	hpFactor := float64(3*targetMaxHP-2*cur) / float64(3*targetMaxHP)
	return clampProbability(hpFactor*catchModifier*statusBonus, CaptureFloor, CaptureCap)
}

// StatusCaptureBonus is the capture multiplier granted by a target's status.
func StatusCaptureBonus(st *game.StatusCondition) float64 {
	if st == nil {
		return 1
	}
	switch st.Status {
	case game.StatusSleep, game.StatusFreeze:
		return 2
	case game.StatusParalysis, game.StatusBurn, game.StatusPoison:
		return 1.5
	}
	return 1
}
