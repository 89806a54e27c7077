package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/avoid201/untoldstory/internal/game"
)

func TestFleeChanceAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		user := rapid.IntRange(-1000, 100000).Draw(rt, "user")
		opp := rapid.IntRange(-1000, 100000).Draw(rt, "opp")
		p := FleeChance(user, opp)
		if p < FleeFloor || p > FleeCap {
			rt.Fatalf("FleeChance(%d, %d) = %v outside [%v, %v]", user, opp, p, FleeFloor, FleeCap)
		}
	})
}

func TestFleeChanceZeroSpeedHitsFloor(t *testing.T) {
	assert.Equal(t, FleeFloor, FleeChance(0, 100))
	assert.Equal(t, FleeFloor, FleeChance(-5, 100))
	assert.Equal(t, FleeCap, FleeChance(100, 0))
	assert.InDelta(t, 0.5, FleeChance(40, 40), 1e-9)
}

func TestCaptureChanceAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(-10, 1000).Draw(rt, "max")
		cur := rapid.IntRange(-10, 1100).Draw(rt, "cur")
		mod := rapid.Float64Range(-1, 10).Draw(rt, "mod")
		bonus := rapid.Float64Range(0, 3).Draw(rt, "bonus")
		p := CaptureChance(maxHP, cur, mod, bonus)
		if p < CaptureFloor || p > CaptureCap {
			rt.Fatalf("CaptureChance(%d, %d, %v, %v) = %v", maxHP, cur, mod, bonus, p)
		}
	})
}

func TestCaptureChanceDegenerateInputs(t *testing.T) {
	assert.Equal(t, CaptureFloor, CaptureChance(0, 0, 1, 1))
	assert.Equal(t, CaptureFloor, CaptureChance(100, 50, math.NaN(), 1))
	assert.Equal(t, CaptureFloor, CaptureChance(100, 50, math.Inf(1), 1))
	assert.Equal(t, CaptureFloor, CaptureChance(100, 50, -2, 1))
}

func TestCaptureChanceLowHPBeatsFullHP(t *testing.T) {
	full := CaptureChance(100, 100, 1, 1)
	quarter := CaptureChance(100, 25, 1, 1)
	assert.Greater(t, quarter, full)
	assert.InDelta(t, 1.0/3, full, 1e-9)
}

func TestStatusCaptureBonus(t *testing.T) {
	assert.Equal(t, 1.0, StatusCaptureBonus(nil))
	assert.Equal(t, 2.0, StatusCaptureBonus(&game.StatusCondition{Status: game.StatusSleep}))
	assert.Equal(t, 2.0, StatusCaptureBonus(&game.StatusCondition{Status: game.StatusFreeze}))
	assert.Equal(t, 1.5, StatusCaptureBonus(&game.StatusCondition{Status: game.StatusBurn}))
}
