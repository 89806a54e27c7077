package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoid201/untoldstory/internal/game"
)

func TestCalcDamage(t *testing.T) {
	assert.Equal(t, 19, CalcDamage(50, 40, 100, 100, 1, 1))
	assert.Equal(t, 28, CalcDamage(50, 40, 100, 100, 1.5, 1))
	assert.Equal(t, 38, CalcDamage(50, 40, 100, 100, 1, 2))
	assert.Equal(t, 0, CalcDamage(50, 40, 100, 100, 1, 0))
	assert.Equal(t, 0, CalcDamage(50, 0, 100, 100, 1, 1))
	assert.Equal(t, 1, CalcDamage(1, 1, 0, 100, 1, 0.25), "any hit deals at least 1")
	assert.Equal(t, CalcDamage(50, 40, 100, 1, 1, 1), CalcDamage(50, 40, 100, 0, 1, 1), "defense floors at 1")
}

func TestCalcDamageHugeInputsCapInsteadOfWrapping(t *testing.T) {
	huge := math.MaxInt64 / 2
	assert.Equal(t, MaxDamage, CalcDamage(huge, 250, huge, 1, 1.5, 2))
	assert.Equal(t, MaxDamage, CalcDamage(1_000_000, 1_000_000, 1_000_000, 1, 1, 1))
	assert.Equal(t, 270, CalcDamage(100, 120, 400, 150, 1, 1))
}

func resolveState(t *testing.T, player, enemy game.Combatant) *game.BattleState {
	t.Helper()
	s, err := buildState(singles(game.BattleTrainer, []game.Combatant{player}, []game.Combatant{enemy}), newTestRef())
	require.NoError(t, err)
	s.Phase = game.PhaseRoundInProgress
	s.Round = 1
	return s
}

func TestResolveTypeEffectiveness(t *testing.T) {
	s := resolveState(t, mon("puddlefin", 50, "tackle"), mon("emberling", 10, "ember"))

	events := Resolve(s, newTestRef(), alwaysHit, enemy0, game.UseMove("ember", player0))
	assert.Equal(t, []game.EventKind{game.EventMoveUsed, game.EventDamage, game.EventNotVeryEffective}, kinds(events))
	assert.Equal(t, 14, events[1].Amount, "STAB 1.5 and 0.5 effectiveness")
}

func TestResolveMissRollsAgainstAccuracy(t *testing.T) {
	s := resolveState(t, mon("puddlefin", 50, "tackle"), mon("emberling", 10, "tackle"))
	events := Resolve(s, newTestRef(), fixedSource{f: 0.999}, player0, game.UseMove("tackle", enemy0))
	assert.Equal(t, []game.EventKind{game.EventMoveUsed, game.EventDamage}, kinds(events), "accuracy 100 never misses")

	ApplyStageChange(s.Combatant(enemy0), game.StatEvasion, 1)
	events = Resolve(s, newTestRef(), fixedSource{f: 0.8}, player0, game.UseMove("tackle", enemy0))
	assert.Equal(t, []game.EventKind{game.EventMoveUsed, game.EventMissed}, kinds(events))
}

func TestResolveMissingMoveWarns(t *testing.T) {
	s := resolveState(t, mon("puddlefin", 50, "tackle"), mon("emberling", 10, "tackle"))
	before := s.Combatant(enemy0).CurrentHP
	events := Resolve(s, newTestRef(), alwaysHit, player0, game.UseMove("forgotten", enemy0))
	require.Len(t, events, 1)
	assert.Equal(t, game.EventDataWarning, events[0].Kind)
	assert.Equal(t, string(CodeMissingReference), events[0].Code)
	assert.Equal(t, before, s.Combatant(enemy0).CurrentHP)
}

func TestResolveZeroSpeedFleeUsesFloor(t *testing.T) {
	s, err := buildState(singles(game.BattleWild,
		[]game.Combatant{mon("puddlefin", 0, "tackle")},
		[]game.Combatant{mon("emberling", 100, "tackle")},
	), newTestRef())
	require.NoError(t, err)
	s.Round = 1
	events := Resolve(s, newTestRef(), fixedSource{f: 0.5}, player0, game.Flee())
	require.Len(t, events, 2)
	assert.Equal(t, game.EventDataWarning, events[0].Kind)
	assert.Equal(t, FleeFloor, events[1].Probability)
	assert.False(t, events[1].Success)
	assert.Equal(t, game.OutcomeInProgress, s.Outcome)
}
