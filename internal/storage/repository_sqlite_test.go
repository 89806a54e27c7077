package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avoid201/untoldstory/internal/game"
)

func newRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "data", "battles.db"))
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func record(id string, phase game.Phase, deadline time.Time) *game.BattleRecord {
	return &game.BattleRecord{
		ID:             id,
		TrainerID:      "ash",
		Type:           game.BattleWild,
		Phase:          phase,
		Outcome:        game.OutcomeInProgress,
		Round:          1,
		ActionDeadline: deadline,
		State: game.BattleState{
			ID:        id,
			Type:      game.BattleWild,
			Phase:     phase,
			Round:     1,
			FieldSize: 1,
			Outcome:   game.OutcomeInProgress,
			Sides: [2]game.SideState{
				{Roster: []game.Combatant{{Name: "Emberling", Species: "emberling", Level: 5, Stats: game.StatBlock{HP: 20}, CurrentHP: 20, Stages: map[game.Stat]int{game.StatAttack: 1}}}},
				{Roster: []game.Combatant{{Name: "Puddlefin", Species: "puddlefin", Level: 5, Stats: game.StatBlock{HP: 18}, CurrentHP: 9, Side: game.SideEnemy, Status: &game.StatusCondition{Status: game.StatusBurn}}}},
			},
		},
	}
}

func events(from, to int) []game.Event {
	var out []game.Event
	for i := from; i <= to; i++ {
		out = append(out, game.Event{Seq: i, Round: 1, Kind: game.EventPass})
	}
	return out
}

func TestCreateAndGetBattleRoundTripsState(t *testing.T) {
	repo := newRepo(t)
	rec := record("b1", game.PhaseRoundInProgress, time.Now().Add(time.Minute))
	require.NoError(t, repo.CreateBattle(rec, events(1, 2)))

	got, err := repo.GetBattle("b1")
	require.NoError(t, err)
	assert.Equal(t, "ash", got.TrainerID)
	assert.Equal(t, 1, got.State.Sides[0].Roster[0].Stages[game.StatAttack])
	require.NotNil(t, got.State.Sides[1].Roster[0].Status)
	assert.Equal(t, game.StatusBurn, got.State.Sides[1].Roster[0].Status.Status)

	_, err = repo.GetBattle("missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveBattleAppendsEventsOnce(t *testing.T) {
	repo := newRepo(t)
	rec := record("b1", game.PhaseRoundInProgress, time.Now())
	require.NoError(t, repo.CreateBattle(rec, events(1, 2)))

	rec.Round = 2
	require.NoError(t, repo.SaveBattle(rec, events(3, 5)))
	require.NoError(t, repo.SaveBattle(rec, events(3, 6)), "retrying a save must not fail on stored events")

	all, err := repo.ListEvents("b1", 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
	for i, e := range all {
		assert.Equal(t, i+1, e.Seq)
	}

	page, err := repo.ListEvents("b1", 4, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 5, page[0].Seq)

	got, err := repo.GetBattle("b1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Round)
}

func TestFindTimedOutBattles(t *testing.T) {
	repo := newRepo(t)
	now := time.Now()
	require.NoError(t, repo.CreateBattle(record("late", game.PhaseRoundInProgress, now.Add(-time.Minute)), nil))
	require.NoError(t, repo.CreateBattle(record("fresh", game.PhaseRoundInProgress, now.Add(time.Minute)), nil))
	require.NoError(t, repo.CreateBattle(record("over", game.PhaseEnded, now.Add(-time.Hour)), nil))

	ids, err := repo.FindTimedOutBattles(now, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"late"}, ids)
}

func TestUpdateStatsOnBattleEndCountsOnce(t *testing.T) {
	repo := newRepo(t)
	rec := record("b1", game.PhaseEnded, time.Time{})
	rec.Outcome = game.OutcomeCaptured
	rec.State.Captured = []game.CombatantRef{{Side: game.SideEnemy, Slot: 0}}
	require.NoError(t, repo.CreateBattle(rec, nil))

	require.NoError(t, repo.UpdateStatsOnBattleEnd(rec))
	assert.True(t, rec.StatsCounted)
	require.NoError(t, repo.UpdateStatsOnBattleEnd(rec))

	other := record("b2", game.PhaseEnded, time.Time{})
	other.Outcome = game.OutcomeEnemyWin
	require.NoError(t, repo.CreateBattle(other, nil))
	require.NoError(t, repo.UpdateStatsOnBattleEnd(other))

	p, err := repo.GetProfile("ash")
	require.NoError(t, err)
	assert.Equal(t, 2, p.BattlesPlayed)
	assert.Equal(t, 1, p.Wins)
	assert.Equal(t, 1, p.Losses)
	assert.Equal(t, 1, p.Captures)

	stored, err := repo.GetBattle("b1")
	require.NoError(t, err)
	assert.True(t, stored.StatsCounted)
}

func TestGetProfileUnknownTrainer(t *testing.T) {
	repo := newRepo(t)
	p, err := repo.GetProfile("nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", p.TrainerID)
	assert.Zero(t, p.BattlesPlayed)
}
