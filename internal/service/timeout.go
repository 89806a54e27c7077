package service

import (
	"context"
	"fmt"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/logging"
	"github.com/avoid201/untoldstory/internal/storage"
)

// HandleTimedOutBattle forces the round of a battle whose action deadline
// has passed: every missing combatant passes and the round is resolved.
// Battles that moved on since they were selected are left alone.
func HandleTimedOutBattle(ctx context.Context, repo storage.Repository, rt Runtime, battleID string) error {
	unlock := locks.lock(battleID)
	defer unlock()

	rec, err := loadOwned(repo, battleID, "")
	if err != nil {
		return err
	}
	if rec.Phase != game.PhaseRoundInProgress || rec.ActionDeadline.IsZero() || rec.ActionDeadline.After(rt.now()) {
		return nil
	}
	b, err := engine.Restore(&rec.State, rt.Ref, rt.options()...)
	if err != nil {
		return broken(battleID, err)
	}
	forced, err := b.ForceDefaults()
	if err != nil {
		return broken(battleID, err)
	}
	logging.Info("round timed out; passing for missing combatants", logging.Fields{
		constants.LogFieldBattleID: battleID,
		constants.LogFieldRound:    rec.Round,
		constants.LogFieldCount:    len(forced),
	})
	events, err := advance(ctx, b, rt.Ref)
	if err != nil {
		return broken(battleID, err)
	}
	logWarnings(battleID, events)
	if err := syncRecord(rt, rec, b); err != nil {
		return err
	}
	if err := repo.SaveBattle(rec, events); err != nil {
		return fmt.Errorf("save battle %s: %w", battleID, err)
	}
	finishStats(repo, rec)
	return nil
}

// ScanTimedOutBattles handles every battle whose deadline passed, up to
// limit per call. Failures are logged and do not stop the scan.
func ScanTimedOutBattles(ctx context.Context, repo storage.Repository, rt Runtime, limit int) int {
	ids, err := repo.FindTimedOutBattles(rt.now(), limit)
	if err != nil {
		logging.Error("failed to query timed-out battles", err, nil)
		return 0
	}
	handled := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if err := HandleTimedOutBattle(ctx, repo, rt, id); err != nil {
			logging.Error("failed to handle timed-out battle", err, logging.Fields{constants.LogFieldBattleID: id})
			continue
		}
		handled++
	}
	return handled
}
