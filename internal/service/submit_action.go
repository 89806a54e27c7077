package service

import (
	"context"
	"fmt"

	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/storage"
)

// ActionResult is what a stored submission produced.
type ActionResult struct {
	Battle *game.BattleRecord `json:"battle"`
	// Resolved is true when at least one round was resolved.
	Resolved bool         `json:"resolved"`
	Events   []game.Event `json:"events"`
	// Waiting lists player combatants that still have to submit.
	Waiting []game.CombatantRef `json:"waiting"`
}

// SubmitAction queues an action for one of the trainer's combatants. When
// every required combatant has an action the round is resolved, and further
// rounds are resolved while the player side has nothing to choose.
func SubmitAction(ctx context.Context, repo storage.Repository, rt Runtime, battleID, trainerID string, actorSlot int, action game.Action) (*ActionResult, error) {
	if trainerID == "" {
		return nil, ErrTrainerRequired
	}
	unlock := locks.lock(battleID)
	defer unlock()

	rec, err := loadOwned(repo, battleID, trainerID)
	if err != nil {
		return nil, err
	}
	if rec.Phase != game.PhaseRoundInProgress {
		return nil, ErrBattleNotInProgress
	}
	b, err := engine.Restore(&rec.State, rt.Ref, rt.options()...)
	if err != nil {
		return nil, broken(battleID, err)
	}
	actor := game.CombatantRef{Side: game.SidePlayer, Slot: actorSlot}
	if err := b.Submit(actor, action); err != nil {
		return nil, err
	}

	round := b.State().Round
	events, err := advance(ctx, b, rt.Ref)
	if err != nil {
		return nil, broken(battleID, err)
	}
	logWarnings(battleID, events)
	if err := syncRecord(rt, rec, b); err != nil {
		return nil, err
	}
	if err := repo.SaveBattle(rec, events); err != nil {
		return nil, fmt.Errorf("save battle %s: %w", battleID, err)
	}
	finishStats(repo, rec)
	return &ActionResult{
		Battle:   rec,
		Resolved: rec.Round != round || rec.Outcome.Terminal(),
		Events:   events,
		Waiting:  playerWaiting(b),
	}, nil
}

func playerWaiting(b *engine.Battle) []game.CombatantRef {
	out := []game.CombatantRef{}
	for _, r := range b.Missing() {
		if r.Side == game.SidePlayer {
			out = append(out, r)
		}
	}
	return out
}
