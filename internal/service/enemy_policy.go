package service

import (
	"context"

	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/game"
)

// maxAutoRounds bounds how many rounds advance resolves without a player
// submission, e.g. while every player combatant sleeps.
const maxAutoRounds = 50

// EnemyAction picks the default action of an enemy combatant: its first move
// found in the reference data aimed at the first active opponent, or pass.
func EnemyAction(s *game.BattleState, ref engine.Reference, actor game.CombatantRef) game.Action {
	c := s.Combatant(actor)
	if c == nil {
		return game.Pass()
	}
	targets := s.Active(actor.Side.Opponent())
	if len(targets) == 0 {
		return game.Pass()
	}
	for _, id := range c.Moves {
		if _, ok := ref.Move(id); ok {
			return game.UseMove(id, targets[0].Ref())
		}
	}
	return game.Pass()
}

// submitEnemyActions fills in every enemy combatant still missing an action.
func submitEnemyActions(b *engine.Battle, ref engine.Reference) error {
	for _, r := range b.Missing() {
		if r.Side != game.SideEnemy {
			continue
		}
		if err := b.Submit(r, EnemyAction(b.State(), ref, r)); err != nil {
			if engine.IsKind(err, engine.KindValidation) {
				if err := b.Submit(r, game.Pass()); err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	return nil
}

// advance lets the enemy side act and resolves rounds for as long as nobody
// on the player side has to choose. It returns the events produced.
func advance(ctx context.Context, b *engine.Battle, ref engine.Reference) ([]game.Event, error) {
	var events []game.Event
	for i := 0; i < maxAutoRounds; i++ {
		if b.Phase() != game.PhaseRoundInProgress {
			return events, nil
		}
		if err := submitEnemyActions(b, ref); err != nil {
			return events, err
		}
		if !b.Ready() {
			return events, nil
		}
		res, err := b.ResolveRound(ctx)
		events = append(events, res.Events...)
		if err != nil {
			return events, err
		}
	}
	return events, nil
}
