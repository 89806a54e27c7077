package engine

import "github.com/avoid201/untoldstory/internal/game"

// bringReserve fills empty field positions of side with the next available
// benched combatants, in team-slot order.
func (rc *roundContext) bringReserve(side game.Side) {
	for pos := 0; pos < rc.s.FieldSize; pos++ {
		if c := rc.s.AtPosition(side, pos); c != nil && c.IsActive() {
			continue
		}
		next := nextBenched(rc.s, side)
		if next == nil {
			return
		}
		next.Position = pos
		ResetStages(next)
		rc.emit(game.Event{Kind: game.EventReplaced, Target: refPtr(next.Ref()), Amount: pos})
	}
}

// checkEnd sets a terminal outcome when one is reached. Flee and capture set
// their outcome while resolving; a side with nobody left decides the rest.
func (rc *roundContext) checkEnd() {
	s := rc.s
	if s.Outcome.Terminal() {
		return
	}
	player := s.Remaining(game.SidePlayer)
	enemy := s.Remaining(game.SideEnemy)
	switch {
	case player == 0 && enemy == 0:
		s.Outcome = game.OutcomeDraw
	case player == 0:
		s.Outcome = game.OutcomeEnemyWin
	case enemy == 0:
		s.Outcome = game.OutcomePlayerWin
	}
}

// finishRound runs the end-of-round bookkeeping: send in reserves, age the
// trick room modifier and evaluate the end conditions.
func (rc *roundContext) finishRound() {
	s := rc.s
	s.Pending = nil
	s.Skipped = nil
	if !s.Outcome.Terminal() {
		rc.bringReserve(game.SidePlayer)
		rc.bringReserve(game.SideEnemy)
	}
	if s.Modifiers.TrickRoomRounds > 0 {
		s.Modifiers.TrickRoomRounds--
		if s.Modifiers.TrickRoomRounds == 0 {
			rc.emit(game.Event{Kind: game.EventTrickRoomEnd})
		}
	}
	rc.checkEnd()
}

// endBattle clears every status, stage and global modifier once the outcome
// is terminal and announces the result.
func (rc *roundContext) endBattle() {
	s := rc.s
	for side := range s.Sides {
		for i := range s.Sides[side].Roster {
			c := &s.Sides[side].Roster[i]
			c.Status = nil
			ResetStages(c)
		}
	}
	s.Modifiers = game.Modifiers{}
	s.Pending = nil
	s.Skipped = nil
	rc.emit(game.Event{Kind: game.EventBattleEnded, Outcome: s.Outcome})
}
