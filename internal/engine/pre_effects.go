package engine

import "github.com/avoid201/untoldstory/internal/game"

// openRound advances the round counter and runs status ticks for every
// active combatant. Combatants that lose the round to their status are
// recorded in Skipped and are not asked for an action. Residual damage can
// faint a combatant here, in which case reserves are sent in and the end
// conditions are checked before anyone submits.
func (rc *roundContext) openRound() {
	s := rc.s
	s.Round++
	s.Pending = s.Pending[:0]
	s.Skipped = nil
	rc.emit(game.Event{Kind: game.EventRoundStarted, Amount: s.Round})

	fainted := false
	for _, c := range s.AllActive() {
		r := Tick(c, rc.src, rc.bal)
		rc.emitAll(r.Events)
		if r.Fainted {
			fainted = true
			continue
		}
		if r.Skip {
			s.Skipped = append(s.Skipped, c.Ref())
		}
	}
	if fainted {
		rc.bringReserve(game.SidePlayer)
		rc.bringReserve(game.SideEnemy)
		rc.checkEnd()
	}
}
