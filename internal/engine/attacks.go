package engine

import (
	"fmt"
	"math"

	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/keys"
)

// MaxDamage caps a single hit.
const MaxDamage = math.MaxInt32

// CalcDamage is the deterministic damage formula:
//
//	base = ((2*level/5 + 2) * power * attack / defense) / 50 + 2
//	damage = floor(base * stab * effectiveness)
//
// An effectiveness of 0 deals no damage; any other hit deals at least 1.
// Level and defense below 1 count as 1; results are capped at MaxDamage.
func CalcDamage(level, power, attack, defense int, stab, effectiveness float64) int {
	if power <= 0 || !(effectiveness > 0) {
		return 0
	}
	if level < 1 {
		level = 1
	}
	if defense < 1 {
		defense = 1
	}
	if attack < 0 {
		attack = 0
	}
	if !(stab > 0) {
		stab = 1
	}
	// Float math with floors matches the integer formula and cannot wrap.
	lv := math.Floor(2*float64(level)/5) + 2
	base := math.Floor(math.Floor(lv*float64(power)*float64(attack)/float64(defense))/50) + 2
	dmg := math.Floor(base * stab * effectiveness)
	if dmg > MaxDamage {
		return MaxDamage
	}
	if dmg < 1 {
		return 1
	}
	return int(dmg)
}

func attackStats(cat game.MoveCategory) (game.Stat, game.Stat) {
	if cat == game.CategorySpecial {
		return game.StatSpAttack, game.StatSpDefense
	}
	return game.StatAttack, game.StatDefense
}

// execUseMove resolves a move. An invalid target makes the action a no-op.
func (rc *roundContext) execUseMove(actor *game.Combatant, a game.Action) {
	actorRef := actor.Ref()
	move, ok := rc.ref.Move(a.MoveID)
	if !ok {
		rc.emit(game.Event{Kind: game.EventDataWarning, Actor: &actorRef, Move: a.MoveID, Code: string(CodeMissingReference),
			Message: fmt.Sprintf("move %q is not in the reference data", a.MoveID)})
		return
	}
	target := rc.s.Combatant(a.Target)
	if target == nil || !target.IsActive() {
		rc.emit(game.Event{Kind: game.EventInvalidTarget, Actor: &actorRef, Target: refPtr(a.Target), Move: move.ID,
			Code: string(CodeInvalidTarget), Message: "target is not active"})
		return
	}
	targetRef := target.Ref()
	rc.emit(game.Event{Kind: game.EventMoveUsed, Actor: &actorRef, Target: &targetRef, Move: move.ID})

	if move.Accuracy > 0 && target != actor {
		p := float64(move.Accuracy) / 100 * hitMultiplier(actor, target)
		if rc.src.Float64() >= p {
			rc.emit(game.Event{Kind: game.EventMissed, Actor: &actorRef, Target: &targetRef, Move: move.ID, Probability: p})
			return
		}
	}

	if move.Power > 0 && move.Category != game.CategoryStatus {
		eff := rc.ref.Effectiveness(move.Type, target.Types)
		if !(eff > 0) {
			rc.emit(game.Event{Kind: game.EventNoEffect, Actor: &actorRef, Target: &targetRef, Move: move.ID})
			return
		}
		atkStat, defStat := attackStats(move.Category)
		atk := rc.stat(actor, atkStat)
		def := rc.stat(target, defStat)
		stab := 1.0
		if move.Type != "" && actor.HasType(keys.ID(move.Type)) {
			stab = rc.bal.SameTypeBonus
		}
		dmg := CalcDamage(actor.Level, move.Power, atk, def, stab, eff)
		dealt, fainted := applyDamage(target, dmg)
		rc.emit(game.Event{Kind: game.EventDamage, Actor: &actorRef, Target: &targetRef, Move: move.ID, Amount: dealt, HPAfter: target.CurrentHP})
		switch {
		case eff > 1:
			rc.emit(game.Event{Kind: game.EventSuperEffective, Target: &targetRef, Move: move.ID})
		case eff < 1:
			rc.emit(game.Event{Kind: game.EventNotVeryEffective, Target: &targetRef, Move: move.ID})
		}
		if fainted {
			rc.emit(game.Event{Kind: game.EventFaint, Target: &targetRef})
		}
	}

	rc.applyStageEffects(actor, target, move)
	rc.applyStatusEffect(target, move)
	if move.TrickRoom {
		rc.toggleTrickRoom(actor)
	}
}

func (rc *roundContext) applyStageEffects(actor, target *game.Combatant, move game.Move) {
	for _, se := range move.StageEffects {
		who := target
		if se.OnSelf {
			who = actor
		}
		if !who.IsActive() || !chance(rc.src, se.Chance) {
			continue
		}
		stage, clamped := ApplyStageChange(who, se.Stat, se.Delta)
		rc.emit(game.Event{Kind: game.EventStageChanged, Target: refPtr(who.Ref()), Move: move.ID, Stat: se.Stat, Stage: stage, Amount: se.Delta, Clamped: clamped})
	}
}

func (rc *roundContext) applyStatusEffect(target *game.Combatant, move game.Move) {
	se := move.StatusEffect
	if se == nil || !target.IsActive() || !chance(rc.src, se.Chance) {
		return
	}
	duration := se.Duration
	if se.Status == game.StatusSleep && duration <= 0 {
		duration = rc.bal.SleepMinRounds + rc.src.Intn(rc.bal.SleepMaxRounds-rc.bal.SleepMinRounds+1)
	}
	targetRef := target.Ref()
	applied, reason := ApplyStatus(target, se.Status, duration, rc.ref)
	if applied {
		rc.emit(game.Event{Kind: game.EventStatusApplied, Target: &targetRef, Move: move.ID, Status: se.Status})
		return
	}
	// Secondary effects of damaging moves fail silently.
	if move.Category == game.CategoryStatus {
		rc.emit(game.Event{Kind: game.EventStatusBlocked, Target: &targetRef, Move: move.ID, Status: se.Status, Code: string(reason)})
	}
}

// toggleTrickRoom starts the reverse-speed modifier, or ends it early when it
// is already active.
func (rc *roundContext) toggleTrickRoom(actor *game.Combatant) {
	if rc.s.Modifiers.TrickRoom() {
		rc.s.Modifiers.TrickRoomRounds = 0
		rc.emit(game.Event{Kind: game.EventTrickRoomEnd, Actor: refPtr(actor.Ref())})
		return
	}
	rc.s.Modifiers.TrickRoomRounds = rc.bal.TrickRoomRounds
	rc.emit(game.Event{Kind: game.EventTrickRoomStart, Actor: refPtr(actor.Ref()), Amount: rc.bal.TrickRoomRounds})
}
