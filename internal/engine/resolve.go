package engine

import (
	"fmt"

	"github.com/avoid201/untoldstory/internal/game"
)

// Resolve executes a single action for actor against s, mutating s in place
// and returning the events it produced. It is the per-action step the battle
// state machine runs for every ordered action; it is exported so callers and
// tests can resolve one action in isolation. A nil src uses the round source
// derived from s.Seed.
func Resolve(s *game.BattleState, ref Reference, src Source, actor game.CombatantRef, a game.Action) []game.Event {
	if src == nil {
		src = roundSource(s.Seed, 2*s.Round)
	}
	rc := newRoundContext(s, ref, src, DefaultBalance())
	c := s.Combatant(actor)
	if c == nil || !c.IsActive() {
		rc.emit(game.Event{Kind: game.EventInvalidTarget, Actor: refPtr(actor), Code: string(CodeNotActive), Message: "actor is not active"})
		return rc.events
	}
	rc.resolve(c, a)
	return rc.events
}

// resolve dispatches one action.
func (rc *roundContext) resolve(actor *game.Combatant, a game.Action) {
	switch a.Kind {
	case game.ActionUseMove:
		rc.execUseMove(actor, a)
	case game.ActionFlee:
		rc.execFlee(actor)
	case game.ActionCapture:
		rc.execCapture(actor, a)
	case game.ActionSwitch:
		rc.execSwitch(actor, a)
	default:
		rc.emit(game.Event{Kind: game.EventPass, Actor: refPtr(actor.Ref())})
	}
}

// fastestOpponentSpeed is the highest effective speed on the opposing field,
// or 1 when the field is empty.
func (rc *roundContext) fastestOpponentSpeed(actor *game.Combatant) int {
	best := 1
	for _, o := range rc.s.Active(actor.Side.Opponent()) {
		if v := rc.stat(o, game.StatSpeed); v > best {
			best = v
		}
	}
	return best
}

func (rc *roundContext) execFlee(actor *game.Combatant) {
	actorRef := actor.Ref()
	if rc.s.Type != game.BattleWild {
		rc.emit(game.Event{Kind: game.EventNotAllowed, Actor: &actorRef, Code: string(CodeNotAllowed), Message: "cannot flee from a trainer battle"})
		return
	}
	p := FleeChance(rc.stat(actor, game.StatSpeed), rc.fastestOpponentSpeed(actor))
	ok := rc.src.Float64() < p
	rc.emit(game.Event{Kind: game.EventFlee, Actor: &actorRef, Probability: p, Success: ok})
	if ok {
		side := actor.Side
		rc.s.FledSide = &side
		rc.s.Outcome = game.OutcomeFled
	}
}

func (rc *roundContext) execCapture(actor *game.Combatant, a game.Action) {
	actorRef := actor.Ref()
	if rc.s.Type != game.BattleWild || actor.Side != game.SidePlayer {
		rc.emit(game.Event{Kind: game.EventNotAllowed, Actor: &actorRef, Code: string(CodeNotAllowed), Message: "capture is only possible against wild monsters"})
		return
	}
	target := rc.s.Combatant(a.Target)
	if target == nil || target.Side != game.SideEnemy || !target.IsActive() {
		rc.emit(game.Event{Kind: game.EventInvalidTarget, Actor: &actorRef, Target: refPtr(a.Target), Code: string(CodeInvalidTarget), Message: "capture target is not an active enemy"})
		return
	}
	modifier := 1.0
	if item, ok := rc.ref.Item(a.ItemID); ok && item.CatchModifier > 0 {
		modifier = item.CatchModifier
	} else {
		rc.warn("item:"+a.ItemID, nil, CodeMissingReference, fmt.Sprintf("capture item %q has no catch modifier; using 1.0", a.ItemID))
	}
	rate := target.CatchRate
	if !(rate > 0) {
		rate = 1
	}
	targetRef := target.Ref()
	p := CaptureChance(target.MaxHP(), target.CurrentHP, modifier*rate, StatusCaptureBonus(target.Status))
	ok := rc.src.Float64() < p
	rc.emit(game.Event{Kind: game.EventCapture, Actor: &actorRef, Target: &targetRef, Probability: p, Success: ok})
	if !ok {
		return
	}
	target.Captured = true
	target.Position = -1
	target.Status = nil
	ResetStages(target)
	rc.s.Captured = append(rc.s.Captured, targetRef)
	rc.s.Outcome = game.OutcomeCaptured
}

func (rc *roundContext) execSwitch(actor *game.Combatant, a game.Action) {
	actorRef := actor.Ref()
	incoming := rc.s.Combatant(game.CombatantRef{Side: actor.Side, Slot: a.Slot})
	if incoming == nil || !incoming.Available() || incoming.Position >= 0 {
		rc.emit(game.Event{Kind: game.EventInvalidSlot, Actor: &actorRef, Code: string(CodeInvalidSlot),
			Message: fmt.Sprintf("slot %d cannot be sent in", a.Slot)})
		return
	}
	pos := withdraw(actor)
	incoming.Position = pos
	ResetStages(incoming)
	rc.emit(game.Event{Kind: game.EventSwitch, Actor: &actorRef, Target: refPtr(incoming.Ref()), Amount: pos})
}
