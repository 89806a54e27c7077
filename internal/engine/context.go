package engine

import (
	"fmt"

	"github.com/avoid201/untoldstory/internal/game"
)

// --- Round context and helpers ----------------------------------------
type roundContext struct {
	s      *game.BattleState
	ref    Reference
	src    Source
	bal    Balance
	events []game.Event
	warned map[string]bool
}

func newRoundContext(s *game.BattleState, ref Reference, src Source, bal Balance) *roundContext {
	return &roundContext{
		s:      s,
		ref:    ref,
		src:    src,
		bal:    bal.withDefaults(),
		events: make([]game.Event, 0, 16),
		warned: make(map[string]bool),
	}
}

// emit stamps e with the next sequence number and the current round.
func (rc *roundContext) emit(e game.Event) {
	rc.s.EventSeq++
	e.Seq = rc.s.EventSeq
	e.Round = rc.s.Round
	rc.events = append(rc.events, e)
}

func (rc *roundContext) emitAll(es []game.Event) {
	for _, e := range es {
		rc.emit(e)
	}
}

// warn emits a data_warning once per key for the round.
func (rc *roundContext) warn(key string, target *game.Combatant, code Code, msg string) {
	if rc.warned[key] {
		return
	}
	rc.warned[key] = true
	e := game.Event{Kind: game.EventDataWarning, Code: string(code), Message: msg}
	if target != nil {
		e.Target = refPtr(target.Ref())
	}
	rc.emit(e)
}

// stat resolves an effective stat and reports zero base values as warnings.
func (rc *roundContext) stat(c *game.Combatant, s game.Stat) int {
	v, dataErr := EffectiveStat(c, s)
	if dataErr {
		rc.warn(fmt.Sprintf("stat:%d:%d:%s", c.Side, c.Slot, s), c, CodeInvalidSnapshot,
			fmt.Sprintf("%s has no %s value; using %d", displayName(c), s, v))
	}
	return v
}
