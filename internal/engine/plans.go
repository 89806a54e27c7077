package engine

import (
	"sort"

	"github.com/avoid201/untoldstory/internal/game"
)

// --- Planned action model ---------------------------------------------

// Queued is one submitted action paired with its actor.
type Queued struct {
	Actor  *game.Combatant
	Action game.Action
}

// Priority tiers for non-move actions. Moves use their own priority.
const (
	PriorityFlee    = 7
	PriorityCapture = 6
	PrioritySwitch  = 6
	PriorityPass    = 0
)

// ActionPriority returns the priority tier of a. Unknown moves resolve at
// tier 0; the resolver reports the missing reference when they execute.
func ActionPriority(a game.Action, ref Reference) int {
	switch a.Kind {
	case game.ActionFlee:
		return PriorityFlee
	case game.ActionCapture:
		return PriorityCapture
	case game.ActionSwitch:
		return PrioritySwitch
	case game.ActionUseMove:
		if ref != nil {
			if m, ok := ref.Move(a.MoveID); ok {
				return m.Priority
			}
		}
	}
	return PriorityPass
}

// Order returns entries in execution order: priority tier descending, then
// effective speed descending (ascending while trick room is active), then
// side and team slot ascending. Equal speeds never fall back to chance, so
// identical input always yields the identical order. entries is not
// modified.
func Order(entries []Queued, ref Reference, trickRoom bool) []Queued {
	type keyed struct {
		q        Queued
		priority int
		speed    int
	}
	ks := make([]keyed, len(entries))
	for i, e := range entries {
		ks[i] = keyed{q: e, priority: ActionPriority(e.Action, ref), speed: Speed(e.Actor)}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if a.speed != b.speed {
			if trickRoom {
				return a.speed < b.speed
			}
			return a.speed > b.speed
		}
		if a.q.Actor.Side != b.q.Actor.Side {
			return a.q.Actor.Side < b.q.Actor.Side
		}
		return a.q.Actor.Slot < b.q.Actor.Slot
	})
	out := make([]Queued, len(ks))
	for i, k := range ks {
		out[i] = k.q
	}
	return out
}
