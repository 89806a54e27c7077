package engine

// executePlans runs the ordered actions. Actors that fainted, were captured
// or were switched out before their turn lose the action; once the battle
// reaches a terminal outcome the remaining actions are dropped.
func (rc *roundContext) executePlans(plans []Queued) {
	for _, plan := range plans {
		if rc.s.Outcome.Terminal() {
			return
		}
		if !plan.Actor.IsActive() {
			continue
		}
		rc.resolve(plan.Actor, plan.Action)
	}
}

// queued pairs the pending submissions with their actors.
func (rc *roundContext) queued() []Queued {
	out := make([]Queued, 0, len(rc.s.Pending))
	for _, p := range rc.s.Pending {
		c := rc.s.Combatant(p.Actor)
		if c == nil {
			continue
		}
		out = append(out, Queued{Actor: c, Action: p.Action})
	}
	return out
}

// plannedOrder returns this round's actions in execution order.
func (rc *roundContext) plannedOrder() []Queued {
	return Order(rc.queued(), rc.ref, rc.s.Modifiers.TrickRoom())
}
