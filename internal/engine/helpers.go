package engine

import "github.com/avoid201/untoldstory/internal/game"

// applyDamage lowers c's HP by amount, keeping HP inside [0, maxHP]. It
// returns the HP actually removed and whether c fainted from it.
func applyDamage(c *game.Combatant, amount int) (dealt int, fainted bool) {
	if amount < 0 {
		amount = 0
	}
	before := clampHP(c.CurrentHP, c.MaxHP())
	after := before - amount
	if after < 0 {
		after = 0
	}
	c.CurrentHP = after
	if after == 0 && !c.Fainted {
		faint(c)
		return before, true
	}
	return before - after, false
}

func clampHP(hp, max int) int {
	if hp < 0 {
		return 0
	}
	if hp > max {
		return max
	}
	return hp
}

// faint takes c off the field and clears its status and stages.
func faint(c *game.Combatant) {
	c.CurrentHP = 0
	c.Fainted = true
	c.Position = -1
	c.Status = nil
	ResetStages(c)
}

// withdraw benches an active combatant. Stages reset on switch-out; the
// major status stays with the combatant.
func withdraw(c *game.Combatant) int {
	pos := c.Position
	c.Position = -1
	ResetStages(c)
	return pos
}

// nextBenched returns the first available combatant of side that is not on
// the field, in team-slot order.
func nextBenched(s *game.BattleState, side game.Side) *game.Combatant {
	for i := range s.Sides[side].Roster {
		c := &s.Sides[side].Roster[i]
		if c.Available() && c.Position < 0 {
			return c
		}
	}
	return nil
}

func refPtr(r game.CombatantRef) *game.CombatantRef { return &r }

func displayName(c *game.Combatant) string {
	if c == nil {
		return ""
	}
	if c.Name != "" {
		return c.Name
	}
	return c.Species
}
