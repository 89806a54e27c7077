package engine

import "github.com/avoid201/untoldstory/internal/game"

// CheckInvariants verifies the structural rules every battle state must obey
// between actions. A violation means the state can no longer be trusted and
// the battle refuses to go on.
func CheckInvariants(s *game.BattleState) error {
	if s == nil {
		return invariantError(CodeInvalidSnapshot, "battle state is nil")
	}
	if s.FieldSize < 1 || s.FieldSize > MaxFieldSize {
		return invariantError(CodeInvalidSnapshot, "field size %d outside 1..%d", s.FieldSize, MaxFieldSize)
	}
	for side := range s.Sides {
		taken := make(map[int]int, s.FieldSize)
		for i := range s.Sides[side].Roster {
			c := &s.Sides[side].Roster[i]
			if c.Side != game.Side(side) || c.Slot != i {
				return invariantError(CodeDuplicateSlot, "%s roster index %d holds %s slot %d", game.Side(side), i, c.Side, c.Slot)
			}
			if c.CurrentHP < 0 || c.CurrentHP > c.MaxHP() {
				return invariantError(CodeHPOutOfRange, "%s HP %d outside 0..%d", displayName(c), c.CurrentHP, c.MaxHP())
			}
			if c.CurrentHP == 0 && !c.Fainted && !c.Captured {
				return invariantError(CodeHPOutOfRange, "%s has 0 HP but is not fainted", displayName(c))
			}
			if c.Fainted && c.CurrentHP != 0 {
				return invariantError(CodeHPOutOfRange, "%s is fainted with %d HP", displayName(c), c.CurrentHP)
			}
			for _, st := range game.StageableStats {
				if v := c.Stages[st]; v < game.MinStage || v > game.MaxStage {
					return invariantError(CodeStageOutOfBounds, "%s %s stage %d outside -6..6", displayName(c), st, v)
				}
			}
			if c.Position < 0 {
				continue
			}
			if !c.Available() {
				return invariantError(CodeInvalidSnapshot, "%s is on the field but cannot fight", displayName(c))
			}
			if c.Position >= s.FieldSize {
				return invariantError(CodeInvalidSnapshot, "%s at position %d outside field of %d", displayName(c), c.Position, s.FieldSize)
			}
			if other, dup := taken[c.Position]; dup {
				return invariantError(CodeDuplicateSlot, "%s slots %d and %d share position %d", game.Side(side), other, i, c.Position)
			}
			taken[c.Position] = i
		}
		if !s.Outcome.Terminal() && len(taken) == 0 {
			return invariantError(CodeEmptySide, "%s side has no active combatant", game.Side(side))
		}
	}
	return nil
}
