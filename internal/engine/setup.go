package engine

import (
	"fmt"

	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/keys"
)

// MaxFieldSize bounds how many combatants per side can be active at once.
const MaxFieldSize = 3

// Request describes a battle to create: per side an ordered list of
// combatant snapshots, plus the battle type and field size.
type Request struct {
	ID   string
	Type game.BattleType
	// FieldSize is the number of active combatants per side (1 for singles).
	// Zero means 1.
	FieldSize int
	Seed      int64
	Player    []game.Combatant
	Enemy     []game.Combatant
}

// buildState validates the request and returns a fully initialized state in
// the setup phase. Nothing is returned when validation fails.
func buildState(req Request, ref Reference) (*game.BattleState, error) {
	if req.Type != game.BattleWild && req.Type != game.BattleTrainer {
		return nil, validationError(CodeInvalidSnapshot, "unknown battle type %q", req.Type)
	}
	fieldSize := req.FieldSize
	if fieldSize == 0 {
		fieldSize = 1
	}
	if fieldSize < 0 || fieldSize > MaxFieldSize {
		return nil, validationError(CodeInvalidSnapshot, "field size %d outside 1..%d", fieldSize, MaxFieldSize)
	}
	s := &game.BattleState{
		ID:        req.ID,
		Type:      req.Type,
		Phase:     game.PhaseSetup,
		Seed:      req.Seed,
		FieldSize: fieldSize,
		Outcome:   game.OutcomeInProgress,
	}
	for _, side := range []game.Side{game.SidePlayer, game.SideEnemy} {
		snaps := req.Player
		if side == game.SideEnemy {
			snaps = req.Enemy
		}
		roster, err := buildRoster(side, snaps, fieldSize, ref)
		if err != nil {
			return nil, err
		}
		s.Sides[side].Roster = roster
	}
	if err := CheckInvariants(s); err != nil {
		return nil, err
	}
	return s, nil
}

func buildRoster(side game.Side, snaps []game.Combatant, fieldSize int, ref Reference) ([]game.Combatant, error) {
	if len(snaps) == 0 {
		return nil, validationError(CodeInvalidSnapshot, "%s side has no combatants", side)
	}
	roster := make([]game.Combatant, 0, len(snaps))
	for i, snap := range snaps {
		c, err := newCombatant(side, i, snap, ref)
		if err != nil {
			return nil, err
		}
		roster = append(roster, c)
	}
	placed := 0
	for i := range roster {
		if placed == fieldSize {
			break
		}
		if roster[i].Available() {
			roster[i].Position = placed
			placed++
		}
	}
	if placed == 0 {
		return nil, validationError(CodeInvalidSnapshot, "%s side has no combatant able to fight", side)
	}
	return roster, nil
}

// newCombatant is the validated factory for combatants. It copies the
// snapshot so the caller's slices and maps are never shared with the battle.
func newCombatant(side game.Side, slot int, snap game.Combatant, ref Reference) (game.Combatant, error) {
	where := func() string { return fmt.Sprintf("%s slot %d", side, slot) }
	if snap.Species == "" {
		return game.Combatant{}, validationError(CodeInvalidSnapshot, "%s: species is required", where())
	}
	species, ok := ref.Species(snap.Species)
	if !ok {
		return game.Combatant{}, dataError(CodeMissingReference, "%s: unknown species %q", where(), snap.Species)
	}
	st := snap.Stats
	if st.HP <= 0 {
		return game.Combatant{}, validationError(CodeInvalidSnapshot, "%s: max HP must be positive", where())
	}
	if st.Attack < 0 || st.Defense < 0 || st.SpAttack < 0 || st.SpDefense < 0 || st.Speed < 0 {
		return game.Combatant{}, validationError(CodeInvalidSnapshot, "%s: stats must be non-negative", where())
	}
	if snap.Level < 1 {
		return game.Combatant{}, validationError(CodeInvalidSnapshot, "%s: level must be at least 1", where())
	}
	if snap.CurrentHP < 0 || snap.CurrentHP > st.HP {
		return game.Combatant{}, validationError(CodeInvalidSnapshot, "%s: current HP %d outside 0..%d", where(), snap.CurrentHP, st.HP)
	}
	moves := make([]string, 0, len(snap.Moves))
	for _, m := range snap.Moves {
		mv, ok := ref.Move(m)
		if !ok {
			return game.Combatant{}, dataError(CodeMissingReference, "%s: unknown move %q", where(), m)
		}
		moves = append(moves, mv.ID)
	}

	c := game.Combatant{
		Name:      snap.Name,
		Species:   species.ID,
		Level:     snap.Level,
		Types:     canonicalTypes(snap.Types),
		Stats:     st,
		CurrentHP: snap.CurrentHP,
		Moves:     moves,
		Side:      side,
		Slot:      slot,
		Position:  -1,
		CatchRate: snap.CatchRate,
	}
	if c.Name == "" {
		c.Name = species.Name
	}
	if len(c.Types) == 0 {
		c.Types = canonicalTypes(species.Types)
	}
	if !(c.CatchRate > 0) {
		c.CatchRate = species.CatchRate
	}
	if !(c.CatchRate > 0) {
		c.CatchRate = 1
	}
	ResetStages(&c)
	for stat, v := range snap.Stages {
		if stat == game.StatHP || !stat.Valid() {
			return game.Combatant{}, validationError(CodeInvalidSnapshot, "%s: %q has no stage", where(), stat)
		}
		if v < game.MinStage || v > game.MaxStage {
			return game.Combatant{}, validationError(CodeInvalidSnapshot, "%s: %s stage %d outside -6..6", where(), stat, v)
		}
		c.Stages[stat] = v
	}
	if snap.Status != nil {
		if !snap.Status.Status.Valid() {
			return game.Combatant{}, validationError(CodeInvalidSnapshot, "%s: unknown status %q", where(), snap.Status.Status)
		}
		cp := *snap.Status
		c.Status = &cp
	}
	if c.CurrentHP == 0 {
		c.Fainted = true
		c.Status = nil
	}
	return c, nil
}

// canonicalTypes spells type names the way the reference data keys them, so
// same-type bonus and immunities do not depend on capitalization.
func canonicalTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if id := keys.ID(t); id != "" {
			out = append(out, id)
		}
	}
	return out
}
