package game

// BattleType governs whether Flee and Capture are permitted.
type BattleType string

const (
	BattleWild    BattleType = "wild"
	BattleTrainer BattleType = "trainer"
)

// Phase is the lifecycle state of a battle.
type Phase string

const (
	PhaseSetup           Phase = "setup"
	PhaseRoundInProgress Phase = "round_in_progress"
	PhaseRoundResolved   Phase = "round_resolved"
	PhaseEnded           Phase = "ended"
)

// Outcome is the result of a battle.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomePlayerWin  Outcome = "player_win"
	OutcomeEnemyWin   Outcome = "enemy_win"
	OutcomeFled       Outcome = "fled"
	OutcomeCaptured   Outcome = "captured"
	// OutcomeDraw is reached when both sides are wiped in the same round.
	OutcomeDraw Outcome = "draw"
)

// Terminal reports whether o ends the battle.
func (o Outcome) Terminal() bool { return o != OutcomeInProgress && o != "" }

// SideState is one party: its full roster in team-slot order.
type SideState struct {
	Roster []Combatant `json:"roster"`
}

// Modifiers are global battle modifiers with explicit lifetimes.
type Modifiers struct {
	// TrickRoomRounds is the number of rounds the reverse-speed ordering
	// remains active, including the current one. Zero means inactive.
	TrickRoomRounds int `json:"trick_room_rounds"`
}

// TrickRoom reports whether speed ordering is currently reversed.
func (m Modifiers) TrickRoom() bool { return m.TrickRoomRounds > 0 }

// Submission is an action queued for the current round.
type Submission struct {
	Actor  CombatantRef `json:"actor"`
	Action Action       `json:"action"`
}

// BattleState is the aggregate owned by one battle.
type BattleState struct {
	ID        string     `json:"id"`
	Type      BattleType `json:"type"`
	Phase     Phase      `json:"phase"`
	Round     int        `json:"round"`
	Seed      int64      `json:"seed"`
	FieldSize int        `json:"field_size"`
	// Sides is indexed by Side.
	Sides     [2]SideState `json:"sides"`
	Modifiers Modifiers    `json:"modifiers"`
	Outcome   Outcome      `json:"outcome"`
	// FledSide is set when the outcome is fled.
	FledSide *Side `json:"fled_side,omitempty"`
	// Captured lists enemies scouted during the battle.
	Captured []CombatantRef `json:"captured,omitempty"`
	Pending  []Submission   `json:"pending"`
	// Skipped are active combatants that lose this round to their status.
	Skipped []CombatantRef `json:"skipped,omitempty"`
	// EventSeq is the sequence number of the last emitted event.
	EventSeq int `json:"event_seq"`
}

// Combatant returns the combatant identified by ref or nil.
func (s *BattleState) Combatant(ref CombatantRef) *Combatant {
	if !ref.Side.Valid() {
		return nil
	}
	roster := s.Sides[ref.Side].Roster
	if ref.Slot < 0 || ref.Slot >= len(roster) {
		return nil
	}
	return &s.Sides[ref.Side].Roster[ref.Slot]
}

// Active returns the active combatants of side ordered by field position.
func (s *BattleState) Active(side Side) []*Combatant {
	out := make([]*Combatant, 0, s.FieldSize)
	for pos := 0; pos < s.FieldSize; pos++ {
		if c := s.AtPosition(side, pos); c != nil && c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

// AllActive returns the active combatants of both sides, player side first.
func (s *BattleState) AllActive() []*Combatant {
	return append(s.Active(SidePlayer), s.Active(SideEnemy)...)
}

// AtPosition returns the combatant occupying a field position or nil.
func (s *BattleState) AtPosition(side Side, pos int) *Combatant {
	for i := range s.Sides[side].Roster {
		if s.Sides[side].Roster[i].Position == pos {
			return &s.Sides[side].Roster[i]
		}
	}
	return nil
}

// Remaining counts combatants of side that can still fight.
func (s *BattleState) Remaining(side Side) int {
	n := 0
	for i := range s.Sides[side].Roster {
		if s.Sides[side].Roster[i].Available() {
			n++
		}
	}
	return n
}

// PendingFor returns the queued action of actor.
func (s *BattleState) PendingFor(actor CombatantRef) (Action, bool) {
	for _, p := range s.Pending {
		if p.Actor == actor {
			return p.Action, true
		}
	}
	return Action{}, false
}

// IsSkipped reports whether actor loses this round to its status.
func (s *BattleState) IsSkipped(actor CombatantRef) bool {
	for _, r := range s.Skipped {
		if r == actor {
			return true
		}
	}
	return false
}
