package game

// Stat is a stat category. HP through Speed have base values on the stat
// block; Accuracy and Evasion exist only as stages.
type Stat string

const (
	StatHP        Stat = "hp"
	StatAttack    Stat = "attack"
	StatDefense   Stat = "defense"
	StatSpAttack  Stat = "sp_attack"
	StatSpDefense Stat = "sp_defense"
	StatSpeed     Stat = "speed"
	StatAccuracy  Stat = "accuracy"
	StatEvasion   Stat = "evasion"
)

// StageableStats lists every stat that carries a stage counter.
var StageableStats = []Stat{StatAttack, StatDefense, StatSpAttack, StatSpDefense, StatSpeed, StatAccuracy, StatEvasion}

// Valid reports whether s is a known stat category.
func (s Stat) Valid() bool {
	switch s {
	case StatHP, StatAttack, StatDefense, StatSpAttack, StatSpDefense, StatSpeed, StatAccuracy, StatEvasion:
		return true
	}
	return false
}

const (
	MinStage = -6
	MaxStage = 6
)

// StatBlock holds the computed (level-adjusted) stats of a combatant.
// All values are non-negative; HP is the maximum HP.
type StatBlock struct {
	HP        int `json:"hp" yaml:"hp"`
	Attack    int `json:"attack" yaml:"attack"`
	Defense   int `json:"defense" yaml:"defense"`
	SpAttack  int `json:"sp_attack" yaml:"sp_attack"`
	SpDefense int `json:"sp_defense" yaml:"sp_defense"`
	Speed     int `json:"speed" yaml:"speed"`
}

// Base returns the base value for s. Accuracy and Evasion have no base
// value and report ok=false.
func (b StatBlock) Base(s Stat) (int, bool) {
	switch s {
	case StatHP:
		return b.HP, true
	case StatAttack:
		return b.Attack, true
	case StatDefense:
		return b.Defense, true
	case StatSpAttack:
		return b.SpAttack, true
	case StatSpDefense:
		return b.SpDefense, true
	case StatSpeed:
		return b.Speed, true
	}
	return 0, false
}

// Side identifies which party a combatant fights for.
type Side int

const (
	SidePlayer Side = 0
	SideEnemy  Side = 1
)

func (s Side) String() string {
	if s == SideEnemy {
		return "enemy"
	}
	return "player"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Valid reports whether s is one of the two battle sides.
func (s Side) Valid() bool { return s == SidePlayer || s == SideEnemy }

// CombatantRef identifies a combatant by side and team-slot index.
type CombatantRef struct {
	Side Side `json:"side"`
	Slot int  `json:"slot"`
}

// Status is a major status condition. A combatant holds at most one.
type Status string

const (
	StatusNone      Status = ""
	StatusBurn      Status = "burn"
	StatusParalysis Status = "paralysis"
	StatusPoison    Status = "poison"
	StatusSleep     Status = "sleep"
	StatusFreeze    Status = "freeze"
)

// Valid reports whether s is a known, non-empty status.
func (s Status) Valid() bool {
	switch s {
	case StatusBurn, StatusParalysis, StatusPoison, StatusSleep, StatusFreeze:
		return true
	}
	return false
}

// StatusCondition is an active status with its remaining duration. A
// RemainingRounds of 0 means the status lasts until cured.
type StatusCondition struct {
	Status          Status `json:"status"`
	RemainingRounds int    `json:"remaining_rounds"`
}

// Combatant is one monster taking part in a battle. It is built from a
// validated snapshot and owned by the BattleState; only the engine mutates it
// during a round.
type Combatant struct {
	Name    string   `json:"name"`
	Species string   `json:"species"`
	Level   int      `json:"level"`
	Types   []string `json:"types"`
	// Stats is the computed stat block; Stats.HP is the maximum HP.
	Stats     StatBlock        `json:"stats"`
	CurrentHP int              `json:"current_hp"`
	Stages    map[Stat]int     `json:"stages"`
	Status    *StatusCondition `json:"status,omitempty"`
	Moves     []string         `json:"moves"`
	Side      Side             `json:"side"`
	// Slot is the team-slot index inside the side's roster.
	Slot int `json:"slot"`
	// Position is the field position while active and -1 while benched.
	Position int  `json:"position"`
	Fainted  bool `json:"fainted"`
	// CatchRate scales capture chances; 1.0 is neutral. Filled from species
	// data when the snapshot leaves it at zero.
	CatchRate float64 `json:"catch_rate"`
	// Captured marks an enemy that was scouted out of the battle.
	Captured bool `json:"captured,omitempty"`
}

// Ref returns the identifier of c.
func (c *Combatant) Ref() CombatantRef { return CombatantRef{Side: c.Side, Slot: c.Slot} }

// MaxHP returns the maximum HP from the stat block.
func (c *Combatant) MaxHP() int { return c.Stats.HP }

// IsActive reports whether c is on the field and able to act.
func (c *Combatant) IsActive() bool { return c.Position >= 0 && !c.Fainted && !c.Captured }

// Available reports whether c can still be sent in.
func (c *Combatant) Available() bool { return !c.Fainted && !c.Captured }

// KnowsMove reports whether id is in c's move list.
func (c *Combatant) KnowsMove(id string) bool {
	for _, m := range c.Moves {
		if m == id {
			return true
		}
	}
	return false
}

// HasType reports whether c carries type t.
func (c *Combatant) HasType(t string) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}
