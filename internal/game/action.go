package game

// ActionKind is the tag of an Action.
type ActionKind string

const (
	ActionUseMove ActionKind = "use_move"
	ActionFlee    ActionKind = "flee"
	ActionCapture ActionKind = "capture"
	ActionSwitch  ActionKind = "switch"
	ActionPass    ActionKind = "pass"
)

// Valid reports whether k is a known action kind.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionUseMove, ActionFlee, ActionCapture, ActionSwitch, ActionPass:
		return true
	}
	return false
}

// Action is a tagged variant: only the fields relevant to Kind are read.
//   - use_move: MoveID, Target
//   - capture:  ItemID, Target
//   - switch:   Slot (roster index of the incoming combatant)
//   - flee, pass: no payload
type Action struct {
	Kind   ActionKind   `json:"kind"`
	MoveID string       `json:"move_id,omitempty"`
	Target CombatantRef `json:"target"`
	ItemID string       `json:"item_id,omitempty"`
	Slot   int          `json:"slot,omitempty"`
}

func UseMove(moveID string, target CombatantRef) Action {
	return Action{Kind: ActionUseMove, MoveID: moveID, Target: target}
}

func Flee() Action { return Action{Kind: ActionFlee} }

func Capture(itemID string, target CombatantRef) Action {
	return Action{Kind: ActionCapture, ItemID: itemID, Target: target}
}

func Switch(slot int) Action { return Action{Kind: ActionSwitch, Slot: slot} }

func Pass() Action { return Action{Kind: ActionPass} }

// MoveCategory decides which attack/defense pair a move uses.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// StageEffect changes a stat stage when a move lands. Chance is a percentage;
// 0 means always.
type StageEffect struct {
	Stat   Stat `json:"stat" yaml:"stat"`
	Delta  int  `json:"delta" yaml:"delta"`
	OnSelf bool `json:"on_self" yaml:"on_self"`
	Chance int  `json:"chance" yaml:"chance"`
}

// StatusEffect inflicts a status on the move's target. Chance is a
// percentage; 0 means always. Duration 0 means until cured.
type StatusEffect struct {
	Status   Status `json:"status" yaml:"status"`
	Chance   int    `json:"chance" yaml:"chance"`
	Duration int    `json:"duration" yaml:"duration"`
}

// Move is read-only reference data.
type Move struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category MoveCategory `json:"category"`
	Power    int          `json:"power"`
	// Accuracy is a percentage; 0 means the move never misses.
	Accuracy     int           `json:"accuracy"`
	Type         string        `json:"type"`
	Priority     int           `json:"priority"`
	StageEffects []StageEffect `json:"stage_effects,omitempty"`
	StatusEffect *StatusEffect `json:"status_effect,omitempty"`
	// TrickRoom toggles the reverse-speed modifier.
	TrickRoom bool `json:"trick_room,omitempty"`
}

// Species is read-only reference data for a monster kind.
type Species struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
	// CatchRate scales capture chances; 1.0 is neutral.
	CatchRate float64 `json:"catch_rate"`
}

// Item is read-only reference data for capture items.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CatchModifier float64 `json:"catch_modifier"`
}
