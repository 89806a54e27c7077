package game

// EventKind classifies an Event.
type EventKind string

const (
	EventRoundStarted     EventKind = "round_started"
	EventMoveUsed         EventKind = "move_used"
	EventMissed           EventKind = "missed"
	EventDamage           EventKind = "damage"
	EventFaint            EventKind = "faint"
	EventStatusApplied    EventKind = "status_applied"
	EventStatusBlocked    EventKind = "status_blocked"
	EventStatusDamage     EventKind = "status_damage"
	EventStatusCured      EventKind = "status_cured"
	EventSkipped          EventKind = "skipped"
	EventStageChanged     EventKind = "stage_changed"
	EventFlee             EventKind = "flee"
	EventCapture          EventKind = "capture"
	EventSwitch           EventKind = "switch"
	EventReplaced         EventKind = "replaced"
	EventPass             EventKind = "pass"
	EventInvalidTarget    EventKind = "invalid_target"
	EventNotAllowed       EventKind = "not_allowed"
	EventInvalidSlot      EventKind = "invalid_slot"
	EventDataWarning      EventKind = "data_warning"
	EventTrickRoomStart   EventKind = "trick_room_started"
	EventTrickRoomEnd     EventKind = "trick_room_ended"
	EventBattleEnded      EventKind = "battle_ended"
	EventNoEffect         EventKind = "no_effect"
	EventSuperEffective   EventKind = "super_effective"
	EventNotVeryEffective EventKind = "not_very_effective"
)

// Event is an immutable record of something that happened during a round.
// Consumers (renderers, dialog, logging) read events; they never touch the
// BattleState directly.
type Event struct {
	Seq         int           `json:"seq"`
	Round       int           `json:"round"`
	Kind        EventKind     `json:"kind"`
	Actor       *CombatantRef `json:"actor,omitempty"`
	Target      *CombatantRef `json:"target,omitempty"`
	Move        string        `json:"move,omitempty"`
	Amount      int           `json:"amount,omitempty"`
	HPAfter     int           `json:"hp_after,omitempty"`
	Status      Status        `json:"status,omitempty"`
	Stat        Stat          `json:"stat,omitempty"`
	Stage       int           `json:"stage,omitempty"`
	Clamped     bool          `json:"clamped,omitempty"`
	Probability float64       `json:"probability,omitempty"`
	Success     bool          `json:"success,omitempty"`
	Outcome     Outcome       `json:"outcome,omitempty"`
	Code        string        `json:"code,omitempty"`
	Message     string        `json:"message,omitempty"`
}
