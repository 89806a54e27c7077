package game

import (
	"time"

	"gorm.io/gorm"
)

// BattleRecord persists one battle driven by the server. The engine state is
// stored as a JSON column; the scalar columns mirror it so the timeout
// scanner and listings can filter without decoding the blob.
type BattleRecord struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	TrainerID string     `json:"trainer_id" gorm:"index;size:64"`
	Type      BattleType `json:"type" gorm:"size:16"`
	Phase     Phase      `json:"phase" gorm:"index;size:32"`
	Outcome   Outcome    `json:"outcome" gorm:"size:16"`
	Round     int        `json:"round"`
	// State holds the full engine aggregate.
	State BattleState `json:"state" gorm:"serializer:json"`
	// ActionDeadline is when the current round is forced with defaults.
	ActionDeadline time.Time `json:"action_deadline" gorm:"index"`
	// StatsCounted prevents updating the trainer profile twice.
	StatsCounted bool `json:"-"`
}

// TableName keeps battle rows in a descriptive table.
func (BattleRecord) TableName() string { return "battle_records" }

// EventRecord is one persisted engine event. Events are append-only.
type EventRecord struct {
	gorm.Model
	BattleID string    `json:"battle_id" gorm:"index:idx_battle_event_seq,unique;size:36"`
	Seq      int       `json:"seq" gorm:"index:idx_battle_event_seq,unique"`
	Round    int       `json:"round"`
	Kind     EventKind `json:"kind" gorm:"size:32"`
	Payload  Event     `json:"payload" gorm:"serializer:json"`
}

func (EventRecord) TableName() string { return "battle_events" }

// TrainerProfile stores aggregate results per trainer.
type TrainerProfile struct {
	gorm.Model
	TrainerID     string `json:"trainer_id" gorm:"uniqueIndex;size:64"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Draws         int    `json:"draws"`
	Fled          int    `json:"fled"`
	Captures      int    `json:"captures"`
}

func (TrainerProfile) TableName() string { return "trainer_profiles" }
