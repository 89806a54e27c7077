package storage

import (
	"errors"
	"time"

	"github.com/avoid201/untoldstory/internal/game"
)

// ErrNotFound is returned when a battle id does not exist.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// CreateBattle stores a new battle together with the events emitted while
	// it was set up.
	CreateBattle(rec *game.BattleRecord, events []game.Event) error
	GetBattle(id string) (*game.BattleRecord, error)
	// SaveBattle updates the record and appends events in one transaction.
	// Events already stored (same battle and sequence number) are skipped.
	SaveBattle(rec *game.BattleRecord, events []game.Event) error
	// ListEvents returns events with Seq > since in order, at most limit.
	ListEvents(battleID string, since, limit int) ([]game.Event, error)
	// FindTimedOutBattles returns ids of battles waiting for actions whose
	// deadline is at or before now.
	FindTimedOutBattles(now time.Time, limit int) ([]string, error)
	// UpdateStatsOnBattleEnd adds a finished battle to the trainer profile
	// once; it marks rec.StatsCounted.
	UpdateStatsOnBattleEnd(rec *game.BattleRecord) error
	// GetProfile returns the profile or a zero profile for unknown trainers.
	GetProfile(trainerID string) (*game.TrainerProfile, error)
}
