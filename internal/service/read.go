package service

import (
	"fmt"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/dedupe"
	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/storage"
)

// GetBattle returns the stored battle if trainerID owns it.
func GetBattle(repo storage.Repository, battleID, trainerID string) (*game.BattleRecord, error) {
	rec, err := loadBattle(repo, battleID)
	if err != nil {
		return nil, err
	}
	if rec.TrainerID != trainerID {
		return nil, ErrNotParticipant
	}
	return rec, nil
}

// ListEvents returns the battle's events after sequence number since.
func ListEvents(repo storage.Repository, battleID, trainerID string, since, limit int) ([]game.Event, error) {
	if _, err := GetBattle(repo, battleID, trainerID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > constants.DefaultEventsLimit {
		limit = constants.DefaultEventsLimit
	}
	events, err := repo.ListEvents(battleID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list events of %s: %w", battleID, err)
	}
	return events, nil
}

// GetProfile returns the trainer's aggregate results.
func GetProfile(repo storage.Repository, trainerID string) (*game.TrainerProfile, error) {
	v, err, _ := dedupe.ProfileGroup.Do(dedupe.ProfileKey(trainerID), func() (interface{}, error) {
		return repo.GetProfile(trainerID)
	})
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", trainerID, err)
	}
	p, _ := v.(*game.TrainerProfile)
	return p, nil
}
