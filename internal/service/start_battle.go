package service

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/logging"
	"github.com/avoid201/untoldstory/internal/storage"
)

// StartRequest is a battle to create for a trainer.
type StartRequest struct {
	Type      game.BattleType `json:"type"`
	FieldSize int             `json:"field_size"`
	// Seed makes the battle reproducible. Zero derives one from the id.
	Seed   int64            `json:"seed"`
	Player []game.Combatant `json:"player"`
	Enemy  []game.Combatant `json:"enemy"`
}

// StartBattle creates a battle, opens its first round, lets the enemy side
// choose, and stores it. Engine validation and data errors are returned as
// is so callers can tell a bad request from a storage failure.
func StartBattle(ctx context.Context, repo storage.Repository, rt Runtime, trainerID string, req StartRequest) (*game.BattleRecord, []game.Event, error) {
	if trainerID == "" {
		return nil, nil, ErrTrainerRequired
	}
	id := uuid.New()
	seed := req.Seed
	if seed == 0 {
		seed = int64(binary.BigEndian.Uint64(id[:8]) >> 1)
	}
	b, err := engine.NewBattle(engine.Request{
		ID:        id.String(),
		Type:      req.Type,
		FieldSize: req.FieldSize,
		Seed:      seed,
		Player:    req.Player,
		Enemy:     req.Enemy,
	}, rt.Ref, rt.options()...)
	if err != nil {
		return nil, nil, err
	}

	events, err := b.Start(ctx)
	if err != nil {
		return nil, nil, broken(id.String(), err)
	}
	more, err := advance(ctx, b, rt.Ref)
	events = append(events, more...)
	if err != nil {
		return nil, nil, broken(id.String(), err)
	}
	logWarnings(id.String(), events)

	rec := &game.BattleRecord{
		ID:        id.String(),
		TrainerID: trainerID,
		Type:      req.Type,
	}
	if err := syncRecord(rt, rec, b); err != nil {
		return nil, nil, err
	}
	if err := repo.CreateBattle(rec, events); err != nil {
		return nil, nil, fmt.Errorf("store battle %s: %w", rec.ID, err)
	}
	logging.Info("battle started", logging.Fields{
		constants.LogFieldBattleID:  rec.ID,
		constants.LogFieldTrainerID: trainerID,
		constants.LogFieldRound:     rec.Round,
	})
	finishStats(repo, rec)
	return rec, events, nil
}
