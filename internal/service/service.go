package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/dedupe"
	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/logging"
	"github.com/avoid201/untoldstory/internal/storage"
)

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrNotParticipant      = errors.New("trainer does not own this battle")
	ErrBattleNotInProgress = errors.New("battle is not waiting for actions")
	ErrNotPlayerSide       = errors.New("actor must be on the player side")
	ErrBattleCorrupted     = errors.New("battle state is corrupted")
	ErrTrainerRequired     = errors.New("trainer id is required")
)

// Runtime carries what every battle operation needs besides the repository.
type Runtime struct {
	Ref           engine.Reference
	Balance       engine.Balance
	ActionTimeout time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// Sources overrides the engine's per-round random source (tests only).
	Sources func(seed int64, stream int) engine.Source
}

func (rt Runtime) now() time.Time {
	if rt.Now != nil {
		return rt.Now()
	}
	return time.Now()
}

func (rt Runtime) options() []engine.Option {
	opts := []engine.Option{engine.WithBalance(rt.Balance)}
	if rt.Sources != nil {
		opts = append(opts, engine.WithSourceFunc(rt.Sources))
	}
	return opts
}

// battleLocks serializes mutations per battle id. Entries are dropped when
// the last holder releases them.
type battleLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

var locks = &battleLocks{locks: make(map[string]*lockEntry)}

func (l *battleLocks) lock(id string) func() {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// loadBattle fetches a record for reading. Concurrent loads of the same id
// share one repository call and one result, so the record must not be
// mutated.
func loadBattle(repo storage.Repository, id string) (*game.BattleRecord, error) {
	v, err, _ := dedupe.BattleGroup.Do(dedupe.BattleKey(id), func() (interface{}, error) {
		return repo.GetBattle(id)
	})
	if err != nil {
		return nil, notFound(id, err)
	}
	rec, _ := v.(*game.BattleRecord)
	if rec == nil {
		return nil, ErrBattleNotFound
	}
	return rec, nil
}

// loadOwned loads a private record for mutation and checks ownership. The
// caller holds the battle lock.
func loadOwned(repo storage.Repository, id, trainerID string) (*game.BattleRecord, error) {
	rec, err := repo.GetBattle(id)
	if err != nil {
		return nil, notFound(id, err)
	}
	if rec == nil {
		return nil, ErrBattleNotFound
	}
	if trainerID != "" && rec.TrainerID != trainerID {
		return nil, ErrNotParticipant
	}
	return rec, nil
}

func notFound(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrBattleNotFound
	}
	return fmt.Errorf("load battle %s: %w", id, err)
}

// syncRecord copies the battle's state into the record and sets the action
// deadline for the round now waiting, if any.
func syncRecord(rt Runtime, rec *game.BattleRecord, b *engine.Battle) error {
	snap, err := b.Snapshot()
	if err != nil {
		return err
	}
	rec.State = *snap
	rec.Phase = snap.Phase
	rec.Outcome = snap.Outcome
	rec.Round = snap.Round
	if snap.Phase == game.PhaseRoundInProgress && rt.ActionTimeout > 0 {
		rec.ActionDeadline = rt.now().Add(rt.ActionTimeout)
	} else {
		rec.ActionDeadline = time.Time{}
	}
	return nil
}

// finishStats records a finished battle on the trainer profile once.
func finishStats(repo storage.Repository, rec *game.BattleRecord) {
	if !rec.Outcome.Terminal() || rec.StatsCounted {
		return
	}
	if err := repo.UpdateStatsOnBattleEnd(rec); err != nil {
		logging.Error("failed to update trainer stats", err, logging.Fields{
			constants.LogFieldBattleID:  rec.ID,
			constants.LogFieldTrainerID: rec.TrainerID,
		})
		return
	}
	logging.Info("battle ended", logging.Fields{
		constants.LogFieldBattleID:  rec.ID,
		constants.LogFieldTrainerID: rec.TrainerID,
		constants.LogFieldOutcome:   rec.Outcome,
	})
}

// logWarnings forwards data_warning events to the log.
func logWarnings(battleID string, events []game.Event) {
	for _, ev := range events {
		if ev.Kind != game.EventDataWarning {
			continue
		}
		logging.Warn(ev.Message, logging.Fields{
			constants.LogFieldBattleID: battleID,
			constants.LogFieldRound:    ev.Round,
			constants.LogFieldCode:     ev.Code,
		})
	}
}

// broken logs an invariant violation and converts it to ErrBattleCorrupted.
func broken(battleID string, err error) error {
	logging.Error("battle refused to proceed", err, logging.Fields{constants.LogFieldBattleID: battleID})
	return fmt.Errorf("%w: %v", ErrBattleCorrupted, err)
}
