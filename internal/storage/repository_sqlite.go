package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avoid201/untoldstory/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func eventRecords(battleID string, events []game.Event) []game.EventRecord {
	out := make([]game.EventRecord, 0, len(events))
	for _, e := range events {
		out = append(out, game.EventRecord{BattleID: battleID, Seq: e.Seq, Round: e.Round, Kind: e.Kind, Payload: e})
	}
	return out
}

// appendEvents inserts events, ignoring ones already stored so a retried
// save never duplicates the log.
func appendEvents(tx *gorm.DB, battleID string, events []game.Event) error {
	if len(events) == 0 {
		return nil
	}
	recs := eventRecords(battleID, events)
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "battle_id"}, {Name: "seq"}},
		DoNothing: true,
	}).CreateInBatches(&recs, 100).Error
}

func (r *sqliteRepository) CreateBattle(rec *game.BattleRecord, events []game.Event) error {
	rec.ActionDeadline = rec.ActionDeadline.UTC()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return appendEvents(tx, rec.ID, events)
	})
}

func (r *sqliteRepository) GetBattle(id string) (*game.BattleRecord, error) {
	var rec game.BattleRecord
	if err := r.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) SaveBattle(rec *game.BattleRecord, events []game.Event) error {
	rec.ActionDeadline = rec.ActionDeadline.UTC()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		return appendEvents(tx, rec.ID, events)
	})
}

func (r *sqliteRepository) ListEvents(battleID string, since, limit int) ([]game.Event, error) {
	if limit <= 0 {
		limit = 500
	}
	var recs []game.EventRecord
	if err := r.db.Where("battle_id = ? AND seq > ?", battleID, since).
		Order("seq ASC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]game.Event, len(recs))
	for i := range recs {
		out[i] = recs[i].Payload
	}
	return out, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Deadlines are stored in UTC so sqlite's text comparison orders them.
	var ids []string
	err := r.db.Model(&game.BattleRecord{}).
		Where("phase = ? AND action_deadline <= ?", game.PhaseRoundInProgress, now.UTC()).
		Order("action_deadline ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(rec *game.BattleRecord) error {
	if rec.StatsCounted || !rec.Outcome.Terminal() || rec.TrainerID == "" {
		return nil
	}
	var win, loss, draw, fled, captures int
	switch rec.Outcome {
	case game.OutcomePlayerWin:
		win = 1
	case game.OutcomeEnemyWin:
		loss = 1
	case game.OutcomeDraw:
		draw = 1
	case game.OutcomeFled:
		fled = 1
	case game.OutcomeCaptured:
		win = 1
	}
	captures = len(rec.State.Captured)

	return r.db.Transaction(func(tx *gorm.DB) error {
		p := game.TrainerProfile{TrainerID: rec.TrainerID, BattlesPlayed: 1, Wins: win, Losses: loss, Draws: draw, Fled: fled, Captures: captures}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "trainer_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"battles_played": gorm.Expr("battles_played + ?", 1),
				"wins":           gorm.Expr("wins + ?", win),
				"losses":         gorm.Expr("losses + ?", loss),
				"draws":          gorm.Expr("draws + ?", draw),
				"fled":           gorm.Expr("fled + ?", fled),
				"captures":       gorm.Expr("captures + ?", captures),
				"updated_at":     time.Now(),
			}),
		}).Create(&p).Error; err != nil {
			return err
		}
		if err := tx.Model(&game.BattleRecord{}).Where("id = ?", rec.ID).Update("stats_counted", true).Error; err != nil {
			return err
		}
		rec.StatsCounted = true
		return nil
	})
}

func (r *sqliteRepository) GetProfile(trainerID string) (*game.TrainerProfile, error) {
	var p game.TrainerProfile
	if err := r.db.Where("trainer_id = ?", trainerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.TrainerProfile{TrainerID: trainerID}, nil
		}
		return nil, err
	}
	return &p, nil
}
