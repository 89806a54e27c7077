package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avoid201/untoldstory/internal/game"
)

// OpenDB opens (creating when needed) the sqlite database at dataSourceName
// and migrates the battle tables.
func OpenDB(dataSourceName string) (*gorm.DB, error) {
	if dir := filepath.Dir(dataSourceName); !strings.HasPrefix(dataSourceName, "file:") && dataSourceName != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	// One writer at a time keeps sqlite free of "database is locked" errors
	// under the timeout scanner and request handlers.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&game.BattleRecord{}, &game.EventRecord{}, &game.TrainerProfile{}); err != nil {
		return nil, err
	}
	return db, nil
}
