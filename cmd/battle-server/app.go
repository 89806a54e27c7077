package main

import (
	"github.com/avoid201/untoldstory/internal/config"
	"github.com/avoid201/untoldstory/internal/dex"
	"github.com/avoid201/untoldstory/internal/logging"
	"github.com/avoid201/untoldstory/internal/storage"
)

func parseEnvOrExit() config.Env {
	e, err := config.ParseEnv()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}
	return e
}

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{"config_path": path, "hint": "create a battle_config.yaml with 'types', 'species' and 'moves' lists and optional 'items', 'balance' and server.address"})
	}
	return cfg
}

func buildDexOrExit(cfg *config.LoadedConfig) *dex.Dex {
	d, err := dex.New(cfg.Types, cfg.Species, cfg.Moves, cfg.Items)
	if err != nil {
		logging.Fatal("Invalid reference data", err, nil)
	}
	return d
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
