package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/avoid201/untoldstory/internal/api"
	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/logging"
)

func main() {
	env := parseEnvOrExit()
	cfg := loadConfigOrExit(env.ConfigPath)
	d := buildDexOrExit(cfg)
	repo := createRepositoryOrExit(env.DBPath)

	handler := api.NewBattleHandler(repo, d, cfg.Balance, env.ActionTimeout)
	router := api.NewRouter(handler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background scanner: rounds whose deadline passed are resolved with
	// pass for every combatant that did not choose.
	startTimeoutScanner(ctx, repo, handler.Runtime(), env.ScanInterval)

	addr := cfg.ServerAddress
	if env.Address != "" {
		addr = env.Address
	}
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logging.Info("Server started", logging.Fields{
			constants.LogFieldAddr: addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", err, nil)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", err, nil)
	}
	logging.Info("Server stopped", nil)
}
