package api

import (
	"time"

	"github.com/avoid201/untoldstory/internal/dex"
	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/service"
	"github.com/avoid201/untoldstory/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo storage.Repository
	dex  *dex.Dex
	rt   service.Runtime
}

// NewBattleHandler creates a new BattleHandler with the given repository,
// reference data, balance and per-round action timeout.
func NewBattleHandler(repo storage.Repository, d *dex.Dex, bal engine.Balance, actionTimeout time.Duration) *BattleHandler {
	return &BattleHandler{
		repo: repo,
		dex:  d,
		rt: service.Runtime{
			Ref:           d,
			Balance:       bal,
			ActionTimeout: actionTimeout,
		},
	}
}

// Runtime exposes the settings used to drive battles, e.g. for the timeout
// scanner.
func (h *BattleHandler) Runtime() service.Runtime { return h.rt }
