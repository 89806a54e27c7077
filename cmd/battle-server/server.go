package main

import (
	"context"
	"time"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/logging"
	"github.com/avoid201/untoldstory/internal/service"
	"github.com/avoid201/untoldstory/internal/storage"
)

// timeoutBatch caps how many battles one scan forces.
const timeoutBatch = 20

// startTimeoutScanner periodically forces rounds whose action deadline has
// passed. Battles are handled one at a time to keep sqlite writes serial.
func startTimeoutScanner(ctx context.Context, repo storage.Repository, rt service.Runtime, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := service.ScanTimedOutBattles(ctx, repo, rt, timeoutBatch); n > 0 {
					logging.Info("forced timed-out rounds", logging.Fields{constants.LogFieldCount: n})
				}
			}
		}
	}()
}
