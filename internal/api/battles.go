package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/service"
)

// CreateBattle starts a battle for the calling trainer. The response holds
// the stored battle and the events of its opening.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req service.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.FieldSize < 0 || req.FieldSize > engine.MaxFieldSize {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	rec, events, err := service.StartBattle(c.Request.Context(), h.repo, h.rt, trainerID(c), req)
	if err != nil {
		writeError(c, err, constants.ErrFailedCreateBattle)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"battle": rec, "events": events})
}

func battleIDParam(c *gin.Context) (string, bool) {
	id := normalizeBattleID(c.Param(constants.ParamBattleID))
	if !battleIDRegex.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return "", false
	}
	return id, true
}

// GetBattle returns the stored battle of the calling trainer.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	rec, err := service.GetBattle(h.repo, id, trainerID(c))
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchBattle)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListEvents returns the events after ?since=<seq>, oldest first.
func (h *BattleHandler) ListEvents(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	since := 0
	if raw := c.Query(constants.QueryEventsSince); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSince})
			return
		}
		since = n
	}
	events, err := service.ListEvents(h.repo, id, trainerID(c), since, constants.DefaultEventsLimit)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchEvents)
		return
	}
	next := since
	if len(events) > 0 {
		next = events[len(events)-1].Seq
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "next": next})
}
