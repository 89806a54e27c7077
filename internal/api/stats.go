package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/service"
)

// GetTrainerStats returns the aggregate results of a trainer.
func (h *BattleHandler) GetTrainerStats(c *gin.Context) {
	id := c.Param(constants.ParamTrainerID)
	if !trainerIDRegex.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidTrainerIDRegex})
		return
	}
	p, err := service.GetProfile(h.repo, id)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchStats)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(p)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchStats)
		return
	}
	c.JSON(http.StatusOK, out)
}
