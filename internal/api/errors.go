package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/logging"
	"github.com/avoid201/untoldstory/internal/service"
)

// writeError maps service and engine errors to responses. Anything unknown
// is logged and reported with the fallback message.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	case errors.Is(err, service.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrTrainerMismatch})
		return
	case errors.Is(err, service.ErrTrainerRequired):
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrTrainerRequired})
		return
	case errors.Is(err, service.ErrBattleNotInProgress):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		return
	case errors.Is(err, service.ErrBattleCorrupted):
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrBattleStateCorrupted})
		return
	}

	var ee *engine.Error
	if errors.As(err, &ee) {
		body := gin.H{
			constants.JSONKeyError:   constants.ErrActionRejected,
			constants.JSONKeyCode:    ee.Code,
			constants.JSONKeyMessage: ee.Message,
		}
		switch {
		case ee.Kind == engine.KindInvariant:
			body[constants.JSONKeyError] = constants.ErrBattleStateCorrupted
			c.JSON(http.StatusInternalServerError, body)
		case ee.Kind == engine.KindData:
			body[constants.JSONKeyError] = constants.ErrUnknownReferenceData
			c.JSON(http.StatusUnprocessableEntity, body)
		case ee.Code == engine.CodeBattleEnded || ee.Code == engine.CodeWrongPhase:
			c.JSON(http.StatusConflict, body)
		default:
			c.JSON(http.StatusUnprocessableEntity, body)
		}
		return
	}

	logging.Error(fallback, err, logging.Fields{constants.LogFieldPath: c.FullPath()})
	c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
}
