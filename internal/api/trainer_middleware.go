package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avoid201/untoldstory/internal/constants"
)

// TrainerRequired reads the calling trainer from the X-Trainer-ID header and
// injects it into the context.
func TrainerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(constants.HeaderTrainerID))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrTrainerRequired})
			return
		}
		if !trainerIDRegex.MatchString(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidTrainerIDRegex})
			return
		}
		c.Set(constants.ContextTrainerID, id)
		c.Next()
	}
}

func trainerID(c *gin.Context) string {
	return c.GetString(constants.ContextTrainerID)
}
