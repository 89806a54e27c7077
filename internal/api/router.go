package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoid201/untoldstory/internal/constants"
)

// NewRouter wires every route onto a gin engine.
func NewRouter(h *BattleHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET(constants.RouteHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
	})

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteSpecies, h.ListSpecies)
		apiRoutes.GET(constants.RouteMoves, h.ListMoves)
		apiRoutes.GET(constants.RouteTrainerStats, h.GetTrainerStats)

		protected := apiRoutes.Group("")
		protected.Use(TrainerRequired())

		protected.POST(constants.RouteBattles, h.CreateBattle)
		protected.GET(constants.RouteBattleByID, h.GetBattle)
		protected.POST(constants.RouteBattleAction, h.SubmitAction)
		protected.GET(constants.RouteBattleEvents, h.ListEvents)
	}
	return router
}
