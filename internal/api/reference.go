package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListSpecies returns the species reference data sorted by id.
func (h *BattleHandler) ListSpecies(c *gin.Context) {
	c.JSON(http.StatusOK, h.dex.SpeciesList())
}

// ListMoves returns the move reference data sorted by id.
func (h *BattleHandler) ListMoves(c *gin.Context) {
	c.JSON(http.StatusOK, h.dex.MoveList())
}
