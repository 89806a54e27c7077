package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoid201/untoldstory/internal/constants"
	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/service"
)

// TargetPayload names a combatant by side ("player" or "enemy") and slot.
type TargetPayload struct {
	Side string `json:"side"`
	Slot int    `json:"slot"`
}

type ActionRequest struct {
	// Actor is the roster slot of the trainer's acting combatant.
	Actor  int             `json:"actor"`
	Kind   game.ActionKind `json:"kind" binding:"required"`
	MoveID string          `json:"move_id"`
	ItemID string          `json:"item_id"`
	Target *TargetPayload  `json:"target"`
	// Slot is the incoming roster slot of a switch.
	Slot int `json:"slot"`
}

func (r ActionRequest) toAction() (game.Action, bool) {
	a := game.Action{Kind: r.Kind, MoveID: r.MoveID, ItemID: r.ItemID, Slot: r.Slot}
	// Targets default to the first enemy slot.
	a.Target = game.CombatantRef{Side: game.SideEnemy}
	if r.Target != nil {
		switch r.Target.Side {
		case "", "enemy":
			a.Target.Side = game.SideEnemy
		case "player":
			a.Target.Side = game.SidePlayer
		default:
			return game.Action{}, false
		}
		a.Target.Slot = r.Target.Slot
	}
	return a, true
}

// SubmitAction queues an action for one of the trainer's combatants and
// resolves the round when everyone has chosen.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	action, ok := req.toAction()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := service.SubmitAction(c.Request.Context(), h.repo, h.rt, id, trainerID(c), req.Actor, action)
	if err != nil {
		writeError(c, err, constants.ErrFailedStoreAction)
		return
	}
	c.JSON(http.StatusOK, res)
}
