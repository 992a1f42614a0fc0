package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/utils"
)

func (h *Handler) JoinEvent(ctx *gin.Context, caller auth.Identity) {
	eventID, err := utils.GetEventID(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if _, err := h.Ledger.Join(ctx.Request.Context(), caller, eventID); err != nil {
		respondError(ctx, err)
		return
	}

	h.Hub.BroadcastRefresh(eventID)

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "message": "Joined event successfully"})
}

func (h *Handler) LeaveEvent(ctx *gin.Context, caller auth.Identity) {
	eventID, err := utils.GetEventID(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.Ledger.Leave(ctx.Request.Context(), caller, eventID); err != nil {
		respondError(ctx, err)
		return
	}

	h.Hub.BroadcastRefresh(eventID)

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Left event successfully"})
}
