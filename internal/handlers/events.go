package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/services"
	"github.com/huddle-dev/huddle/internal/utils"
)

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

// UpdateEventRequest distinguishes an absent field (nil) from an empty one.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
}

func (h *Handler) ListEvents(ctx *gin.Context, caller *auth.Identity) {
	events, err := h.Catalog.ListAll(ctx.Request.Context(), caller)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

func (h *Handler) GetEvent(ctx *gin.Context, caller *auth.Identity) {
	eventID, err := utils.GetEventID(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	event, err := h.Catalog.GetByID(ctx.Request.Context(), eventID, caller)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "event": event})
}

func (h *Handler) CreateEvent(ctx *gin.Context, caller auth.Identity) {
	var body CreateEventRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	event, err := h.Catalog.Create(ctx.Request.Context(), caller, services.EventInput{
		Title:       body.Title,
		Description: body.Description,
		Date:        body.Date,
		Time:        body.Time,
		Location:    body.Location,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Event created successfully",
		"event":   event,
	})
}

func (h *Handler) UpdateEvent(ctx *gin.Context, caller auth.Identity) {
	eventID, err := utils.GetEventID(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var body UpdateEventRequest

	// An empty body is an empty patch. A malformed one is still checked for
	// ownership first so non-creators always see 403.
	if err := ctx.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		if authErr := h.Catalog.Authorize(ctx.Request.Context(), eventID, caller, "update"); authErr != nil {
			respondError(ctx, authErr)
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	event, err := h.Catalog.Update(ctx.Request.Context(), eventID, caller, services.EventPatch{
		Title:       body.Title,
		Description: body.Description,
		Date:        body.Date,
		Time:        body.Time,
		Location:    body.Location,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	h.Hub.BroadcastRefresh(eventID)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event updated successfully",
		"event":   event,
	})
}

func (h *Handler) DeleteEvent(ctx *gin.Context, caller auth.Identity) {
	eventID, err := utils.GetEventID(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.Catalog.Delete(ctx.Request.Context(), eventID, caller); err != nil {
		respondError(ctx, err)
		return
	}

	h.Hub.BroadcastRefresh(eventID)

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted successfully"})
}
