package handlers

import (
	"log"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/huddle-dev/huddle/internal/utils"
)

// WatchEvent upgrades to a websocket that receives a refresh notice whenever
// the event or its attendance changes.
func (h *Handler) WatchEvent(ctx *gin.Context) {
	eventID, err := utils.GetEventID(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if _, err := h.Catalog.GetByID(ctx.Request.Context(), eventID, nil); err != nil {
		respondError(ctx, err)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(h.AllowedOrigins, origin)
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.Hub.Serve(eventID, conn)
}
