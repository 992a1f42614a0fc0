package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/realtime"
	"github.com/huddle-dev/huddle/internal/services"
	"github.com/huddle-dev/huddle/internal/types"
)

// Handler holds every dependency the HTTP layer needs.
type Handler struct {
	Users          *services.Users
	Catalog        *services.Catalog
	Ledger         *services.Ledger
	Issuer         *auth.Issuer
	Hub            *realtime.Hub
	Cookies        auth.CookieOptions
	AllowedOrigins []string
}

// respondError maps the error taxonomy to a status code. Unexpected errors are
// logged and reported as a generic 500.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, types.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrConflict):
		status = http.StatusConflict
	default:
		log.Printf("%s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
	}

	if status != http.StatusInternalServerError {
		message = types.Message(err)
	}

	ctx.JSON(status, gin.H{"success": false, "message": message})
}
