package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/types"
)

// AuthedHandler receives the verified caller as an explicit argument.
type AuthedHandler func(ctx *gin.Context, caller auth.Identity)

// OptionalHandler receives the caller, or nil for anonymous requests.
type OptionalHandler func(ctx *gin.Context, caller *auth.Identity)

// Session resolves the caller from the session cookie and hands it to the
// wrapped handler. Nothing is stored on the gin context.
type Session struct {
	issuer *auth.Issuer
}

func NewSession(issuer *auth.Issuer) *Session {
	return &Session{issuer: issuer}
}

func (s *Session) Required(h AuthedHandler) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, _ := ctx.Cookie(types.SessionCookieName)

		caller, err := auth.RequireAuthenticated(s.issuer.VerifyOptional(token))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": types.Message(err)})
			return
		}

		h(ctx, caller)
	}
}

func (s *Session) Optional(h OptionalHandler) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, _ := ctx.Cookie(types.SessionCookieName)
		h(ctx, s.issuer.VerifyOptional(token))
	}
}
