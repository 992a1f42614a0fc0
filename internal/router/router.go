package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/huddle-dev/huddle/internal/handlers"
	"github.com/huddle-dev/huddle/internal/middleware"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	session := middleware.NewSession(h.Issuer)

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Signup)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", session.Required(h.Me))
			auth.PATCH("/me", session.Required(h.UpdateMe))
			auth.DELETE("/me", session.Required(h.DeleteMe))
		}

		events := api.Group("/events")
		{
			events.GET("", session.Optional(h.ListEvents))
			events.POST("", session.Required(h.CreateEvent))
			events.GET("/:id", session.Optional(h.GetEvent))
			events.PUT("/:id", session.Required(h.UpdateEvent))
			events.DELETE("/:id", session.Required(h.DeleteEvent))
			events.GET("/:id/ws", h.WatchEvent)

			// RSVP
			events.POST("/:id/join", session.Required(h.JoinEvent))
			events.POST("/:id/leave", session.Required(h.LeaveEvent))
		}
	}

	return r
}
