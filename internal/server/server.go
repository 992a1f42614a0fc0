package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/config"
	"github.com/huddle-dev/huddle/internal/handlers"
	"github.com/huddle-dev/huddle/internal/realtime"
	"github.com/huddle-dev/huddle/internal/router"
	"github.com/huddle-dev/huddle/internal/services"
	"gorm.io/gorm"
)

// NewHandler wires the services around a single store handle.
func NewHandler(cfg config.Config, gdb *gorm.DB) (*handlers.Handler, error) {
	issuer, err := auth.NewIssuer(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &handlers.Handler{
		Users:   services.NewUsers(gdb),
		Catalog: services.NewCatalog(gdb),
		Ledger:  services.NewLedger(gdb),
		Issuer:  issuer,
		Hub:     realtime.NewHub(),
		Cookies: auth.CookieOptions{
			Domain: cfg.CookieDomain,
			Secure: cfg.CookieSecure(),
		},
		AllowedOrigins: cfg.AllowedOrigins(),
	}, nil
}

func New(cfg config.Config, gdb *gorm.DB) (*http.Server, error) {
	h, err := NewHandler(cfg, gdb)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		log.Printf("Server is running on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}
