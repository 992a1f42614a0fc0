package types

import "time"

const (
	SessionCookieName = "token"
	SessionTTL        = 7 * 24 * time.Hour

	// DateLayout is the wire format of Event.Date.
	DateLayout = "2006-01-02"
)

// Default allowed origins for development
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}
