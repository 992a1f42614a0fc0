package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huddle-dev/huddle/internal/types"
)

// GetEventID returns the :id path parameter. Anything that is not a UUID
// cannot name an event, so it is reported as not found without a query.
func GetEventID(ctx *gin.Context) (string, error) {
	eventID := ctx.Param("id")

	if _, err := uuid.Parse(eventID); err != nil {
		return "", types.Errorf(types.ErrNotFound, "Event not found")
	}

	return eventID, nil
}
