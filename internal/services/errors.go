package services

import (
	"errors"
	"fmt"

	"github.com/huddle-dev/huddle/internal/types"
	"gorm.io/gorm"
)

// notFoundOr maps gorm.ErrRecordNotFound to a NotFound error carrying message.
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Errorf(types.ErrNotFound, "%s", message)
	}
	return fmt.Errorf("query: %w", err)
}
