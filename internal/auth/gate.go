package auth

import "github.com/huddle-dev/huddle/internal/types"

// RequireAuthenticated fails when no identity was resolved for the request.
func RequireAuthenticated(id *Identity) (Identity, error) {
	if id == nil || id.UserID == "" {
		return Identity{}, types.Errorf(types.ErrUnauthenticated, "Not authenticated")
	}
	return *id, nil
}

// RequireCreator fails with ErrForbidden unless the caller authored the resource.
func RequireCreator(creatorID, callerID string, action string) error {
	if creatorID != callerID {
		return types.Errorf(types.ErrForbidden, "Only creator can %s this event", action)
	}
	return nil
}
