package authcore

import (
	"context"
	"errors"
	"fmt"
)

// Me returns the public profile for userID. Secret fields (password hash,
// session ids, reset code) are never part of the payload.
func (e *Engine) Me(ctx context.Context, userID string) Result {
	const op = "me"

	if userID == "" {
		return e.finish(op, fail(KindValidation, ErrMissingFields, "User ID is required"))
	}

	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return e.finish(op, failure(ErrUserNotFound))
		}
		return e.finish(op, failure(fmt.Errorf("lookup user: %w", err)))
	}

	return e.finish(op, ok(ProfileData{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}, "User information retrieved successfully"))
}
