package authcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/washhub/authcore/jwt"
)

// Refresh verifies a refresh token and rotates its session: the old session
// id leaves the active set and a new one takes its place, atomically at the
// store. Refresh tokens are single-use; replaying an already-rotated token
// fails because its session id no longer exists in the set. The same failure
// covers logout-then-reuse and theft-after-rotation.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) Result {
	const op = "refresh"

	claims, err := e.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return e.finish(op, failure(ErrRefreshExpired))
		}
		return e.finish(op, failure(ErrRefreshInvalid))
	}

	user, err := e.store.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return e.finish(op, failure(ErrRefreshInvalid))
		}
		return e.finish(op, failure(fmt.Errorf("lookup user: %w", err)))
	}

	pair, newSessionID, err := e.issuePair(user.ID)
	if err != nil {
		return e.finish(op, failure(fmt.Errorf("issue tokens: %w", err)))
	}

	// One atomic unit: remove old id, add new id, report prior presence. When
	// the old id was already gone the store adds nothing, the freshly issued
	// pair is discarded, and the request is rejected.
	rotated, err := e.store.RotateSession(ctx, user.ID, claims.SessionID, newSessionID)
	if err != nil {
		return e.finish(op, failure(fmt.Errorf("rotate session: %w", err)))
	}
	if !rotated {
		return e.finish(op, failure(ErrRefreshInvalid))
	}

	return e.finish(op, ok(pair, "Token refreshed successfully"))
}

// Logout revokes the one session named by refreshToken. Expiry and revocation
// are independent axes: an expired-by-time token still identifies its own
// session, so only an outright signature failure is rejected. Revoking a
// session that is already gone still succeeds.
func (e *Engine) Logout(ctx context.Context, userID, refreshToken string) Result {
	const op = "logout"

	claims, err := e.tokens.ExtractRefresh(refreshToken)
	if err != nil {
		return e.finish(op, failure(ErrRefreshInvalid))
	}

	if err := e.store.RemoveSession(ctx, userID, claims.SessionID); err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return e.finish(op, failure(fmt.Errorf("remove session: %w", err)))
		}
	}

	return e.finish(op, ok(nil, "Logout successful"))
}

// LogoutAll clears every active session for the user unconditionally.
func (e *Engine) LogoutAll(ctx context.Context, userID string) Result {
	const op = "logout_all"

	if err := e.store.ClearSessions(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return e.finish(op, failure(ErrUserNotFound))
		}
		return e.finish(op, failure(fmt.Errorf("clear sessions: %w", err)))
	}

	return e.finish(op, ok(nil, "All sessions logged out successfully"))
}
