package authcore

import (
	"context"
	"errors"
	"fmt"
)

// Register creates a new identity and immediately opens its first session.
// Validation failures and identity conflicts come back in the envelope; on
// success Data carries the user's public identity plus one access+refresh
// pair.
func (e *Engine) Register(ctx context.Context, input RegisterInput) Result {
	const op = "register"

	username := normalizeUsername(input.Username)
	email := normalizeEmail(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return e.finish(op, fail(KindValidation, ErrMissingFields, "Username, email and password are required"))
	}
	if !isValidEmail(email) {
		return e.finish(op, failure(ErrInvalidEmail))
	}
	if !isStrongPassword(input.Password) {
		return e.finish(op, failure(ErrWeakPassword))
	}

	hash, err := e.hasher.Hash(input.Password)
	if err != nil {
		return e.finish(op, failure(fmt.Errorf("hash password: %w", err)))
	}

	// Uniqueness is enforced by the store at insert time, so two concurrent
	// registrations of the same identity cannot both pass a pre-check.
	user, err := e.store.CreateUser(ctx, CreateUserInput{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			return e.finish(op, failure(ErrUserExists))
		}
		return e.finish(op, failure(fmt.Errorf("create user: %w", err)))
	}

	pair, sessionID, err := e.issuePair(user.ID)
	if err != nil {
		return e.finish(op, failure(fmt.Errorf("issue tokens: %w", err)))
	}
	if err := e.store.AddSession(ctx, user.ID, sessionID); err != nil {
		return e.finish(op, failure(fmt.Errorf("register session: %w", err)))
	}

	return e.finish(op, ok(AuthData{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User registered successfully"))
}

// Login authenticates by email and password and opens an additional session.
// Sessions are additive across devices: logging in never revokes prior
// sessions. Unknown user and wrong password produce the same envelope, so a
// caller cannot enumerate accounts from the response body.
func (e *Engine) Login(ctx context.Context, input LoginInput) Result {
	const op = "login"

	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return e.finish(op, fail(KindValidation, ErrMissingFields, "Email and password are required"))
	}
	if !isValidEmail(email) {
		return e.finish(op, failure(ErrInvalidEmail))
	}

	user, err := e.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			if e.syntheticHash != "" {
				// Burn one comparison so the unknown-user path is not
				// observably faster than a wrong password.
				e.hasher.Verify(input.Password, e.syntheticHash)
			}
			return e.finish(op, failure(ErrInvalidCredentials))
		}
		return e.finish(op, failure(fmt.Errorf("lookup user: %w", err)))
	}

	if !e.hasher.Verify(input.Password, user.PasswordHash) {
		return e.finish(op, failure(ErrInvalidCredentials))
	}

	pair, sessionID, err := e.issuePair(user.ID)
	if err != nil {
		return e.finish(op, failure(fmt.Errorf("issue tokens: %w", err)))
	}
	if err := e.store.AddSession(ctx, user.ID, sessionID); err != nil {
		return e.finish(op, failure(fmt.Errorf("register session: %w", err)))
	}
	if err := e.store.TouchLastLogin(ctx, user.ID, e.now()); err != nil {
		return e.finish(op, failure(fmt.Errorf("update last login: %w", err)))
	}

	return e.finish(op, ok(AuthData{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Login successful"))
}
