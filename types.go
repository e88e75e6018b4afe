package authcore

import (
	"context"
	"time"
)

// UserRecord is the identity record owned by the external user store.
// The engine reads and mutates it only through [UserStore]; it never keeps a
// record across requests.
//
// RefreshSessionIDs is the sole authority for refresh-token validity: a token's
// signature proves authenticity, membership of its session id proves it has not
// been revoked or rotated. Insertion order is session creation order and the
// set contains no duplicates.
//
// ResetOTP and ResetOTPExpiresAt are set and cleared together. A non-empty
// ResetOTP with an expiry in the past is treated as absent.
type UserRecord struct {
	ID                string
	Username          string
	Email             string
	Phone             string
	PasswordHash      string
	RefreshSessionIDs []string
	ResetOTP          string
	ResetOTPExpiresAt *time.Time
	LastLoginAt       *time.Time
	CreatedAt         time.Time
}

// CreateUserInput is the input for [UserStore.CreateUser]. Email is expected
// to arrive case-normalized.
type CreateUserInput struct {
	Username     string
	Email        string
	Phone        string
	PasswordHash string
}

// UserStore is the document-store contract callers implement to integrate
// authcore with their user database. Mutating methods must be atomic at the
// store level: two concurrent RotateSession calls for the same user must not
// lose either update, which rules out read-modify-write on a fetched copy.
//
// Lookup methods return [ErrUserNotFound] (possibly wrapped) when no record
// matches. CreateUser returns [ErrUserExists] on an email or username clash.
type UserStore interface {
	// GetUserByIdentifier resolves a user by email or username.
	GetUserByIdentifier(ctx context.Context, identifier string) (*UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*UserRecord, error)
	GetUserByID(ctx context.Context, id string) (*UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*UserRecord, error)

	// AddSession appends sessionID to the user's active set.
	AddSession(ctx context.Context, userID, sessionID string) error
	// RotateSession atomically removes oldID and, only when oldID was present,
	// appends newID. It reports whether oldID was present before removal.
	// When oldID is absent the call still succeeds (idempotent removal) but
	// must not add newID, so a rejected refresh leaves no stray session.
	RotateSession(ctx context.Context, userID, oldID, newID string) (bool, error)
	// RemoveSession removes one session id; removing an absent id is not an error.
	RemoveSession(ctx context.Context, userID, sessionID string) error
	// ClearSessions empties the active set.
	ClearSessions(ctx context.Context, userID string) error

	// SetResetOTP stores the reset code and its expiry as one update.
	SetResetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error
	// ResetPassword replaces the password hash and clears the reset code and
	// its expiry in the same atomic update, so a consumed OTP cannot replay.
	ResetPassword(ctx context.Context, userID, newHash string) error

	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

// TokenPair holds one issued access+refresh credential pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthData is the success payload of Register and Login.
type AuthData struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordData is the success payload of ForgotPassword. UserID is the
// correlation handle for VerifyOTPAndReset; the email is deliberately not the
// handle, so a changed address cannot break the second step.
type ForgotPasswordData struct {
	UserID string `json:"userId"`
}

// ProfileData is the success payload of Me. Secret fields (password hash,
// session ids, reset code) are never included.
type ProfileData struct {
	UserID      string     `json:"userId"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// RegisterInput is the request payload for [Engine.Register].
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput is the request payload for [Engine.Login].
type LoginInput struct {
	Email    string
	Password string
}

// VerifyOTPInput is the request payload for [Engine.VerifyOTPAndReset].
type VerifyOTPInput struct {
	UserID      string
	OTP         string
	NewPassword string
}
