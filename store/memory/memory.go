// Package memory provides a mutex-guarded in-process [authcore.UserStore].
// It is the reference implementation for tests and single-process embedding;
// deployments that need durability or cross-process atomicity should use
// store/redis or their own backend.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/washhub/authcore"
)

// Store keeps user records in process memory. All mutations run under one
// mutex, which trivially satisfies the atomic set-update contract.
type Store struct {
	mu           sync.RWMutex
	byID         map[string]*authcore.UserRecord
	idByEmail    map[string]string
	idByUsername map[string]string
	clock        func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		byID:         make(map[string]*authcore.UserRecord),
		idByEmail:    make(map[string]string),
		idByUsername: make(map[string]string),
		clock:        time.Now,
	}
}

// WithClock overrides record timestamps. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.clock = now
	return s
}

// clone returns a copy the caller may hold after the lock is released. The
// engine must never mutate a shared in-memory record across requests.
func clone(u *authcore.UserRecord) *authcore.UserRecord {
	out := *u
	out.RefreshSessionIDs = append([]string(nil), u.RefreshSessionIDs...)
	if u.ResetOTPExpiresAt != nil {
		t := *u.ResetOTPExpiresAt
		out.ResetOTPExpiresAt = &t
	}
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		out.LastLoginAt = &t
	}
	return &out
}

func (s *Store) getLocked(userID string) (*authcore.UserRecord, error) {
	u, ok := s.byID[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, authcore.ErrUserNotFound)
	}
	return u, nil
}

// GetUserByIdentifier resolves identifier against both unique keys.
func (s *Store) GetUserByIdentifier(ctx context.Context, identifier string) (*authcore.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.idByEmail[strings.ToLower(identifier)]; ok {
		return clone(s.byID[id]), nil
	}
	if id, ok := s.idByUsername[identifier]; ok {
		return clone(s.byID[id]), nil
	}
	return nil, authcore.ErrUserNotFound
}

// GetUserByEmail resolves a user by its case-normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*authcore.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.idByEmail[strings.ToLower(email)]
	if !ok {
		return nil, authcore.ErrUserNotFound
	}
	return clone(s.byID[id]), nil
}

// GetUserByID resolves a user by its opaque id.
func (s *Store) GetUserByID(ctx context.Context, userID string) (*authcore.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, err := s.getLocked(userID)
	if err != nil {
		return nil, err
	}
	return clone(u), nil
}

// CreateUser inserts a record with an empty session set. Insert and uniqueness
// check happen under the same lock, so duplicate identities cannot race past
// each other.
func (s *Store) CreateUser(ctx context.Context, input authcore.CreateUserInput) (*authcore.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(input.Email)
	if _, ok := s.idByEmail[email]; ok {
		return nil, authcore.ErrUserExists
	}
	if _, ok := s.idByUsername[input.Username]; ok {
		return nil, authcore.ErrUserExists
	}

	u := &authcore.UserRecord{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: input.PasswordHash,
		CreatedAt:    s.clock(),
	}
	s.byID[u.ID] = u
	s.idByEmail[email] = u.ID
	s.idByUsername[u.Username] = u.ID
	return clone(u), nil
}

// AddSession appends sessionID to the user's active set.
func (s *Store) AddSession(ctx context.Context, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.getLocked(userID)
	if err != nil {
		return err
	}
	u.AddSessionID(sessionID)
	return nil
}

// RotateSession atomically swaps oldID for newID and reports whether oldID was
// present. When it was not, nothing is added.
func (s *Store) RotateSession(ctx context.Context, userID, oldID, newID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.getLocked(userID)
	if err != nil {
		return false, err
	}
	return u.RotateSessionID(oldID, newID), nil
}

// RemoveSession removes one session id; absent ids are a no-op.
func (s *Store) RemoveSession(ctx context.Context, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.getLocked(userID)
	if err != nil {
		return err
	}
	u.RemoveSessionID(sessionID)
	return nil
}

// ClearSessions revokes every session for the user.
func (s *Store) ClearSessions(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.getLocked(userID)
	if err != nil {
		return err
	}
	u.ClearSessionIDs()
	return nil
}

// SetResetOTP stores the reset code and its expiry together.
func (s *Store) SetResetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.getLocked(userID)
	if err != nil {
		return err
	}
	u.ResetOTP = code
	u.ResetOTPExpiresAt = &expiresAt
	return nil
}

// ResetPassword replaces the hash and clears the reset code in one update.
func (s *Store) ResetPassword(ctx context.Context, userID, newHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.getLocked(userID)
	if err != nil {
		return err
	}
	u.PasswordHash = newHash
	u.ResetOTP = ""
	u.ResetOTPExpiresAt = nil
	return nil
}

// TouchLastLogin records a successful login time.
func (s *Store) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.getLocked(userID)
	if err != nil {
		return err
	}
	u.LastLoginAt = &at
	return nil
}

// SetPhone attaches an SMS destination to an existing record.
func (s *Store) SetPhone(ctx context.Context, userID, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.getLocked(userID)
	if err != nil {
		return err
	}
	u.Phone = phone
	return nil
}

var _ authcore.UserStore = (*Store)(nil)
