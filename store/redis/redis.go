// Package redis provides a Redis-backed [authcore.UserStore]. Every mutation
// of the session-id set and the OTP fields runs as one Lua script, so two
// concurrent refresh, login, or logout calls for the same user cannot lose
// updates: there is no read-modify-write on a fetched copy anywhere in this
// package.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/washhub/authcore"
)

func newUserID() string { return uuid.NewString() }

// ErrRedisUnavailable wraps transport-level failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

const (
	statusUserMissing int64 = -1
	statusAbsent      int64 = 0
	statusApplied     int64 = 1
)

const createUserScript = `
if redis.call("EXISTS", KEYS[1]) == 1 or redis.call("EXISTS", KEYS[2]) == 1 then
  return 0
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[1])
redis.call("HSET", KEYS[3],
  "username", ARGV[2],
  "email", ARGV[3],
  "phone", ARGV[4],
  "password_hash", ARGV[5],
  "created_at", ARGV[6])
return 1
`

const addSessionScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
redis.call("LREM", KEYS[2], 0, ARGV[1])
redis.call("RPUSH", KEYS[2], ARGV[1])
return 1
`

const rotateSessionScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
local removed = redis.call("LREM", KEYS[2], 0, ARGV[1])
if removed == 0 then
  return 0
end
redis.call("RPUSH", KEYS[2], ARGV[2])
return 1
`

const removeSessionScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
redis.call("LREM", KEYS[2], 0, ARGV[1])
return 1
`

const clearSessionsScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
redis.call("DEL", KEYS[2])
return 1
`

const setResetOTPScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
redis.call("HSET", KEYS[1], "reset_otp", ARGV[1], "reset_otp_exp", ARGV[2])
return 1
`

const resetPasswordScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
redis.call("HSET", KEYS[1], "password_hash", ARGV[1])
redis.call("HDEL", KEYS[1], "reset_otp", "reset_otp_exp")
return 1
`

const touchLastLoginScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
redis.call("HSET", KEYS[1], "last_login", ARGV[1])
return 1
`

var (
	createUserLua     = redis.NewScript(createUserScript)
	addSessionLua     = redis.NewScript(addSessionScript)
	rotateSessionLua  = redis.NewScript(rotateSessionScript)
	removeSessionLua  = redis.NewScript(removeSessionScript)
	clearSessionsLua  = redis.NewScript(clearSessionsScript)
	setResetOTPLua    = redis.NewScript(setResetOTPScript)
	resetPasswordLua  = redis.NewScript(resetPasswordScript)
	touchLastLoginLua = redis.NewScript(touchLastLoginScript)
)

// Store is a Redis-backed user store. IDGen mints new user ids and defaults
// to random UUIDs.
type Store struct {
	client *redis.Client
	prefix string
	idGen  func() string
}

// New returns a Store using prefix for all keys; an empty prefix means "ac".
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "ac"
	}
	return &Store{
		client: client,
		prefix: prefix,
		idGen:  newUserID,
	}
}

func (s *Store) userKey(id string) string     { return s.prefix + ":user:" + id }
func (s *Store) sessionsKey(id string) string { return s.prefix + ":sess:" + id }
func (s *Store) emailKey(email string) string { return s.prefix + ":email:" + email }
func (s *Store) usernameKey(u string) string  { return s.prefix + ":uname:" + u }

// GetUserByIdentifier resolves identifier against the email index first, then
// the username index.
func (s *Store) GetUserByIdentifier(ctx context.Context, identifier string) (*authcore.UserRecord, error) {
	id, err := s.client.Get(ctx, s.emailKey(identifier)).Result()
	if errors.Is(err, redis.Nil) {
		id, err = s.client.Get(ctx, s.usernameKey(identifier)).Result()
	}
	if errors.Is(err, redis.Nil) {
		return nil, authcore.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return s.GetUserByID(ctx, id)
}

// GetUserByEmail resolves a user through the email index.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*authcore.UserRecord, error) {
	id, err := s.client.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, authcore.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return s.GetUserByID(ctx, id)
}

// GetUserByID loads the record hash and its session list.
func (s *Store) GetUserByID(ctx context.Context, userID string) (*authcore.UserRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.userKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, authcore.ErrUserNotFound
	}

	sessions, err := s.client.LRange(ctx, s.sessionsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	u := &authcore.UserRecord{
		ID:                userID,
		Username:          fields["username"],
		Email:             fields["email"],
		Phone:             fields["phone"],
		PasswordHash:      fields["password_hash"],
		RefreshSessionIDs: sessions,
		ResetOTP:          fields["reset_otp"],
		ResetOTPExpiresAt: parseTime(fields["reset_otp_exp"]),
		LastLoginAt:       parseTime(fields["last_login"]),
	}
	if created := parseTime(fields["created_at"]); created != nil {
		u.CreatedAt = *created
	}
	return u, nil
}

// CreateUser inserts the record and both identity indexes in one script, so a
// duplicate email or username can never slip in between check and insert.
func (s *Store) CreateUser(ctx context.Context, input authcore.CreateUserInput) (*authcore.UserRecord, error) {
	id := s.idGen()
	now := time.Now()

	res, err := createUserLua.Run(ctx, s.client,
		[]string{s.emailKey(input.Email), s.usernameKey(input.Username), s.userKey(id)},
		id, input.Username, input.Email, input.Phone, input.PasswordHash, formatTime(now),
	).Int64()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if res == statusAbsent {
		return nil, authcore.ErrUserExists
	}

	return &authcore.UserRecord{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: input.PasswordHash,
		CreatedAt:    now,
	}, nil
}

func (s *Store) runUserScript(ctx context.Context, script *redis.Script, userID string, keys []string, args ...any) (int64, error) {
	res, err := script.Run(ctx, s.client, keys, args...).Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if res == statusUserMissing {
		return res, fmt.Errorf("user %s: %w", userID, authcore.ErrUserNotFound)
	}
	return res, nil
}

// AddSession appends sessionID to the user's session list.
func (s *Store) AddSession(ctx context.Context, userID, sessionID string) error {
	_, err := s.runUserScript(ctx, addSessionLua, userID,
		[]string{s.userKey(userID), s.sessionsKey(userID)}, sessionID)
	return err
}

// RotateSession atomically swaps oldID for newID. It reports whether oldID
// was present; when it was not, newID is not added.
func (s *Store) RotateSession(ctx context.Context, userID, oldID, newID string) (bool, error) {
	res, err := s.runUserScript(ctx, rotateSessionLua, userID,
		[]string{s.userKey(userID), s.sessionsKey(userID)}, oldID, newID)
	if err != nil {
		return false, err
	}
	return res == statusApplied, nil
}

// RemoveSession removes one session id; absent ids are a no-op.
func (s *Store) RemoveSession(ctx context.Context, userID, sessionID string) error {
	_, err := s.runUserScript(ctx, removeSessionLua, userID,
		[]string{s.userKey(userID), s.sessionsKey(userID)}, sessionID)
	return err
}

// ClearSessions drops the whole session list.
func (s *Store) ClearSessions(ctx context.Context, userID string) error {
	_, err := s.runUserScript(ctx, clearSessionsLua, userID,
		[]string{s.userKey(userID), s.sessionsKey(userID)})
	return err
}

// SetResetOTP writes the code and its expiry in one script.
func (s *Store) SetResetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	_, err := s.runUserScript(ctx, setResetOTPLua, userID,
		[]string{s.userKey(userID)}, code, formatTime(expiresAt))
	return err
}

// ResetPassword swaps the hash and clears the OTP fields in one script.
func (s *Store) ResetPassword(ctx context.Context, userID, newHash string) error {
	_, err := s.runUserScript(ctx, resetPasswordLua, userID,
		[]string{s.userKey(userID)}, newHash)
	return err
}

// TouchLastLogin records a successful login time.
func (s *Store) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := s.runUserScript(ctx, touchLastLoginLua, userID,
		[]string{s.userKey(userID)}, formatTime(at))
	return err
}

func formatTime(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	ns, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(0, ns)
	return &t
}

var _ authcore.UserStore = (*Store)(nil)
