package jwt

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid indicates a token whose signature or shape is wrong.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired indicates a token with a valid signature past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

const sessionIDBytes = 16

// Config configures a [Manager]. Both secrets are required and must differ;
// TTLs must be positive.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// TimeFunc overrides the clock for issuance and expiry checks. Nil means
	// time.Now. Intended for tests.
	TimeFunc func() time.Time
}

// AccessClaims are the claims of an access token: subject = user id.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// RefreshClaims are the claims of a refresh token: subject = user id plus the
// session id tracked server-side for revocation.
type RefreshClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager signs and verifies both token kinds. It is immutable after
// construction and safe for concurrent use.
type Manager struct {
	config Config
}

// NewManager validates cfg and returns a ready Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("both signing secrets are required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.TimeFunc == nil {
		cfg.TimeFunc = time.Now
	}
	return &Manager{config: cfg}, nil
}

func (m *Manager) now() time.Time {
	return m.config.TimeFunc()
}

// IssueAccess signs a short-lived access token for userID.
func (m *Manager) IssueAccess(userID string) (string, error) {
	now := m.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.AccessSecret)
}

// IssueRefresh signs a long-lived refresh token for userID carrying a fresh
// random session id, and returns the raw session id for registry bookkeeping.
// The signed token itself is never stored server-side.
func (m *Manager) IssueRefresh(userID string) (token, sessionID string, err error) {
	sessionID, err = NewSessionID()
	if err != nil {
		return "", "", err
	}

	now := m.now()
	claims := RefreshClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.RefreshTTL)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.RefreshSecret)
	if err != nil {
		return "", "", err
	}
	return token, sessionID, nil
}

// VerifyRefresh checks signature and expiry together and returns the claims.
// Expired-but-authentic tokens fail with [ErrTokenExpired]; everything else
// fails with [ErrTokenInvalid].
func (m *Manager) VerifyRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	_, err := jwt.ParseWithClaims(token, claims, m.refreshKeyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.config.TimeFunc),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil:
		if claims.Subject == "" || claims.SessionID == "" {
			return nil, ErrTokenInvalid
		}
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, ErrTokenInvalid
	}
}

// ExtractRefresh verifies the signature only, ignoring expiry, and returns the
// claims. Logout uses this to identify and revoke the session of a token that
// has already expired by time.
func (m *Manager) ExtractRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	_, err := jwt.ParseWithClaims(token, claims, m.refreshKeyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (m *Manager) refreshKeyFunc(t *jwt.Token) (any, error) {
	return m.config.RefreshSecret, nil
}

// NewSessionID returns a fresh random 128-bit session identifier, hex-encoded.
func NewSessionID() (string, error) {
	var raw [sessionIDBytes]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw[:]), nil
}
