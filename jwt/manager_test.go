package jwt

import (
	"errors"
	"testing"
	"time"
)

func newTestManager(t *testing.T, timeFunc func() time.Time) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		AccessSecret:  []byte("access-secret-for-tests-0123456"),
		RefreshSecret: []byte("refresh-secret-for-tests-012345"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		TimeFunc:      timeFunc,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManagerValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing access secret", Config{RefreshSecret: []byte("r"), AccessTTL: time.Minute, RefreshTTL: time.Hour}},
		{"missing refresh secret", Config{AccessSecret: []byte("a"), AccessTTL: time.Minute, RefreshTTL: time.Hour}},
		{"zero access ttl", Config{AccessSecret: []byte("a"), RefreshSecret: []byte("r"), RefreshTTL: time.Hour}},
		{"zero refresh ttl", Config{AccessSecret: []byte("a"), RefreshSecret: []byte("r"), AccessTTL: time.Minute}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewManager(tc.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestIssueAndVerifyRefresh(t *testing.T) {
	m := newTestManager(t, nil)

	token, sessionID, err := m.IssueRefresh("user-1")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}
	if len(sessionID) != 32 {
		t.Fatalf("session id length = %d, want 32 hex chars", len(sessionID))
	}

	claims, err := m.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("VerifyRefresh failed: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("subject = %q", claims.Subject)
	}
	if claims.SessionID != sessionID {
		t.Fatalf("session id mismatch: %q vs %q", claims.SessionID, sessionID)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	m := newTestManager(t, nil)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		_, sid, err := m.IssueRefresh("user-1")
		if err != nil {
			t.Fatalf("IssueRefresh failed: %v", err)
		}
		if seen[sid] {
			t.Fatalf("duplicate session id %q", sid)
		}
		seen[sid] = true
	}
}

func TestVerifyRefreshRejectsForgery(t *testing.T) {
	m := newTestManager(t, nil)
	other := newTestManager(t, nil)
	other.config.RefreshSecret = []byte("a-different-refresh-secret-0123")

	token, _, err := other.IssueRefresh("user-1")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	if _, err := m.VerifyRefresh(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
	if _, err := m.VerifyRefresh("garbage"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}

	// The access secret must not verify refresh tokens.
	access, err := m.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	if _, err := m.VerifyRefresh(access); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestVerifyRefreshDistinguishesExpiry(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, func() time.Time { return current })

	token, _, err := m.IssueRefresh("user-1")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	current = current.Add(7*24*time.Hour + time.Minute)

	if _, err := m.VerifyRefresh(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestExtractRefreshIgnoresExpiry(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, func() time.Time { return current })

	token, sessionID, err := m.IssueRefresh("user-1")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	current = current.Add(30 * 24 * time.Hour)

	claims, err := m.ExtractRefresh(token)
	if err != nil {
		t.Fatalf("ExtractRefresh on expired token failed: %v", err)
	}
	if claims.SessionID != sessionID || claims.Subject != "user-1" {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	// Signature failures are still rejected.
	if _, err := m.ExtractRefresh(token + "x"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}
