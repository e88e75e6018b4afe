package authcore_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/washhub/authcore"
	"github.com/washhub/authcore/otp"
	"github.com/washhub/authcore/store/memory"
)

const testOTPCode = "482913"

type sentEmail struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type sentSMS struct {
	To   string
	Body string
}

// fakeSender records outbound messages and can be told to fail per channel.
type fakeSender struct {
	mu        sync.Mutex
	emails    []sentEmail
	smses     []sentSMS
	failEmail bool
	failSMS   bool
}

type sendFailure struct{ channel string }

func (e sendFailure) Error() string { return e.channel + " send failed" }

func (f *fakeSender) SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEmail {
		return sendFailure{channel: "email"}
	}
	f.emails = append(f.emails, sentEmail{To: to, Subject: subject, HTML: htmlBody, Text: textBody})
	return nil
}

func (f *fakeSender) SendSMS(ctx context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSMS {
		return sendFailure{channel: "sms"}
	}
	f.smses = append(f.smses, sentSMS{To: to, Body: body})
	return nil
}

func (f *fakeSender) emailCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.emails)
}

// testClock is a hand-advanced clock shared by the engine and the token
// manager, so expiry windows can elapse without sleeping.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testRig struct {
	engine *authcore.Engine
	store  *memory.Store
	sender *fakeSender
	clock  *testClock
}

func testConfig() authcore.Config {
	return authcore.Config{
		JWT: authcore.JWTConfig{
			AccessSecret:  []byte("test-access-secret-0123456789ab"),
			RefreshSecret: []byte("test-refresh-secret-0123456789a"),
		},
		// Cost 4 keeps the suite fast; production default is 10.
		Password: authcore.PasswordConfig{Cost: 4},
	}
}

func newTestRig(t *testing.T, mutate ...func(*authcore.Config)) *testRig {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	clock := newTestClock()
	sender := &fakeSender{}
	store := memory.New().WithClock(clock.Now)

	engine, err := authcore.New().
		WithConfig(cfg).
		WithStore(store).
		WithSender(sender).
		WithClock(clock.Now).
		WithOTPGenerator(otp.Fixed(testOTPCode)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	return &testRig{engine: engine, store: store, sender: sender, clock: clock}
}

func (r *testRig) register(t *testing.T, username, email, password string) authcore.AuthData {
	t.Helper()

	res := r.engine.Register(context.Background(), authcore.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if !res.Status {
		t.Fatalf("Register(%q) failed: kind=%v message=%q", email, res.Kind, res.Message)
	}
	data, okCast := res.Data.(authcore.AuthData)
	if !okCast {
		t.Fatalf("Register data has type %T, want AuthData", res.Data)
	}
	return data
}

func expectFailure(t *testing.T, res authcore.Result, kind authcore.ErrorKind) {
	t.Helper()
	if res.Status {
		t.Fatalf("expected failure, got success: %+v", res)
	}
	if res.Kind != kind {
		t.Fatalf("failure kind = %v (%q), want %v", res.Kind, res.Message, kind)
	}
	if res.Data != nil {
		t.Fatalf("failure carried data: %+v", res.Data)
	}
}

func assertContains(t *testing.T, haystack, needle, what string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("%s does not contain %q:\n%s", what, needle, haystack)
	}
}
