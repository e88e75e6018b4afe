package authcore

import (
	"time"

	"go.uber.org/zap"

	"github.com/washhub/authcore/jwt"
	"github.com/washhub/authcore/notify"
	"github.com/washhub/authcore/otp"
	"github.com/washhub/authcore/password"
)

// Engine composes the credential signer, session registry, password verifier,
// OTP issuer, and notification dispatcher into the public auth operations.
// It is immutable after [Builder.Build] and safe for concurrent use.
//
// Every operation is request-scoped: the engine keeps no state between calls
// beyond what lives in the caller-supplied [UserStore], performs no internal
// retries, and honors cancellation through the caller's context.
type Engine struct {
	config     Config
	store      UserStore
	dispatcher *notify.Dispatcher
	tokens     *jwt.Manager
	hasher     *password.Hasher
	otpGen     otp.Generator
	metrics    *Metrics
	logger     *zap.Logger
	now        func() time.Time

	// syntheticHash is compared against when ConstantTimeLogin is on and the
	// user is unknown, so both login failure paths cost one bcrypt comparison.
	syntheticHash string
}

// finish records the operation outcome and logs internal failures. The
// returned envelope is what crosses the engine boundary: raw errors stay in
// Result.Err for programmatic callers and are never part of Message.
func (e *Engine) finish(operation string, r Result) Result {
	e.metrics.observe(operation, r.Kind)
	if r.Kind == KindInternal && r.Err != nil {
		e.logger.Error("auth operation failed",
			zap.String("operation", operation),
			zap.Error(r.Err),
		)
	}
	return r
}

// issuePair mints one access+refresh pair and returns the refresh session id
// for registry bookkeeping.
func (e *Engine) issuePair(userID string) (TokenPair, string, error) {
	access, err := e.tokens.IssueAccess(userID)
	if err != nil {
		return TokenPair{}, "", err
	}
	refresh, sessionID, err := e.tokens.IssueRefresh(userID)
	if err != nil {
		return TokenPair{}, "", err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, sessionID, nil
}
