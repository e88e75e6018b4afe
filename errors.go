package authcore

import "errors"

var (
	// ErrMissingFields indicates a request with one or more required fields absent.
	ErrMissingFields = errors.New("required fields missing")
	// ErrInvalidEmail indicates an email address that fails format validation.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword indicates a password that fails the strength policy.
	ErrWeakPassword = errors.New("password policy violation")
	// ErrUserExists indicates a registration conflicting with an existing email or username.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown-user and wrong-password login failures.
	// The two cases are never distinguished to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRefreshInvalid indicates a refresh token that failed signature verification
	// or whose session id is no longer in the user's active set.
	ErrRefreshInvalid = errors.New("invalid refresh token")
	// ErrRefreshExpired indicates a refresh token with a valid signature past its expiry.
	ErrRefreshExpired = errors.New("refresh token expired")
	// ErrUserNotFound indicates an unknown user id or email in a flow that may
	// name the condition (password reset, profile lookup).
	ErrUserNotFound = errors.New("user not found")
	// ErrOTPInvalidOrExpired indicates a reset code that does not match or whose
	// expiry has passed. The two cases are deliberately indistinct.
	ErrOTPInvalidOrExpired = errors.New("invalid or expired otp")
	// ErrOTPDeliveryFailed indicates the configured delivery policy was not met.
	ErrOTPDeliveryFailed = errors.New("otp delivery failed")
	// ErrEngineNotReady indicates use of an Engine that was not built via Builder.Build.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrStoreUnavailable wraps user-store failures before they are mapped to
	// the internal error kind.
	ErrStoreUnavailable = errors.New("user store unavailable")
)
