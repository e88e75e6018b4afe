package authcore

import "errors"

// ErrorKind classifies an operation failure so callers can branch
// programmatically while the serialized envelope stays uniform.
type ErrorKind int

const (
	// KindNone marks a successful result.
	KindNone ErrorKind = iota
	// KindValidation marks malformed or missing input.
	KindValidation
	// KindConflict marks a duplicate-identity registration.
	KindConflict
	// KindUnauthenticated marks bad credentials or a bad, expired, or revoked token.
	KindUnauthenticated
	// KindNotFound marks an unknown user or session target.
	KindNotFound
	// KindInvalidOTP marks a reset code that does not match or has expired.
	KindInvalidOTP
	// KindInternal marks a store, signer, or dispatch failure. The caller-visible
	// message is generic; details are logged inside the engine.
	KindInternal
)

// String returns the stable name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindInvalidOTP:
		return "invalid_or_expired_otp"
	default:
		return "internal"
	}
}

// Result is the uniform envelope returned by every Engine operation.
// Status reports success; Message is always safe to show to an end user.
// Kind and Err carry the programmatic failure classification and are not
// serialized.
type Result struct {
	Status  bool   `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`

	Kind ErrorKind `json:"-"`
	Err  error     `json:"-"`
}

func ok(data any, message string) Result {
	return Result{Status: true, Data: data, Message: message}
}

func fail(kind ErrorKind, err error, message string) Result {
	return Result{Kind: kind, Err: err, Message: message}
}

// classify maps an engine-internal error to its kind and caller-visible
// message. Raw store and crypto errors never reach the caller: anything not
// represented by a sentinel collapses into KindInternal with a generic message.
func classify(err error) (ErrorKind, string) {
	switch {
	case errors.Is(err, ErrMissingFields):
		return KindValidation, err.Error()
	case errors.Is(err, ErrInvalidEmail):
		return KindValidation, "Invalid email format"
	case errors.Is(err, ErrWeakPassword):
		return KindValidation, "Password must be at least 6 characters and contain at least one letter and one number"
	case errors.Is(err, ErrUserExists):
		return KindConflict, "User already exists with this email or username"
	case errors.Is(err, ErrInvalidCredentials):
		return KindUnauthenticated, "Invalid credentials"
	case errors.Is(err, ErrRefreshExpired):
		return KindUnauthenticated, "Refresh token expired"
	case errors.Is(err, ErrRefreshInvalid):
		return KindUnauthenticated, "Invalid refresh token"
	case errors.Is(err, ErrUserNotFound):
		return KindNotFound, "User not found"
	case errors.Is(err, ErrOTPInvalidOrExpired):
		return KindInvalidOTP, "Invalid or expired OTP"
	case errors.Is(err, ErrOTPDeliveryFailed):
		return KindInternal, "Failed to send OTP. Please try again."
	default:
		return KindInternal, "An error occurred while processing your request"
	}
}

func failure(err error) Result {
	kind, msg := classify(err)
	return fail(kind, err, msg)
}
