package authcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/washhub/authcore/otp"
)

// ForgotPassword issues a one-time reset code for the account behind email,
// stores it with its expiry, and dispatches it over the configured channels.
// The success payload carries the user id: that id, not the email, is the
// correlation handle for [Engine.VerifyOTPAndReset], so a subsequently changed
// address cannot break the second step.
func (e *Engine) ForgotPassword(ctx context.Context, email string) Result {
	const op = "forgot_password"

	user, err := e.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return e.finish(op, fail(KindNotFound, ErrUserNotFound, "User not found with this email"))
		}
		return e.finish(op, failure(fmt.Errorf("lookup user: %w", err)))
	}

	code, err := e.otpGen.Generate(e.config.OTP.Digits)
	if err != nil {
		return e.finish(op, failure(fmt.Errorf("generate otp: %w", err)))
	}

	expiresAt := e.now().Add(e.config.OTP.TTL)
	if err := e.store.SetResetOTP(ctx, user.ID, code, expiresAt); err != nil {
		return e.finish(op, failure(fmt.Errorf("store otp: %w", err)))
	}

	if err := e.dispatcher.DeliverOTP(ctx, user.Email, user.Phone, code, e.config.OTP.TTL); err != nil {
		return e.finish(op, failure(ErrOTPDeliveryFailed))
	}

	return e.finish(op, ok(ForgotPasswordData{UserID: user.ID}, "OTP sent successfully"))
}

// VerifyOTPAndReset checks the supplied reset code and, when it matches and is
// still live, replaces the password hash. The hash swap and the clearing of
// the code and its expiry happen in one store update, so a consumed code can
// never be replayed. Existing sessions stay active across a reset.
func (e *Engine) VerifyOTPAndReset(ctx context.Context, input VerifyOTPInput) Result {
	const op = "verify_otp_and_reset"

	if input.UserID == "" || input.OTP == "" || input.NewPassword == "" {
		return e.finish(op, fail(KindValidation, ErrMissingFields, "User ID, OTP, and new password are required"))
	}

	user, err := e.store.GetUserByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return e.finish(op, failure(ErrUserNotFound))
		}
		return e.finish(op, failure(fmt.Errorf("lookup user: %w", err)))
	}

	if !otp.Matches(user.ResetOTP, input.OTP, user.ResetOTPExpiresAt, e.now()) {
		return e.finish(op, failure(ErrOTPInvalidOrExpired))
	}

	hash, err := e.hasher.Hash(input.NewPassword)
	if err != nil {
		return e.finish(op, failure(fmt.Errorf("hash password: %w", err)))
	}

	if err := e.store.ResetPassword(ctx, user.ID, hash); err != nil {
		return e.finish(op, failure(fmt.Errorf("reset password: %w", err)))
	}

	return e.finish(op, ok(nil, "Password has been reset successfully"))
}
