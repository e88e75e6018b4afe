package authcore_test

import (
	"context"
	"testing"

	"github.com/washhub/authcore"
)

// TestAccountLifecycle walks one account through the full journey: register,
// failed login, forgot password, failed and successful OTP reset, and logins
// against the old and new passwords.
func TestAccountLifecycle(t *testing.T) {
	rig := newTestRig(t)
	ctx := context.Background()

	reg := rig.engine.Register(ctx, authcore.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass123",
	})
	if !reg.Status {
		t.Fatalf("register: %q", reg.Message)
	}
	auth := reg.Data.(authcore.AuthData)
	if auth.AccessToken == "" || auth.RefreshToken == "" {
		t.Fatal("register returned no token pair")
	}

	badLogin := rig.engine.Login(ctx, authcore.LoginInput{
		Email: "alice@example.com", Password: "wrongpass1",
	})
	expectFailure(t, badLogin, authcore.KindUnauthenticated)
	if badLogin.Message != "Invalid credentials" {
		t.Fatalf("credential failure message leaks detail: %q", badLogin.Message)
	}

	forgot := rig.engine.ForgotPassword(ctx, "alice@example.com")
	if !forgot.Status {
		t.Fatalf("forgot password: %q", forgot.Message)
	}
	userID := forgot.Data.(authcore.ForgotPasswordData).UserID

	wrong := rig.engine.VerifyOTPAndReset(ctx, authcore.VerifyOTPInput{
		UserID: userID, OTP: "999999", NewPassword: "newpass1",
	})
	expectFailure(t, wrong, authcore.KindInvalidOTP)

	right := rig.engine.VerifyOTPAndReset(ctx, authcore.VerifyOTPInput{
		UserID: userID, OTP: testOTPCode, NewPassword: "newpass1",
	})
	if !right.Status {
		t.Fatalf("otp reset: %q", right.Message)
	}

	oldPassword := rig.engine.Login(ctx, authcore.LoginInput{
		Email: "alice@example.com", Password: "pass123",
	})
	expectFailure(t, oldPassword, authcore.KindUnauthenticated)

	newPassword := rig.engine.Login(ctx, authcore.LoginInput{
		Email: "alice@example.com", Password: "newpass1",
	})
	if !newPassword.Status {
		t.Fatalf("login with new password: %q", newPassword.Message)
	}
}
