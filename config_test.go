package authcore

import (
	"testing"
	"time"

	"github.com/washhub/authcore/notify"
)

func validConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessSecret:  []byte("access-secret"),
			RefreshSecret: []byte("refresh-secret"),
		},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Normalize()

	if cfg.JWT.AccessTTL != 15*time.Minute {
		t.Errorf("AccessTTL = %v", cfg.JWT.AccessTTL)
	}
	if cfg.JWT.RefreshTTL != 7*24*time.Hour {
		t.Errorf("RefreshTTL = %v", cfg.JWT.RefreshTTL)
	}
	if cfg.Password.Cost != 10 {
		t.Errorf("Cost = %d", cfg.Password.Cost)
	}
	if cfg.OTP.Digits != 6 {
		t.Errorf("Digits = %d", cfg.OTP.Digits)
	}
	if cfg.OTP.TTL != 10*time.Minute {
		t.Errorf("OTP TTL = %v", cfg.OTP.TTL)
	}
	if cfg.Notify.DeliveryPolicy != notify.PolicyEmailRequired {
		t.Errorf("DeliveryPolicy = %q", cfg.Notify.DeliveryPolicy)
	}
	if cfg.Notify.DefaultCountryCode == "" {
		t.Error("DefaultCountryCode empty")
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.AccessTTL = time.Minute
	cfg.OTP.Digits = 8
	cfg.Normalize()

	if cfg.JWT.AccessTTL != time.Minute {
		t.Errorf("AccessTTL overridden to %v", cfg.JWT.AccessTTL)
	}
	if cfg.OTP.Digits != 8 {
		t.Errorf("Digits overridden to %d", cfg.OTP.Digits)
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	missingAccess := cfg
	missingAccess.JWT.AccessSecret = nil
	if err := missingAccess.Validate(); err == nil {
		t.Error("missing access secret accepted")
	}

	missingRefresh := cfg
	missingRefresh.JWT.RefreshSecret = nil
	if err := missingRefresh.Validate(); err == nil {
		t.Error("missing refresh secret accepted")
	}

	sameSecrets := cfg
	sameSecrets.JWT.RefreshSecret = sameSecrets.JWT.AccessSecret
	if err := sameSecrets.Validate(); err == nil {
		t.Error("identical secrets accepted")
	}

	badDigits := cfg
	badDigits.OTP.Digits = 3
	if err := badDigits.Validate(); err == nil {
		t.Error("otp digits 3 accepted")
	}

	badPolicy := cfg
	badPolicy.Notify.DeliveryPolicy = "carrier-pigeon"
	if err := badPolicy.Validate(); err == nil {
		t.Error("unknown delivery policy accepted")
	}
}
