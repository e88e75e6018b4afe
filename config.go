package authcore

import (
	"bytes"
	"errors"
	"time"

	"github.com/washhub/authcore/notify"
)

// Config carries all engine tuning. Zero values are filled in by
// [Config.Normalize]; only the two signing secrets have no default.
type Config struct {
	JWT       JWTConfig
	Password  PasswordConfig
	OTP       OTPConfig
	Notify    NotifyConfig
	Hardening HardeningConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig configures the credential signer. Access and refresh tokens are
// signed with distinct secrets so a leaked access secret cannot mint refresh
// credentials.
type JWTConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration // default 15m
	RefreshTTL    time.Duration // default 7d
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig configures the bcrypt hasher.
type PasswordConfig struct {
	Cost int // default 10
}

/*
====================================
OTP CONFIG
====================================
*/

// OTPConfig configures password-reset codes.
type OTPConfig struct {
	Digits int           // default 6
	TTL    time.Duration // default 10m
}

/*
====================================
NOTIFY CONFIG
====================================
*/

// NotifyConfig configures OTP delivery.
type NotifyConfig struct {
	// DeliveryPolicy names which channel outcomes count as delivered.
	// Default is notify.PolicyEmailRequired: email must succeed, SMS is
	// best-effort and its failure is logged, not surfaced.
	DeliveryPolicy notify.DeliveryPolicy
	// DefaultCountryCode is prefixed to SMS numbers lacking a leading +.
	DefaultCountryCode string // default "+971"
}

/*
====================================
HARDENING CONFIG
====================================
*/

// HardeningConfig gates opt-in behavior that diverges from the baseline
// semantics.
type HardeningConfig struct {
	// ConstantTimeLogin makes Login hash-compare against a synthetic hash when
	// the user is not found, closing the user-enumeration timing channel.
	// Off by default: the baseline behavior returns early on unknown users.
	ConstantTimeLogin bool
}

const (
	defaultAccessTTL   = 15 * time.Minute
	defaultRefreshTTL  = 7 * 24 * time.Hour
	defaultBcryptCost  = 10
	defaultOTPDigits   = 6
	defaultOTPTTL      = 10 * time.Minute
	defaultCountryCode = "+971"
)

// Normalize fills unset fields with defaults. It does not touch the secrets.
func (c *Config) Normalize() {
	if c.JWT.AccessTTL <= 0 {
		c.JWT.AccessTTL = defaultAccessTTL
	}
	if c.JWT.RefreshTTL <= 0 {
		c.JWT.RefreshTTL = defaultRefreshTTL
	}
	if c.Password.Cost <= 0 {
		c.Password.Cost = defaultBcryptCost
	}
	if c.OTP.Digits <= 0 {
		c.OTP.Digits = defaultOTPDigits
	}
	if c.OTP.TTL <= 0 {
		c.OTP.TTL = defaultOTPTTL
	}
	if c.Notify.DeliveryPolicy == "" {
		c.Notify.DeliveryPolicy = notify.PolicyEmailRequired
	}
	if c.Notify.DefaultCountryCode == "" {
		c.Notify.DefaultCountryCode = defaultCountryCode
	}
}

// Validate reports configuration that cannot produce a working engine.
func (c *Config) Validate() error {
	if len(c.JWT.AccessSecret) == 0 {
		return errors.New("access token secret is required")
	}
	if len(c.JWT.RefreshSecret) == 0 {
		return errors.New("refresh token secret is required")
	}
	if bytes.Equal(c.JWT.AccessSecret, c.JWT.RefreshSecret) {
		return errors.New("access and refresh secrets must differ")
	}
	if c.OTP.Digits < 4 || c.OTP.Digits > 10 {
		return errors.New("otp digits must be between 4 and 10")
	}
	if !c.Notify.DeliveryPolicy.Valid() {
		return errors.New("unknown delivery policy")
	}
	return nil
}
