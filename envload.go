package authcore

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/washhub/authcore/notify"
)

// envConfig mirrors the process environment. Secrets are required; everything
// else falls back to the Normalize defaults when unset.
type envConfig struct {
	AccessSecret  string `env:"AUTH_ACCESS_SECRET,required"`
	RefreshSecret string `env:"AUTH_REFRESH_SECRET,required"`

	AccessTTL  time.Duration `env:"AUTH_ACCESS_TTL"`
	RefreshTTL time.Duration `env:"AUTH_REFRESH_TTL"`

	BcryptCost int `env:"AUTH_BCRYPT_COST"`

	OTPDigits int           `env:"AUTH_OTP_DIGITS"`
	OTPTTL    time.Duration `env:"AUTH_OTP_TTL"`

	DeliveryPolicy     string `env:"AUTH_OTP_DELIVERY_POLICY"`
	DefaultCountryCode string `env:"AUTH_DEFAULT_COUNTRY_CODE"`

	ConstantTimeLogin bool `env:"AUTH_CONSTANT_TIME_LOGIN"`
}

// LoadConfig builds a [Config] from the process environment. Any listed .env
// files are loaded first; a missing file is not an error, matching the usual
// dev-versus-deploy split. The returned config is normalized and validated.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil {
			continue
		}
	}

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg := Config{
		JWT: JWTConfig{
			AccessSecret:  []byte(ec.AccessSecret),
			RefreshSecret: []byte(ec.RefreshSecret),
			AccessTTL:     ec.AccessTTL,
			RefreshTTL:    ec.RefreshTTL,
		},
		Password: PasswordConfig{Cost: ec.BcryptCost},
		OTP: OTPConfig{
			Digits: ec.OTPDigits,
			TTL:    ec.OTPTTL,
		},
		Notify: NotifyConfig{
			DeliveryPolicy:     notify.DeliveryPolicy(ec.DeliveryPolicy),
			DefaultCountryCode: ec.DefaultCountryCode,
		},
		Hardening: HardeningConfig{ConstantTimeLogin: ec.ConstantTimeLogin},
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
