package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
	"strings"
	"time"
)

// Generator produces one-time codes of the requested length.
type Generator interface {
	Generate(digits int) (string, error)
}

type randomGenerator struct{}

// NewGenerator returns the production Generator: uniform random decimal digits.
func NewGenerator() Generator {
	return randomGenerator{}
}

var ten = big.NewInt(10)

func (randomGenerator) Generate(digits int) (string, error) {
	if digits < 4 || digits > 10 {
		return "", errors.New("invalid otp digits")
	}

	var b strings.Builder
	b.Grow(digits)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

type fixedGenerator struct {
	code string
}

// Fixed returns a Generator that always yields code, regardless of the
// requested length. It exists for deterministic tests and has no place in a
// production wiring.
func Fixed(code string) Generator {
	return fixedGenerator{code: code}
}

func (g fixedGenerator) Generate(int) (string, error) {
	return g.code, nil
}

// Matches reports whether supplied equals stored and the code is still live at
// now. An empty stored code, a nil expiry, or an expiry at or before now all
// read as a mismatch: a code past its window is treated as absent. The
// comparison itself is constant-time.
func Matches(stored, supplied string, expiresAt *time.Time, now time.Time) bool {
	if stored == "" || supplied == "" || expiresAt == nil {
		return false
	}
	if !now.Before(*expiresAt) {
		return false
	}
	if len(stored) != len(supplied) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
