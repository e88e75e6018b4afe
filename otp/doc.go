// Package otp issues and checks numeric one-time reset codes. Codes are drawn
// uniformly from crypto/rand; nothing in the normal path may ever special-case
// a fixed value. The only deterministic code source is [Fixed], an injectable
// generator intended for tests.
package otp
