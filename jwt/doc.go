// Package jwt implements the credential signer: issuance and verification of
// signed, time-bounded access and refresh tokens over distinct HS256 secrets.
//
// Functions here are pure over configuration-held secrets: no I/O, no shared
// mutable state. Refresh verification distinguishes a bad signature
// ([ErrTokenInvalid]) from a valid signature past expiry ([ErrTokenExpired])
// so callers can report a precise cause, and so logout can still identify the
// session of an expired token. Expiry and revocation are independent axes.
package jwt
