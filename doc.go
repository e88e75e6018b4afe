// Package authcore provides the authentication and session-lifecycle engine:
// JWT access tokens, rotating refresh tokens tracked by reference, multi-session
// revocation, and an OTP-based password-reset flow with expiry.
//
// The package is designed as a library core for concurrent server workloads.
// Engine methods are safe to call from multiple goroutines after initialization
// through [Builder.Build]. It owns no transport and no persistence engine:
// callers supply a [UserStore] (any backend with atomic session-set updates)
// and a [notify.MessageSender] for OTP delivery.
//
// # Architecture boundaries
//
// authcore is the public surface. It exposes [Engine], [Builder], [Config],
// the [Result] envelope, and the store/sender contracts. Reference store
// implementations live under store/ and are optional; nothing in the engine
// depends on a concrete backend.
//
// # Result contract
//
// Every Engine operation returns a [Result] and never panics or leaks raw
// store or crypto errors. Credential failures carry a deliberately generic
// message; details are logged, not returned.
package authcore
