// Package password wraps one-way credential hashing. It uses bcrypt with a
// configurable cost factor; comparison runs in constant time for a given hash,
// so the caller never observes a timing difference between wrong passwords.
package password
