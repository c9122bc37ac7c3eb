package common

import "errors"

// Callers should match these with errors.Is; lower layers wrap them with
// context via fmt.Errorf("...: %w", err).
var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")

	// Auth gate errors.
	ErrUnauthenticated = errors.New("authorization header missing")
	ErrForbidden       = errors.New("forbidden")

	// Token errors (malformed, bad signature or expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// One-time passcode errors.
	ErrOTPExpiredOrMissing = errors.New("otp not found or expired")
	ErrOTPMismatch         = errors.New("invalid otp")
)
