package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrRateLimited    = errors.New("too many requests")

	// Input errors. Callers treat these as silent no-ops.
	ErrEmptyConfession = errors.New("confession text is empty")
	ErrEmptyName       = errors.New("name is empty")
	ErrEmptyNickname   = errors.New("nickname is empty")
	ErrTooLong         = errors.New("input too long")
	ErrNegativeHearts  = errors.New("hearts must not be negative")

	// The proposal practice may be used once per device.
	ErrPracticeUsed = errors.New("proposal practice already used on this device")
)
