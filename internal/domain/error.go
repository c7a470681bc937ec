package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyActive      = errors.New("account already active")
	ErrNoCodeRequested    = errors.New("no activation code requested")
	ErrCodeExpired        = errors.New("activation code expired")
	ErrCodeMismatch       = errors.New("activation code does not match")
	ErrDeliveryFailed     = errors.New("activation code delivery failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidExecContext = errors.New("invalid executor context")
)
