// Package common defines shared constants, sentinel errors and small helpers
// used across passvault layers. Callers should use errors.Is to match the
// sentinel values.
package common

import "errors"

var (
	// repository-level errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrStorage marks a failure of the persistence layer itself, as opposed
	// to a domain outcome.
	ErrStorage = errors.New("storage error")

	// validation
	ErrValidation = errors.New("validation error")

	// vault lifecycle
	ErrAlreadyConfigured = errors.New("vault already configured")
	ErrNotConfigured     = errors.New("vault not configured")

	// ErrAuthentication is returned for a wrong master password and for a
	// corrupted verifier alike.
	ErrAuthentication = errors.New("invalid master password")

	// ErrUnauthenticated is returned by record operations while the vault is locked.
	ErrUnauthenticated = errors.New("vault is locked")

	ErrCorruptEntry = errors.New("corrupt entry")

	// transport tokens
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrBackupDisabled = errors.New("backup is not configured")
)
