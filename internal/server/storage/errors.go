package storage

import "errors"

// Common storage errors
var (
	// ErrAccountNotFound indicates that account was not found in storage
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists indicates that account with this username already exists
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrSnapshotNotFound indicates that account has no stored snapshot yet
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
