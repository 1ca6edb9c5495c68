// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
)

// Common application errors.
var (
	// Persistence errors.
	ErrCorruptState = errors.New("corrupt assessment state")
	ErrNotFound     = errors.New("not found")

	// Assessment errors.
	ErrUnknownCategory = errors.New("unknown category")

	// Configuration errors.
	ErrInvalidCatalog = errors.New("invalid category catalog")
)
