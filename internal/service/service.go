// Package service holds the application use cases: accounts, plan generation and history,
// and plan export. Handlers call services; services call repositories, storage and the
// generator.
package service

import "errors"

// Errors shared by several services.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUserNotFound     = errors.New("user not found")
	ErrStorageDisabled  = errors.New("object storage is not configured")
)
