package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotReady           = errors.New("dashboard not ready")
	ErrStopped            = errors.New("dashboard stopped")
)
