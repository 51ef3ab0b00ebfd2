package service

import "errors"

// Access errors
var (
	ErrUserRequired      = errors.New("user is required")
	ErrUserNotFound      = errors.New("user not found")
	ErrUnknownRole       = errors.New("role does not exist")
	ErrUnknownPermission = errors.New("permission does not exist")
)
