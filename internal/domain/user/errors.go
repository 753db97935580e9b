package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrInvalidUserRole   = errors.New("invalid user role")

	ErrAgentProfileRequired = errors.New("a registered agent profile is required")
	ErrAgentProfileNotFound = errors.New("agent profile not found")
	ErrAgentProfileExists   = errors.New("agent profile already registered")
)
