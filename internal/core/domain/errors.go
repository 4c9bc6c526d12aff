package domain

import "errors"

// Client-side operation failures. Repository methods collapse transport
// errors into one of these coarse sentinels; the state store records their
// message as the last displayable error.
var (
	ErrAuthenticationFailed = errors.New("login failed")
	ErrRegistrationFailed   = errors.New("registration failed")
	ErrRequestFailed        = errors.New("forgot password request failed")
	ErrResetFailed          = errors.New("reset password failed")
	ErrLogoutFailed         = errors.New("logout failed")
	ErrUpdateFailed         = errors.New("user update failed")
	ErrDeleteFailed         = errors.New("user delete failed")
	ErrSessionExpired       = errors.New("session expired")
	ErrValidationFailed     = errors.New("validation failed")
	ErrNotImplemented       = errors.New("not implemented")
)

// Server-side account errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)
