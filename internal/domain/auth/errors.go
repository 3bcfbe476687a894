package auth

import "errors"

var (
	ErrMissingCredentials       = errors.New("please provide email and password")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrAccountInactive          = errors.New("your account is inactive")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrGoogleLoginDisabled      = errors.New("google sign-in is not configured")
	ErrGoogleEmailNotVerified   = errors.New("google account email is not verified")
	ErrStateMismatch            = errors.New("oauth state mismatch")
)
