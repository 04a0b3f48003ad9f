package service

import "errors"

var (
	ErrInvalidCredentials       = errors.New("invalid_credentials")
	ErrAccountNotActivated      = errors.New("account_not_activated")
	ErrUsernameTaken            = errors.New("username_taken")
	ErrEmailTaken               = errors.New("email_taken")
	ErrInvalidConfirmationToken = errors.New("invalid_confirmation_token")
	ErrConfirmationTokenExpired = errors.New("confirmation_token_expired")
	ErrUnknownSubject           = errors.New("unknown_subject")
)
