package model

import "errors"

var (
	// Directory errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("duplicate username in account set")

	// Session errors
	ErrAuthenticationFailed = errors.New("invalid username or PIN")
	ErrNotAuthenticated     = errors.New("no authenticated session")

	// Action errors
	ErrInvalidTransfer = errors.New("invalid transfer")
	ErrLoanRejected    = errors.New("loan rejected")

	// Request validation errors
	ErrUsernameRequired  = errors.New("username is required")
	ErrPINRequired       = errors.New("PIN is required")
	ErrRecipientRequired = errors.New("recipient username is required")
	ErrInvalidAmount     = errors.New("amount must be a positive number")
)
