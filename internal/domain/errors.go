package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Transfer errors
	ErrZeroAmount        = errors.New("transfer amount must be non-zero")
	ErrNoPendingTransfer = errors.New("no pending transfer for session")
)
