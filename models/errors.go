package models

import "errors"

var (
	// ErrInvalidSender indicates a missing or non-positive sender id.
	ErrInvalidSender = errors.New("invalid sender id")
	// ErrEmptyPixKey indicates the recipient pix key was not given.
	ErrEmptyPixKey = errors.New("recipient pix key is required")
	// ErrInvalidAmount indicates a zero or negative amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrSenderNotFound indicates the sender account does not exist.
	ErrSenderNotFound = errors.New("sender not found")
	// ErrPixKeyNotFound indicates the pix key resolves to no account.
	ErrPixKeyNotFound = errors.New("pix key not found")
	// ErrSelfTransfer indicates sender and recipient are the same account.
	ErrSelfTransfer = errors.New("cannot transfer to yourself")
	// ErrInsufficientFunds indicates the sender balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrTransferFailed wraps any infrastructure failure during the commit
	// phase; the whole transfer was rolled back.
	ErrTransferFailed = errors.New("transfer failed")

	// ErrPixKeyTaken indicates the pix key is already registered to an account.
	ErrPixKeyTaken = errors.New("pix key already registered")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)
