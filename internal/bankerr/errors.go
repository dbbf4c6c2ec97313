// Package bankerr defines the failure taxonomy shared by the ledger engine,
// the repositories and the HTTP handlers. Handlers match these with errors.Is
// to pick the user-facing message; anything unmatched is treated as a store
// failure and reported generically.
package bankerr

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")

	ErrInvalidPin        = errors.New("invalid pin")
	ErrInvalidAmount     = errors.New("amount must be a positive value with at most two decimal places")
	ErrInvalidRecipient  = errors.New("recipient must be an account number or a 10-digit phone number")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfTransfer      = errors.New("cannot transfer to own account")

	ErrAccountNotFound   = errors.New("account not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateIdentity = errors.New("email or phone number already registered")
)
