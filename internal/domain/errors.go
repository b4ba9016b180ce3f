package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateIBAN   = errors.New("account with this IBAN already exists")
	// ErrOwnAccountMissing signals that an own account confirmed during
	// import cannot be resolved in storage. This is fatal: the run aborts.
	ErrOwnAccountMissing = errors.New("own account missing from storage")

	// Transaction errors
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrMissingEndpoint = errors.New("transaction requires source and target accounts")

	// Reporting errors
	ErrEmptySeries = errors.New("series length must be positive")
)
