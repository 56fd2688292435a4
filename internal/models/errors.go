package models

import "errors"

// Domain failures returned as values by the engines. Only storage I/O faults
// propagate as wrapped unexpected errors.
var (
	// ErrNotFound means a referenced entity id is absent from the document.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientFunds means a goal withdrawal would drive the balance
	// negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnsupportedCurrency means a currency code outside the supported set
	// was used where strict validation applies (default-currency assignment).
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrInvalidInput covers malformed amounts, dates and frequencies.
	ErrInvalidInput = errors.New("invalid input")
)
