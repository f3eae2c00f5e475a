package errs

import "errors"

// Domain sentinel errors. Callers match on them with errors.Is;
// user-facing wording is the caller's concern.
var (
	// Amount of a transaction is zero or negative.
	ErrInvalidAmount = errors.New("invalid amount")
	// Withdrawal from a checking or savings account exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// Withdrawal from a credit account would breach the credit limit.
	ErrInsufficientCredit = errors.New("insufficient credit limit")
	// No account carries the given number.
	ErrAccountNotFound = errors.New("account not found")
	// Account type code is not one of the known codes.
	ErrUnknownAccountType = errors.New("unknown account type")
	// Log line cannot be parsed back into an account or transaction.
	ErrCorruptRecord = errors.New("corrupt record")
	// Malformed request at the HTTP edge.
	ErrInvalidRequest = errors.New("invalid request")
)

// Type just for marshalling purpose.
// Should only be used immediately before marshalling.
type JSON struct {
	Error string `json:"error"`
}
