package params

import "github.com/shopspring/decimal"

// OpenAccount carries everything needed to open an account. Type is the
// raw one-character code supplied by the caller; the service validates it.
type OpenAccount struct {
	Type           string
	FirstName      string
	LastName       string
	InitialDeposit decimal.Decimal
}

func NewOpenAccount(accountType, firstName, lastName string, initialDeposit decimal.Decimal) *OpenAccount {
	return &OpenAccount{
		Type:           accountType,
		FirstName:      firstName,
		LastName:       lastName,
		InitialDeposit: initialDeposit,
	}
}
