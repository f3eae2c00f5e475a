package entities

import "github.com/shopspring/decimal"

var checkingRate = decimal.NewFromFloat(0.001)

// CheckingAccount earns 0.1% interest on its balance and cannot go negative.
type CheckingAccount struct {
	base
}

func NewChecking(number int, firstName, lastName string) *CheckingAccount {
	return &CheckingAccount{base: newBase(number, firstName, lastName)}
}

var _ Account = (*CheckingAccount)(nil)

func (a *CheckingAccount) Type() AccountType { return Checking }

func (a *CheckingAccount) Interest() decimal.Decimal {
	return a.balance.Mul(checkingRate)
}

func (a *CheckingAccount) DisplayLine() string {
	return a.displayLine("Cheques", "")
}

func (a *CheckingAccount) Record() string {
	return a.record(Checking)
}
