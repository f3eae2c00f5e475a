package entities

import "github.com/shopspring/decimal"

var savingsRate = decimal.NewFromFloat(0.01)

// SavingsAccount earns 1% interest on its balance and cannot go negative.
type SavingsAccount struct {
	base
}

func NewSavings(number int, firstName, lastName string) *SavingsAccount {
	return &SavingsAccount{base: newBase(number, firstName, lastName)}
}

var _ Account = (*SavingsAccount)(nil)

func (a *SavingsAccount) Type() AccountType { return Savings }

func (a *SavingsAccount) Interest() decimal.Decimal {
	return a.balance.Mul(savingsRate)
}

func (a *SavingsAccount) DisplayLine() string {
	return a.displayLine("Epargne", "")
}

func (a *SavingsAccount) Record() string {
	return a.record(Savings)
}
