package entities

import (
	"fmt"

	"github.com/DrWallflower/minibank/internal/models/errs"
	"github.com/shopspring/decimal"
)

var creditRate = decimal.NewFromFloat(-0.045)

// CreditAccount may carry a negative balance down to the negated credit
// limit. The limit is fixed at creation and persisted with the account.
type CreditAccount struct {
	base
	limit decimal.Decimal
}

func NewCredit(number int, firstName, lastName string, limit decimal.Decimal) *CreditAccount {
	return &CreditAccount{base: newBase(number, firstName, lastName), limit: limit}
}

var _ Account = (*CreditAccount)(nil)

func (a *CreditAccount) Type() AccountType { return Credit }

func (a *CreditAccount) Limit() decimal.Decimal { return a.limit }

// Withdraw allows the balance to go negative but never below -limit.
func (a *CreditAccount) Withdraw(amount decimal.Decimal, t *Transaction) (decimal.Decimal, error) {
	if a.balance.Sub(amount).LessThan(a.limit.Neg()) {
		return a.balance, fmt.Errorf("%w: %s", errs.ErrInsufficientCredit, a.limit.StringFixed(2))
	}
	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, t)
	return a.balance, nil
}

// Interest charges 4.5% of a negative balance; a zero or positive
// balance carries no interest.
func (a *CreditAccount) Interest() decimal.Decimal {
	if a.balance.IsNegative() {
		return a.balance.Mul(creditRate)
	}
	return decimal.Zero
}

func (a *CreditAccount) DisplayLine() string {
	extra := fmt.Sprintf("Limite de credit: %10s $", a.limit.StringFixed(2))
	return a.displayLine("Credit", extra)
}

func (a *CreditAccount) Record() string {
	return a.record(Credit) + ";" + a.limit.String()
}
