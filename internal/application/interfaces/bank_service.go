package interfaces

import (
	"context"

	"github.com/DrWallflower/minibank/internal/application/params"
	"github.com/shopspring/decimal"
)

// BankService represents all ledger operations exposed to drivers
// (menu, HTTP). The core performs no console I/O itself.
type BankService interface {
	OpenAccount(context.Context, *params.OpenAccount) (int, error)
	ListAccounts(context.Context) []string
	ValidateExists(context.Context, int) error
	Balance(context.Context, int) (decimal.Decimal, error)
	Transactions(context.Context, int) ([]string, error)
	Interest(context.Context, int) (decimal.Decimal, error)
	Deposit(ctx context.Context, number int, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, number int, amount decimal.Decimal) (decimal.Decimal, error)
}
