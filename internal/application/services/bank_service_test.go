package services

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/DrWallflower/minibank/internal/application/params"
	"github.com/DrWallflower/minibank/internal/infrastructure/textlog"
	"github.com/DrWallflower/minibank/internal/models/errs"
	"github.com/DrWallflower/minibank/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSeededRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func fixedLimit(limit int64) CreditLimitFunc {
	return func() decimal.Decimal {
		return decimal.NewFromInt(limit)
	}
}

// newService builds a ledger over the log files in dir, replaying
// whatever they already contain.
func newService(t *testing.T, dir string, limit CreditLimitFunc) *BankService {
	t.Helper()

	log := logger.NewWithZap(zap.NewNop())

	accountStore, err := textlog.NewAccountStore(filepath.Join(dir, "comptes.txt"), log)
	require.NoError(t, err)
	transactionStore, err := textlog.NewTransactionStore(filepath.Join(dir, "transactions.txt"), log)
	require.NoError(t, err)

	s, err := NewBankService(context.Background(), accountStore, transactionStore, limit, log)
	require.NoError(t, err)
	return s
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOpenAccountNumbering(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := newService(t, dir, nil)

	first, err := s.OpenAccount(ctx, params.NewOpenAccount("C", "Jean", "Tremblay", decimal.Zero))
	require.NoError(t, err)
	assert.Equal(t, 101, first)

	second, err := s.OpenAccount(ctx, params.NewOpenAccount("E", "Marie", "Gagnon", decimal.Zero))
	require.NoError(t, err)
	assert.Equal(t, 102, second)

	// Numbering continues above the replayed high-water mark.
	restarted := newService(t, dir, nil)
	third, err := restarted.OpenAccount(ctx, params.NewOpenAccount("C", "Luc", "Roy", decimal.Zero))
	require.NoError(t, err)
	assert.Equal(t, 103, third)
}

func TestOpenAccountUnknownType(t *testing.T) {
	ctx := context.Background()
	s := newService(t, t.TempDir(), nil)

	_, err := s.OpenAccount(ctx, params.NewOpenAccount("X", "Jean", "Tremblay", decimal.Zero))
	require.ErrorIs(t, err, errs.ErrUnknownAccountType)
	assert.Empty(t, s.ListAccounts(ctx))
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	s := newService(t, t.TempDir(), nil)

	number, err := s.OpenAccount(ctx, params.NewOpenAccount("C", "Jean", "Tremblay", amount("100.00")))
	require.NoError(t, err)

	balance, err := s.Balance(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, "100.00", balance.StringFixed(2))

	_, err = s.Withdraw(ctx, number, amount("150.00"))
	require.ErrorIs(t, err, errs.ErrInsufficientFunds)

	balance, err = s.Balance(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, "100.00", balance.StringFixed(2))
}

func TestCreditWithdrawAtLimit(t *testing.T) {
	ctx := context.Background()
	s := newService(t, t.TempDir(), fixedLimit(500))

	number, err := s.OpenAccount(ctx, params.NewOpenAccount("R", "Jean", "Tremblay", decimal.Zero))
	require.NoError(t, err)

	balance, err := s.Withdraw(ctx, number, amount("500.00"))
	require.NoError(t, err)
	assert.Equal(t, "-500.00", balance.StringFixed(2))

	_, err = s.Withdraw(ctx, number, amount("0.01"))
	require.ErrorIs(t, err, errs.ErrInsufficientCredit)

	balance, err = s.Balance(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, "-500.00", balance.StringFixed(2))
}

func TestInvalidAmountPersistsNothing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := newService(t, dir, nil)

	number, err := s.OpenAccount(ctx, params.NewOpenAccount("C", "Jean", "Tremblay", decimal.Zero))
	require.NoError(t, err)

	_, err = s.Deposit(ctx, number, decimal.Zero)
	require.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = s.Withdraw(ctx, number, amount("-5"))
	require.ErrorIs(t, err, errs.ErrInvalidAmount)

	balance, err := s.Balance(ctx, number)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	// Nothing reached the transactions log.
	_, statErr := os.Stat(filepath.Join(dir, "transactions.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReplayReproducesBalances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := newService(t, dir, fixedLimit(1000))

	checking, err := s.OpenAccount(ctx, params.NewOpenAccount("C", "Jean", "Tremblay", amount("250.75")))
	require.NoError(t, err)
	credit, err := s.OpenAccount(ctx, params.NewOpenAccount("R", "Marie", "Gagnon", decimal.Zero))
	require.NoError(t, err)

	_, err = s.Withdraw(ctx, checking, amount("50.25"))
	require.NoError(t, err)
	_, err = s.Withdraw(ctx, credit, amount("300"))
	require.NoError(t, err)
	_, err = s.Deposit(ctx, credit, amount("100"))
	require.NoError(t, err)

	wantChecking, err := s.Balance(ctx, checking)
	require.NoError(t, err)
	wantCredit, err := s.Balance(ctx, credit)
	require.NoError(t, err)

	restarted := newService(t, dir, fixedLimit(1000))

	gotChecking, err := restarted.Balance(ctx, checking)
	require.NoError(t, err)
	gotCredit, err := restarted.Balance(ctx, credit)
	require.NoError(t, err)

	assert.True(t, wantChecking.Equal(gotChecking))
	assert.True(t, wantCredit.Equal(gotCredit))

	// History replays too.
	lines, err := restarted.Transactions(ctx, credit)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestLoadSkipsCorruptAndDuplicateLines(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	accounts := "C;101;Jean;Tremblay\n" +
		"pas un compte\n" +
		"E;205;Marie;Gagnon\n" +
		"C;101;Autre;Proprio\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comptes.txt"), []byte(accounts), 0o644))

	transactions := "101;D;100;2024-05-01\n" +
		"999;D;50;2024-05-01\n" + // unknown account
		"205;D;75;2024-05-02\n" +
		"205;R;500;2024-05-03\n" // insufficient funds on replay
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions.txt"), []byte(transactions), 0o644))

	s := newService(t, dir, nil)

	assert.Len(t, s.ListAccounts(ctx), 2)

	// First occurrence of 101 wins.
	balance, err := s.Balance(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "100.00", balance.StringFixed(2))

	balance, err = s.Balance(ctx, 205)
	require.NoError(t, err)
	assert.Equal(t, "75.00", balance.StringFixed(2))

	// Counter reflects the highest number seen.
	next, err := s.OpenAccount(ctx, params.NewOpenAccount("C", "Luc", "Roy", decimal.Zero))
	require.NoError(t, err)
	assert.Equal(t, 206, next)
}

func TestListAccountsOrderingIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newService(t, t.TempDir(), nil)

	_, err := s.OpenAccount(ctx, params.NewOpenAccount("C", "Marie", "Tremblay", decimal.Zero))
	require.NoError(t, err)
	_, err = s.OpenAccount(ctx, params.NewOpenAccount("E", "Jean", "Tremblay", decimal.Zero))
	require.NoError(t, err)
	_, err = s.OpenAccount(ctx, params.NewOpenAccount("C", "Anne", "Gagnon", decimal.Zero))
	require.NoError(t, err)
	_, err = s.OpenAccount(ctx, params.NewOpenAccount("C", "Jean", "Tremblay", decimal.Zero))
	require.NoError(t, err)

	lines := s.ListAccounts(ctx)
	require.Len(t, lines, 4)

	// (lastName, firstName, number) ascending: Gagnon, then the two
	// Jean Tremblay by number, then Marie.
	assert.Contains(t, lines[0], "GAGNON, Anne")
	assert.Contains(t, lines[1], "102")
	assert.Contains(t, lines[2], "104")
	assert.Contains(t, lines[3], "TREMBLAY, Marie")

	assert.Equal(t, lines, s.ListAccounts(ctx))
}

func TestStatementRendersHistory(t *testing.T) {
	ctx := context.Background()
	s := newService(t, t.TempDir(), nil)

	number, err := s.OpenAccount(ctx, params.NewOpenAccount("E", "Jean", "Tremblay", amount("200")))
	require.NoError(t, err)
	_, err = s.Withdraw(ctx, number, amount("75"))
	require.NoError(t, err)

	lines, err := s.Transactions(ctx, number)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Depot")
	assert.Contains(t, lines[0], "200.00")
	assert.Contains(t, lines[1], "Retrait")
	assert.Contains(t, lines[1], "Solde: 125.00")
}

func TestAccountNotFound(t *testing.T) {
	ctx := context.Background()
	s := newService(t, t.TempDir(), nil)

	require.ErrorIs(t, s.ValidateExists(ctx, 999), errs.ErrAccountNotFound)

	_, err := s.Balance(ctx, 999)
	require.ErrorIs(t, err, errs.ErrAccountNotFound)
	_, err = s.Deposit(ctx, 999, amount("10"))
	require.ErrorIs(t, err, errs.ErrAccountNotFound)
	_, err = s.Withdraw(ctx, 999, amount("10"))
	require.ErrorIs(t, err, errs.ErrAccountNotFound)
	_, err = s.Interest(ctx, 999)
	require.ErrorIs(t, err, errs.ErrAccountNotFound)
	_, err = s.Transactions(ctx, 999)
	require.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestInterestByAccountKind(t *testing.T) {
	ctx := context.Background()
	s := newService(t, t.TempDir(), fixedLimit(2000))

	checking, err := s.OpenAccount(ctx, params.NewOpenAccount("C", "Jean", "Tremblay", amount("1000")))
	require.NoError(t, err)
	savings, err := s.OpenAccount(ctx, params.NewOpenAccount("E", "Jean", "Tremblay", amount("1000")))
	require.NoError(t, err)
	credit, err := s.OpenAccount(ctx, params.NewOpenAccount("R", "Jean", "Tremblay", decimal.Zero))
	require.NoError(t, err)
	_, err = s.Withdraw(ctx, credit, amount("1000"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		number int
		want   string
	}{
		{"checking", checking, "1.00"},
		{"savings", savings, "10.00"},
		{"credit", credit, "45.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interest, err := s.Interest(ctx, tt.number)
			require.NoError(t, err)
			assert.Equal(t, tt.want, interest.StringFixed(2))
		})
	}
}

func TestDefaultCreditLimitDistribution(t *testing.T) {
	draw := DefaultCreditLimit(newSeededRand())

	low := decimal.NewFromInt(500)
	high := decimal.NewFromInt(3000)
	hundred := decimal.NewFromInt(100)

	for i := 0; i < 1000; i++ {
		limit := draw()
		assert.True(t, limit.GreaterThanOrEqual(low), "limit %s below 500", limit)
		assert.True(t, limit.LessThanOrEqual(high), "limit %s above 3000", limit)
		assert.True(t, limit.Mod(hundred).IsZero(), "limit %s not a multiple of 100", limit)
	}
}
