package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/DrWallflower/minibank/internal/application/interfaces"
	"github.com/DrWallflower/minibank/internal/application/params"
	"github.com/DrWallflower/minibank/internal/domain/entities"
	"github.com/DrWallflower/minibank/internal/domain/repositories"
	"github.com/DrWallflower/minibank/internal/models/errs"
	"github.com/DrWallflower/minibank/pkg/logger"
	"github.com/shopspring/decimal"
)

// firstAccountNumber is the numbering floor; the first account ever
// opened gets 101.
const firstAccountNumber = 100

// CreditLimitFunc draws the credit limit for a new credit account.
type CreditLimitFunc func() decimal.Decimal

// DefaultCreditLimit draws uniformly over {500, 600, ..., 3000}.
func DefaultCreditLimit(rng *rand.Rand) CreditLimitFunc {
	return func() decimal.Decimal {
		return decimal.NewFromInt(int64((rng.Intn(26) + 5) * 100))
	}
}

// BankService is the ledger: it owns the account set, assigns account
// numbers, routes operations to accounts and drives persistence.
type BankService struct {
	mu          sync.Mutex
	accounts    []entities.Account
	lastNumber  int
	accountRepo repositories.AccountRepository
	txRepo      repositories.TransactionRepository
	creditLimit CreditLimitFunc
	logger      logger.Logger
}

// NewBankService builds the ledger and replays both logs: accounts first
// (establishing the numbering high-water mark), then transactions against
// the loaded accounts.
func NewBankService(
	ctx context.Context,
	accountRepo repositories.AccountRepository,
	txRepo repositories.TransactionRepository,
	creditLimit CreditLimitFunc,
	logger logger.Logger,
) (*BankService, error) {
	if accountRepo == nil {
		return nil, errors.New("nil dependency: account repository")
	}
	if txRepo == nil {
		return nil, errors.New("nil dependency: transaction repository")
	}
	if logger == nil {
		return nil, errors.New("nil dependency: logger")
	}
	if creditLimit == nil {
		creditLimit = DefaultCreditLimit(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	s := &BankService{
		lastNumber:  firstAccountNumber,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		creditLimit: creditLimit,
		logger:      logger,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

var _ interfaces.BankService = (*BankService)(nil)

// load replays the two logs in strict order. Lines that fail to parse,
// resolve or apply are counted and skipped; a damaged log never prevents
// the rest from loading.
func (s *BankService) load(ctx context.Context) error {
	accounts, skipped, err := s.accountRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	for _, account := range accounts {
		// First occurrence of a number wins.
		if s.lookup(account.Number()) != nil {
			skipped++
			continue
		}
		s.accounts = append(s.accounts, account)
		if account.Number() > s.lastNumber {
			s.lastNumber = account.Number()
		}
	}
	if skipped > 0 {
		s.logger.Infof("accounts log: skipped %d record(s)", skipped)
	}

	transactions, skippedTx, err := s.txRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	for _, t := range transactions {
		account := s.lookup(t.AccountNumber())
		if account == nil {
			skippedTx++
			continue
		}
		if _, err := t.Apply(account); err != nil {
			skippedTx++
			continue
		}
	}
	if skippedTx > 0 {
		s.logger.Infof("transactions log: skipped %d record(s)", skippedTx)
	}

	s.logger.Infof("ledger loaded: %d account(s), last number %d", len(s.accounts), s.lastNumber)
	return nil
}

// OpenAccount validates the requested type, assigns the next number,
// persists the account and performs the initial deposit, if any, through
// the regular deposit path.
func (s *BankService) OpenAccount(ctx context.Context, p *params.OpenAccount) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind, err := entities.ParseAccountType(p.Type)
	if err != nil {
		return 0, err
	}

	number := s.lastNumber + 1

	var account entities.Account
	switch kind {
	case entities.Checking:
		account = entities.NewChecking(number, p.FirstName, p.LastName)
	case entities.Savings:
		account = entities.NewSavings(number, p.FirstName, p.LastName)
	case entities.Credit:
		account = entities.NewCredit(number, p.FirstName, p.LastName, s.creditLimit())
	}

	if err := s.accountRepo.Append(ctx, account); err != nil {
		return 0, fmt.Errorf("persist account: %w", err)
	}
	s.lastNumber = number
	s.accounts = append(s.accounts, account)

	if p.InitialDeposit.IsPositive() {
		if _, err := s.deposit(ctx, account, p.InitialDeposit); err != nil {
			return number, err
		}
	}

	return number, nil
}

// ListAccounts renders every account, ordered by last name, first name
// and number.
func (s *BankService) ListAccounts(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := make([]entities.Account, len(s.accounts))
	copy(sorted, s.accounts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) < 0
	})

	lines := make([]string, len(sorted))
	for i, account := range sorted {
		lines[i] = account.DisplayLine()
	}
	return lines
}

func (s *BankService) ValidateExists(_ context.Context, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.find(number)
	return err
}

func (s *BankService) Balance(_ context.Context, number int) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.find(number)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return account.Balance(), nil
}

// Transactions renders the account's full history as statement lines.
func (s *BankService) Transactions(_ context.Context, number int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.find(number)
	if err != nil {
		return nil, err
	}

	history := account.History()
	lines := make([]string, len(history))
	for i, t := range history {
		lines[i] = t.StatementLine()
	}
	return lines, nil
}

func (s *BankService) Interest(_ context.Context, number int) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.find(number)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return account.Interest(), nil
}

func (s *BankService) Deposit(ctx context.Context, number int, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.find(number)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return s.deposit(ctx, account, amount)
}

func (s *BankService) Withdraw(ctx context.Context, number int, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.find(number)
	if err != nil {
		return decimal.Decimal{}, err
	}

	t, err := entities.NewTransaction(entities.Withdrawal, number, amount)
	if err != nil {
		return decimal.Decimal{}, err
	}

	// A failed withdrawal mutates nothing and persists nothing.
	balance, err := t.Apply(account)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := s.txRepo.Append(ctx, t); err != nil {
		return balance, fmt.Errorf("persist transaction: %w", err)
	}
	return balance, nil
}

// deposit applies and persists a deposit on an already-resolved account.
// Callers hold the mutex.
func (s *BankService) deposit(ctx context.Context, account entities.Account, amount decimal.Decimal) (decimal.Decimal, error) {
	t, err := entities.NewTransaction(entities.Deposit, account.Number(), amount)
	if err != nil {
		return decimal.Decimal{}, err
	}

	balance, err := t.Apply(account)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := s.txRepo.Append(ctx, t); err != nil {
		return balance, fmt.Errorf("persist transaction: %w", err)
	}
	return balance, nil
}

// find resolves an account by number. Callers hold the mutex.
func (s *BankService) find(number int) (entities.Account, error) {
	if account := s.lookup(number); account != nil {
		return account, nil
	}
	return nil, fmt.Errorf("%w: %d", errs.ErrAccountNotFound, number)
}

func (s *BankService) lookup(number int) entities.Account {
	for _, account := range s.accounts {
		if account.Number() == number {
			return account
		}
	}
	return nil
}
