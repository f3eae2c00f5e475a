package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DrWallflower/minibank/internal/models/errs"
	"github.com/shopspring/decimal"
)

// TransactionType is the single-character discriminator persisted in the
// transactions log. It is a separate code space from AccountType even
// though Withdrawal shares the letter "R" with the credit account code.
type TransactionType string

const (
	Deposit    TransactionType = "D"
	Withdrawal TransactionType = "R"
)

// DateLayout is the calendar-date format used for both writing and
// parsing the transactions log.
const DateLayout = "2006-01-02"

// Transaction is an immutable record of one monetary movement.
// It references its account by number; the ledger resolves the number to
// the live account when the transaction is applied.
type Transaction struct {
	accountNumber int
	kind          TransactionType
	amount        decimal.Decimal
	date          time.Time
	resulting     decimal.Decimal
}

// NewTransaction builds a fresh transaction dated now.
func NewTransaction(kind TransactionType, accountNumber int, amount decimal.Decimal) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, amount)
	}
	return &Transaction{
		accountNumber: accountNumber,
		kind:          kind,
		amount:        amount,
		date:          time.Now(),
	}, nil
}

// ParseTransactionRecord is the inverse of Record. The line comes from the
// transactions log: `<accountNumber>;<typeCode>;<amount>;<date>`.
// A replayed amount is re-validated the same way a fresh one is.
func ParseTransactionRecord(line string) (*Transaction, error) {
	fields := strings.Split(line, ";")
	if len(fields) != 4 {
		return nil, fmt.Errorf("%w: %d field(s)", errs.ErrCorruptRecord, len(fields))
	}

	accountNumber, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: account number %q", errs.ErrCorruptRecord, fields[0])
	}

	kind := TransactionType(fields[1])
	if kind != Deposit && kind != Withdrawal {
		return nil, fmt.Errorf("%w: transaction code %q", errs.ErrCorruptRecord, fields[1])
	}

	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", errs.ErrCorruptRecord, fields[2])
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, amount)
	}

	date, err := time.Parse(DateLayout, fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", errs.ErrCorruptRecord, fields[3])
	}

	return &Transaction{
		accountNumber: accountNumber,
		kind:          kind,
		amount:        amount,
		date:          date,
	}, nil
}

func (t *Transaction) AccountNumber() int      { return t.accountNumber }
func (t *Transaction) Type() TransactionType   { return t.kind }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Date() time.Time         { return t.date }

// ResultingBalance is the balance snapshot taken when the transaction was
// applied. Informational; replay recomputes balances by reapplying.
func (t *Transaction) ResultingBalance() decimal.Decimal { return t.resulting }

// Apply performs the transaction against the given account and snapshots
// the resulting balance. Must be called exactly once per transaction.
func (t *Transaction) Apply(a Account) (decimal.Decimal, error) {
	if t.kind == Withdrawal {
		balance, err := a.Withdraw(t.amount, t)
		if err != nil {
			return balance, err
		}
		t.resulting = balance
		return balance, nil
	}
	t.resulting = a.Deposit(t.amount, t)
	return t.resulting, nil
}

// Record renders the transaction as one line of the transactions log.
func (t *Transaction) Record() string {
	return fmt.Sprintf("%d;%s;%s;%s", t.accountNumber, t.kind, t.amount, t.date.Format(DateLayout))
}

// StatementLine renders the transaction for an account statement.
func (t *Transaction) StatementLine() string {
	return fmt.Sprintf("%s  %-8s %10s  Solde: %s",
		t.date.Format(DateLayout), t.name(), t.amount.StringFixed(2), t.resulting.StringFixed(2))
}

func (t *Transaction) name() string {
	if t.kind == Deposit {
		return "Depot"
	}
	return "Retrait"
}
