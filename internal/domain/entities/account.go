package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DrWallflower/minibank/internal/models/errs"
	"github.com/shopspring/decimal"
)

// AccountType is the single-character discriminator persisted in the
// accounts log. The codes are part of the on-disk format and must not change.
type AccountType string

const (
	Checking AccountType = "C"
	Savings  AccountType = "E"
	Credit   AccountType = "R"
)

// ParseAccountType validates a type code coming from a caller or a log line.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(s); t {
	case Checking, Savings, Credit:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", errs.ErrUnknownAccountType, s)
}

// Account is the closed capability set shared by the three account kinds.
// Deposit and Withdraw take the transaction being applied so the account
// can record it in its own history.
type Account interface {
	Number() int
	FirstName() string
	LastName() string
	Type() AccountType
	Balance() decimal.Decimal
	History() []*Transaction

	Deposit(amount decimal.Decimal, t *Transaction) decimal.Decimal
	Withdraw(amount decimal.Decimal, t *Transaction) (decimal.Decimal, error)
	Interest() decimal.Decimal

	DisplayLine() string
	Record() string
	Compare(other Account) int
}

// base carries the state and behavior common to all account kinds.
type base struct {
	number    int
	firstName string
	lastName  string
	balance   decimal.Decimal
	history   []*Transaction
}

func newBase(number int, firstName, lastName string) base {
	return base{
		number:    number,
		firstName: firstName,
		lastName:  lastName,
		balance:   decimal.Zero,
	}
}

func (b *base) Number() int              { return b.number }
func (b *base) FirstName() string        { return b.firstName }
func (b *base) LastName() string         { return b.lastName }
func (b *base) Balance() decimal.Decimal { return b.balance }

// History returns the transactions applied to the account, insertion order.
func (b *base) History() []*Transaction {
	out := make([]*Transaction, len(b.history))
	copy(out, b.history)
	return out
}

func (b *base) Deposit(amount decimal.Decimal, t *Transaction) decimal.Decimal {
	b.balance = b.balance.Add(amount)
	b.history = append(b.history, t)
	return b.balance
}

// Withdraw caps the withdrawal at the current balance.
// Credit accounts override this rule.
func (b *base) Withdraw(amount decimal.Decimal, t *Transaction) (decimal.Decimal, error) {
	if amount.GreaterThan(b.balance) {
		return b.balance, fmt.Errorf("%w: balance %s", errs.ErrInsufficientFunds, b.balance.StringFixed(2))
	}
	b.balance = b.balance.Sub(amount)
	b.history = append(b.history, t)
	return b.balance, nil
}

// Compare orders accounts by last name, then first name, then number,
// ascending. A nil comparand sorts after any account.
func (b *base) Compare(other Account) int {
	if other == nil {
		return 1
	}
	if c := strings.Compare(b.lastName, other.LastName()); c != 0 {
		return c
	}
	if c := strings.Compare(b.firstName, other.FirstName()); c != 0 {
		return c
	}
	switch {
	case b.number < other.Number():
		return -1
	case b.number > other.Number():
		return 1
	}
	return 0
}

func (b *base) displayLine(label, extra string) string {
	owner := strings.ToUpper(b.lastName) + ", " + b.firstName
	return strings.TrimRight(fmt.Sprintf("%d  %-8s  %-32s %s", b.number, label, owner, extra), " ")
}

func (b *base) record(code AccountType) string {
	return fmt.Sprintf("%s;%d;%s;%s", code, b.number, b.firstName, b.lastName)
}

// ParseAccountRecord is the inverse of Account.Record. The line comes from
// the accounts log: `<typeCode>;<number>;<firstName>;<lastName>` for
// checking/savings, with a trailing `;<creditLimit>` for credit.
func ParseAccountRecord(line string) (Account, error) {
	fields := strings.Split(line, ";")
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: %d field(s)", errs.ErrCorruptRecord, len(fields))
	}

	kind, err := ParseAccountType(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: type code %q", errs.ErrCorruptRecord, fields[0])
	}

	number, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: account number %q", errs.ErrCorruptRecord, fields[1])
	}
	firstName, lastName := fields[2], fields[3]

	switch kind {
	case Checking, Savings:
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: %d field(s)", errs.ErrCorruptRecord, len(fields))
		}
		if kind == Checking {
			return NewChecking(number, firstName, lastName), nil
		}
		return NewSavings(number, firstName, lastName), nil
	default: // Credit
		if len(fields) != 5 {
			return nil, fmt.Errorf("%w: %d field(s)", errs.ErrCorruptRecord, len(fields))
		}
		limit, err := decimal.NewFromString(fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: credit limit %q", errs.ErrCorruptRecord, fields[4])
		}
		return NewCredit(number, firstName, lastName, limit), nil
	}
}
