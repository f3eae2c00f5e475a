package textlog

import (
	"context"
	"errors"

	"github.com/DrWallflower/minibank/internal/domain/entities"
	"github.com/DrWallflower/minibank/internal/domain/repositories"
	"github.com/DrWallflower/minibank/pkg/logger"
)

type AccountStore struct {
	path   string
	logger logger.Logger
}

func NewAccountStore(path string, logger logger.Logger) (*AccountStore, error) {
	if path == "" {
		return nil, errors.New("empty accounts log path")
	}
	return &AccountStore{path: path, logger: logger}, nil
}

var _ repositories.AccountRepository = (*AccountStore)(nil)

func (s *AccountStore) Append(_ context.Context, account entities.Account) error {
	return appendLine(s.path, account.Record())
}

// LoadAll parses every line of the accounts log. Unparseable lines are
// counted and skipped; a damaged line must not prevent the rest of the
// log from loading.
func (s *AccountStore) LoadAll(ctx context.Context) ([]entities.Account, int, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, 0, err
	}

	var (
		accounts []entities.Account
		skipped  int
	)
	for _, line := range lines {
		account, err := entities.ParseAccountRecord(line)
		if err != nil {
			s.logger.With(ctx, "line", line).Debugf("skip account record: %s", err)
			skipped++
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, skipped, nil
}
