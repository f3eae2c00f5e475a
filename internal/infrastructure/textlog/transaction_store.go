package textlog

import (
	"context"
	"errors"

	"github.com/DrWallflower/minibank/internal/domain/entities"
	"github.com/DrWallflower/minibank/internal/domain/repositories"
	"github.com/DrWallflower/minibank/pkg/logger"
)

type TransactionStore struct {
	path   string
	logger logger.Logger
}

func NewTransactionStore(path string, logger logger.Logger) (*TransactionStore, error) {
	if path == "" {
		return nil, errors.New("empty transactions log path")
	}
	return &TransactionStore{path: path, logger: logger}, nil
}

var _ repositories.TransactionRepository = (*TransactionStore)(nil)

func (s *TransactionStore) Append(_ context.Context, t *entities.Transaction) error {
	return appendLine(s.path, t.Record())
}

// LoadAll parses every line of the transactions log, counting and
// skipping unparseable ones.
func (s *TransactionStore) LoadAll(ctx context.Context) ([]*entities.Transaction, int, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, 0, err
	}

	var (
		transactions []*entities.Transaction
		skipped      int
	)
	for _, line := range lines {
		t, err := entities.ParseTransactionRecord(line)
		if err != nil {
			s.logger.With(ctx, "line", line).Debugf("skip transaction record: %s", err)
			skipped++
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, skipped, nil
}
