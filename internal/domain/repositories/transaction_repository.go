package repositories

import (
	"context"

	"github.com/DrWallflower/minibank/internal/domain/entities"
)

// TransactionRepository persists transactions to the append-only
// transactions log. LoadAll returns transactions not yet bound to an
// account; resolution against the loaded account set is the ledger's job.
type TransactionRepository interface {
	Append(ctx context.Context, t *entities.Transaction) error
	LoadAll(ctx context.Context) (transactions []*entities.Transaction, skipped int, err error)
}
