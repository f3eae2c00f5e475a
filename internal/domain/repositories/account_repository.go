package repositories

import (
	"context"

	"github.com/DrWallflower/minibank/internal/domain/entities"
)

// AccountRepository persists accounts to the append-only accounts log.
// LoadAll reports how many lines were skipped as unparseable; a missing
// log is not an error and yields an empty set.
type AccountRepository interface {
	Append(ctx context.Context, account entities.Account) error
	LoadAll(ctx context.Context) (accounts []entities.Account, skipped int, err error)
}
