package domain

import (
	"context"

	"github.com/webcash/walletd/pkg/webcash"
)

type OutputRepository interface {
	Add(ctx context.Context, output Output) (int64, error)
	// MarkSpent flips the spent flag of one output. The transition only
	// ever goes from unspent to spent.
	MarkSpent(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Output, error)
	ListUnspent(ctx context.Context) ([]Output, error)
	Balance(ctx context.Context) (webcash.Amount, error)
	Close()
}
