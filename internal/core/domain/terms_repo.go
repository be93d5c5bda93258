package domain

import "context"

type TermsRepository interface {
	HasAny(ctx context.Context) (bool, error)
	Contains(ctx context.Context, body string) (bool, error)
	Add(ctx context.Context, body string, timestamp int64) error
	Close()
}
