package domain

import "context"

type SecretRepository interface {
	// Upsert inserts the secret if its value is unknown, otherwise merges
	// its flags into the existing row per MergeFlags. It returns the row
	// id of the stored secret in either case.
	Upsert(ctx context.Context, secret Secret) (int64, error)
	GetByValue(ctx context.Context, value string) (*Secret, error)
	GetByID(ctx context.Context, id int64) (*Secret, error)
	Close()
}
