package sqlitedb

import (
	"context"
	"database/sql"

	"github.com/webcash/walletd/internal/core/domain"
)

type termsRepository struct {
	db *sql.DB
}

func NewTermsRepository(db *sql.DB) domain.TermsRepository {
	return &termsRepository{db: db}
}

func (t *termsRepository) HasAny(ctx context.Context) (bool, error) {
	var exists int
	row := t.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM terms)")
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (t *termsRepository) Contains(ctx context.Context, body string) (bool, error) {
	var exists int
	row := t.db.QueryRowContext(
		ctx, "SELECT EXISTS(SELECT 1 FROM terms WHERE body = ?)", body,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (t *termsRepository) Add(ctx context.Context, body string, timestamp int64) error {
	_, err := t.db.ExecContext(
		ctx,
		"INSERT OR IGNORE INTO terms (body, timestamp) VALUES (?, ?)",
		body, timestamp,
	)
	return err
}

func (t *termsRepository) Close() {}
