package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/webcash/walletd/internal/core/domain"
)

type secretRepository struct {
	db *sql.DB
}

func NewSecretRepository(db *sql.DB) domain.SecretRepository {
	return &secretRepository{db: db}
}

func (s *secretRepository) Upsert(ctx context.Context, secret domain.Secret) (int64, error) {
	var id int64
	err := execTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		id, err = upsertSecret(ctx, tx, secret)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *secretRepository) GetByValue(ctx context.Context, value string) (*domain.Secret, error) {
	row := s.db.QueryRowContext(
		ctx,
		"SELECT id, timestamp, secret, mine, sweep FROM secret WHERE secret = ?",
		value,
	)
	return scanSecret(row)
}

func (s *secretRepository) GetByID(ctx context.Context, id int64) (*domain.Secret, error) {
	row := s.db.QueryRowContext(
		ctx,
		"SELECT id, timestamp, secret, mine, sweep FROM secret WHERE id = ?",
		id,
	)
	return scanSecret(row)
}

func (s *secretRepository) Close() {}

// upsertSecret applies the duplicate-merge rule inside the caller's
// transaction: insert-or-ignore, then fold the new flags into the stored
// row (mine AND, sweep OR).
func upsertSecret(ctx context.Context, tx *sql.Tx, secret domain.Secret) (int64, error) {
	if _, err := tx.ExecContext(
		ctx,
		"INSERT OR IGNORE INTO secret (timestamp, secret, mine, sweep) VALUES (?, ?, ?, ?)",
		secret.Timestamp, secret.Value, secret.Mine, secret.Sweep,
	); err != nil {
		return 0, fmt.Errorf("failed to insert secret: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		"UPDATE secret SET mine = mine & ?, sweep = sweep | ? WHERE secret = ?",
		secret.Mine, secret.Sweep, secret.Value,
	); err != nil {
		return 0, fmt.Errorf("failed to merge secret flags: %w", err)
	}

	var id int64
	row := tx.QueryRowContext(ctx, "SELECT id FROM secret WHERE secret = ?", secret.Value)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read back secret id: %w", err)
	}
	return id, nil
}

func scanSecret(row *sql.Row) (*domain.Secret, error) {
	var secret domain.Secret
	err := row.Scan(
		&secret.ID, &secret.Timestamp, &secret.Value, &secret.Mine, &secret.Sweep,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSecretNotFound
	}
	if err != nil {
		return nil, err
	}
	return &secret, nil
}
