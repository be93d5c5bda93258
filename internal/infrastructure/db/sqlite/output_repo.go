package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/webcash/walletd/internal/core/domain"
	"github.com/webcash/walletd/pkg/webcash"
)

type outputRepository struct {
	db *sql.DB
}

func NewOutputRepository(db *sql.DB) domain.OutputRepository {
	return &outputRepository{db: db}
}

func (o *outputRepository) Add(ctx context.Context, output domain.Output) (int64, error) {
	var secretID sql.NullInt64
	if output.HasSecret() {
		secretID = sql.NullInt64{Int64: output.SecretID, Valid: true}
	}

	res, err := o.db.ExecContext(
		ctx,
		"INSERT INTO output (timestamp, hash, secret_id, amount, spent) VALUES (?, ?, ?, ?, ?)",
		output.Timestamp, output.Hash[:], secretID, int64(output.Amount), output.Spent,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert output: %w", err)
	}
	return res.LastInsertId()
}

func (o *outputRepository) MarkSpent(ctx context.Context, id int64) error {
	res, err := o.db.ExecContext(
		ctx, "UPDATE output SET spent = TRUE WHERE id = ?", id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOutputNotFound
	}
	return nil
}

func (o *outputRepository) GetByID(ctx context.Context, id int64) (*domain.Output, error) {
	row := o.db.QueryRowContext(
		ctx,
		"SELECT id, timestamp, hash, secret_id, amount, spent FROM output WHERE id = ?",
		id,
	)
	var (
		output   domain.Output
		hash     []byte
		secretID sql.NullInt64
		amount   int64
	)
	err := row.Scan(
		&output.ID, &output.Timestamp, &hash, &secretID, &amount, &output.Spent,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOutputNotFound
	}
	if err != nil {
		return nil, err
	}
	copy(output.Hash[:], hash)
	if secretID.Valid {
		output.SecretID = secretID.Int64
	}
	output.Amount = webcash.Amount(amount)
	return &output, nil
}

func (o *outputRepository) ListUnspent(ctx context.Context) ([]domain.Output, error) {
	rows, err := o.db.QueryContext(
		ctx,
		"SELECT id, timestamp, hash, secret_id, amount, spent FROM output WHERE spent = FALSE ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outputs := make([]domain.Output, 0)
	for rows.Next() {
		var (
			output   domain.Output
			hash     []byte
			secretID sql.NullInt64
			amount   int64
		)
		if err := rows.Scan(
			&output.ID, &output.Timestamp, &hash, &secretID, &amount, &output.Spent,
		); err != nil {
			return nil, err
		}
		copy(output.Hash[:], hash)
		if secretID.Valid {
			output.SecretID = secretID.Int64
		}
		output.Amount = webcash.Amount(amount)
		outputs = append(outputs, output)
	}
	return outputs, rows.Err()
}

func (o *outputRepository) Balance(ctx context.Context) (webcash.Amount, error) {
	var total int64
	row := o.db.QueryRowContext(
		ctx, "SELECT COALESCE(SUM(amount), 0) FROM output WHERE spent = FALSE",
	)
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return webcash.Amount(total), nil
}

func (o *outputRepository) Close() {}
