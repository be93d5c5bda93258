package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/webcash/walletd/internal/core/domain"
	"github.com/webcash/walletd/pkg/hdkeys"
)

type hdRepository struct {
	db *sql.DB
}

func NewHDRepository(db *sql.DB) domain.HDRepository {
	return &hdRepository{db: db}
}

func (h *hdRepository) CountRoots(ctx context.Context) (int, error) {
	var count int
	row := h.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM hdroot")
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (h *hdRepository) CreateRoot(ctx context.Context, root domain.HDRoot) error {
	return execTx(ctx, h.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(
			ctx,
			"INSERT INTO hdroot (timestamp, version, secret) VALUES (?, ?, ?)",
			root.Timestamp, root.Version, root.Secret,
		)
		if err != nil {
			return fmt.Errorf("failed to insert master secret: %w", err)
		}
		rootID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for _, sel := range hdkeys.Selectors() {
			if _, err := tx.ExecContext(
				ctx,
				"INSERT INTO hdchain (hdroot_id, chaincode, mine, sweep, mindepth, maxdepth) "+
					"VALUES (?, 0, ?, ?, 0, 0)",
				rootID, sel.Mine, sel.Sweep,
			); err != nil {
				return fmt.Errorf("failed to create derivation chain: %w", err)
			}
		}
		return nil
	})
}

func (h *hdRepository) GetRoot(ctx context.Context) (*domain.HDRoot, error) {
	row := h.db.QueryRowContext(
		ctx, "SELECT id, timestamp, version, secret FROM hdroot LIMIT 1",
	)
	var root domain.HDRoot
	err := row.Scan(&root.ID, &root.Timestamp, &root.Version, &root.Secret)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRootNotFound
	}
	if err != nil {
		return nil, err
	}
	return &root, nil
}

func (h *hdRepository) GetChain(
	ctx context.Context, rootID int64, chaincode uint64, mine, sweep bool,
) (*domain.HDChain, error) {
	row := h.db.QueryRowContext(
		ctx,
		"SELECT id, hdroot_id, chaincode, mine, sweep, mindepth, maxdepth "+
			"FROM hdchain WHERE hdroot_id = ? AND chaincode = ? AND mine = ? AND sweep = ? LIMIT 1",
		rootID, int64(chaincode), mine, sweep,
	)
	var chain domain.HDChain
	err := row.Scan(
		&chain.ID, &chain.RootID, &chain.Chaincode,
		&chain.Mine, &chain.Sweep, &chain.MinDepth, &chain.MaxDepth,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrChainNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chain, nil
}

func (h *hdRepository) ReserveNext(
	ctx context.Context, chainID int64, depth uint64, secret domain.Secret,
) (int64, error) {
	var secretID int64
	err := execTx(ctx, h.db, func(tx *sql.Tx) error {
		var err error
		secretID, err = upsertSecret(ctx, tx, secret)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(
			ctx,
			"INSERT OR IGNORE INTO hdkey (hdchain_id, depth, secret_id) VALUES (?, ?, ?)",
			chainID, int64(depth), secretID,
		); err != nil {
			return fmt.Errorf("failed to bind secret to depth slot: %w", err)
		}

		if _, err := tx.ExecContext(
			ctx,
			"UPDATE hdchain SET maxdepth = maxdepth + 1 WHERE id = ?",
			chainID,
		); err != nil {
			return fmt.Errorf("failed to advance chain depth: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return secretID, nil
}

func (h *hdRepository) Close() {}
