package domain

import "context"

type HDRepository interface {
	CountRoots(ctx context.Context) (int, error)
	// CreateRoot stores the master secret and creates the four derivation
	// chains at depth zero, all in one transaction.
	CreateRoot(ctx context.Context, root HDRoot) error
	GetRoot(ctx context.Context) (*HDRoot, error)
	GetChain(ctx context.Context, rootID int64, chaincode uint64, mine, sweep bool) (*HDChain, error)
	// ReserveNext commits one depth allocation atomically: the secret is
	// merge-inserted, bound to its (chain, depth) slot, and the chain's
	// maxdepth is incremented, in a single transaction. It returns the
	// row id of the stored secret.
	ReserveNext(ctx context.Context, chainID int64, depth uint64, secret Secret) (int64, error)
	Close()
}
