package domain

import "errors"

var (
	// ErrRootNotFound is returned when the wallet database holds no
	// master secret.
	ErrRootNotFound = errors.New("wallet has no master secret")

	// ErrMultipleRoots signals an unrecoverable wallet inconsistency:
	// more than one master secret is present.
	ErrMultipleRoots = errors.New("wallet contains more than one master secret")

	// ErrChainNotFound signals corruption: all four derivation chains are
	// created with the master secret, so a missing chain means the wallet
	// was damaged after creation.
	ErrChainNotFound = errors.New("derivation chain not found")

	// ErrUnknownRootVersion is returned when the stored master secret was
	// written by a newer, unsupported format.
	ErrUnknownRootVersion = errors.New("unrecognized master secret version")

	// ErrBadRootLength is returned when the stored master secret has an
	// impossible size.
	ErrBadRootLength = errors.New("master secret has invalid length")

	// ErrSecretNotFound is returned when a secret lookup matches nothing.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrOutputNotFound is returned when an output lookup matches nothing.
	ErrOutputNotFound = errors.New("output not found")

	// ErrWalletInUse is returned when the wallet database is locked by
	// another process.
	ErrWalletInUse = errors.New("wallet database is in use by another process")
)
