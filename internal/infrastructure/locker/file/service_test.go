package filelocker_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/webcash/walletd/internal/core/domain"
	filelocker "github.com/webcash/walletd/internal/infrastructure/locker/file"
)

func TestTryLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default_wallet.db")

	first := filelocker.NewService(path)
	require.NoError(t, first.TryLock())

	// A second locker on the same file must fail fast while the first
	// one holds the lock.
	second := filelocker.NewService(path)
	require.ErrorIs(t, second.TryLock(), domain.ErrWalletInUse)

	require.NoError(t, first.Unlock())
	require.NoError(t, second.TryLock())
	require.NoError(t, second.Unlock())
}

func TestTryLockReentrant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default_wallet.db")

	locker := filelocker.NewService(path)
	require.NoError(t, locker.TryLock())
	// The same locker may re-acquire its own lock.
	require.NoError(t, locker.TryLock())
	require.NoError(t, locker.Unlock())
}
