package ports

// Locker gives one process exclusive access to the whole wallet for the
// lifetime of the open wallet. TryLock never blocks: if the lock is held
// elsewhere it fails immediately with domain.ErrWalletInUse.
type Locker interface {
	TryLock() error
	Unlock() error
}
