// Package filelocker guards the wallet database with an advisory file
// lock, giving one process exclusive access to the whole wallet.
package filelocker

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/webcash/walletd/internal/core/domain"
	"github.com/webcash/walletd/internal/core/ports"
)

type service struct {
	lock *flock.Flock
}

func NewService(path string) ports.Locker {
	return &service{lock: flock.New(path)}
}

// TryLock acquires the lock without blocking or retrying. A wallet held
// by another process fails fast with domain.ErrWalletInUse.
func (s *service) TryLock() error {
	locked, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock wallet database: %w", err)
	}
	if !locked {
		return domain.ErrWalletInUse
	}
	return nil
}

func (s *service) Unlock() error {
	return s.lock.Unlock()
}
