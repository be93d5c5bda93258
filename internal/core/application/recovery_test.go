package application_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/webcash/walletd/internal/core/application"
	"github.com/webcash/walletd/internal/core/domain"
	"github.com/webcash/walletd/internal/core/ports"
	"github.com/webcash/walletd/internal/infrastructure/db"
	filelog "github.com/webcash/walletd/internal/infrastructure/recoverylog/file"
)

type flakyHD struct {
	domain.HDRepository
	fail bool
}

func (f *flakyHD) ReserveNext(
	ctx context.Context, chainID int64, depth uint64, secret domain.Secret,
) (int64, error) {
	if f.fail {
		return 0, errors.New("disk full")
	}
	return f.HDRepository.ReserveNext(ctx, chainID, depth, secret)
}

type flakyRepo struct {
	ports.RepoManager
	hd *flakyHD
}

func (f *flakyRepo) HD() domain.HDRepository { return f.hd }

// A reservation that reaches the recovery log but dies before the store
// commit must not burn the derivation slot: the next attempt re-derives
// the exact same secret, and the logged copy stays salvageable.
func TestReserveSecretSurvivesStoreCrash(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	inner, err := db.NewService(filepath.Join(dir, "default_wallet.db"))
	require.NoError(t, err)

	logPath := filepath.Join(dir, "default_wallet.backup")
	rlog, err := filelog.NewService(logPath)
	require.NoError(t, err)

	hd := &flakyHD{HDRepository: inner.HD()}
	repo := &flakyRepo{RepoManager: inner, hd: hd}

	svc, err := application.NewWalletService(
		repo, &fakeExchange{}, rlog, nil, application.Options{ChangeSweep: true},
	)
	require.NoError(t, err)
	defer svc.Close()

	hd.fail = true
	_, err = svc.ReserveSecret(ctx, time.Now(), false, true)
	require.Error(t, err)

	// The value that failed to commit is already in the recovery log.
	lines := recoveryLines(t, logPath)
	require.Len(t, lines, 2)
	fields := strings.Fields(lines[1])
	require.Len(t, fields, 3)
	require.Equal(t, "recieve", fields[1])
	logged := fields[2]

	hd.fail = false
	secret, err := svc.ReserveSecret(ctx, time.Now(), false, true)
	require.NoError(t, err)
	require.Equal(t, logged, secret.Value)
}
