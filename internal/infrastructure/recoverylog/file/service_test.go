package filelog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	filelog "github.com/webcash/walletd/internal/infrastructure/recoverylog/file"
)

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default_wallet.backup")

	rlog, err := filelog.NewService(path)
	require.NoError(t, err)
	require.Equal(t, path, rlog.Path())

	// The file exists as soon as the log is created.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Zero(t, info.Size())

	require.NoError(t, rlog.Append(1700000000, "hdroot", "aabbcc", "version=1"))
	require.NoError(t, rlog.Append(1700000001, "pay", "e5:secret:ddeeff", ""))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"1700000000 hdroot aabbcc version=1\n1700000001 pay e5:secret:ddeeff\n",
		string(buf),
	)
}

func TestAppendKeepsExistingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default_wallet.backup")
	require.NoError(t, os.WriteFile(path, []byte("1 hdroot 00 version=1\n"), 0600))

	rlog, err := filelog.NewService(path)
	require.NoError(t, err)
	require.NoError(t, rlog.Append(2, "change", "ff", ""))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1 hdroot 00 version=1\n2 change ff\n", string(buf))
}
