package hdkeys_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/webcash/walletd/pkg/hdkeys"
)

func testRoot(t *testing.T) *hdkeys.Root {
	t.Helper()
	buf := bytes.Repeat([]byte{0xab}, hdkeys.RootSize)
	root, err := hdkeys.RootFromBytes(buf)
	require.NoError(t, err)
	return root
}

func TestDeriveIsDeterministic(t *testing.T) {
	root := testRoot(t)
	for _, sel := range hdkeys.Selectors() {
		for depth := uint64(0); depth < 16; depth++ {
			first := hdkeys.Derive(root, sel, depth)
			second := hdkeys.Derive(root, sel, depth)
			require.Equal(t, first, second)
			require.Len(t, first, 64)
		}
	}
}

// Recomputes one derivation from first principles to pin down the scheme.
func TestDeriveMatchesScheme(t *testing.T) {
	root := testRoot(t)
	tag := sha256.Sum256([]byte("webcashwalletv1"))

	var depthBytes [8]byte
	binary.BigEndian.PutUint64(depthBytes[:], 7)
	chaincode := [8]byte{0, 0, 0, 0, 0, 0, 0, 2} // change chain, index 0

	h := sha256.New()
	h.Write(tag[:])
	h.Write(tag[:])
	h.Write(root.Bytes())
	h.Write(chaincode[:])
	h.Write(depthBytes[:])
	expected := hex.EncodeToString(h.Sum(nil))

	require.Equal(t, expected, hdkeys.Derive(root, hdkeys.ChainChange, 7))
}

func TestDeriveIsUniqueAcrossChainsAndDepths(t *testing.T) {
	root := testRoot(t)
	seen := make(map[string]struct{})
	for _, sel := range hdkeys.Selectors() {
		for depth := uint64(0); depth < 64; depth++ {
			secret := hdkeys.Derive(root, sel, depth)
			_, dup := seen[secret]
			require.False(t, dup, "collision at selector %+v depth %d", sel, depth)
			seen[secret] = struct{}{}
		}
	}
}

func TestEncodeChaincode(t *testing.T) {
	tests := []struct {
		sel      hdkeys.ChainSelector
		lastByte byte
	}{
		{hdkeys.ChainReceive, 0},
		{hdkeys.ChainPayment, 1},
		{hdkeys.ChainChange, 2},
		{hdkeys.ChainMining, 3},
	}
	for _, tt := range tests {
		buf := hdkeys.EncodeChaincode(0, tt.sel)
		require.Equal(t, [8]byte{0, 0, 0, 0, 0, 0, 0, tt.lastByte}, buf)
	}

	// A future chain index shifts above the selector bits.
	buf := hdkeys.EncodeChaincode(1, hdkeys.ChainMining)
	require.Equal(t, [8]byte{0, 0, 0, 0, 0, 0, 0, 7}, buf)
}

func TestCategories(t *testing.T) {
	require.Equal(t, "recieve", hdkeys.ChainReceive.Category())
	require.Equal(t, "pay", hdkeys.ChainPayment.Category())
	require.Equal(t, "change", hdkeys.ChainChange.Category())
	require.Equal(t, "mining", hdkeys.ChainMining.Category())
}

func TestRootFromBytesPadsShortSecrets(t *testing.T) {
	short := bytes.Repeat([]byte{0x11}, 16)
	root, err := hdkeys.RootFromBytes(short)
	require.NoError(t, err)

	expected := make([]byte, hdkeys.RootSize)
	copy(expected, short)
	require.Equal(t, expected, root.Bytes())
}

func TestRootFromBytesRejectsBadLengths(t *testing.T) {
	for _, n := range []int{0, 15, 33} {
		_, err := hdkeys.RootFromBytes(make([]byte, n))
		require.Error(t, err)
	}
}

func TestRootZero(t *testing.T) {
	root, err := hdkeys.NewRandomRoot()
	require.NoError(t, err)
	require.NotEqual(t, make([]byte, hdkeys.RootSize), root.Bytes())

	root.Zero()
	require.Equal(t, make([]byte, hdkeys.RootSize), root.Bytes())
}

func TestDeriveDependsOnRoot(t *testing.T) {
	rootA := testRoot(t)
	rootB, err := hdkeys.RootFromBytes(bytes.Repeat([]byte{0xcd}, hdkeys.RootSize))
	require.NoError(t, err)

	require.NotEqual(t,
		hdkeys.Derive(rootA, hdkeys.ChainPayment, 0),
		hdkeys.Derive(rootB, hdkeys.ChainPayment, 0),
	)
}
