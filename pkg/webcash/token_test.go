package webcash_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/webcash/walletd/pkg/webcash"
)

const testSecret = "c0cc5e929cc1201878e6180c0fa25263fe376f3a8d43e9ebd6e4bba36cefd06c"

func TestSecretWebcashString(t *testing.T) {
	sk := webcash.SecretWebcash{Secret: testSecret, Amount: 50000000000}
	require.Equal(t, "e500:secret:"+testSecret, sk.String())

	parsed, err := webcash.ParseSecretWebcash(sk.String())
	require.NoError(t, err)
	require.Equal(t, sk, parsed)
}

func TestSecretWebcashParseWithoutPrefix(t *testing.T) {
	parsed, err := webcash.ParseSecretWebcash("0.03:secret:" + testSecret)
	require.NoError(t, err)
	require.Equal(t, webcash.Amount(3000000), parsed.Amount)
	require.Equal(t, testSecret, parsed.Secret)
}

func TestPublicWebcashCommitsToSecretText(t *testing.T) {
	sk := webcash.SecretWebcash{Secret: testSecret, Amount: 100000000}
	pk := sk.Public()
	require.Equal(t, [32]byte(sha256.Sum256([]byte(testSecret))), pk.Hash)
	require.Equal(t, sk.Amount, pk.Amount)

	parsed, err := webcash.ParsePublicWebcash(pk.String())
	require.NoError(t, err)
	require.Equal(t, pk, parsed)
}

func TestNegativeAmountRendersAsZero(t *testing.T) {
	sk := webcash.SecretWebcash{Secret: testSecret, Amount: -5}
	require.Equal(t, "e0:secret:"+testSecret, sk.String())
}

func TestParseTokenRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"e1:secret",
		"e1:public:" + testSecret + ":extra",
		"e1:secret:",
		"e.5:secret:" + testSecret,
		"e1:unknown:" + testSecret,
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := webcash.ParseSecretWebcash(in)
			require.Error(t, err)
		})
	}

	_, err := webcash.ParsePublicWebcash("e1:public:zz")
	require.Error(t, err)
	_, err = webcash.ParsePublicWebcash("e1:public:abcdef")
	require.Error(t, err)
	_, err = webcash.ParsePublicWebcash("e1:secret:" + testSecret)
	require.Error(t, err)
}
