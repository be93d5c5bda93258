package domain

import (
	"github.com/webcash/walletd/pkg/webcash"
)

// Output is a spendable unit of value. SecretID is zero for outputs whose
// secret is not held by this wallet.
type Output struct {
	ID        int64
	Timestamp int64
	Hash      [32]byte
	SecretID  int64
	Amount    webcash.Amount
	Spent     bool
}

// HasSecret reports whether the wallet holds the secret backing this
// output.
func (o Output) HasSecret() bool {
	return o.SecretID != 0
}
