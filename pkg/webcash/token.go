package webcash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	kindSecret = "secret"
	kindPublic = "public"
)

// SecretWebcash is the spendable form of a token: whoever knows the
// secret string can claim the amount.
type SecretWebcash struct {
	Secret string
	Amount Amount
}

// Public derives the identifying, non-spendable form of the token. The
// hash commits to the textual form of the secret.
func (sk SecretWebcash) Public() PublicWebcash {
	return PublicWebcash{
		Hash:   sha256.Sum256([]byte(sk.Secret)),
		Amount: sk.Amount,
	}
}

func (sk SecretWebcash) String() string {
	return tokenString(sk.Amount, kindSecret, sk.Secret)
}

// PublicWebcash carries the one-way hash of a secret plus its claimed
// amount.
type PublicWebcash struct {
	Hash   [32]byte
	Amount Amount
}

func (pk PublicWebcash) String() string {
	return tokenString(pk.Amount, kindPublic, hex.EncodeToString(pk.Hash[:]))
}

// Token strings never carry a negative amount.
func tokenString(amount Amount, kind, payload string) string {
	if amount < 0 {
		amount = 0
	}
	return "e" + amount.String() + ":" + kind + ":" + payload
}

// ParseSecretWebcash decodes the canonical "e<amount>:secret:<secret>"
// form. The leading "e" is optional on input.
func ParseSecretWebcash(s string) (SecretWebcash, error) {
	amount, payload, err := splitToken(s, kindSecret)
	if err != nil {
		return SecretWebcash{}, err
	}
	return SecretWebcash{Secret: payload, Amount: amount}, nil
}

// ParsePublicWebcash decodes the canonical "e<amount>:public:<hex>" form.
func ParsePublicWebcash(s string) (PublicWebcash, error) {
	amount, payload, err := splitToken(s, kindPublic)
	if err != nil {
		return PublicWebcash{}, err
	}
	raw, err := hex.DecodeString(payload)
	if err != nil {
		return PublicWebcash{}, fmt.Errorf("invalid public token %q: %s", s, err)
	}
	if len(raw) != sha256.Size {
		return PublicWebcash{}, fmt.Errorf(
			"invalid public token %q: expected %d-byte hash, got %d",
			s, sha256.Size, len(raw),
		)
	}
	pk := PublicWebcash{Amount: amount}
	copy(pk.Hash[:], raw)
	return pk, nil
}

func splitToken(s, kind string) (Amount, string, error) {
	body := strings.TrimPrefix(s, "e")
	parts := strings.SplitN(body, ":", 3)
	if len(parts) != 3 {
		return 0, "", fmt.Errorf("invalid token %q: expected <amount>:<kind>:<payload>", s)
	}
	if parts[1] != kind {
		return 0, "", fmt.Errorf("invalid token %q: expected kind %q, got %q", s, kind, parts[1])
	}
	amount, err := ParseAmount(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid token %q: %s", s, err)
	}
	if parts[2] == "" {
		return 0, "", fmt.Errorf("invalid token %q: empty payload", s)
	}
	return amount, parts[2], nil
}
