// Package hdkeys implements the deterministic secret-derivation scheme of
// the webcash wallet. Every secret the wallet generates is drawn from one
// of four chains rooted in a single 256-bit master secret, so that the
// whole wallet can be reconstructed from the master secret alone.
package hdkeys

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// derivationTag domain-separates wallet key derivation from every other
// use of sha256 over the same inputs.
const derivationTag = "webcashwalletv1"

// ChainSelector identifies one of the four derivation chains. The two
// flags classify what secrets drawn from the chain are used for:
//
//   - mine=false, sweep=true:  received/imported webcash ("recieve")
//   - mine=false, sweep=false: payments to others ("pay")
//   - mine=true,  sweep=false: internal change ("change")
//   - mine=true,  sweep=true:  mining income ("mining")
type ChainSelector struct {
	Mine  bool
	Sweep bool
}

var (
	ChainReceive = ChainSelector{Mine: false, Sweep: true}
	ChainPayment = ChainSelector{Mine: false, Sweep: false}
	ChainChange  = ChainSelector{Mine: true, Sweep: false}
	ChainMining  = ChainSelector{Mine: true, Sweep: true}
)

// Selectors returns all four chain selectors, in chaincode-bit order.
func Selectors() []ChainSelector {
	return []ChainSelector{ChainReceive, ChainPayment, ChainChange, ChainMining}
}

// Bits returns the selector's position in the low 2 bits of the serialized
// chaincode.
func (s ChainSelector) Bits() uint64 {
	switch s {
	case ChainReceive:
		return 0
	case ChainPayment:
		return 1
	case ChainChange:
		return 2
	default: // ChainMining
		return 3
	}
}

// Category returns the selector's token-use category as recorded in wallet
// recovery files. The "recieve" spelling is the on-disk format of existing
// wallets and must not be corrected.
func (s ChainSelector) Category() string {
	switch s {
	case ChainReceive:
		return "recieve"
	case ChainPayment:
		return "pay"
	case ChainChange:
		return "change"
	default:
		return "mining"
	}
}

// EncodeChaincode serializes a chain index and selector into the 8-byte
// big-endian chaincode used by Derive. The upper 62 bits carry the chain
// index (currently always zero, reserved for multi-chain expansion) and
// the low 2 bits carry the selector.
func EncodeChaincode(chainIndex uint64, sel ChainSelector) [8]byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], chainIndex<<2|sel.Bits())
	return buf
}

// Derive computes the secret at the given depth of the selected chain:
//
//	secret = sha256(tag || tag || root || chaincode || depth)
//
// with tag = sha256(derivationTag) written twice, and chaincode and depth
// serialized as 8 bytes big-endian. The same inputs always produce the
// same secret. The returned value is the lowercase hex encoding of the
// digest; the raw digest is erased before returning.
func Derive(root *Root, sel ChainSelector, depth uint64) string {
	tag := sha256.Sum256([]byte(derivationTag))

	chaincode := EncodeChaincode(0, sel)
	var depthBytes [8]byte
	binary.BigEndian.PutUint64(depthBytes[:], depth)

	h := sha256.New()
	h.Write(tag[:])
	h.Write(tag[:])
	h.Write(root.secret[:])
	h.Write(chaincode[:])
	h.Write(depthBytes[:])
	secret := h.Sum(nil)

	encoded := hex.EncodeToString(secret)
	Zero(secret)
	return encoded
}

// Zero overwrites the buffer. Raw secret material must be erased as soon
// as its textual form has been produced.
func Zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
