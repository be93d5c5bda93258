package webcash

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional decimal digits carried by a
// webcash amount. One webcash is 10^AmountScale minimal units.
const AmountScale = 8

// Amount is a quantity of webcash expressed in minimal units.
type Amount int64

// ParseAmount decodes the canonical decimal representation of an amount.
// The format is strict: an optional leading minus sign, an integer part
// with no superfluous leading zero, and at most AmountScale fractional
// digits after an optional decimal point. A leading zero is required for
// purely fractional amounts ("0.5", never ".5").
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	body := s
	negative := body[0] == '-'
	if negative {
		body = body[1:]
		if body == "" {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	intDigits := 0
	for intDigits < len(body) && isDigit(body[intDigits]) {
		intDigits++
	}
	if intDigits == 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if body[0] == '0' && intDigits > 1 {
		return 0, fmt.Errorf("invalid amount %q: superfluous leading zero", s)
	}

	if frac := body[intDigits:]; frac != "" {
		if frac[0] != '.' {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		frac = frac[1:]
		if len(frac) == 0 || len(frac) > AmountScale {
			return 0, fmt.Errorf(
				"invalid amount %q: expected 1 to %d fractional digits",
				s, AmountScale,
			)
		}
		for i := 0; i < len(frac); i++ {
			if !isDigit(frac[i]) {
				return 0, fmt.Errorf("invalid amount %q", s)
			}
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %s", s, err)
	}
	units := d.Shift(AmountScale)
	if !units.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %q overflows", s)
	}
	return Amount(units.IntPart()), nil
}

// String renders the amount as a fixed-point decimal with trailing zeros
// trimmed, e.g. 3000000 minimal units render as "0.03".
func (a Amount) String() string {
	return decimal.New(int64(a), -AmountScale).String()
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
