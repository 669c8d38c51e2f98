package bigint

import (
	"fmt"
	"math/bits"
)

// ToString returns the unique base-radix representation of x for
// 2 <= radix <= 36: "0" for zero, a leading '-' for negatives, digit
// characters '0'-'9' then 'a'-'z', no leading zeros, no radix prefix.
func ToString(x BigInt, radix int) (string, error) {
	if radix < 2 || radix > 36 {
		return "", fmt.Errorf("%w: %d", ErrRadix, radix)
	}
	if len(x.Digits) == 0 {
		return "0", nil
	}

	// Negatives are negated into a scratch magnitude, converted, and
	// re-prefixed with '-'.
	neg := x.IsNegative()
	mag := make([]uint64, len(x.Digits))
	copy(mag, x.Digits)
	if neg {
		negateDigits(mag)
	}
	mag = trimZeroDigits(mag)

	// Digits come out least significant first via repeated division by
	// the radix, then the whole string is reversed.
	out := make([]byte, 0, 1+len(x.Digits)*maxCharsPerDigitInRadix(radix))
	for len(mag) > 0 {
		rem := divModSmall(mag, uint64(radix))
		mag = trimZeroDigits(mag)
		if rem < 10 {
			out = append(out, '0'+byte(rem))
		} else {
			out = append(out, 'a'+byte(rem-10))
		}
	}
	if neg {
		out = append(out, '-')
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

// divModSmall divides the unsigned digit sequence d by m in place and
// returns the remainder. m must be nonzero.
func divModSmall(d []uint64, m uint64) uint64 {
	var rem uint64
	for i := len(d) - 1; i >= 0; i-- {
		d[i], rem = bits.Div64(rem, d[i], m)
	}
	return rem
}

// trimZeroDigits drops leading (most-significant) zero digits of an
// unsigned magnitude.
func trimZeroDigits(d []uint64) []uint64 {
	for len(d) > 0 && d[len(d)-1] == 0 {
		d = d[:len(d)-1]
	}
	return d
}

// maxCharsPerDigitInRadix bounds how many base-radix characters one digit
// can produce; used only to pre-size the output.
func maxCharsPerDigitInRadix(radix int) int {
	return DigitBits/(bits.Len(uint(radix))-1) + 1
}
