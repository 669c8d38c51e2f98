package bigint

import (
	"math"
	"math/bits"
)

const (
	doubleMantBits = 52
	doubleExpBias  = 1023
	doubleExpMask  = 0x7ff
)

// FromDoubleResultSize returns the digit count the integer part of src
// needs, derived from its biexponent. Magnitudes below one need zero
// digits. The bound is exact for the worst case: the integer part has at
// most exp+1 significant bits, plus one sign bit.
func FromDoubleResultSize(src float64) int {
	b := math.Float64bits(src)
	exp := int((b>>doubleMantBits)&doubleExpMask) - doubleExpBias
	if exp < 0 {
		return 0
	}
	return numDigitsForBits(exp + 2)
}

// FromDouble rounds src toward zero to an arbitrary-precision integer and
// stores it canonically in dst, matching ECMAScript BigInt(number)
// truncation. dst must hold at least FromDoubleResultSize(src) digits.
//
// src must be finite; NaN and the infinities are a caller contract
// violation and are not validated here.
func FromDouble(dst *MutableBigInt, src float64) error {
	need := FromDoubleResultSize(src)
	if dst.Len < need {
		dst.Len = 0
		return ErrDestTooSmall
	}
	if need == 0 {
		dst.Len = 0
		return nil
	}

	b := math.Float64bits(src)
	exp := int((b>>doubleMantBits)&doubleExpMask) - doubleExpBias
	mant := b&(1<<doubleMantBits-1) | 1<<doubleMantBits

	dst.Len = need
	for i := range dst.Digits[:need] {
		dst.Digits[i] = 0
	}

	// Place the 53-bit mantissa so its top bit lands on bit index exp;
	// a negative placement shift truncates the fractional bits away.
	shift := exp - doubleMantBits
	switch {
	case shift <= 0:
		dst.Digits[0] = mant >> uint(-shift)
	default:
		word, bit := shift/DigitBits, shift%DigitBits
		dst.Digits[word] = mant << uint(bit)
		if bit != 0 {
			if hi := mant >> uint(DigitBits-bit); hi != 0 {
				dst.Digits[word+1] = hi
			}
		}
	}

	if b>>63 != 0 {
		negateDigits(dst.Digits[:need])
	}

	ensureCanonical(dst)
	return nil
}

// ToDouble converts a canonical bigint to the nearest representable
// double with round-to-nearest-even, overflowing to ±Inf past the double
// range. Zero digits convert to 0.0.
func ToDouble(x BigInt) float64 {
	n := len(x.Digits)
	if n == 0 {
		return 0.0
	}

	neg := x.IsNegative()
	mag := make([]uint64, n)
	copy(mag, x.Digits)
	if neg {
		negateDigits(mag)
	}

	bl := bitLenDigits(mag)
	var res float64
	if bl <= doubleMantBits+1 {
		res = float64(mag[0])
	} else {
		shift := bl - (doubleMantBits + 1)
		top := shiftRightWord(mag, shift)
		round := digitBit(mag, shift-1)
		sticky := anyBitBelow(mag, shift-1)
		if round && (sticky || top&1 == 1) {
			top++
			if top == 1<<(doubleMantBits+1) {
				top >>= 1
				shift++
			}
		}
		res = math.Ldexp(float64(top), shift)
	}

	if neg {
		return -res
	}
	return res
}

// bitLenDigits returns the magnitude bit length of an unsigned digit
// sequence, ignoring leading zero digits.
func bitLenDigits(d []uint64) int {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] != 0 {
			return i*DigitBits + DigitBits - bits.LeadingZeros64(d[i])
		}
	}
	return 0
}

// shiftRightWord returns the low 64 bits of d >> shift. shift >= 0.
func shiftRightWord(d []uint64, shift int) uint64 {
	word, bit := shift/DigitBits, shift%DigitBits
	var lo, hi uint64
	if word < len(d) {
		lo = d[word]
	}
	if word+1 < len(d) {
		hi = d[word+1]
	}
	if bit == 0 {
		return lo
	}
	return lo>>uint(bit) | hi<<uint(DigitBits-bit)
}

func digitBit(d []uint64, i int) bool {
	if i < 0 {
		return false
	}
	word := i / DigitBits
	if word >= len(d) {
		return false
	}
	return d[word]&(1<<uint(i%DigitBits)) != 0
}

func anyBitBelow(d []uint64, i int) bool {
	if i <= 0 {
		return false
	}
	word, bit := i/DigitBits, i%DigitBits
	for k := 0; k < word && k < len(d); k++ {
		if d[k] != 0 {
			return true
		}
	}
	if bit == 0 || word >= len(d) {
		return false
	}
	return d[word]&(1<<uint(bit)-1) != 0
}
