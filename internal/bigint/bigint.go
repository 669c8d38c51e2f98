package bigint

import "errors"

// Digit geometry. Values are base-2^64 little-endian digit sequences
// (Digits[0] is least significant), always interpreted as two's complement.
const (
	DigitBytes = 8
	DigitBits  = 64
)

var (
	// ErrDestTooSmall indicates the caller under-allocated the destination
	// for the operands actually supplied. The destination length is reset
	// to zero; the caller must re-run the size predictor and reallocate.
	ErrDestTooSmall = errors.New("destination buffer too small")
	// ErrParse indicates a string is not a valid bigint literal.
	ErrParse = errors.New("invalid bigint literal")
	// ErrRadix indicates a radix outside [2, 36].
	ErrRadix = errors.New("radix out of range")
)

// BigInt is a read-only view of a canonical two's-complement digit buffer.
// It never owns the backing array; lifetime is the caller's.
//
// Canonical zero is represented as nil/empty Digits.
type BigInt struct {
	Digits []uint64
}

// Zero returns the canonical zero value.
func Zero() BigInt { return BigInt{} }

// IsZero reports whether x is zero. x must be canonical.
func (x BigInt) IsZero() bool { return len(x.Digits) == 0 }

// IsNegative reports whether x is negative: the signed interpretation of
// the most-significant digit is below zero. Zero is never negative.
func (x BigInt) IsNegative() bool {
	n := len(x.Digits)
	return n > 0 && int64(x.Digits[n-1]) < 0
}

// MutableBigInt is a writable view over a caller-allocated digit buffer.
// Len is in/out: the usable digit count on entry, the canonical digit
// count after a mutating operation. Operations only ever shrink it.
type MutableBigInt struct {
	Digits []uint64
	Len    int
}

// Mutable wraps a caller-allocated buffer as a writable view spanning the
// whole buffer. Callers size the buffer with the matching result-size
// predictor before invoking a mutating operation.
func Mutable(digits []uint64) MutableBigInt {
	return MutableBigInt{Digits: digits, Len: len(digits)}
}

// Ref returns the read-only view of the logical value held in m.
func (m *MutableBigInt) Ref() BigInt { return BigInt{Digits: m.Digits[:m.Len]} }

// signExt returns the digit that sign-extends d: all ones when d is
// negative under signed interpretation, zero otherwise.
func signExt(d uint64) uint64 {
	if int64(d) < 0 {
		return ^uint64(0)
	}
	return 0
}

func signExtByte(b byte) byte {
	if b&0x80 != 0 {
		return 0xff
	}
	return 0
}

// signExtRef returns the sign-extension digit for a value; a zero-digit
// value extends with zeros.
func signExtRef(x BigInt) uint64 {
	if len(x.Digits) == 0 {
		return 0
	}
	return signExt(x.Digits[len(x.Digits)-1])
}

// NumDigitsForBytes returns the digit count a buffer needs to hold n
// bytes of two's-complement data, as produced by Bytes or the literal
// parser. It is the size predictor paired with InitWithBytes.
func NumDigitsForBytes(n int) int {
	return (n + DigitBytes - 1) / DigitBytes
}

func numDigitsForBits(n int) int {
	return (n + DigitBits - 1) / DigitBits
}
