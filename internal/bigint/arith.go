package bigint

import "math/bits"

// addDigits computes dst += src + carry over len(src) digits and returns
// the carry out. len(dst) must be at least len(src).
func addDigits(dst, src []uint64, carry uint64) uint64 {
	for i := range src {
		dst[i], carry = bits.Add64(dst[i], src[i], carry)
	}
	return carry
}

// subDigits computes dst -= src + borrow over len(src) digits and returns
// the borrow out.
func subDigits(dst, src []uint64, borrow uint64) uint64 {
	for i := range src {
		dst[i], borrow = bits.Sub64(dst[i], src[i], borrow)
	}
	return borrow
}

// addPart adds the single digit v to dst, propagating carry.
func addPart(dst []uint64, v uint64) {
	if len(dst) == 0 {
		return
	}
	var carry uint64
	dst[0], carry = bits.Add64(dst[0], v, 0)
	for i := 1; carry != 0 && i < len(dst); i++ {
		dst[i], carry = bits.Add64(dst[i], 0, carry)
	}
}

// subPart subtracts the single digit v from dst, propagating borrow.
func subPart(dst []uint64, v uint64) {
	if len(dst) == 0 {
		return
	}
	var borrow uint64
	dst[0], borrow = bits.Sub64(dst[0], v, 0)
	for i := 1; borrow != 0 && i < len(dst); i++ {
		dst[i], borrow = bits.Sub64(dst[i], 0, borrow)
	}
}

// negateDigits replaces d with its two's complement (complement plus one).
func negateDigits(d []uint64) {
	carry := uint64(1)
	for i := range d {
		d[i], carry = bits.Add64(^d[i], 0, carry)
	}
}

func complementDigits(d []uint64) {
	for i := range d {
		d[i] = ^d[i]
	}
}

// initNonCanonical copies src's digits into dst and sign-extends the rest
// of dst's logical length. The result is intentionally not canonical; it
// is the working form the in-place digit primitives operate on.
func initNonCanonical(dst *MutableBigInt, src BigInt) error {
	if dst.Len < len(src.Digits) {
		dst.Len = 0
		return ErrDestTooSmall
	}
	n := copy(dst.Digits, src.Digits)
	fill := signExtRef(src)
	for i := n; i < dst.Len; i++ {
		dst.Digits[i] = fill
	}
	return nil
}

// Compare returns -1, 0 or 1 as lhs is less than, equal to or greater
// than rhs. Both operands must be canonical: within a sign class the
// digit count then tracks magnitude, so values of unequal length compare
// by length alone.
func Compare(lhs, rhs BigInt) int {
	lneg, rneg := lhs.IsNegative(), rhs.IsNegative()
	if lneg != rneg {
		if lneg {
			return -1
		}
		return 1
	}

	ln, rn := len(lhs.Digits), len(rhs.Digits)
	if ln == rn {
		for i := ln - 1; i >= 0; i-- {
			switch {
			case lhs.Digits[i] < rhs.Digits[i]:
				return -1
			case lhs.Digits[i] > rhs.Digits[i]:
				return 1
			}
		}
		return 0
	}

	// More digits means greater magnitude; for negatives that inverts.
	if lneg {
		if ln < rn {
			return 1
		}
		return -1
	}
	if ln < rn {
		return -1
	}
	return 1
}

// CompareInt64 compares lhs against a signed scalar. The scalar is
// canonicalized into an at-most-one-digit value so both paths share one
// comparator; a single digit always suffices because rhs is signed.
func CompareInt64(lhs BigInt, rhs int64) int {
	digits := [1]uint64{uint64(rhs)}
	m := MutableBigInt{Digits: digits[:], Len: 1}
	ensureCanonical(&m)
	return Compare(lhs, m.Ref())
}

// UnaryMinusResultSize returns the digit count -src needs. Negating a
// negative value can require one extra sign digit: -0x8000...0000 does
// not fit the width that holds its operand.
func UnaryMinusResultSize(src BigInt) int {
	if src.IsNegative() {
		return len(src.Digits) + 1
	}
	return len(src.Digits)
}

// UnaryMinus writes -src into dst and canonicalizes. Except for zero, the
// result's sign always differs from src's. dst must hold at least
// UnaryMinusResultSize(src) digits.
func UnaryMinus(dst *MutableBigInt, src BigInt) error {
	if dst.Len < UnaryMinusResultSize(src) {
		dst.Len = 0
		return ErrDestTooSmall
	}
	if err := initNonCanonical(dst, src); err != nil {
		return err
	}
	negateDigits(dst.Digits[:dst.Len])
	ensureCanonical(dst)
	return nil
}

// UnaryNotResultSize returns the digit count ^src needs; the complement
// of zero (-1) still takes one digit.
func UnaryNotResultSize(src BigInt) int {
	return max(1, len(src.Digits))
}

// UnaryNot writes the bitwise complement of src into dst and
// canonicalizes. dst must hold at least UnaryNotResultSize(src) digits.
func UnaryNot(dst *MutableBigInt, src BigInt) error {
	if dst.Len < UnaryNotResultSize(src) {
		dst.Len = 0
		return ErrDestTooSmall
	}
	if err := initNonCanonical(dst, src); err != nil {
		return err
	}
	complementDigits(dst.Digits[:dst.Len])
	ensureCanonical(dst)
	return nil
}

// additiveOperation implements both addition and subtraction: dst is
// initialized with a sign extension of lhs, then op folds rhs in digit by
// digit with carry (or borrow) propagation, opPart resolves the carry
// against rhs's sign extension in the remaining digit, and the result is
// optionally negated before canonicalization.
//
// lhs must not be wider than rhs; callers reorder (and post-negate) to
// satisfy that. dst is clamped to rhs's width plus one digit — exactly
// what simulating infinite precision needs — so memory past that point is
// never touched.
func additiveOperation(
	op func(dst, src []uint64, carry uint64) uint64,
	opPart func(dst []uint64, v uint64),
	negateResult bool,
	dst *MutableBigInt,
	lhs, rhs BigInt,
) error {
	if dst.Len < len(rhs.Digits) {
		dst.Len = 0
		return ErrDestTooSmall
	}
	if len(rhs.Digits)+1 < dst.Len {
		dst.Len = len(rhs.Digits) + 1
	}

	if err := initNonCanonical(dst, lhs); err != nil {
		return err
	}

	carry := op(dst.Digits[:len(rhs.Digits)], rhs.Digits, 0)

	// At most one digit remains past rhs. Folding rhs's sign extension
	// and the carry into a single digit relies on uint64 wraparound:
	// carry 1 plus an all-ones extension cancels to zero, which is exact
	// for a one-digit remainder.
	if rest := dst.Digits[len(rhs.Digits):dst.Len]; len(rest) > 0 {
		opPart(rest, carry+signExtRef(rhs))
	}

	if negateResult {
		negateDigits(dst.Digits[:dst.Len])
	}

	ensureCanonical(dst)
	return nil
}

// AddResultSize returns the digit count lhs+rhs needs: one digit beyond
// the wider operand always accommodates the carry, though the canonical
// result may end up shorter.
func AddResultSize(lhs, rhs BigInt) int {
	return max(len(lhs.Digits), len(rhs.Digits)) + 1
}

// Add writes lhs+rhs into dst and canonicalizes. dst must hold at least
// the wider operand's digit count; AddResultSize always suffices.
func Add(dst *MutableBigInt, lhs, rhs BigInt) error {
	// Addition commutes, so the narrower operand seeds dst.
	if len(lhs.Digits) > len(rhs.Digits) {
		lhs, rhs = rhs, lhs
	}
	return additiveOperation(addDigits, addPart, false, dst, lhs, rhs)
}

// SubtractResultSize returns the digit count lhs-rhs needs.
func SubtractResultSize(lhs, rhs BigInt) int {
	return max(len(lhs.Digits), len(rhs.Digits)) + 1
}

// Subtract writes lhs-rhs into dst and canonicalizes. Subtraction does
// not commute: when lhs is the wider operand the routine computes
// rhs-lhs and negates, since lhs-rhs = -(rhs-lhs).
func Subtract(dst *MutableBigInt, lhs, rhs BigInt) error {
	if len(lhs.Digits) <= len(rhs.Digits) {
		return additiveOperation(subDigits, subPart, false, dst, lhs, rhs)
	}
	return additiveOperation(subDigits, subPart, true, dst, rhs, lhs)
}
