package bigint

// DropExtraSignBits returns the shortest prefix of src (a little-endian
// two's-complement byte sequence) such that sign-extending it reproduces
// the original value. For example {0xff, 0x00, 0x00, 0x00} trims to
// {0xff, 0x00}: the 0x00 must stay or the value would turn negative.
// Empty input yields empty output.
//
// This is the single source of truth for canonicalization; the byte
// sequences it returns are the external serialization format of the
// engine.
func DropExtraSignBits(src []byte) []byte {
	if len(src) == 0 {
		return src
	}

	drop := signExtByte(src[len(src)-1])

	// Walk backwards dropping every byte that a sign extension of its
	// neighbor would reconstruct. prev trails one step behind so the last
	// dropped byte can be restored when the trim went one too far.
	prev := src
	for len(src) > 0 && src[len(src)-1] == drop {
		prev = src
		src = src[:len(src)-1]
	}

	var last byte
	if len(src) > 0 {
		last = src[len(src)-1]
	}
	if signExtByte(last) == drop {
		return src
	}
	return prev
}

// ensureCanonical trims any digits in dst that a sign extension of their
// neighbor can infer. It is the digit-granular form of DropExtraSignBits:
// only whole redundant digits are dropped, the count never grows, and the
// buffer is untouched beyond the adjusted length.
func ensureCanonical(dst *MutableBigInt) {
	n := dst.Len
	for n > 0 {
		top := dst.Digits[n-1]
		if n == 1 {
			if top == 0 {
				n = 0
			}
			break
		}
		if top != signExt(dst.Digits[n-2]) || (top != 0 && top != ^uint64(0)) {
			break
		}
		n--
	}
	dst.Len = n
}
