package bigint

import "encoding/binary"

// Bytes returns the minimal little-endian two's-complement encoding of x,
// the exact layout bigint values keep when persisted. Zero encodes as an
// empty slice. The result is freshly allocated.
func Bytes(x BigInt) []byte {
	buf := make([]byte, len(x.Digits)*DigitBytes)
	for i, d := range x.Digits {
		binary.LittleEndian.PutUint64(buf[i*DigitBytes:], d)
	}
	return DropExtraSignBits(buf)
}

// InitWithBytes decodes data, a little-endian two's-complement byte
// sequence, into dst: the bytes are copied, the remaining capacity is
// filled with the sign of the last data byte, and the result is
// canonicalized. Empty data yields the canonical zero.
//
// Fails with ErrDestTooSmall (and dst.Len reset to zero) when data does
// not fit dst's byte capacity.
func InitWithBytes(dst *MutableBigInt, data []byte) error {
	if dst.Len*DigitBytes < len(data) {
		dst.Len = 0
		return ErrDestTooSmall
	}
	if len(data) == 0 {
		dst.Len = 0
		return nil
	}

	fill := signExtByte(data[len(data)-1])

	// Assemble each digit from data bytes, padding the trailing partial
	// digit and the rest of the buffer with the sign byte. The byte to
	// digit mapping is explicitly little-endian regardless of host order.
	var w [DigitBytes]byte
	for i := 0; i < dst.Len; i++ {
		base := i * DigitBytes
		for j := 0; j < DigitBytes; j++ {
			if k := base + j; k < len(data) {
				w[j] = data[k]
			} else {
				w[j] = fill
			}
		}
		dst.Digits[i] = binary.LittleEndian.Uint64(w[:])
	}

	ensureCanonical(dst)
	return nil
}
