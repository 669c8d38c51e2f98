package bigint

import (
	"bytes"
	"errors"
	"testing"
)

func TestInitWithBytes(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		data     []byte
		wantLen  int
		wantTop  uint64
	}{
		{"empty data", 4, nil, 0, 0},
		{"single positive byte", 4, []byte{0x2a}, 1, 0x2a},
		{"single negative byte", 4, []byte{0xff}, 1, ^uint64(0)},
		{"partial digit sign extends", 2, []byte{0x01, 0x80}, 1, 0xffffffffffff8001},
		{"full digit positive", 2, []byte{1, 2, 3, 4, 5, 6, 7, 8}, 1, 0x0807060504030201},
		{"redundant bytes collapse", 4, []byte{0x2a, 0, 0, 0, 0, 0, 0, 0, 0}, 1, 0x2a},
		{"all zero bytes", 3, []byte{0, 0, 0}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Mutable(make([]uint64, tt.capacity))
			if err := InitWithBytes(&m, tt.data); err != nil {
				t.Fatalf("InitWithBytes(%x): %v", tt.data, err)
			}
			if m.Len != tt.wantLen {
				t.Fatalf("Len = %d, want %d", m.Len, tt.wantLen)
			}
			if tt.wantLen > 0 && m.Digits[m.Len-1] != tt.wantTop {
				t.Errorf("top digit = %#x, want %#x", m.Digits[m.Len-1], tt.wantTop)
			}
		})
	}
}

func TestInitWithBytesDestTooSmall(t *testing.T) {
	m := Mutable(make([]uint64, 1))
	data := bytes.Repeat([]byte{0x01}, DigitBytes+1)
	err := InitWithBytes(&m, data)
	if !errors.Is(err, ErrDestTooSmall) {
		t.Fatalf("err = %v, want ErrDestTooSmall", err)
	}
	if m.Len != 0 {
		t.Errorf("Len = %d after failure, want 0", m.Len)
	}
}

// Decoding a byte sequence and re-encoding the result must agree with
// trimming the input directly.
func TestBytesRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0xff},
		{0x7f},
		{0x80},
		{0x80, 0x00},
		{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00},
		bytes.Repeat([]byte{0xab}, 24),
	}
	for _, data := range cases {
		m := Mutable(make([]uint64, NumDigitsForBytes(len(data))+1))
		if err := InitWithBytes(&m, data); err != nil {
			t.Fatalf("InitWithBytes(%x): %v", data, err)
		}
		got := Bytes(m.Ref())
		want := DropExtraSignBits(data)
		if !bytes.Equal(got, want) {
			t.Errorf("round trip of %x: got %x, want %x", data, got, want)
		}
	}
}
