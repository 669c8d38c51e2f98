package bigint

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"fortio.org/safecast"
)

// ParsedSign is the optional explicit sign scanned off a decimal string
// integer literal. The 0x/0o/0b forms are unsigned magnitudes and always
// carry SignNone.
type ParsedSign uint8

const (
	SignNone ParsedSign = iota
	SignPlus
	SignMinus
)

func (s ParsedSign) String() string {
	switch s {
	case SignPlus:
		return "+"
	case SignMinus:
		return "-"
	default:
		return ""
	}
}

// CodeUnit constrains literal input to the two code unit widths JS
// strings come in.
type CodeUnit interface {
	~byte | ~uint16
}

// cursor is a position in a literal's code units with bounded lookahead.
// A saved mark restores the position exactly, which is how the grammar
// backtracks from a failed non-decimal attempt.
type cursor[T CodeUnit] struct {
	src []T
	off int
	end int
}

func (c *cursor[T]) eof() bool { return c.off >= c.end }

func (c *cursor[T]) peek() (T, bool) {
	return c.peekAt(0)
}

func (c *cursor[T]) peekAt(n int) (T, bool) {
	var zero T
	if c.off+n >= c.end {
		return zero, false
	}
	return c.src[c.off+n], true
}

func (c *cursor[T]) bump() (T, bool) {
	u, ok := c.peek()
	if ok {
		c.off++
	}
	return u, ok
}

// mark saves the cursor position for later backtracking.
type mark int

func (c *cursor[T]) mark() mark   { return mark(c.off) }
func (c *cursor[T]) reset(m mark) { c.off = int(m) }

// isLiteralWhiteSpace reports whether u is in the whitespace set string
// integer literals may be surrounded with (ES5.1 7.2).
func isLiteralWhiteSpace(u uint16) bool {
	switch u {
	case 0x0009, 0x000b, 0x000c, 0x0020, 0x00a0, 0xfeff,
		0x1680, 0x202f, 0x205f, 0x3000:
		return true
	}
	return u >= 0x2000 && u <= 0x200a
}

// literalParser scans one string integer literal. digits accumulates the
// scanned digit run verbatim (case preserved); radix and sign are filled
// in by the grammar productions.
type literalParser[T CodeUnit] struct {
	cur    cursor[T]
	radix  uint8
	sign   ParsedSign
	digits []byte
}

func newLiteralParser[T CodeUnit](src []T) *literalParser[T] {
	p := &literalParser[T]{
		cur:    cursor[T]{src: src, end: len(src)},
		sign:   SignNone,
		digits: make([]byte, 0, len(src)),
	}

	// Tolerate one trailing NUL: hosts hand over C-string storage.
	if p.cur.end > 0 && src[p.cur.end-1] == 0 {
		p.cur.end--
	}

	// Literals may be surrounded by whitespace; strip both ends now.
	for !p.cur.eof() && isLiteralWhiteSpace(uint16(src[p.cur.off])) {
		p.cur.off++
	}
	for p.cur.off < p.cur.end && isLiteralWhiteSpace(uint16(src[p.cur.end-1])) {
		p.cur.end--
	}

	return p
}

func (p *literalParser[T]) fail(msg string) error {
	return fmt.Errorf("%w: %s", ErrParse, msg)
}

// checkEnd succeeds when the whole input was consumed; a NUL counts as
// end of input.
func (p *literalParser[T]) checkEnd(msg string) error {
	if u, ok := p.cur.peek(); ok && u != 0 {
		return p.fail(msg)
	}
	return nil
}

// eatIf consumes the next code unit when it is one of the given ASCII
// characters and returns it.
func (p *literalParser[T]) eatIf(chars string) (byte, bool) {
	u, ok := p.cur.peek()
	if !ok || uint64(u) > 0x7f {
		return 0, false
	}
	b := byte(u)
	for i := 0; i < len(chars); i++ {
		if chars[i] == b {
			p.cur.bump()
			return b, true
		}
	}
	return 0, false
}

// digitRun consumes a maximal run of the given digit characters into
// p.digits and reports whether at least one was consumed.
func (p *literalParser[T]) digitRun(chars string) bool {
	start := len(p.digits)
	for {
		b, ok := p.eatIf(chars)
		if !ok {
			break
		}
		p.digits = append(p.digits, b)
	}
	return len(p.digits) > start
}

const (
	binaryDigits  = "01"
	octalDigits   = "01234567"
	decimalDigits = "0123456789"
	hexDigits     = "0123456789ABCDEFabcdef"
)

// nonDecimalIntegerLiteral attempts the 0b/0o/0x grammars; the leading
// zero has already been consumed.
func (p *literalParser[T]) nonDecimalIntegerLiteral() bool {
	if _, ok := p.eatIf("Bb"); ok {
		p.radix = 2
		return p.digitRun(binaryDigits)
	}
	if _, ok := p.eatIf("Oo"); ok {
		p.radix = 8
		return p.digitRun(octalDigits)
	}
	if _, ok := p.eatIf("Xx"); ok {
		p.radix = 16
		return p.digitRun(hexDigits)
	}
	return false
}

// decimalLiteral consumes an optional leading-zero run, keeping one zero
// when the input is nothing but zeros, then a decimal digit run.
func (p *literalParser[T]) decimalLiteral() bool {
	for {
		u, ok := p.cur.peek()
		if !ok || uint64(u) > 0x7f || byte(u) != '0' {
			break
		}
		if _, ok := p.cur.peekAt(1); !ok {
			break
		}
		p.cur.bump()
	}
	p.radix = 10
	return p.digitRun(decimalDigits)
}

// goal parses one complete StringIntegerLiteral:
//
//	Start -> TryNonDecimalPrefix -> RequireEndOfInput -> Done
//	      \> Backtrack -> OptionalSign -> DecimalDigits -> RequireEndOfInput -> Done
//
// An empty literal (after whitespace trim) denotes zero.
func (p *literalParser[T]) goal() error {
	u, ok := p.cur.peek()
	if !ok {
		p.radix = 10
		p.digits = append(p.digits[:0], '0')
		return nil
	}

	if uint64(u) <= 0x7f && byte(u) == '0' {
		// Save the position: this may turn out to be a decimal literal
		// with leading zeros rather than a 0x/0o/0b form.
		atZero := p.cur.mark()
		p.cur.bump()

		if p.nonDecimalIntegerLiteral() {
			return p.checkEnd("trailing data in non-decimal literal")
		}

		p.cur.reset(atZero)
		p.digits = p.digits[:0]
	}

	if b, ok := p.eatIf("+-"); ok {
		if b == '+' {
			p.sign = SignPlus
		} else {
			p.sign = SignMinus
		}
	}

	if p.decimalLiteral() {
		return p.checkEnd("trailing data in decimal literal")
	}

	return p.fail("unexpected character")
}

func scanLiteral[T CodeUnit](src []T) (radix int, sign ParsedSign, digits string, err error) {
	p := newLiteralParser[T](src)
	if err := p.goal(); err != nil {
		return 0, SignNone, "", err
	}
	return int(p.radix), p.sign, string(p.digits), nil
}

// ScanStringIntegerLiteral scans src as an ECMAScript StringIntegerLiteral
// and returns the radix (2, 8, 10 or 16), the explicit sign (decimal form
// only) and the digit characters with leading zeros collapsed.
func ScanStringIntegerLiteral(src string) (int, ParsedSign, string, error) {
	return scanLiteral([]byte(src))
}

// ScanStringIntegerLiteralUTF16 is ScanStringIntegerLiteral over 16-bit
// code units.
func ScanStringIntegerLiteralUTF16(src []uint16) (int, ParsedSign, string, error) {
	return scanLiteral(src)
}

// ParsedBigInt owns the minimal little-endian two's-complement encoding
// of a successfully parsed literal, ready for InitWithBytes.
type ParsedBigInt struct {
	bytes []byte
}

// Bytes returns the owned encoding. Callers must not mutate it.
func (p ParsedBigInt) Bytes() []byte { return p.bytes }

// NumDigits returns the digit count a buffer needs to materialize the
// parsed value.
func (p ParsedBigInt) NumDigits() int { return NumDigitsForBytes(len(p.bytes)) }

// maxBitsPerChar bounds the binary size of one base-radix character:
// ceil(log2(radix)). Exact for the power-of-two radixes, a safe
// overestimate otherwise.
func maxBitsPerChar(radix int) int {
	return bits.Len(uint(radix - 1))
}

func digitValue(ch byte) uint64 {
	switch {
	case ch >= '0' && ch <= '9':
		return uint64(ch - '0')
	case ch >= 'a' && ch <= 'z':
		return uint64(ch-'a') + 10
	default:
		return uint64(ch-'A') + 10
	}
}

// mulAddSmall computes d = d*m + a in place. The caller sizes d so the
// final carry is always zero.
func mulAddSmall(d []uint64, m, a uint64) {
	carry := a
	for i := range d {
		hi, lo := bits.Mul64(d[i], m)
		var c uint64
		d[i], c = bits.Add64(lo, carry, 0)
		carry = hi + c
	}
}

func parsedBigIntFrom(radix int, sign ParsedSign, digits string) (ParsedBigInt, error) {
	// Size the working buffer for the worst case plus the sign bit,
	// rounded up to whole digits.
	bitsNeeded, err := safecast.Conv[uint32](maxBitsPerChar(radix)*len(digits) + 1)
	if err != nil {
		return ParsedBigInt{}, fmt.Errorf("%w: literal too large", ErrParse)
	}
	words := numDigitsForBits(int(bitsNeeded))

	mag := make([]uint64, words)
	for i := 0; i < len(digits); i++ {
		mulAddSmall(mag, uint64(radix), digitValue(digits[i]))
	}

	if sign == SignMinus {
		negateDigits(mag)
	}

	buf := make([]byte, len(mag)*DigitBytes)
	for i, d := range mag {
		binary.LittleEndian.PutUint64(buf[i*DigitBytes:], d)
	}
	return ParsedBigInt{bytes: DropExtraSignBits(buf)}, nil
}

func parseLiteral[T CodeUnit](src []T) (ParsedBigInt, error) {
	radix, sign, digits, err := scanLiteral(src)
	if err != nil {
		return ParsedBigInt{}, err
	}
	return parsedBigIntFrom(radix, sign, digits)
}

// ParseStringIntegerLiteral parses src as a StringIntegerLiteral and
// returns the owned two's-complement encoding of its value.
func ParseStringIntegerLiteral(src string) (ParsedBigInt, error) {
	return parseLiteral([]byte(src))
}

// ParseStringIntegerLiteralUTF16 is ParseStringIntegerLiteral over 16-bit
// code units.
func ParseStringIntegerLiteralUTF16(src []uint16) (ParsedBigInt, error) {
	return parseLiteral(src)
}
