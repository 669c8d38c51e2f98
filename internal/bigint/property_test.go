package bigint

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genValue produces an arbitrary canonical bigint from random bytes.
func genValue() gopter.Gen {
	return gen.SliceOf(gen.UInt8()).Map(func(raw []byte) BigInt {
		m := Mutable(make([]uint64, NumDigitsForBytes(len(raw))+1))
		if err := InitWithBytes(&m, raw); err != nil {
			panic(err)
		}
		return m.Ref()
	})
}

func TestCanonicalInvariant_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every operation result re-canonicalizes to itself", prop.ForAll(
		func(x, y BigInt) bool {
			sum := Mutable(make([]uint64, AddResultSize(x, y)))
			if err := Add(&sum, x, y); err != nil {
				return false
			}
			enc := Bytes(sum.Ref())
			return bytes.Equal(DropExtraSignBits(enc), enc)
		},
		genValue(), genValue(),
	))

	properties.Property("byte round trip matches direct trim", prop.ForAll(
		func(raw []byte) bool {
			m := Mutable(make([]uint64, NumDigitsForBytes(len(raw))+1))
			if err := InitWithBytes(&m, raw); err != nil {
				return false
			}
			return bytes.Equal(Bytes(m.Ref()), DropExtraSignBits(raw))
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}

func TestNegationInvolution_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("-(-x) == x", prop.ForAll(
		func(x BigInt) bool {
			a := Mutable(make([]uint64, UnaryMinusResultSize(x)))
			if err := UnaryMinus(&a, x); err != nil {
				return false
			}
			b := Mutable(make([]uint64, UnaryMinusResultSize(a.Ref())))
			if err := UnaryMinus(&b, a.Ref()); err != nil {
				return false
			}
			return Compare(b.Ref(), x) == 0
		},
		genValue(),
	))

	properties.Property("~~x == x", prop.ForAll(
		func(x BigInt) bool {
			a := Mutable(make([]uint64, UnaryNotResultSize(x)))
			if err := UnaryNot(&a, x); err != nil {
				return false
			}
			b := Mutable(make([]uint64, UnaryNotResultSize(a.Ref())))
			if err := UnaryNot(&b, a.Ref()); err != nil {
				return false
			}
			return Compare(b.Ref(), x) == 0
		},
		genValue(),
	))

	properties.TestingRun(t)
}

func TestCompareConsistency_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("compare is antisymmetric", prop.ForAll(
		func(x, y BigInt) bool {
			return Compare(x, y) == -Compare(y, x)
		},
		genValue(), genValue(),
	))

	properties.Property("compare is reflexive", prop.ForAll(
		func(x BigInt) bool { return Compare(x, x) == 0 },
		genValue(),
	))

	properties.Property("compare agrees with subtraction sign", prop.ForAll(
		func(x, y BigInt) bool {
			diff := Mutable(make([]uint64, SubtractResultSize(x, y)))
			if err := Subtract(&diff, x, y); err != nil {
				return false
			}
			switch Compare(x, y) {
			case 0:
				return diff.Len == 0
			case -1:
				return diff.Ref().IsNegative()
			default:
				return !diff.Ref().IsNegative() && diff.Len > 0
			}
		},
		genValue(), genValue(),
	))

	properties.TestingRun(t)
}

func TestAddSubtractIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("(x + y) - y == x", prop.ForAll(
		func(x, y BigInt) bool {
			sum := Mutable(make([]uint64, AddResultSize(x, y)))
			if err := Add(&sum, x, y); err != nil {
				return false
			}
			diff := Mutable(make([]uint64, SubtractResultSize(sum.Ref(), y)))
			if err := Subtract(&diff, sum.Ref(), y); err != nil {
				return false
			}
			return Compare(diff.Ref(), x) == 0
		},
		genValue(), genValue(),
	))

	properties.Property("x + y == y + x", prop.ForAll(
		func(x, y BigInt) bool {
			a := Mutable(make([]uint64, AddResultSize(x, y)))
			b := Mutable(make([]uint64, AddResultSize(y, x)))
			if err := Add(&a, x, y); err != nil {
				return false
			}
			if err := Add(&b, y, x); err != nil {
				return false
			}
			return Compare(a.Ref(), b.Ref()) == 0
		},
		genValue(), genValue(),
	))

	properties.TestingRun(t)
}

func TestStringRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("toString then parse reproduces x for every radix", prop.ForAll(
		func(x BigInt, radix int) bool {
			s, err := ToString(x, radix)
			if err != nil {
				return false
			}

			// The literal parser only accepts decimal strings with a
			// sign; other radixes go through the equivalent base-r
			// decoder.
			var parsed ParsedBigInt
			if radix == 10 {
				parsed, err = ParseStringIntegerLiteral(s)
			} else {
				parsed, err = decodeBaseR(s, radix)
			}
			if err != nil {
				return false
			}
			m := Mutable(make([]uint64, parsed.NumDigits()))
			if err := InitWithBytes(&m, parsed.Bytes()); err != nil {
				return false
			}
			return Compare(m.Ref(), x) == 0
		},
		genValue(), gen.IntRange(2, 36),
	))

	properties.TestingRun(t)
}

// decodeBaseR decodes the ToString output format for an arbitrary radix:
// an optional '-' followed by lowercase base-r digits.
func decodeBaseR(s string, radix int) (ParsedBigInt, error) {
	sign := SignNone
	if len(s) > 0 && s[0] == '-' {
		sign = SignMinus
		s = s[1:]
	}
	return parsedBigIntFrom(radix, sign, s)
}
