// Package bigint is the arbitrary-precision signed-integer engine of the
// tern runtime's numeric tower. It implements ECMAScript BigInt semantics
// (literal parsing, base conversion, comparison, negation and complement,
// addition and subtraction) over caller-allocated digit buffers.
//
// The engine never allocates result storage itself: callers ask the
// result-size predictor paired with an operation for the digit count the
// result needs, allocate a buffer of that size, and pass it in as a
// MutableBigInt. Every externally observable value is canonical — the
// shortest two's-complement digit sequence for the value, with zero
// encoded as zero digits.
//
// All operations are pure functions over their buffers; callers must
// serialize concurrent access per buffer.
package bigint
