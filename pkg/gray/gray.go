package gray

import "math/bits"

// Bits is a big-endian sequence of binary digits: index 0 is the most
// significant bit.
type Bits []bool

// FromUint64 returns the low n bits of x as a big-endian sequence.
// n is capped at 64.
func FromUint64(x uint64, n int) Bits {
	if n > 64 {
		n = 64
	}
	if n < 0 {
		n = 0
	}
	b := make(Bits, n)
	for i := range b {
		b[i] = (x>>uint(n-1-i))&1 == 1
	}
	return b
}

// Uint64 packs the sequence into the low bits of a word. Only the last 64
// digits are kept.
func (b Bits) Uint64() uint64 {
	var x uint64
	for _, v := range b {
		x <<= 1
		if v {
			x |= 1
		}
	}
	return x
}

// RightShift returns a copy of b shifted k places towards the end, with k
// zeros inserted at the front and the last k digits dropped. Shifting by
// the length or more yields all zeros.
func RightShift(b Bits, k int) Bits {
	out := make(Bits, len(b))
	if k <= 0 {
		copy(out, b)
		return out
	}
	if k >= len(b) {
		return out
	}
	copy(out[k:], b[:len(b)-k])
	return out
}

func xor(a, b Bits) Bits {
	out := make(Bits, len(a))
	for i := range a {
		out[i] = a[i] != b[i]
	}
	return out
}

// ToGray converts a binary sequence to its Gray code, b ^ (b >> 1).
func ToGray(b Bits) Bits {
	return xor(b, RightShift(b, 1))
}

// FromGray converts a Gray coded sequence back to binary.
//
// Each output digit is the XOR of all input digits at or before it. Rather
// than carry that prefix one digit at a time, the sequence is folded onto
// itself with shifts of 2^(ceil(log2 n)-1), ..., 2, 1, which needs only
// log2(n) passes.
func FromGray(g Bits) Bits {
	out := make(Bits, len(g))
	copy(out, g)
	for shift := firstShift(len(g)); shift > 0; shift /= 2 {
		out = xor(out, RightShift(out, shift))
	}
	return out
}

// firstShift is 2^(ceil(log2 n)-1), or 0 when n < 2.
func firstShift(n int) int {
	if n < 2 {
		return 0
	}
	return 1 << (bits.Len(uint(n-1)) - 1)
}

// Word is ToGray on a machine word.
func Word(x uint64) uint64 {
	return x ^ (x >> 1)
}

// FromWord is FromGray on the low n bits of g. Bits above n must be zero.
func FromWord(g uint64, n uint) uint64 {
	for shift := firstShift(int(n)); shift > 0; shift /= 2 {
		g ^= g >> uint(shift)
	}
	return g
}
