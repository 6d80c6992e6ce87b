// Package hilbert maps between Hilbert curve indices and points of an
// N-dimensional integer hypercube using Skilling's transform.
//
// A curve with dims dimensions and bits bits per dimension covers the
// hypercube [0, 2^bits)^dims and its indices fill [0, 2^(dims*bits)).
// dims*bits may not exceed 64.
package hilbert

import (
	"runtime"

	"github.com/tilezen/hilbert/pkg/gray"
)

// MaxBits is the widest index a curve can produce.
const MaxBits = 64

// Curve is a validated (dims, bits) pair. It holds no mutable state and is
// safe for concurrent use.
type Curve struct {
	dims        uint
	bits        uint
	strict      bool
	concurrency int
}

// Option configures a Curve.
type Option func(*Curve)

// Strict makes Encode, Locate and the batch functions reject coordinates
// and indices outside the curve's domain with a *RangeError. Without it, out
// of range values are truncated to their low bits. Decode and DecodeTo have
// no error return and always truncate.
func Strict() Option {
	return func(c *Curve) { c.strict = true }
}

// Concurrency bounds the number of goroutines a batch call may use. Values
// below 1 mean GOMAXPROCS.
func Concurrency(n int) Option {
	return func(c *Curve) { c.concurrency = n }
}

// New validates dims and bits and returns the curve.
func New(dims, bits int, opts ...Option) (*Curve, error) {
	if err := Validate(dims, bits); err != nil {
		return nil, err
	}
	c := &Curve{dims: uint(dims), bits: uint(bits)}
	for _, opt := range opts {
		opt(c)
	}
	if c.concurrency < 1 {
		c.concurrency = runtime.GOMAXPROCS(0)
	}
	return c, nil
}

// Validate checks that both counts are positive and their product fits a
// uint64.
func Validate(dims, bits int) error {
	if dims < 1 || bits < 1 || dims > MaxBits || bits > MaxBits || dims*bits > MaxBits {
		return &InvalidParameterError{Dims: dims, Bits: bits}
	}
	return nil
}

// Dims is the number of coordinates in a point.
func (c *Curve) Dims() int { return int(c.dims) }

// Bits is the number of bits per coordinate.
func (c *Curve) Bits() int { return int(c.bits) }

// Side is the largest valid coordinate, 2^bits - 1.
func (c *Curve) Side() uint64 { return mask(c.bits) }

// MaxIndex is the largest valid index, 2^(dims*bits) - 1.
func (c *Curve) MaxIndex() uint64 { return mask(c.dims * c.bits) }

func mask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<n - 1
}

// Decode returns the point at index h. Bits of h above dims*bits are
// ignored.
func (c *Curve) Decode(h uint64) []uint64 {
	p := make([]uint64, c.dims)
	c.DecodeTo(p, h)
	return p
}

// Locate is Decode with an error return. On a Strict curve an index above
// MaxIndex is a *RangeError.
func (c *Curve) Locate(h uint64) ([]uint64, error) {
	if err := c.checkIndex(h); err != nil {
		return nil, err
	}
	return c.Decode(h), nil
}

// DecodeTo writes the point at index h into dst, which must have room for
// Dims values.
func (c *Curve) DecodeTo(dst []uint64, h uint64) {
	pl := planes{dims: c.dims, bits: c.bits}
	pl.load(gray.Word(h & c.MaxIndex()))
	pl.untangle()
	copy(dst[:c.dims], pl.rows[:c.dims])
}

// Encode returns the index of point p. p must have exactly Dims values.
func (c *Curve) Encode(p []uint64) (uint64, error) {
	if uint(len(p)) != c.dims {
		return 0, &ShapeMismatchError{Expected: int(c.dims), Actual: len(p), what: "point"}
	}
	if err := c.checkPoint(p); err != nil {
		return 0, err
	}
	return c.encode(p), nil
}

func (c *Curve) encode(p []uint64) uint64 {
	pl := planes{dims: c.dims, bits: c.bits}
	side := c.Side()
	for d, v := range p {
		pl.rows[d] = v & side
	}
	pl.tangle()
	return gray.FromWord(pl.store(), c.dims*c.bits)
}

func (c *Curve) checkPoint(p []uint64) error {
	if !c.strict {
		return nil
	}
	for _, v := range p {
		if v > c.Side() {
			return &RangeError{Value: v, Limit: c.Side(), what: "coordinate"}
		}
	}
	return nil
}

func (c *Curve) checkIndex(h uint64) error {
	if c.strict && h > c.MaxIndex() {
		return &RangeError{Value: h, Limit: c.MaxIndex(), what: "index"}
	}
	return nil
}
