package hilbert

import (
	"context"
	"math"

	"github.com/tilezen/hilbert/pkg/util"
)

// minChunk is the smallest run of elements handed to one goroutine.
const minChunk = 4096

// Array is a row-major batch of unsigned integers. A nil or empty Shape
// with a single datum is a scalar.
type Array struct {
	Shape []int
	Data  []uint64
}

// Scalar wraps a single value as a rank 0 array.
func Scalar(v uint64) Array {
	return Array{Data: []uint64{v}}
}

// Vector wraps values as a rank 1 array.
func Vector(vs ...uint64) Array {
	return Array{Shape: []int{len(vs)}, Data: vs}
}

// Size is the number of elements the shape describes, or -1 if a
// dimension is negative or the product overflows an int.
func (a Array) Size() int {
	n, ok := a.size()
	if !ok {
		return -1
	}
	return n
}

func (a Array) size() (int, bool) {
	for _, s := range a.Shape {
		if s < 0 {
			return 0, false
		}
		if s == 0 {
			return 0, true
		}
	}
	n := 1
	for _, s := range a.Shape {
		if n > math.MaxInt/s {
			return 0, false
		}
		n *= s
	}
	return n, true
}

// Rank is the number of axes.
func (a Array) Rank() int { return len(a.Shape) }

// At returns the element at the given multi-index.
func (a Array) At(idx ...int) uint64 {
	off := 0
	for i, s := range a.Shape {
		off = off*s + idx[i]
	}
	return a.Data[off]
}

func (a Array) check() error {
	for _, s := range a.Shape {
		if s < 0 {
			return &ShapeMismatchError{Expected: 0, Actual: s, what: "axis"}
		}
	}
	n, ok := a.size()
	if !ok {
		return &ShapeMismatchError{Expected: len(a.Data), Actual: -1, what: "shape"}
	}
	if len(a.Data) != n {
		return &ShapeMismatchError{Expected: n, Actual: len(a.Data), what: "data"}
	}
	return nil
}

// Decode maps every index in indices to its point. The result has the
// shape of indices with a trailing axis of size dims.
func Decode(ctx context.Context, indices Array, dims, bits int, opts ...Option) (Array, error) {
	c, err := New(dims, bits, opts...)
	if err != nil {
		return Array{}, err
	}
	return c.DecodeArray(ctx, indices)
}

// Encode maps every point in coords to its index. The trailing axis of
// coords must have size dims; the result drops it.
func Encode(ctx context.Context, coords Array, dims, bits int, opts ...Option) (Array, error) {
	c, err := New(dims, bits, opts...)
	if err != nil {
		return Array{}, err
	}
	return c.EncodeArray(ctx, coords)
}

// DecodeArray is Decode on an existing curve.
func (c *Curve) DecodeArray(ctx context.Context, indices Array) (Array, error) {
	if err := indices.check(); err != nil {
		return Array{}, err
	}
	for _, h := range indices.Data {
		if err := c.checkIndex(h); err != nil {
			return Array{}, err
		}
	}

	dims := int(c.dims)
	out := Array{
		Shape: append(append(make([]int, 0, indices.Rank()+1), indices.Shape...), dims),
		Data:  make([]uint64, len(indices.Data)*dims),
	}
	err := util.ForEachChunk(ctx, len(indices.Data), minChunk, c.concurrency, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			c.DecodeTo(out.Data[i*dims:(i+1)*dims], indices.Data[i])
		}
		return nil
	})
	if err != nil {
		return Array{}, err
	}
	return out, nil
}

// EncodeArray is Encode on an existing curve.
func (c *Curve) EncodeArray(ctx context.Context, coords Array) (Array, error) {
	if err := coords.check(); err != nil {
		return Array{}, err
	}
	dims := int(c.dims)
	if coords.Rank() == 0 || coords.Shape[coords.Rank()-1] != dims {
		actual := 0
		if coords.Rank() > 0 {
			actual = coords.Shape[coords.Rank()-1]
		}
		return Array{}, &ShapeMismatchError{Expected: dims, Actual: actual}
	}
	if err := c.checkPoint(coords.Data); err != nil {
		return Array{}, err
	}

	n := len(coords.Data) / dims
	out := Array{
		Shape: append([]int(nil), coords.Shape[:coords.Rank()-1]...),
		Data:  make([]uint64, n),
	}
	err := util.ForEachChunk(ctx, n, minChunk, c.concurrency, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out.Data[i] = c.encode(coords.Data[i*dims : (i+1)*dims])
		}
		return nil
	})
	if err != nil {
		return Array{}, err
	}
	return out, nil
}
