package hilbert

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter matches any *InvalidParameterError.
	ErrInvalidParameter = errors.New("invalid curve parameters")
	// ErrShapeMismatch matches any *ShapeMismatchError.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrOutOfRange matches any *RangeError.
	ErrOutOfRange = errors.New("value out of range")
)

// InvalidParameterError reports a dimension/bit count pair that cannot be
// represented in a uint64 index.
type InvalidParameterError struct {
	Dims int
	Bits int
}

func (e *InvalidParameterError) Error() string {
	if e.Dims < 1 || e.Bits < 1 {
		return fmt.Sprintf("num_dims=%d and num_bits=%d must both be positive", e.Dims, e.Bits)
	}
	return fmt.Sprintf("num_dims=%d * num_bits=%d = %d bits, which can't be encoded into a uint64",
		e.Dims, e.Bits, e.Dims*e.Bits)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// ShapeMismatchError reports coordinates whose trailing axis does not
// match the curve dimensionality, or an Array whose data does not fill its
// shape. An Actual of -1 means the shape's size overflows an int.
type ShapeMismatchError struct {
	Expected int
	Actual   int
	what     string
}

func (e *ShapeMismatchError) Error() string {
	what := e.what
	if what == "shape" && e.Actual < 0 {
		return fmt.Sprintf("shape mismatch: shape size overflows int, data has %d elements", e.Expected)
	}
	if what == "" {
		what = "last axis"
	}
	return fmt.Sprintf("shape mismatch: %s has size %d, expected %d", what, e.Actual, e.Expected)
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }

// RangeError reports an index or coordinate outside the curve's domain.
// Only returned by curves built with Strict.
type RangeError struct {
	Value uint64
	Limit uint64
	what  string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range, must be <= %d", e.what, e.Value, e.Limit)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }
