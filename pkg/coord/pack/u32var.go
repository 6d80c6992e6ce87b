package pack

import (
	"fmt"
	"math/bits"

	"github.com/tilezen/hilbert/pkg/coord"
)

// ToU32Var will pack the coordinate into a u32. The max coordinate zoom that
// can be handled is 15. An error is returned for coordinates with higher
// zooms or outside their zoom's grid.
//
// A marker bit sits just above the 2*z bit Hilbert position, so the zoom
// is recovered from the leading zeros. Values sort by zoom, then along the
// curve. For zooms < 15, you might want to consider the more
// straightforward ToU32 function instead.
func ToU32Var(c coord.Coord) (uint32, error) {
	if c.Z > 15 {
		return 0, fmt.Errorf("cannot pack coordinate into u32, z=%d > 15", c.Z)
	}
	if !c.Valid() {
		return 0, fmt.Errorf("cannot pack coordinate %s, outside zoom %d grid", c, c.Z)
	}
	return uint32(1<<(2*c.Z)) | uint32(c.Hilbert()), nil
}

// FromU32Var unpacks the u32 back into a coordinate. It's expected that the
// coordinate was originally packed with the ToU32Var function.
func FromU32Var(val uint32) (coord.Coord, error) {
	zeros := bits.LeadingZeros32(val)
	if zeros&1 == 0 {
		return coord.Coord{}, fmt.Errorf("tile value %d has %d leading zeros, which isn't valid", val, zeros)
	}
	z := uint((31 - zeros) >> 1)
	h := uint64(val) & ((1 << (2 * z)) - 1)
	return coord.FromHilbert(z, h), nil
}
