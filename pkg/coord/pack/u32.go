package pack

import (
	"fmt"

	"github.com/tilezen/hilbert/pkg/coord"
)

// ToU32 will pack a coordinate into a u32, zoom in the top 4 bits and
// Hilbert position below. The maximum zoom handled is 14.
// Coordinates with a higher zoom, or outside their zoom's grid, will
// result in an error.
func ToU32(c coord.Coord) (uint32, error) {
	if c.Z > 14 {
		return 0, fmt.Errorf("cannot pack coordinate into u32, z=%d > 14", c.Z)
	}
	if !c.Valid() {
		return 0, fmt.Errorf("cannot pack coordinate %s, outside zoom %d grid", c, c.Z)
	}
	return uint32(c.Z<<28) | uint32(c.Hilbert()), nil
}

// FromU32 will take a u32 and return a coordinate from that representation.
// It's expected that the u32 was created from a call to ToU32.
func FromU32(val uint32) coord.Coord {
	z := uint((val >> 28) & ((1 << 4) - 1))
	return coord.FromHilbert(z, uint64(val&((1<<28)-1)))
}
