package pack

import (
	"fmt"

	"github.com/tilezen/hilbert/pkg/coord"
)

// ToU64 will pack a coordinate into a u64: the zoom in the top 6 bits and
// the tile's Hilbert position below. The maximum zoom handled is 29.
// Coordinates with a higher zoom, or outside their zoom's grid, will
// result in an error.
//
// Packed values of one zoom sort in curve order, so nearby tiles get
// nearby keys.
func ToU64(c coord.Coord) (uint64, error) {
	if c.Z > 29 {
		return 0, fmt.Errorf("cannot pack coordinate into u64, z=%d > 29", c.Z)
	}
	if !c.Valid() {
		return 0, fmt.Errorf("cannot pack coordinate %s, outside zoom %d grid", c, c.Z)
	}
	return (uint64(c.Z) << 58) | c.Hilbert(), nil
}

// FromU64 will take a u64 and return a coordinate from that representation.
// It's expected that the u64 was created from a call to ToU64.
func FromU64(val uint64) coord.Coord {
	z := uint(val >> 58)
	return coord.FromHilbert(z, val&((1<<58)-1))
}
