package coord

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tilezen/hilbert/pkg/hilbert"
)

// MaxZoom is the deepest zoom whose x and y fit a 2-D curve index.
const MaxZoom = 32

// Coord contains the Z, X, Y coordinate for a particular tile.
type Coord struct {
	Z, X, Y uint
}

var curves [MaxZoom + 1]*hilbert.Curve

func init() {
	for z := 1; z <= MaxZoom; z++ {
		c, err := hilbert.New(2, z)
		if err != nil {
			panic(err)
		}
		curves[z] = c
	}
}

// Hilbert returns the tile's position along the 2-D Hilbert curve that
// covers its zoom level. Zoom 0 has a single tile at position 0.
// Coordinates outside the zoom's range are truncated.
func (c Coord) Hilbert() uint64 {
	if c.Z == 0 || c.Z > MaxZoom {
		return 0
	}
	h, err := curves[c.Z].Encode([]uint64{uint64(c.X), uint64(c.Y)})
	if err != nil {
		panic(err)
	}
	return h
}

// FromHilbert returns the tile at position h along the curve for zoom z.
func FromHilbert(z uint, h uint64) Coord {
	if z == 0 || z > MaxZoom {
		return Coord{Z: z}
	}
	p := curves[z].Decode(h)
	return Coord{Z: z, X: uint(p[0]), Y: uint(p[1])}
}

// Valid reports whether x and y are inside the zoom's grid.
func (c Coord) Valid() bool {
	if c.Z > MaxZoom {
		return false
	}
	side := uint64(1) << c.Z
	return uint64(c.X) < side && uint64(c.Y) < side
}

// ZoomTo returns a new coordinate with the new zoom.
func (c Coord) ZoomTo(z uint) Coord {
	var result Coord
	if c.Z == z {
		result = c
	} else if c.Z < z {
		delta := z - c.Z
		result = Coord{z, c.X << delta, c.Y << delta}
	} else {
		delta := c.Z - z
		result = Coord{z, c.X >> delta, c.Y >> delta}
	}
	return result
}

// Parent returns the tile one zoom up. Its Hilbert position is the
// child's shifted right by two. The zoom 0 tile is its own parent.
func (c Coord) Parent() Coord {
	if c.Z == 0 {
		return c
	}
	return c.ZoomTo(c.Z - 1)
}

// String is the Coord Stringer implementation.
// It returns the coordinate in z/x/y.
func (c Coord) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Z, c.X, c.Y)
}

// LessHilbert returns true if the coordinate is "less than" the argument.
// First z is considered, then the position along the zoom's curve.
func (c Coord) LessHilbert(o Coord) bool {
	if c.Z != o.Z {
		return c.Z < o.Z
	}
	return c.Hilbert() < o.Hilbert()
}

// ByHilbert is a wrapper type used for sorting.
type ByHilbert []Coord

func (a ByHilbert) Len() int           { return len(a) }
func (a ByHilbert) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByHilbert) Less(i, j int) bool { return a[i].LessHilbert(a[j]) }

type hilbertKey struct {
	c Coord
	h uint64
}

// SortHilbert sorts coords into ByHilbert order. Each tile's curve index is
// computed once, where ByHilbert recomputes both on every comparison.
func SortHilbert(coords []Coord) {
	keys := make([]hilbertKey, len(coords))
	for i, c := range coords {
		keys[i] = hilbertKey{c, c.Hilbert()}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].c.Z != keys[j].c.Z {
			return keys[i].c.Z < keys[j].c.Z
		}
		return keys[i].h < keys[j].h
	})
	for i, k := range keys {
		coords[i] = k.c
	}
}

// Decode parses a coordinate from a string.
// It expects the string to be in the form z/x/y.
func Decode(coordSpec string) (*Coord, error) {
	fields := strings.Split(coordSpec, "/")
	if len(fields) != 3 {
		return nil, errors.New("Invalid number of fields")
	}
	z, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("Invalid z: %#v %s", fields[0], err)
	}
	x, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("Invalid x: %#v %s", fields[1], err)
	}
	y, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("Invalid y: %#v %s", fields[2], err)
	}
	c := Coord{uint(z), uint(x), uint(y)}
	if !c.Valid() {
		return nil, fmt.Errorf("Coordinate %s outside zoom %d grid", c, c.Z)
	}
	return &c, nil
}
