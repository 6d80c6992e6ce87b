package cmp

import (
	"github.com/tilezen/hilbert/pkg/coord"
	"github.com/tilezen/hilbert/pkg/coord/gen"
)

// FindMissingTiles compares two coordinate generators to find the missing tiles.
// It assumes that the first generator is the exhaustive list of what's
// expected, and reports the coordinates that are missing from the second
// generator. These generators must yield tiles sorted by zoom and then
// Hilbert position (coord.ByHilbert order). Unexpected tiles in the second
// generator are skipped.
func FindMissingTiles(exp gen.Generator, act gen.Generator) []coord.Coord {
	var result []coord.Coord
	expC, expH := next(exp)
	actC, actH := next(act)
	for expC != nil {
		switch {
		case actC == nil || less(expC, expH, actC, actH):
			result = append(result, *expC)
			expC, expH = next(exp)
		case less(actC, actH, expC, expH):
			actC, actH = next(act)
		default:
			expC, expH = next(exp)
			actC, actH = next(act)
		}
	}
	return result
}

// next returns the generator's next tile with its curve index.
func next(g gen.Generator) (*coord.Coord, uint64) {
	c := g.Next()
	if c == nil {
		return nil, 0
	}
	return c, c.Hilbert()
}

func less(a *coord.Coord, ah uint64, b *coord.Coord, bh uint64) bool {
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	return ah < bh
}
