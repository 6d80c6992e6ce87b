package gen

import (
	"github.com/tilezen/hilbert/pkg/coord"
)

// Generator provides an interface for yielding successive coordinates.
type Generator interface {
	Next() *coord.Coord
}

// tilesAt is the number of tiles at a zoom.
func tilesAt(zoom uint) uint64 {
	return uint64(1) << (2 * zoom)
}

type zoomRangeState struct {
	zoom  uint
	pos   uint64
	end   uint
	count uint64
}

// NewZoomRange returns a Generator that yields all coordinates from begin zoom
// to end zoom. The end zoom is inclusive. Within a zoom, tiles come in
// Hilbert curve order, which is the order coord.ByHilbert sorts into.
// Zooms above 31 are not supported.
func NewZoomRange(zoomBegin uint, zoomEndInclusive uint) Generator {
	return &zoomRangeState{
		zoom:  zoomBegin,
		end:   zoomEndInclusive,
		count: tilesAt(zoomBegin),
	}
}

func (g *zoomRangeState) Next() *coord.Coord {
	if g.zoom > g.end {
		return nil
	}
	result := coord.FromHilbert(g.zoom, g.pos)
	g.pos++
	if g.pos == g.count {
		g.pos = 0
		g.zoom++
		g.count = tilesAt(g.zoom)
	}
	return &result
}

type sliceState struct {
	idx    uint
	coords []coord.Coord
}

// NewSlice returns a Generator that yields all coordinates in the slice.
func NewSlice(coords []coord.Coord) Generator {
	return &sliceState{0, coords}
}

func (g *sliceState) Next() *coord.Coord {
	if g.idx >= uint(len(g.coords)) {
		return nil
	}
	result := g.coords[g.idx]
	g.idx++
	return &result
}
